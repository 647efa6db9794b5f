package entity

// Column is one display column of a list view. The set of implementations is
// closed: TextColumn, DateColumn, StatusColumn, RelationColumn.
type Column interface {
	Key() string
	Header() string
	isColumn()
}

// TextColumn shows a raw field value.
type TextColumn struct {
	Field string
	Title string
}

// DateColumn shows a field as a local date.
type DateColumn struct {
	Field string
	Title string
}

// StatusColumn shows a two-state Active/Inactive chip.
type StatusColumn struct {
	Field string
	Title string
}

// RelationColumn shows a label from a nested object, N/A when absent.
type RelationColumn struct {
	Field string
	Title string
	Path  *Path
}

func (c TextColumn) Key() string { return c.Field }
func (c TextColumn) Header() string { return c.Title }
func (TextColumn) isColumn() {}
func (c DateColumn) Key() string { return c.Field }
func (c DateColumn) Header() string { return c.Title }
func (DateColumn) isColumn() {}
func (c StatusColumn) Key() string { return c.Field }
func (c StatusColumn) Header() string { return c.Title }
func (StatusColumn) isColumn() {}
func (c RelationColumn) Key() string { return c.Field }
func (c RelationColumn) Header() string { return c.Title }
func (RelationColumn) isColumn() {}

// Text declares a raw field column.
func Text(field, title string) Column { return TextColumn{Field: field, Title: title} }

// Date declares a date column.
func Date(field, title string) Column { return DateColumn{Field: field, Title: title} }

// Status declares a status chip column.
func Status(field, title string) Column { return StatusColumn{Field: field, Title: title} }

// Relation declares a nested label column; path is dot-separated from the row root.
func Relation(field, title, path string) Column {
	return RelationColumn{Field: field, Title: title, Path: MustPath(path)}
}
