package catalog

import (
	"net/http"

	"kitabcloud-admin/internal/domains/entity"
)

func categories() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "categories",
		Singular:    "Category",
		Plural:      "Categories",
		Description: "Top level book categories",
		Fields: []entity.Field{
			{Name: "category_name", Label: "Category Name", Kind: entity.KindText, Required: true, Message: "Category name is required"},
			{Name: "category_image", Label: "Category Image", Kind: entity.KindFile},
			{Name: "category_color", Label: "Category Color", Kind: entity.KindText, Default: "#705ec8"},
		},
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("category_name", "Category Name"),
			entity.Text("category_image", "Category Image"),
			entity.Text("category_color", "Category Color"),
		},
	}
}

func subcategories() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "subcategories",
		Singular:    "Sub Category",
		Plural:      "Sub Categories",
		Description: "Categories nested under a parent category",
		Fields: []entity.Field{
			{Name: "name", Label: "Sub Category Name", Kind: entity.KindText, Required: true, Message: "Sub category name is required"},
			{
				Name:        "category_id",
				Label:       "Category",
				Kind:        entity.KindSelect,
				Required:    true,
				Message:     "Category is required",
				Numeric:     true,
				OptionsFrom: &entity.OptionSource{Resource: "categories", LabelField: "category_name"},
			},
			description(),
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Sub Category Name"),
			entity.Relation("category", "Category", "category.category_name"),
			entity.Text("description", "Description"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func languages() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "languages",
		Singular:    "Language",
		Plural:      "Languages",
		Description: "Languages content is published in",
		Fields: []entity.Field{
			{Name: "name", Label: "Language Name", Kind: entity.KindText, Required: true, Message: "Name is required"},
			{Name: "code", Label: "Language Code", Kind: entity.KindText, Required: true, Message: "Code is required"},
			{Name: "native_name", Label: "Native Name", Kind: entity.KindText},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Language Name"),
			entity.Text("code", "Language Code"),
			entity.Text("native_name", "Native Name"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func tags() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "tags",
		Singular:    "Tag",
		Plural:      "Tags",
		Description: "Labels attached to content",
		Fields: []entity.Field{
			{Name: "name", Label: "Tag Name", Kind: entity.KindText, Required: true, Message: "Name is required"},
			description(),
			{Name: "color", Label: "Color", Kind: entity.KindText},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Tag Name"),
			entity.Text("description", "Description"),
			entity.Text("color", "Color"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func books() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "books",
		Singular:    "Book",
		Plural:      "Books",
		Description: "E-books and audio books",
		Columns: []entity.Column{
			idColumn(),
			entity.Text("title", "Book Title"),
			entity.Relation("author", "Author", "author.name"),
			entity.Relation("category", "Category", "category.category_name"),
			entity.Relation("language", "Language", "language.name"),
			entity.Text("ifunza_status", "Ifunza Status"),
			statusColumn(),
		},
		StatusField: "status",
		ReadOnly:    true,
	}
}

func comingSoonBooks() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "coming-soon-books",
		Singular:    "Coming Soon Book",
		Plural:      "Coming Soon Books",
		Description: "Announced titles not yet released",
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("title", "Book Title"),
			entity.Text("author_name", "Author"),
			entity.Text("cover_image", "Cover Image"),
			entity.Date("release_date", "Release Date"),
			statusColumn(),
		},
		StatusField:  "status",
		StatusMethod: http.MethodPatch,
		ReadOnly:     true,
	}
}
