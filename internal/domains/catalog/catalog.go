// Package catalog declares one entity descriptor per backend resource the
// console manages.
package catalog

import (
	"fmt"

	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/registry"
)

var (
	ordered []*entity.Descriptor
	byName  map[string]*entity.Descriptor
)

func init() {
	ordered = []*entity.Descriptor{
		users(),
		categories(),
		subcategories(),
		authors(),
		readers(),
		publishers(),
		languages(),
		books(),
		comingSoonBooks(),
		videos(),
		tags(),
		notifications(),
		podcasts(),
		episodes(),
		advertisements(),
		expenses(),
		backgroundImages(),
		feedback(),
	}

	byName = make(map[string]*entity.Descriptor, len(ordered))
	for _, d := range ordered {
		d.Path = registry.MustPath(d.Name)
		byName[d.Name] = d
	}
}

// All returns every descriptor in navigation order.
func All() []*entity.Descriptor {
	out := make([]*entity.Descriptor, len(ordered))
	copy(out, ordered)
	return out
}

// Get looks a descriptor up by resource name.
func Get(name string) (*entity.Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownEntity, name)
	}
	return d, nil
}

// Section groups descriptors in the console sidebar.
type Section struct {
	Title    string
	Entities []*entity.Descriptor
}

// Sections returns the sidebar layout.
func Sections() []Section {
	group := func(title string, names ...string) Section {
		s := Section{Title: title}
		for _, n := range names {
			s.Entities = append(s.Entities, byName[n])
		}
		return s
	}
	return []Section{
		group("Accounts", "users", "authors", "readers", "publishers"),
		group("Catalog", "books", "coming-soon-books", "categories", "subcategories", "languages", "tags"),
		group("Media", "videos", "podcasts", "episodes", "background-images"),
		group("Engagement", "notifications", "advertisements", "feedback"),
		group("Finance", "expenses"),
	}
}

// standard list columns shared by most resources
func idColumn() entity.Column { return entity.Text("id", "ID") }
func createdColumn() entity.Column { return entity.Date("created_at", "Created At") }
func statusColumn() entity.Column { return entity.Status("status", "Status") }
func statusSwitch() entity.Field { return entity.Field{Name: "status", Label: "Status", Kind: entity.KindSwitch} }
func description() entity.Field { return entity.Field{Name: "description", Label: "Description", Kind: entity.KindTextarea} }
