package catalog

import "kitabcloud-admin/internal/domains/entity"

const minPassword = 6

func email() entity.Field {
	return entity.Field{
		Name:          "email",
		Label:         "Email",
		Kind:          entity.KindEmail,
		Required:      true,
		Message:       "Email is required",
		FormatMessage: "Invalid email",
	}
}

func password() entity.Field {
	return entity.Field{
		Name:      "password",
		Label:     "Password",
		Kind:      entity.KindPassword,
		Required:  true,
		Message:   "Password is required",
		MinLength: minPassword,
	}
}

func phone() entity.Field {
	return entity.Field{Name: "phone", Label: "Phone", Kind: entity.KindText}
}

func users() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "users",
		Singular:    "User",
		Plural:      "Users",
		Description: "Manage console and platform accounts",
		Fields: []entity.Field{
			{Name: "full_name", Label: "Full Name", Kind: entity.KindText, Required: true, Message: "Full name is required"},
			email(),
			password(),
			phone(),
			{
				Name:        "country",
				Label:       "Country",
				Kind:        entity.KindSelect,
				OptionsFrom: &entity.OptionSource{Resource: "countries", ValueField: "name"},
			},
			{
				Name:     "role",
				Label:    "Role",
				Kind:     entity.KindSelect,
				Required: true,
				Message:  "Role is required",
				Default:  "2",
				Numeric:  true,
				Options:  []entity.Option{{Value: "1", Label: "Admin"}, {Value: "2", Label: "User"}},
			},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("full_name", "Full Name"),
			entity.Text("email", "Email"),
			entity.Text("country", "Country"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func authors() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "authors",
		Singular:    "Author",
		Plural:      "Authors",
		Description: "Manage book authors",
		Fields: []entity.Field{
			{Name: "name", Label: "Author Name", Kind: entity.KindText, Required: true, Message: "Author name is required"},
			email(),
			password(),
			phone(),
			{Name: "biography", Label: "Biography", Kind: entity.KindTextarea},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Author Name"),
			entity.Text("email", "Email"),
			entity.Text("biography", "Biography"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func readers() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "readers",
		Singular:    "Reader",
		Plural:      "Readers",
		Description: "Manage narrators of audio books",
		Fields: []entity.Field{
			{Name: "name", Label: "Reader Name", Kind: entity.KindText, Required: true, Message: "Reader name is required"},
			email(),
			password(),
			phone(),
			{Name: "biography", Label: "Biography", Kind: entity.KindTextarea},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Reader Name"),
			entity.Text("email", "Email"),
			entity.Text("phone", "Phone"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func publishers() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "publishers",
		Singular:    "Publisher",
		Plural:      "Publishers",
		Description: "Manage publishing houses",
		Fields: []entity.Field{
			{Name: "name", Label: "Publisher Name", Kind: entity.KindText, Required: true, Message: "Name is required"},
			email(),
			password(),
			phone(),
			{Name: "address", Label: "Address", Kind: entity.KindTextarea},
			{Name: "website", Label: "Website", Kind: entity.KindText},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Publisher Name"),
			entity.Text("email", "Email"),
			entity.Text("website", "Website"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}
