package catalog

import (
	"net/http"

	"kitabcloud-admin/internal/domains/entity"
)

func notifications() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "notifications",
		Singular:    "Notification",
		Plural:      "Notifications",
		Description: "Push and in-app announcements",
		Fields: []entity.Field{
			{Name: "title", Label: "Title", Kind: entity.KindText, Required: true, Message: "Title is required"},
			{Name: "message", Label: "Message", Kind: entity.KindTextarea, Required: true, Message: "Message is required"},
			{
				Name:  "type",
				Label: "Type",
				Kind:  entity.KindSelect,
				Options: []entity.Option{
					{Value: "info", Label: "Info"},
					{Value: "success", Label: "Success"},
					{Value: "warning", Label: "Warning"},
					{Value: "error", Label: "Error"},
				},
			},
			{
				Name:  "target_audience",
				Label: "Target Audience",
				Kind:  entity.KindSelect,
				Options: []entity.Option{
					{Value: "all", Label: "All Users"},
					{Value: "authors", Label: "Authors"},
					{Value: "readers", Label: "Readers"},
					{Value: "publishers", Label: "Publishers"},
				},
			},
			{Name: "scheduled_at", Label: "Scheduled At", Kind: entity.KindDateTime},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("title", "Title"),
			entity.Text("type", "Type"),
			entity.Text("target_audience", "Target"),
			entity.Date("scheduled_at", "Scheduled"),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func advertisements() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "advertisements",
		Singular:    "Advertisement",
		Plural:      "Advertisements",
		Description: "In-app advertisement slots",
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("title", "Title"),
			entity.Text("description", "Description"),
			entity.Text("image", "Image"),
			entity.Text("link", "Link"),
			entity.Text("position", "Position"),
			statusColumn(),
		},
		StatusField:  "status",
		StatusMethod: http.MethodPatch,
		ReadOnly:     true,
	}
}

func expenses() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "expenses",
		Singular:    "Expense",
		Plural:      "Expenses",
		Description: "Operating expenses",
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("description", "Description"),
			entity.Text("category_name", "Category"),
			entity.Text("amount", "Amount"),
			entity.Date("date", "Date"),
		},
		ReadOnly: true,
	}
}

func feedback() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "feedback",
		Singular:    "Feedback",
		Plural:      "Feedback",
		Description: "Messages sent from the apps",
		Columns: []entity.Column{
			idColumn(),
			entity.Text("feedback", "Feedback"),
			entity.Date("timestamp", "Date"),
			entity.Date("created_at", "Created"),
		},
		ReadOnly: true,
	}
}
