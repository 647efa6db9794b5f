package web

import (
	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/entity"
)

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	entity.Field
	Input   string
	Value   string
	Checked bool
	Options []optionView
	Error   string
}

type formBody struct {
	Entity    *entity.Descriptor
	Edit      bool
	Action    string
	Multipart bool
	Fields    []fieldView
}

func newFormBody(f *crud.Form) formBody {
	d := f.Entity
	body := formBody{
		Entity:    d,
		Edit:      f.Mode == entity.ModeEdit,
		Action:    d.Route() + "/add",
		Multipart: d.HasFileField(),
	}
	if body.Edit {
		body.Action = d.Route() + "/edit/" + f.ID
	}

	for _, field := range d.Fields {
		v := fieldView{
			Field: field,
			Input: field.Kind.InputType(),
			Error: f.Errors[field.Name],
		}
		switch field.Kind {
		case entity.KindSwitch:
			v.Checked = f.Values.Bool(field.Name)
		case entity.KindFile:
			// browsers cannot prefill file inputs
		default:
			v.Value = f.Values.String(field.Name)
		}

		opts := field.Options
		if field.IsDynamic() {
			opts = f.Options[field.Name]
		}
		for _, o := range opts {
			v.Options = append(v.Options, optionView{Value: o.Value, Label: o.Label, Selected: o.Value == v.Value})
		}
		body.Fields = append(body.Fields, v)
	}
	return body
}
