package entity

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userDescriptor() *Descriptor {
	return &Descriptor{
		Name:     "users",
		Singular: "User",
		Plural:   "Users",
		Path:     "/admin/users",
		Fields: []Field{
			{Name: "full_name", Label: "Full Name", Kind: KindText, Required: true, Message: "Full name is required"},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true, Message: "Email is required", FormatMessage: "Invalid email"},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true, MinLength: 6, FormatMessage: "Password must be at least 6 characters"},
			{Name: "role", Label: "Role", Kind: KindSelect, Numeric: true, Default: "2", Options: []Option{{"1", "Admin"}, {"2", "User"}}},
			{Name: "avatar", Label: "Avatar", Kind: KindFile},
			{Name: "status", Label: "Status", Kind: KindSwitch},
		},
		StatusField: "status",
	}
}

func TestDefaults(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()

	assert.Equal(t, "", v["full_name"])
	assert.Equal(t, "2", v["role"])
	assert.Equal(t, true, v["status"])
	assert.Nil(t, v["avatar"])
}

func TestSchemaRequiredMessage(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["email"] = "a@b.co"
	v["password"] = "secret1"

	errs := d.Schema(ModeAdd).Validate(v)
	require.Len(t, errs, 1)
	assert.Equal(t, "Full name is required", errs["full_name"])
}

func TestSchemaFormats(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["full_name"] = "Ada"
	v["email"] = "not-an-email"
	v["password"] = "abc"

	errs := d.Schema(ModeAdd).Validate(v)
	assert.Equal(t, "Invalid email", errs["email"])
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
}

func TestSchemaEditAllowsBlankPassword(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["full_name"] = "Ada"
	v["email"] = "ada@example.com"
	v["password"] = ""

	assert.Nil(t, d.Schema(ModeEdit).Validate(v))
	assert.Contains(t, d.Schema(ModeAdd).Validate(v), "password")
}

func TestSchemaSwitchMustBeBool(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["full_name"] = "Ada"
	v["email"] = "ada@example.com"
	v["password"] = "secret1"
	v["status"] = "maybe"

	errs := d.Schema(ModeAdd).Validate(v)
	assert.Equal(t, "Status must be true or false", errs["status"])
}

func TestSeedSkipsPassword(t *testing.T) {
	d := userDescriptor()
	rec := Record{
		"id":        float64(9),
		"full_name": "Ada",
		"email":     "ada@example.com",
		"password":  "$2y$hash",
		"role":      float64(1),
		"status":    float64(0),
		"avatar":    "https://cdn/x.png",
	}

	v := d.Seed(rec)
	assert.Equal(t, "", v["password"])
	assert.Equal(t, "1", v["role"])
	assert.Equal(t, false, v["status"])
	assert.Nil(t, v["avatar"])
	assert.Equal(t, "Ada", v["full_name"])
}

func TestPayloadEditStripsBlankPassword(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["full_name"] = "Ada"
	v["email"] = "ada@example.com"
	v["password"] = "  "

	p := d.Payload(ModeEdit, v)
	assert.NotContains(t, p, "password")
	assert.NotContains(t, p, "avatar")
	assert.Equal(t, int64(2), p["role"])
	assert.Equal(t, true, p["status"])
	assert.False(t, HasFiles(p))

	v["password"] = "newsecret"
	p = d.Payload(ModeEdit, v)
	assert.Equal(t, "newsecret", p["password"])
}

func TestPayloadWithFile(t *testing.T) {
	d := userDescriptor()
	v := d.Defaults()
	v["avatar"] = NewFile("a.png", "image/png", 3, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("png")), nil
	})

	p := d.Payload(ModeAdd, v)
	assert.True(t, HasFiles(p))
	assert.Contains(t, p, "password")
}

func TestParseInput(t *testing.T) {
	d := userDescriptor()

	v, err := d.ParseInput("status", "off")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, err = d.ParseInput("status", "perhaps")
	assert.Error(t, err)

	_, err = d.ParseInput("nickname", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestRecordIDAndStatus(t *testing.T) {
	rec := Record{"id": float64(42), "status": "1"}
	assert.Equal(t, "42", rec.ID())

	on, ok := rec.Status("status")
	assert.True(t, ok)
	assert.True(t, on)

	_, ok = rec.Status("missing")
	assert.False(t, ok)
}

func TestPathLookup(t *testing.T) {
	p := MustPath("author.name")

	v, ok := p.Lookup(map[string]any{"author": map[string]any{"name": "Rumi"}})
	assert.True(t, ok)
	assert.Equal(t, "Rumi", v)

	_, ok = p.Lookup(map[string]any{"author": nil})
	assert.False(t, ok)

	_, ok = p.Lookup(map[string]any{"author": "flat string"})
	assert.False(t, ok)

	_, err := CompilePath("author..name")
	assert.Error(t, err)
}

func TestOptionsFromRecords(t *testing.T) {
	src := OptionSource{Resource: "authors"}
	opts := src.OptionsFromRecords([]Record{
		{"id": float64(1), "name": "Rumi"},
		{"id": float64(2)},
		{"name": "no id"},
	})
	assert.Equal(t, []Option{{Value: "1", Label: "Rumi"}, {Value: "2", Label: "2"}}, opts)
}
