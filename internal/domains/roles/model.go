package roles

import (
	"sort"
	"strings"

	"kitabcloud-admin/internal/domains/entity"
)

const (
	LoadFailed  = "Failed to fetch roles and permissions"
	SaveFailed  = "Failed to save permissions"
	SaveSuccess = "Permissions updated successfully"
)

// Role is one backend role.
type Role struct {
	ID         string
	Name       string
	UsersCount int64
}

// Tone is the chip colour of a role.
func (r Role) Tone() string {
	switch strings.ToLower(r.Name) {
	case "admin":
		return "error"
	case "author":
		return "primary"
	case "publisher":
		return "secondary"
	default:
		return "default"
	}
}

func roleFromRecord(rec entity.Record) Role {
	r := Role{ID: rec.ID(), Name: entity.FormatValue(rec["name"])}
	if n, ok := rec["users_count"].(float64); ok {
		r.UsersCount = int64(n)
	}
	return r
}

// Group is a titled block of permissions in the matrix.
type Group struct {
	Name        string
	Permissions []string
}

// Groups is the fixed layout of the permission matrix.
var Groups = []Group{
	{Name: "User Management", Permissions: []string{"users.view", "users.create", "users.edit", "users.delete"}},
	{Name: "Content Management", Permissions: []string{"books.view", "books.create", "books.edit", "books.delete", "categories.manage", "authors.manage"}},
	{Name: "Publisher Management", Permissions: []string{"publishers.view", "publishers.create", "publishers.edit", "publishers.delete"}},
	{Name: "System Administration", Permissions: []string{"roles.manage", "settings.manage", "reports.view", "analytics.view"}},
}

// GroupByName finds a group of the fixed layout.
func GroupByName(name string) (Group, bool) {
	for _, g := range Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Matrix maps role id to permission to granted. It is posted to the backend
// exactly as held.
type Matrix map[string]map[string]bool

func (m Matrix) Has(role, perm string) bool {
	return m[role][perm]
}

// Set grants or revokes one permission.
func (m Matrix) Set(role, perm string, granted bool) {
	if m[role] == nil {
		m[role] = make(map[string]bool)
	}
	m[role][perm] = granted
}

// SetAll grants or revokes a list of permissions at once.
func (m Matrix) SetAll(role string, perms []string, granted bool) {
	for _, p := range perms {
		m.Set(role, p, granted)
	}
}

// AllGranted reports whether role holds every permission in perms.
func (m Matrix) AllGranted(role string, perms []string) bool {
	for _, p := range perms {
		if !m.Has(role, p) {
			return false
		}
	}
	return len(perms) > 0
}

// ToggleAll is the select-all control: clear the group when it is fully
// granted, grant it otherwise.
func (m Matrix) ToggleAll(role string, perms []string) {
	m.SetAll(role, perms, !m.AllGranted(role, perms))
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for role, perms := range m {
		inner := make(map[string]bool, len(perms))
		for p, v := range perms {
			inner[p] = v
		}
		out[role] = inner
	}
	return out
}

// Granted lists the permissions a role holds, sorted.
func (m Matrix) Granted(role string) []string {
	var out []string
	for p, ok := range m[role] {
		if ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
