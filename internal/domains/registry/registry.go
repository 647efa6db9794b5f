package registry

import (
	"net/url"
	"strconv"
	"strings"
)

// Auth & account endpoints
const (
	Login   = "/login"
	GetUser = "/get_user"
)

// Screens that are not plain CRUD resources
const (
	Dashboard       = "/admin/dashboard"
	Roles           = "/admin/roles"
	Permissions     = "/admin/permissions"
	RolePermissions = "/admin/role-permissions"
	Countries       = "/admin/countries"
)

// endpoints maps logical resource names to REST collection paths.
var endpoints = map[string]string{
	"users":             "/admin/users",
	"categories":        "/admin/categories",
	"subcategories":     "/admin/sub-categories",
	"authors":           "/admin/authors",
	"readers":           "/admin/readers",
	"publishers":        "/admin/publishers",
	"languages":         "/admin/languages",
	"books":             "/admin/books",
	"coming-soon-books": "/admin/coming-soon-books",
	"videos":            "/admin/videos",
	"tags":              "/admin/tags",
	"advertisements":    "/admin/advertisements",
	"notifications":     "/admin/notifications",
	"podcasts":          "/admin/podcasts",
	"episodes":          "/admin/episodes",
	"expenses":          "/admin/expenses",
	"background-images": "/admin/background-images",
	"feedback":          "/admin/feedback",
	"countries":         Countries,
	"roles":             Roles,
	"permissions":       Permissions,
}

// Path returns the collection path for a resource name.
func Path(resource string) (string, bool) {
	p, ok := endpoints[resource]
	return p, ok
}

// MustPath is Path for static wiring; an unknown name is a programming error.
func MustPath(resource string) string {
	p, ok := endpoints[resource]
	if !ok {
		panic("registry: unknown resource " + strconv.Quote(resource))
	}
	return p
}

// Item builds `<base>/<id>`.
func Item(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}

// Status builds the status sub-resource `<base>/<id>/status`.
func Status(base, id string) string {
	return Item(base, id) + "/status"
}

// Search appends page, limit and an optional search term.
func Search(base, term string, page, limit int) string {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if term != "" {
		params.Set("search", term)
	}
	return base + "?" + params.Encode()
}
