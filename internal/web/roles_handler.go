package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/roles"
	"kitabcloud-admin/internal/shared/middleware"
)

type rolesBody struct {
	Screen *roles.Screen
	Groups []roles.Group
}

func (h *Handler) rolesService(c *gin.Context) *roles.Service {
	return roles.NewService(middleware.Auth(c).API())
}

// Roles handles GET /roles.
func (h *Handler) Roles(c *gin.Context) {
	notices := h.popFlash(c)

	screen, err := h.rolesService(c).Load(c.Request.Context())
	if err != nil {
		if h.expired(c, err) {
			return
		}
		notices = append(notices, errorNotice(roles.LoadFailed))
	}
	h.html(c, http.StatusOK, "roles", "Roles & Permissions", notices, rolesBody{
		Screen: screen,
		Groups: roles.Groups,
	})
}

// SaveRoles handles POST /roles. The posted checkboxes are laid over a
// fresh copy of the matrix so grants outside the fixed groups survive. A
// "toggle" submission flips one group for one role and re-renders without
// saving; anything else posts the matrix.
func (h *Handler) SaveRoles(c *gin.Context) {
	svc := h.rolesService(c)
	ctx := c.Request.Context()

	screen, err := svc.Load(ctx)
	if err != nil {
		if h.expired(c, err) {
			return
		}
		h.setFlash(c, errorNotice(roles.LoadFailed))
		c.Redirect(http.StatusSeeOther, "/roles")
		return
	}

	screen.Matrix = applyPosted(c, screen)

	var notices []crud.Notice
	if toggle := c.PostForm("toggle"); toggle != "" {
		role, group, _ := strings.Cut(toggle, "|")
		if g, ok := roles.GroupByName(group); ok {
			screen.Matrix.ToggleAll(role, g.Permissions)
		}
	} else {
		if err := svc.Save(ctx, screen.Matrix); err != nil {
			if h.expired(c, err) {
				return
			}
			notices = append(notices, errorNotice(roles.SaveFailed))
		} else {
			h.setFlash(c, successNotice(roles.SaveSuccess))
			c.Redirect(http.StatusSeeOther, "/roles")
			return
		}
	}

	h.html(c, http.StatusOK, "roles", "Roles & Permissions", notices, rolesBody{
		Screen: screen,
		Groups: roles.Groups,
	})
}

// applyPosted builds the matrix the admin sees: checkbox values are
// "<roleID>|<permission>" and every grouped permission not posted is off.
func applyPosted(c *gin.Context, screen *roles.Screen) roles.Matrix {
	checked := make(map[string]bool)
	for _, v := range c.PostFormArray("perm") {
		checked[v] = true
	}

	m := screen.Matrix.Clone()
	for _, r := range screen.Roles {
		for _, g := range roles.Groups {
			for _, p := range g.Permissions {
				m.Set(r.ID, p, checked[r.ID+"|"+p])
			}
		}
	}
	return m
}
