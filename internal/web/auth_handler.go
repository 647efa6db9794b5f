package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/shared/middleware"
	"kitabcloud-admin/pkg/logger"
)

type loginBody struct {
	Email  string
	Errors map[string]string
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", h.page(c, "Sign in", h.popFlash(c), loginBody{}))
}

// Login handles POST /login. Failures re-render the form with the email kept.
func (h *Handler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	res := middleware.Auth(c).Login(c.Request.Context(), email, c.PostForm("password"))
	if res.Success {
		c.Redirect(http.StatusSeeOther, HomeRoute)
		return
	}

	var notices []crud.Notice
	if res.Message != "" {
		notices = append(notices, errorNotice(res.Message))
	}
	c.HTML(http.StatusUnprocessableEntity, "login", h.page(c, "Sign in", notices, loginBody{
		Email:  email,
		Errors: res.Errors,
	}))
}

// Logout is local only: the persisted session is cleared.
func (h *Handler) Logout(c *gin.Context) {
	mgr := middleware.Auth(c)
	name := mgr.User().DisplayName()
	if err := mgr.Logout(c.Request.Context()); err != nil {
		logger.Error("logout failed", err)
	} else {
		logger.Info("admin logged out", map[string]interface{}{"admin": name})
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginRoute)
}
