package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/domains/dashboard"
	"kitabcloud-admin/internal/shared/middleware"
)

func (h *Handler) Dashboard(c *gin.Context) {
	notices := h.popFlash(c)

	summary, err := dashboard.NewService(middleware.Auth(c).API()).Load(c.Request.Context())
	if err != nil {
		if h.expired(c, err) {
			return
		}
		notices = append(notices, errorNotice(dashboard.FailedMessage))
		summary = &dashboard.Summary{}
	}

	h.html(c, http.StatusOK, "dashboard", "Dashboard", notices, summary)
}
