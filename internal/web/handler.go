package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/domains/catalog"
	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/shared/middleware"
)

// HomeRoute is where a signed-in admin lands.
const HomeRoute = "/dashboard"

// Handler serves the console pages. It is stateless: the session-bound API
// client comes from the request context.
type Handler struct {
	appName string
	secure  bool
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		appName: cfg.App.Name,
		secure:  cfg.Session.Secure,
	}
}

// pageData is what the layout template receives.
type pageData struct {
	AppName  string
	Title    string
	User     string
	Sections []catalog.Section
	Notices  []crud.Notice
	Body     any
}

func (h *Handler) page(c *gin.Context, title string, notices []crud.Notice, body any) pageData {
	p := pageData{AppName: h.appName, Title: title, Notices: notices, Body: body}
	if mgr := middleware.Auth(c); mgr != nil && mgr.IsAuthenticated() {
		p.User = mgr.User().DisplayName()
		p.Sections = catalog.Sections()
	}
	return p
}

func (h *Handler) crudService(c *gin.Context) *crud.Service {
	return crud.NewService(middleware.Auth(c).API())
}

// descriptor resolves the :resource segment, rendering 404 when unknown.
func (h *Handler) descriptor(c *gin.Context) (*entity.Descriptor, bool) {
	d, err := catalog.Get(c.Param("resource"))
	if err != nil {
		h.NotFound(c)
		return nil, false
	}
	return d, true
}

// expired handles a backend 401, whether err carries it or a request made
// elsewhere while serving the page did. The session has already been
// cleared by the API client, so the admin is sent to log in again.
func (h *Handler) expired(c *gin.Context, err error) bool {
	if !crud.Unauthorized(err) && !revoked(c) {
		return false
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginRoute)
	return true
}

func revoked(c *gin.Context) bool {
	mgr := middleware.Auth(c)
	return mgr != nil && mgr.Revoked()
}

// html renders a console page inside the layout.
func (h *Handler) html(c *gin.Context, status int, name, title string, notices []crud.Notice, body any) {
	if h.expired(c, nil) {
		return
	}
	c.HTML(status, name, h.page(c, title, notices, body))
}

func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error", h.page(c, "Not found", nil, errorBody{
		Status:  http.StatusNotFound,
		Message: "The page you are looking for does not exist.",
	}))
}

type errorBody struct {
	Status  int
	Message string
}

func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, HomeRoute)
}
