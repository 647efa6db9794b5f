package web

import (
	"github.com/gin-gonic/gin"

	"kitabcloud-admin/internal/shared/middleware"
)

// Mount registers every console page on r. All of them run behind the
// session middleware; everything but the login page also requires an
// authenticated session.
func (h *Handler) Mount(r *gin.Engine, sessions *middleware.Sessions) {
	r.NoRoute(sessions.Middleware(), h.NotFound)

	public := r.Group("/", sessions.Middleware())
	{
		public.GET("/login", middleware.RedirectIfAuthenticated(HomeRoute), h.LoginPage)
		public.POST("/login", h.Login)
	}

	console := r.Group("/", sessions.Middleware(), middleware.RequireAuth())
	{
		console.GET("/", h.Home)
		console.POST("/logout", h.Logout)
		console.GET("/dashboard", h.Dashboard)
		console.GET("/roles", h.Roles)
		console.POST("/roles", h.SaveRoles)

		console.GET("/:resource", h.List)
		console.GET("/:resource/export", h.Export)
		console.GET("/:resource/add", h.AddForm)
		console.POST("/:resource/add", h.Create)
		console.GET("/:resource/edit/:id", h.EditForm)
		console.POST("/:resource/edit/:id", h.Update)
		console.GET("/:resource/:id", h.Show)
		console.GET("/:resource/:id/delete", h.ConfirmDelete)
		console.POST("/:resource/:id/delete", h.Delete)
		console.POST("/:resource/:id/status", h.ToggleStatus)
	}
}
