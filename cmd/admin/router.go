package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kitabcloud-admin/internal/shared/middleware"
	"kitabcloud-admin/internal/shared/response"
	"kitabcloud-admin/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HTMLRender = c.Renderer

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	setupOpsRoutes(router, c)
	c.WebHandler.Mount(router, c.Sessions)

	return router
}

// ========================================
// OPS ROUTES
// ========================================
func setupOpsRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/healthz", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			response.ServiceUnavailable(ctx, "session store unavailable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
			"api":     c.APIFactory.BaseURL(),
		})
	}
}
