package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/cache"
	"kitabcloud-admin/internal/infrastructure/session"
	"kitabcloud-admin/internal/shared/middleware"
	"kitabcloud-admin/internal/web"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the web console.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	Redis    *cache.RedisClient
	Registry *prometheus.Registry

	// ========================================
	// BACKEND ACCESS
	// ========================================
	Metrics    *apiclient.Metrics
	APIFactory *apiclient.Factory

	// ========================================
	// SESSIONS
	// ========================================
	SessionStore *session.RedisStore
	Sessions     *middleware.Sessions

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	Renderer   *web.Renderer
	WebHandler *web.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// 1. Config
// 2. Redis (session storage)
// 3. Metrics registry and backend client factory
// 4. Session store and middleware
// 5. Templates and handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	log.Info().Str("environment", cfg.App.Environment).Str("api", cfg.API.BaseURL).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INITIALIZE REDIS
	// ========================================
	// Sessions live in Redis, so unlike a cache it is required.
	c.Redis = cache.NewRedisClient(cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Redis.Connect(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// ========================================
	// STEP 3: METRICS & BACKEND CLIENT
	// ========================================
	log.Info().Msg("📈 Initializing metrics...")

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = apiclient.NewMetrics(c.Registry)
	c.APIFactory = apiclient.NewFactory(cfg.API, apiclient.WithMetrics(c.Metrics))

	log.Info().Msg("✅ Backend client ready")

	// ========================================
	// STEP 4: SESSIONS
	// ========================================
	c.SessionStore = session.NewRedisStore(c.Redis.Client, cfg.Session.TTL)
	c.Sessions = middleware.NewSessions(c.SessionStore, c.APIFactory, cfg.Session)

	// ========================================
	// STEP 5: INITIALIZE HANDLERS
	// ========================================
	log.Info().Msg("🎯 Initializing handlers...")

	if err := c.initHandlers(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}
	log.Info().Msg("✅ Handlers initialized")

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initHandlers() error {
	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	c.Renderer = renderer
	c.WebHandler = web.NewHandler(c.Config)
	return nil
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
