package container

import (
	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/domains/auth"
	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/dashboard"
	"kitabcloud-admin/internal/domains/roles"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/session"
)

// Terminal holds the dependencies of the command line client. Its session
// lives in the OS keyring instead of Redis.
type Terminal struct {
	Config *config.Config
	Store  session.Store
	Auth   *auth.Manager

	CRUD      *crud.Service
	Dashboard *dashboard.Service
	Roles     *roles.Service
}

// NewTerminal wires the client around store. The keyring store is used
// unless the caller supplies another.
func NewTerminal(cfg *config.Config, store session.Store) *Terminal {
	if store == nil {
		store = session.NewKeyringStore(cfg.App.Profile)
	}

	mgr := auth.NewManager(store, apiclient.NewFactory(cfg.API))
	api := mgr.API()

	log.Debug().Str("profile", cfg.App.Profile).Str("api", cfg.API.BaseURL).Msg("terminal client ready")

	return &Terminal{
		Config:    cfg,
		Store:     store,
		Auth:      mgr,
		CRUD:      crud.NewService(api),
		Dashboard: dashboard.NewService(api),
		Roles:     roles.NewService(api),
	}
}
