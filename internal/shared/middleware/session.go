package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/domains/auth"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/session"
)

const authKey = "auth"

// Sessions binds every console request to its persisted session and an
// auth manager over it.
type Sessions struct {
	store   *session.RedisStore
	factory *apiclient.Factory
	cfg     config.SessionConfig

	// tags sessions verified by this process
	boot string
}

func NewSessions(store *session.RedisStore, factory *apiclient.Factory, cfg config.SessionConfig) *Sessions {
	return &Sessions{store: store, factory: factory, cfg: cfg, boot: session.NewID()}
}

// Middleware resolves the session cookie, issuing a fresh id when it is
// missing or malformed. The first request of a session in this process runs
// the full restore (token verification); later ones adopt the stored state.
// A session is tagged verified only once it is authenticated, so anonymous
// traffic leaves nothing behind.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(s.cfg.CookieName)
		if err != nil || !session.ValidID(sid) {
			sid = session.NewID()
		}
		s.setCookie(c, sid)

		mgr := auth.NewManager(s.store.Session(sid), s.factory)
		ctx := c.Request.Context()
		requestID := c.GetString("request_id")

		verified, err := s.store.Verified(ctx, sid, s.boot)
		if err != nil {
			log.Warn().Err(err).Str("request_id", requestID).Msg("session verification lookup failed")
		}
		if verified {
			err = mgr.Resume(ctx)
		} else {
			err = mgr.Restore(ctx)
		}
		if err != nil {
			log.Warn().Err(err).Str("request_id", requestID).Msg("session restore failed")
		}

		c.Set(authKey, mgr)
		c.Next()

		if !verified && mgr.IsAuthenticated() {
			if err := s.store.MarkVerified(ctx, sid, s.boot); err != nil {
				log.Warn().Err(err).Str("request_id", requestID).Msg("failed to tag session verified")
			}
		}
	}
}

func (s *Sessions) setCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, sid, int(s.cfg.TTL.Seconds()), "/", "", s.cfg.Secure, true)
}

// Auth returns the manager bound by Sessions.
func Auth(c *gin.Context) *auth.Manager {
	v, ok := c.Get(authKey)
	if !ok {
		return nil
	}
	mgr, _ := v.(*auth.Manager)
	return mgr
}
