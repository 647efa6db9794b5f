package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LoginRoute is where unauthenticated requests are sent.
const LoginRoute = "/login"

// RequireAuth gates a route on an authenticated session. Anything else,
// including a session whose verification failed, goes to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr := Auth(c)
		if mgr == nil || !mgr.IsAuthenticated() {
			log.Debug().
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path).
				Msg("unauthenticated request redirected to login")
			c.Redirect(http.StatusSeeOther, LoginRoute)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated keeps a signed-in admin away from the login page.
func RedirectIfAuthenticated(home string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mgr := Auth(c); mgr != nil && mgr.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, home)
			c.Abort()
			return
		}
		c.Next()
	}
}
