package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(requestIDHeader))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type sessionRig struct {
	router *gin.Engine
	redis  *miniredis.Miniredis
	store  *session.RedisStore
	verify atomic.Int32
}

func newSessionRig(t *testing.T) *sessionRig {
	t.Helper()
	rig := &sessionRig{}

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/get_user" {
			rig.verify.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"name": "Aisha"}})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(api.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rig.redis = mr
	rig.store = session.NewRedisStore(rdb, time.Hour)
	factory := apiclient.NewFactory(config.APIConfig{BaseURL: api.URL, Timeout: time.Second})
	sessions := NewSessions(rig.store, factory, config.SessionConfig{CookieName: "sid", TTL: time.Hour})

	rig.router = gin.New()
	g := rig.router.Group("/", sessions.Middleware(), RequireAuth())
	g.GET("/private", func(c *gin.Context) { c.String(http.StatusOK, Auth(c).User().DisplayName()) })
	return rig
}

func (r *sessionRig) get(sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	rig := newSessionRig(t)

	w := rig.get("")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginRoute, w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sid=")
}

func TestSessionVerifiedOncePerProcess(t *testing.T) {
	rig := newSessionRig(t)
	sid := session.NewID()
	require.NoError(t, rig.store.Session(sid).Save(context.Background(), session.State{
		Token: "tok",
		User:  json.RawMessage(`{"name":"Aisha"}`),
	}))

	for i := 0; i < 3; i++ {
		w := rig.get(sid)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Aisha", w.Body.String())
	}
	assert.Equal(t, int32(1), rig.verify.Load())
}

func TestMalformedSessionCookieIsReplaced(t *testing.T) {
	rig := newSessionRig(t)

	w := rig.get("../../etc")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "etc")
}

func TestAnonymousRequestsLeaveNoState(t *testing.T) {
	rig := newSessionRig(t)

	for i := 0; i < 200; i++ {
		w := rig.get("")
		require.Equal(t, http.StatusSeeOther, w.Code)
	}
	w := rig.get(session.NewID())
	require.Equal(t, http.StatusSeeOther, w.Code)

	assert.Empty(t, rig.redis.Keys())
	assert.Equal(t, int32(0), rig.verify.Load())
}

func TestSessionVerifiedAgainAfterRestart(t *testing.T) {
	first := newSessionRig(t)
	sid := session.NewID()
	require.NoError(t, first.store.Session(sid).Save(context.Background(), session.State{
		Token: "tok",
		User:  json.RawMessage(`{"name":"Aisha"}`),
	}))
	require.Equal(t, http.StatusOK, first.get(sid).Code)
	require.Equal(t, http.StatusOK, first.get(sid).Code)
	assert.Equal(t, int32(1), first.verify.Load())

	// a second process over the same store has its own boot tag
	factory := apiclient.NewFactory(config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	restarted := NewSessions(first.store, factory, config.SessionConfig{CookieName: "sid", TTL: time.Hour})
	ok, err := first.store.Verified(context.Background(), sid, restarted.boot)
	require.NoError(t, err)
	assert.False(t, ok)
}
