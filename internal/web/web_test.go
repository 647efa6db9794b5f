package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/session"
	"kitabcloud-admin/internal/shared/middleware"
)

type backendCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

// backend is a fake REST API answering from canned routes.
type backend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]canned
}

type canned struct {
	status int
	body   string
}

func (b *backend) on(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = canned{status: status, body: body}
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	c := backendCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
	if r.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(r.Body).Decode(&c.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, c)
	route, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.status)
	_, _ = io.WriteString(w, route.body)
}

func (b *backend) find(method, path string) (backendCall, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			return c, true
		}
	}
	return backendCall{}, false
}

type console struct {
	t       *testing.T
	api     *backend
	srv     *httptest.Server
	browser *http.Client
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &backend{routes: map[string]canned{}}
	apiSrv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(apiSrv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		App:     config.AppConfig{Name: "KitabCloud Admin", Environment: "test"},
		API:     config.APIConfig{BaseURL: apiSrv.URL, Timeout: time.Second},
		Session: config.SessionConfig{CookieName: "sid", TTL: time.Hour},
	}

	renderer, err := NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	factory := apiclient.NewFactory(cfg.API)
	sessions := middleware.NewSessions(session.NewRedisStore(rdb, cfg.Session.TTL), factory, cfg.Session)
	NewHandler(cfg).Mount(r, sessions)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &console{t: t, api: api, srv: srv, browser: browser}
}

func (c *console) get(path string) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.browser.Get(c.srv.URL + path)
	require.NoError(c.t, err)
	return resp, readBody(c.t, resp)
}

func (c *console) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.browser.PostForm(c.srv.URL+path, form)
	require.NoError(c.t, err)
	return resp, readBody(c.t, resp)
}

func (c *console) login() {
	c.t.Helper()
	c.api.on("POST", "/login", 200, `{"success":true,"token":"tok-1","user":{"name":"Aisha"}}`)
	resp, _ := c.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(c.t, HomeRoute, resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestConsoleRequiresLogin(t *testing.T) {
	c := newConsole(t)

	for _, path := range []string{"/", "/dashboard", "/tags", "/tags/add", "/roles"} {
		resp, _ := c.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, body := c.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="password"`)
}

func TestLoginValidationMakesNoCall(t *testing.T) {
	c := newConsole(t)

	resp, body := c.post("/login", url.Values{"email": {"not-an-email"}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Invalid email")
	assert.Contains(t, body, "Password is required")
	assert.Contains(t, body, `value="not-an-email"`)

	_, called := c.api.find("POST", "/login")
	assert.False(t, called)
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	c := newConsole(t)
	c.api.on("POST", "/login", 401, `{"message":"Invalid credentials"}`)

	resp, body := c.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
}

func TestListAfterLogin(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 200, `{"data":[{"id":1,"name":"Fiction","status":1},{"id":2,"name":"Poetry","status":0}]}`)

	resp, body := c.get("/tags")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Fiction")
	assert.Contains(t, body, "Poetry")
	assert.Contains(t, body, "Active")
	assert.Contains(t, body, "Inactive")
	assert.Contains(t, body, "Aisha")

	call, ok := c.api.find("GET", "/admin/tags")
	require.True(t, ok)
	assert.Equal(t, "Bearer tok-1", call.Auth)

	resp, _ = c.get("/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, HomeRoute, resp.Header.Get("Location"))
}

func TestListSearch(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 200, `[{"id":1,"name":"Fiction","status":1}]`)

	resp, body := c.get("/tags?q=fic")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Fiction")
	assert.Contains(t, body, `value="fic"`)

	c.api.mu.Lock()
	last := c.api.calls[len(c.api.calls)-1]
	c.api.mu.Unlock()
	assert.Equal(t, "/admin/tags", last.Path)
	assert.Equal(t, "limit=100&page=1&search=fic", last.Query)

	c.api.on("POST", "/admin/tags/1/status", 200, `{}`)
	resp, _ = c.post("/tags/1/status", url.Values{"status": {"0"}, "return": {"page=1&size=10"}, "q": {"fic"}})
	assert.Equal(t, "/tags?page=1&q=fic&size=10", resp.Header.Get("Location"))
}

func TestListFetchFailureNotice(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 500, `{}`)

	resp, body := c.get("/tags")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Failed to fetch tags")
}

func TestUnknownResourceIsNotFound(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, _ := c.get("/widgets")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.get("/feedback/add")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRecord(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("POST", "/admin/tags", 201, `{"data":{"id":3}}`)
	c.api.on("GET", "/admin/tags", 200, `[{"id":3,"name":"Fiction","status":1}]`)

	resp, _ := c.post("/tags/add", url.Values{"name": {"Fiction"}, "status": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/tags", resp.Header.Get("Location"))

	call, ok := c.api.find("POST", "/admin/tags")
	require.True(t, ok)
	assert.Equal(t, "Fiction", call.Body["name"])
	assert.Equal(t, true, call.Body["status"])

	_, body := c.get("/tags")
	assert.Contains(t, body, "Tag created successfully")

	// the flash is shown once
	_, body = c.get("/tags")
	assert.NotContains(t, body, "Tag created successfully")
}

func TestCreateInvalidMakesNoCall(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, body := c.post("/tags/add", url.Values{"name": {""}, "color": {"red"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, `value="red"`)

	_, called := c.api.find("POST", "/admin/tags")
	assert.False(t, called)
}

func TestCreateFailureKeepsValues(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("POST", "/admin/tags", 422, `{"message":"Tag already exists"}`)

	resp, body := c.post("/tags/add", url.Values{"name": {"Fiction"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Tag already exists")
	assert.Contains(t, body, `value="Fiction"`)
}

func TestFailedAddKeepsPassword(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/countries", 200, `[]`)
	c.api.on("POST", "/admin/users", 422, `{"message":"Email already taken"}`)

	resp, body := c.post("/users/add", url.Values{
		"full_name": {"Aisha"},
		"email":     {"aisha@example.com"},
		"password":  {"hunter22"},
		"role":      {"2"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Email already taken")
	assert.Contains(t, body, `value="hunter22"`)
	assert.Contains(t, body, `value="aisha@example.com"`)
}

func TestResetRestoresDefaults(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, body := c.get("/categories/add")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `formaction="/categories/add?reset=1"`)

	resp, body = c.post("/categories/add?reset=1", url.Values{
		"category_name":  {"Science"},
		"category_color": {"#000000"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="#705ec8"`)
	assert.NotContains(t, body, `value="Science"`)
	assert.NotContains(t, body, `value="#000000"`)

	_, called := c.api.find("POST", "/admin/categories")
	assert.False(t, called)
}

func TestEditFormHasNoReset(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags/7", 200, `{"id":7,"name":"Drama"}`)

	_, body := c.get("/tags/edit/7")
	assert.NotContains(t, body, "reset=1")
}

func TestReadOnlyRecordsOpenInDetailView(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/feedback", 200, `[{"id":3,"feedback":"Love the app"}]`)
	c.api.on("GET", "/admin/feedback/3", 200, `{"data":{"id":3,"feedback":"Love the app","device":"android"}}`)

	_, body := c.get("/feedback")
	assert.Contains(t, body, `href="/feedback/3">View</a>`)
	assert.NotContains(t, body, "/feedback/edit/3")

	resp, body := c.get("/feedback/3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Love the app")
	assert.Contains(t, body, "android")
	assert.Contains(t, body, `href="/feedback/3/delete"`)
}

func TestDetailViewMissingRecordReturnsToList(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, _ := c.get("/feedback/404")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/feedback", resp.Header.Get("Location"))
}

func TestEmptyListSpansActionsColumn(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 200, `[]`)

	_, body := c.get("/tags")
	assert.Contains(t, body, `colspan="7"`)
}

func TestEditMissingRecordReturnsToList(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, _ := c.get("/tags/edit/99")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/tags", resp.Header.Get("Location"))
}

func TestEditSeedsForm(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags/7", 200, `{"data":{"id":7,"name":"Drama","color":"blue","status":1}}`)
	c.api.on("PUT", "/admin/tags/7", 200, `{}`)

	resp, body := c.get("/tags/edit/7")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Drama"`)
	assert.Contains(t, body, `action="/tags/edit/7"`)

	resp, _ = c.post("/tags/edit/7", url.Values{"name": {"Drama"}, "color": {"green"}, "status": {"1"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	call, ok := c.api.find("PUT", "/admin/tags/7")
	require.True(t, ok)
	assert.Equal(t, "green", call.Body["color"])
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("DELETE", "/admin/tags/4", 200, `{}`)

	resp, body := c.get("/tags/4/delete")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Confirm Delete")
	_, called := c.api.find("DELETE", "/admin/tags/4")
	assert.False(t, called)

	resp, _ = c.post("/tags/4/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, called = c.api.find("DELETE", "/admin/tags/4")
	assert.True(t, called)
}

func TestToggleStatus(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("POST", "/admin/readers/5/status", 200, `{}`)

	resp, _ := c.post("/readers/5/status", url.Values{"status": {"0"}, "return": {"page=2&size=25"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/readers?page=2&size=25", resp.Header.Get("Location"))

	call, ok := c.api.find("POST", "/admin/readers/5/status")
	require.True(t, ok)
	assert.Equal(t, false, call.Body["status"])
}

func TestBackend401EndsSession(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 401, `{"message":"Unauthenticated"}`)

	resp, _ := c.get("/tags")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = c.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestOptionSource401EndsSession(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/countries", 401, `{"message":"Unauthenticated"}`)

	resp, _ := c.get("/users/add")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = c.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestInvalidSubmitWith401OptionsEndsSession(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/countries", 401, `{"message":"Unauthenticated"}`)

	resp, _ := c.post("/users/add", url.Values{"full_name": {""}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, called := c.api.find("POST", "/admin/users")
	assert.False(t, called)
}

func TestLogout(t *testing.T) {
	c := newConsole(t)
	c.login()

	resp, _ := c.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = c.get("/tags")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDashboard(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/dashboard", 200, `{"data":{"subscription":"1250.5","book":12,"recentbooks":[{"title":"Kitab"}]}}`)

	resp, body := c.get("/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "1250.50")
	assert.Contains(t, body, "Total Books")
	assert.Contains(t, body, "Kitab")
}

func TestDashboardFailure(t *testing.T) {
	c := newConsole(t)
	c.login()

	_, body := c.get("/dashboard")
	assert.Contains(t, body, "Failed to load dashboard data")
}

func TestExport(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/tags", 200, `[{"id":1,"name":"Fiction","status":1}]`)

	resp, err := c.browser.Get(c.srv.URL + "/tags/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "tags.xlsx")
	b, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(b), "PK"))
}

func TestRolesSave(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/roles", 200, `[{"id":1,"name":"Admin"},{"id":2,"name":"Author"}]`)
	c.api.on("GET", "/admin/permissions", 200, `[]`)
	c.api.on("GET", "/admin/role-permissions", 200, `{"1":{"users.view":true,"legacy.flag":true}}`)
	c.api.on("POST", "/admin/role-permissions", 200, `{}`)

	resp, body := c.get("/roles")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="1|users.view" checked`)

	resp, _ = c.post("/roles", url.Values{"perm": {"2|books.view"}, "save": {"1"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	call, ok := c.api.find("POST", "/admin/role-permissions")
	require.True(t, ok)
	admin := call.Body["1"].(map[string]any)
	author := call.Body["2"].(map[string]any)
	assert.Equal(t, false, admin["users.view"])
	assert.Equal(t, true, admin["legacy.flag"])
	assert.Equal(t, true, author["books.view"])
}

func TestRolesToggleDoesNotSave(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/roles", 200, `[{"id":1,"name":"Admin"}]`)
	c.api.on("GET", "/admin/permissions", 200, `[]`)
	c.api.on("GET", "/admin/role-permissions", 200, `{}`)

	resp, body := c.post("/roles", url.Values{"toggle": {"1|User Management"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="1|users.delete" checked`)
	assert.Contains(t, body, "Clear all")

	_, saved := c.api.find("POST", "/admin/role-permissions")
	assert.False(t, saved)
}

func TestRolesLoadFailure(t *testing.T) {
	c := newConsole(t)
	c.login()
	c.api.on("GET", "/admin/roles", 200, `[]`)

	_, body := c.get("/roles")
	assert.Contains(t, body, "Failed to fetch roles and permissions")
}
