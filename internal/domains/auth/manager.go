package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/domains/registry"
	"kitabcloud-admin/internal/infrastructure/apiclient"
	"kitabcloud-admin/internal/infrastructure/session"
	"kitabcloud-admin/pkg/jwt"
)

// Manager is the single writer of session state. It also serves as the
// credentials source of its API client, so every request reads the token
// from the store and a 401 anywhere clears it.
type Manager struct {
	store session.Store
	api   *apiclient.Client
	now   func() time.Time

	mu      sync.RWMutex
	state   State
	user    json.RawMessage
	revoked bool
}

func NewManager(store session.Store, factory *apiclient.Factory) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
	}
	m.api = factory.Client(m)
	return m
}

// API returns the client bound to this session.
func (m *Manager) API() *apiclient.Client { return m.api }

// ========================================
// CREDENTIALS
// ========================================

func (m *Manager) BearerToken(ctx context.Context) string {
	st, err := m.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session load failed, sending request without token")
		return ""
	}
	return st.Token
}

// Revoke handles a 401 from any request: persisted and in-memory state are
// dropped and the session is marked revoked so callers can send the user to
// the login screen.
func (m *Manager) Revoke(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear revoked session")
	}

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.revoked = true
	m.mu.Unlock()

	log.Info().Msg("🔒 Session revoked by backend")
}

// ========================================
// TRANSITIONS
// ========================================

// Restore runs the startup check. A persisted token and user make the state
// pending until POST /get_user confirms them; any failure clears the session.
// The returned error only reports store failures.
func (m *Manager) Restore(ctx context.Context) error {
	st, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !st.Complete() {
		m.set(StateUnauthenticated, nil)
		return nil
	}

	m.set(StatePending, st.User)

	if jwt.Expired(st.Token, m.now()) {
		log.Info().Msg("persisted token expired, skipping verification")
		return m.reset(ctx)
	}

	var resp verifyResponse
	err = m.api.Post(ctx, registry.GetUser, apiclient.JSONBody(verifyRequest{Token: st.Token}), &resp)
	if err != nil {
		log.Info().Err(err).Msg("session verification failed")
		return m.reset(ctx)
	}
	if !hasUser(resp.User) {
		log.Info().Msg("session verification returned no user")
		return m.reset(ctx)
	}

	m.set(StateAuthenticated, st.User)
	return nil
}

// Resume adopts the persisted session without a verification call. Used
// for sessions already verified earlier in this process.
func (m *Manager) Resume(ctx context.Context) error {
	st, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !st.Complete() {
		m.set(StateUnauthenticated, nil)
		return nil
	}
	m.set(StateAuthenticated, st.User)
	return nil
}

// Login validates the credentials locally, then POSTs them to /login.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	req := LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return validationResult(err)
	}

	var resp loginResponse
	if err := m.api.Post(ctx, registry.Login, apiclient.JSONBody(req), &resp); err != nil {
		fallback := "Login failed"
		if apiclient.StatusOf(err) == 0 {
			fallback = "Network error occurred"
		}
		log.Warn().Err(err).Str("email", req.Email).Msg("login request failed")
		return Result{Message: apiclient.MessageOf(err, fallback)}
	}

	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		return Result{Message: msg}
	}

	user := resp.User
	if !hasUser(user) {
		user = json.RawMessage(`{}`)
	}
	if err := m.store.Save(ctx, session.State{Token: resp.Token, User: user}); err != nil {
		log.Error().Err(err).Msg("failed to persist session")
		return Result{Message: "Could not save session"}
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.revoked = false
	m.mu.Unlock()

	log.Info().Str("email", req.Email).Msg("✅ Admin logged in")
	return Result{Success: true}
}

// Logout is local: it clears persisted and in-memory state without calling
// the backend.
func (m *Manager) Logout(ctx context.Context) error {
	return m.reset(ctx)
}

// UpdateUser replaces the persisted user object.
func (m *Manager) UpdateUser(ctx context.Context, user json.RawMessage) error {
	var obj map[string]any
	if err := json.Unmarshal(user, &obj); err != nil || obj == nil {
		return ErrInvalidUser
	}

	st, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if st.Token == "" {
		return ErrNotAuthenticated
	}

	st.User = user
	if err := m.store.Save(ctx, st); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// ========================================
// QUERIES
// ========================================

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Revoked reports whether a 401 ended the session during this manager's life.
func (m *Manager) Revoked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revoked
}

// User returns the decoded current user, nil when unauthenticated.
func (m *Manager) User() User {
	m.mu.RLock()
	raw := m.user
	m.mu.RUnlock()

	if len(raw) == 0 {
		return nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return u
}

// RawUser returns the persisted user JSON as stored.
func (m *Manager) RawUser() json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) set(state State, user json.RawMessage) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()
}

func (m *Manager) reset(ctx context.Context) error {
	m.set(StateUnauthenticated, nil)
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func validationResult(err error) Result {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return Result{Message: err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for name, ferr := range verrs {
		fields[name] = ferr.Error()
	}
	// email first, matching the form order
	msg := fields["email"]
	if msg == "" {
		msg = fields["password"]
	}
	return Result{Message: msg, Errors: fields}
}
