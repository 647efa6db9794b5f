package auth

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// State of the console session.
type State int

const (
	StateUnauthenticated State = iota
	StatePending               // persisted session found, verification in flight
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidUser      = errors.New("user must be a JSON object")
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email is required"),
			is.EmailFormat.Error("Invalid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// loginResponse mirrors the backend answer to POST /login.
type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
}

// verifyRequest is the body of POST /get_user.
type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	User json.RawMessage `json:"user"`
}

// Result is the outcome of a login attempt. Failures carry a message for
// inline display instead of an error value.
type Result struct {
	Success bool
	Message string
	Errors  map[string]string // per-field validation messages
}

// User is a decoded view of the persisted user object.
type User map[string]any

// DisplayName picks the best human label the backend provided.
func (u User) DisplayName() string {
	for _, key := range []string{"full_name", "name", "username", "email"} {
		if s, ok := u[key].(string); ok && s != "" {
			return s
		}
	}
	return "Admin"
}

func (u User) Email() string {
	s, _ := u["email"].(string)
	return s
}

func hasUser(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v != nil
}
