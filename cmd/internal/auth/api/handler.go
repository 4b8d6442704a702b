package authapi

import (
	"errors"
	"log/slog"
	"net/http"

	"sixcities/cmd/identity"
	"sixcities/cmd/internal/auth/gate"
	"sixcities/cmd/internal/auth/session"
)

// Handler wires the user auth endpoints to the identity store, credentials and session services.
type Handler struct {
	log *slog.Logger
	cfg Config

	users    identity.UserStore
	creds    *identity.Credentials
	sessions *session.Service
	gate     *gate.Gate
	metrics  Metrics
}

// HandlerOption configures optional handler dependencies.
type HandlerOption func(*Handler)

// WithMetrics sets the outcome counters.
func WithMetrics(m Metrics) HandlerOption {
	return func(h *Handler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewHandler constructs a Handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.UserStore, creds *identity.Credentials, sessions *session.Service, g *gate.Gate, opts ...HandlerOption) (*Handler, error) {
	if users == nil || creds == nil || sessions == nil || g == nil {
		return nil, errors.New("authapi: missing dependency")
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	h := &Handler{
		log:      log,
		cfg:      cfg,
		users:    users,
		creds:    creds,
		sessions: sessions,
		gate:     g,
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Register wires auth routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /users/register", h.handleRegister)
	mux.HandleFunc("POST /users/login", h.handleLogin)
	mux.Handle("GET /users/login", h.gate.Required(http.HandlerFunc(h.handleMe)))
	mux.Handle("DELETE /users/logout", h.gate.Required(http.HandlerFunc(h.handleLogout)))
	mux.Handle("GET /users/status", h.gate.Optional(http.HandlerFunc(h.handleStatus)))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		h.auditRegister(r, "", outcomeInvalid)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.auditRegister(r, "", outcomeInvalid)
		writeValidationError(w, err)
		return
	}

	digest, err := h.creds.HashPassword(req.Password)
	if err != nil {
		h.auditRegister(r, "", outcomeWeakPassword)
		writeError(w, http.StatusBadRequest, "invalid_password", passwordMessage(err))
		return
	}

	u, err := h.users.CreateUser(r.Context(), identity.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		AvatarURL:      req.AvatarURL,
		Type:           identity.UserType(req.Type),
		PasswordDigest: digest,
	})
	if err != nil {
		switch {
		case identity.IsConflict(err):
			h.auditRegister(r, "", outcomeConflict)
			writeError(w, http.StatusConflict, "email_taken", "a user with this email already exists")
		case identity.IsInvalidInput(err):
			h.auditRegister(r, "", outcomeInvalid)
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid user data")
		default:
			h.log.Error("auth.register.create_user.fail", "err", err)
			h.auditRegister(r, "", outcomeError)
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		}
		return
	}

	h.auditRegister(r, u.ID, outcomeSuccess)
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		h.auditLogin(r, "", outcomeInvalid)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.auditLogin(r, "", outcomeInvalid)
		writeValidationError(w, err)
		return
	}

	u, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if !identity.IsNotFound(err) {
			h.log.Error("auth.login.lookup.fail", "err", err)
			h.auditLogin(r, "", outcomeError)
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		// Same Argon2 cost as a real check, so response time does not reveal registered emails.
		h.creds.CheckMissing(req.Password)
		h.auditLogin(r, "", outcomeUnknownEmail)
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	if !h.creds.CheckPassword(req.Password, u.PasswordDigest) {
		h.auditLogin(r, u.ID, outcomeBadPassword)
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	issued, err := h.sessions.IssueToken(u.ID, u.Email)
	if err != nil {
		h.log.Error("auth.login.issue_token.fail", "err", err)
		h.auditLogin(r, u.ID, outcomeError)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.auditLogin(r, u.ID, outcomeSuccess)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      toUserResponse(u),
	})
}

// handleMe runs behind the required gate.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := gate.UserFromContext(r.Context())
	if !ok {
		gate.WriteUnauthenticated(w)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// handleLogout is stateless: the client discards its token.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	u, ok := gate.UserFromContext(r.Context())
	if !ok {
		gate.WriteUnauthenticated(w)
		return
	}
	h.auditLogout(r, u.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleStatus runs behind the optional gate.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := gate.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, statusResponse{})
		return
	}
	resp := toUserResponse(u)
	writeJSON(w, http.StatusOK, statusResponse{Authenticated: true, User: &resp})
}

func passwordMessage(err error) string {
	var op identity.OpError
	if errors.As(err, &op) && op.Msg != "" {
		return op.Msg
	}
	return "password does not meet policy"
}
