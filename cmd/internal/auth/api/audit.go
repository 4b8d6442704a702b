package authapi

import (
	"log/slog"
	"net/http"
	"strings"
)

// Metrics counts auth API outcomes. app.Metrics implements it with Prometheus counters.
type Metrics interface {
	ObserveLogin(outcome string)
	ObserveRegister(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveLogin(string)    {}
func (noopMetrics) ObserveRegister(string) {}

// Audit outcomes. They double as metric label values.
const (
	outcomeSuccess      = "success"
	outcomeInvalid      = "invalid_request"
	outcomeUnknownEmail = "unknown_email"
	outcomeBadPassword  = "bad_password"
	outcomeWeakPassword = "weak_password"
	outcomeConflict     = "conflict"
	outcomeError        = "error"
)

func (h *Handler) auditLogin(r *http.Request, userID, outcome string) {
	h.metrics.ObserveLogin(outcome)
	h.audit(r, "auth.login", userID, outcome)
}

func (h *Handler) auditRegister(r *http.Request, userID, outcome string) {
	h.metrics.ObserveRegister(outcome)
	h.audit(r, "auth.register", userID, outcome)
}

func (h *Handler) auditLogout(r *http.Request, userID string) {
	h.audit(r, "auth.logout", userID, outcomeSuccess)
}

// audit writes one structured event. Credentials and tokens are never attributes.
func (h *Handler) audit(r *http.Request, action, userID, outcome string) {
	level := slog.LevelInfo
	if outcome != outcomeSuccess {
		level = slog.LevelWarn
	}
	if outcome == outcomeError {
		level = slog.LevelError
	}

	attrs := []any{"outcome", outcome}
	if userID != "" {
		attrs = append(attrs, "user_id", userID)
	}
	if ip := clientIP(r, h.cfg.TrustProxy); ip != nil {
		attrs = append(attrs, "ip", ip.String())
	}
	if ua := strings.TrimSpace(r.UserAgent()); ua != "" {
		attrs = append(attrs, "user_agent", ua)
	}

	h.log.Log(r.Context(), level, action, attrs...)
}
