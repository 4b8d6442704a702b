package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sixcities/cmd/identity"
	authapi "sixcities/cmd/internal/auth/api"
	"sixcities/cmd/internal/auth/session"
	"sixcities/cmd/security/password"
)

func testConfig() Config {
	pw := password.DefaultConfig()
	pw.Params = password.Argon2idParams{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, KeyLength: password.DigestLength}

	sess := session.DefaultConfig()
	sess.Secret = []byte("app-test-secret")

	return Config{
		Store:    StoreMemory,
		Session:  sess,
		Password: pw,
		Pepper:   "app-test-pepper",
		API:      authapi.DefaultConfig(),
	}
}

func memoryBackend() userBackend {
	return userBackend{
		kind:  StoreMemory,
		users: identity.NewMemoryStore(),
		close: func(context.Context) error { return nil },
	}
}

func newTestApp(t *testing.T, cfg Config, backend userBackend) http.Handler {
	t.Helper()
	a, err := newWithBackend(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), backend)
	if err != nil {
		t.Fatalf("newWithBackend: %v", err)
	}
	return a.Handler()
}

func send(t *testing.T, h http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestApp_AuthFlowThroughMiddleware(t *testing.T) {
	h := newTestApp(t, testConfig(), memoryBackend())

	rr := send(t, h, http.MethodPost, "/users/register", `{"name":"Kim","email":"kim@example.com","password":"secret1"}`, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", rr.Code, rr.Body)
	}
	if rr.Header().Get(requestIDHeader) == "" || rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("middleware headers missing: %v", rr.Header())
	}

	rr = send(t, h, http.MethodPost, "/users/login", `{"email":"kim@example.com","password":"secret1"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("bad login body %s: %v", rr.Body, err)
	}

	if rr = send(t, h, http.MethodGet, "/users/login", "", login.Token); rr.Code != http.StatusOK {
		t.Fatalf("me status=%d", rr.Code)
	}
	if rr = send(t, h, http.MethodGet, "/users/login", "", login.Token+"x"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("tampered token status=%d", rr.Code)
	}
	if got := rr.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Bearer") {
		t.Fatalf("WWW-Authenticate=%q", got)
	}

	rr = send(t, h, http.MethodGet, "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`sixcities_auth_logins_total{outcome="success"} 1`,
		`sixcities_auth_registrations_total{outcome="success"} 1`,
		`sixcities_auth_gate_decisions_total{policy="required",stage="authenticated"} 1`,
		`sixcities_auth_gate_decisions_total{policy="required",stage="token_invalid"} 1`,
		`sixcities_http_requests_total{code="201",method="POST",route="POST /users/register"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestApp_HealthAndReadiness(t *testing.T) {
	h := newTestApp(t, testConfig(), memoryBackend())
	if rr := send(t, h, http.MethodGet, "/healthz", "", ""); rr.Code != http.StatusOK {
		t.Fatalf("healthz=%d", rr.Code)
	}
	if rr := send(t, h, http.MethodGet, "/readyz", "", ""); rr.Code != http.StatusOK {
		t.Fatalf("readyz=%d", rr.Code)
	}

	cfg := testConfig()
	cfg.ReadinessRequireDB = true
	h = newTestApp(t, cfg, memoryBackend())
	if rr := send(t, h, http.MethodGet, "/readyz", "", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without persistent store=%d", rr.Code)
	}

	down := memoryBackend()
	down.kind = StorePostgres
	down.ping = func(context.Context) error { return errors.New("connection refused") }
	h = newTestApp(t, cfg, down)
	if rr := send(t, h, http.MethodGet, "/readyz", "", ""); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with failing ping=%d", rr.Code)
	}
}

func TestApp_JWTProfile(t *testing.T) {
	cfg := testConfig()
	cfg.Session.Profile = session.ProfileJWT
	h := newTestApp(t, cfg, memoryBackend())

	send(t, h, http.MethodPost, "/users/register", `{"name":"Lee","email":"lee@example.com","password":"secret1"}`, "")
	rr := send(t, h, http.MethodPost, "/users/login", `{"email":"lee@example.com","password":"secret1"}`, "")

	var login struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &login)
	if strings.Count(login.Token, ".") != 2 {
		t.Fatalf("expected a three-segment JWT, got %q", login.Token)
	}

	rr = send(t, h, http.MethodGet, "/users/status", "", login.Token)
	if !strings.Contains(rr.Body.String(), `"authenticated":true`) {
		t.Fatalf("status body=%s", rr.Body)
	}
}

func TestNew_RejectsSharedSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Pepper = string(cfg.Session.Secret)

	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}
