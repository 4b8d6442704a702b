package app

import (
	"net/http"
)

func (a *App) registerHTTP(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.ReadinessRequireDB && !a.backend.persistent() {
			http.Error(w, "store not persistent", http.StatusServiceUnavailable)
			return
		}

		if a.backend.ping != nil {
			if err := a.backend.ping(r.Context()); err != nil {
				http.Error(w, "store not ready", http.StatusServiceUnavailable)
				a.log.Info("readyz.store.not_ready", "store", a.backend.kind, "err", err)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	mux.Handle("GET /metrics", a.metrics.Handler())

	a.auth.Register(mux)
}

// Handler returns the full middleware chain around the route mux.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	a.registerHTTP(mux)

	var h http.Handler = mux
	h = WithRequestLogging(h, a.log, a.metrics)
	h = WithSecurityHeaders(h)
	h = WithRequestID(h)
	return h
}
