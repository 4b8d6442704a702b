package gate

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrUnauthenticated is the only failure the gate reports to clients.
var ErrUnauthenticated = errors.New("unauthenticated")

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteUnauthenticated writes the uniform 401 response.
func WriteUnauthenticated(w http.ResponseWriter) {
	var body errorBody
	body.Error.Code = ErrUnauthenticated.Error()
	body.Error.Message = "authentication required"

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("WWW-Authenticate", `Bearer realm="sixcities"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(body)
}
