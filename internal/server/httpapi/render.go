package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ysemenov/blogkeeper/internal/errcode"
)

// errorBody is the wire shape of every failure response. Clients depend on
// it; do not change the field names.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeEntry(w http.ResponseWriter, e errcode.Entry) {
	writeJSON(w, e.Status, errorBody{Message: e.Message, Code: e.Code})
}

func writeError(w http.ResponseWriter, err error) {
	writeEntry(w, errcode.FromError(err))
}

func notFound(w http.ResponseWriter) {
	writeEntry(w, errcode.NotFound)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeEntry(w, errcode.MethodNotAllowed)
}
