package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/uveral/agendapsico/internal/cache"
	"github.com/uveral/agendapsico/internal/config"
	"gorm.io/gorm"
)

// Handler carries the shared dependencies of every HTTP handler. The
// function-typed collaborators are injected from main (or tests) so the
// handlers never touch bcrypt or SMTP directly.
type Handler struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *cache.TTL

	hashPassword     func(string) (string, error)
	sendWelcomeEmail func(to, fullName, tempPassword string) error
}

func (h *Handler) SetHashPassword(fn func(string) (string, error)) { h.hashPassword = fn }
func (h *Handler) SetSendWelcomeEmail(fn func(to, fullName, tempPassword string) error) {
	h.sendWelcomeEmail = fn
}

// writeJSON renames the payload's snake_case keys to camelCase and encodes
// it. Handlers build payloads with snake_case keys, matching storage.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SnakeToCamelKeys(payload))
}

// readJSON decodes a request body whose keys may be camelCase (the API
// boundary) into a struct tagged with snake_case names.
func readJSON(r *http.Request, dst interface{}) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	buf, err := json.Marshal(CamelToSnakeKeys(v))
	if err != nil {
		return err
	}
	return json.NewDecoder(bytes.NewReader(buf)).Decode(dst)
}

func errJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// storageError distinguishes a missing row from a real storage failure.
// Storage failures surface the underlying message verbatim; it is shown to
// the operator, never a stack trace.
func storageError(w http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errJSON(w, http.StatusNotFound, "not found")
		return
	}
	errJSON(w, http.StatusInternalServerError, err.Error())
}
