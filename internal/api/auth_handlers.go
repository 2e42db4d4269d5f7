package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uveral/agendapsico/internal/account"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/repo"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the users table and returns a JWT that also
// carries the must-change-password flag so clients can gate navigation
// without a second round trip.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		errJSON(w, http.StatusBadRequest, "email and password required")
		return
	}
	u, err := repo.UserByEmail(r.Context(), h.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errJSON(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		storageError(w, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		errJSON(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := auth.BuildJWT(h.Cfg.JWTSecret, u.ID.String(), u.Role, u.MustChangePassword, tokenTTL)
	if err != nil {
		errJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":                tok,
		"must_change_password": u.MustChangePassword,
		"user":                 userPayload(u),
	})
}

// Me returns the caller's profile. When the client passes its current path
// (?path=/dashboard/agenda) the response also says whether a mandatory
// password change must redirect it first.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(auth.UserIDFrom(r.Context()))
	if err != nil {
		errJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := repo.UserByID(r.Context(), h.DB, uid)
	if err != nil {
		storageError(w, err)
		return
	}
	redirect := account.DeterminePasswordRedirect(false, u.MustChangePassword, r.URL.Query().Get("path"))
	payload := map[string]interface{}{
		"user":                 userPayload(u),
		"must_change_password": u.MustChangePassword,
	}
	if redirect != "" {
		payload["password_redirect"] = redirect
	}
	writeJSON(w, http.StatusOK, payload)
}

type ChangeMyPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangeMyPassword runs the password-change workflow with repo-backed
// collaborators: update the hash first, clear the must-change flag only
// after that succeeded. On success a fresh token without the flag is
// issued best-effort; the password change stands even if that fails.
func (h *Handler) ChangeMyPassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())
	if claims == nil {
		errJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid user")
		return
	}
	var req ChangeMyPasswordRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}

	res := account.ProcessPasswordChange(req.Password, req.ConfirmPassword,
		func(plain string) error {
			hash, err := h.hashPassword(plain)
			if err != nil {
				return err
			}
			return repo.UpdateUserPassword(r.Context(), h.DB, uid, hash)
		},
		func() error {
			return repo.SetMustChangePassword(r.Context(), h.DB, uid, false)
		},
	)
	switch res.Kind {
	case account.ValidationError:
		errJSON(w, http.StatusBadRequest, res.Message)
		return
	case account.Error:
		errJSON(w, http.StatusInternalServerError, res.Message)
		return
	}

	payload := map[string]interface{}{"message": "password updated"}
	// Mirror the cleared flag into the token the client holds. The users
	// row is the record of truth; a failure here only means the client
	// keeps its old token until the next login.
	if tok, err := auth.BuildJWT(h.Cfg.JWTSecret, claims.UserID, claims.Role, false, tokenTTL); err == nil {
		payload["token"] = tok
	} else {
		log.Printf("[password] token refresh after change failed for %s: %v", claims.UserID, err)
	}
	writeJSON(w, http.StatusOK, payload)
}

func userPayload(u *repo.User) map[string]interface{} {
	out := map[string]interface{}{
		"id":        u.ID.String(),
		"email":     u.Email,
		"full_name": u.FullName,
		"role":      u.Role,
	}
	if u.TherapistID != nil {
		out["therapist_id"] = u.TherapistID.String()
	}
	return out
}
