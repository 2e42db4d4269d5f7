package api

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/repo"
)

// ListTherapists returns all therapists; ?active=true narrows to active.
func (h *Handler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := repo.ListTherapists(r.Context(), h.DB, activeOnly)
	if err != nil {
		storageError(w, err)
		return
	}
	out := make([]interface{}, len(list))
	for i := range list {
		out[i] = therapistPayload(&list[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"therapists": out})
}

type CreateTherapistRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	Color     string `json:"color"`
}

// CreateTherapist (admin only, enforced by the route) also provisions the
// therapist's login: a temporary password with must_change_password set,
// mailed best-effort. When no mailer is configured the temporary password
// is returned to the admin instead.
func (h *Handler) CreateTherapist(w http.ResponseWriter, r *http.Request) {
	var req CreateTherapistRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" {
		errJSON(w, http.StatusBadRequest, "full_name and email required")
		return
	}
	t := &repo.Therapist{
		FullName:  req.FullName,
		Email:     req.Email,
		Specialty: strings.TrimSpace(req.Specialty),
		Color:     strings.TrimSpace(req.Color),
		Active:    true,
	}
	if err := repo.CreateTherapist(r.Context(), h.DB, t); err != nil {
		storageError(w, err)
		return
	}

	plain := temporaryPassword()
	hash, err := h.hashPassword(plain)
	if err != nil {
		errJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	u := &repo.User{
		Email:              req.Email,
		PasswordHash:       hash,
		FullName:           req.FullName,
		Role:               auth.RoleTherapist,
		MustChangePassword: true,
		TherapistID:        &t.ID,
	}
	if err := repo.CreateUser(r.Context(), h.DB, u); err != nil {
		storageError(w, err)
		return
	}

	payload := map[string]interface{}{"therapist": therapistPayload(t)}
	if h.sendWelcomeEmail != nil {
		if err := h.sendWelcomeEmail(req.Email, req.FullName, plain); err != nil {
			log.Printf("[therapists] welcome email to %s failed: %v", req.Email, err)
			payload["temporary_password"] = plain
		}
	} else {
		payload["temporary_password"] = plain
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (h *Handler) GetTherapist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := repo.TherapistByID(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"therapist": therapistPayload(t)})
}

type PatchTherapistRequest struct {
	FullName  *string `json:"full_name"`
	Email     *string `json:"email"`
	Specialty *string `json:"specialty"`
	Color     *string `json:"color"`
	Active    *bool   `json:"active"`
}

func (h *Handler) PatchTherapist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	var req PatchTherapistRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Specialty != nil {
		updates["specialty"] = strings.TrimSpace(*req.Specialty)
	}
	if req.Color != nil {
		updates["color"] = strings.TrimSpace(*req.Color)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := repo.UpdateTherapist(r.Context(), h.DB, id, updates); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "therapist updated"})
}

func (h *Handler) DeleteTherapist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	if err := repo.DeleteTherapist(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	if h.Cache != nil {
		h.Cache.Delete(workingHoursCacheKey(id))
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "therapist deleted"})
}

func therapistPayload(t *repo.Therapist) map[string]interface{} {
	return map[string]interface{}{
		"id":        t.ID.String(),
		"full_name": t.FullName,
		"email":     t.Email,
		"specialty": t.Specialty,
		"color":     t.Color,
		"active":    t.Active,
	}
}

func temporaryPassword() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
