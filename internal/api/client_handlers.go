package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/repo"
)

// ListClients returns all clients; ?therapistId= narrows to one therapist.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	var therapistID *uuid.UUID
	if raw := r.URL.Query().Get("therapistId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid therapistId")
			return
		}
		therapistID = &id
	}
	list, err := repo.ListClients(r.Context(), h.DB, therapistID)
	if err != nil {
		storageError(w, err)
		return
	}
	out := make([]interface{}, len(list))
	for i := range list {
		out[i] = clientPayload(&list[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clients": out})
}

type CreateClientRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	TherapistID *string `json:"therapist_id"`
	Notes       *string `json:"notes"`
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		errJSON(w, http.StatusBadRequest, "full_name required")
		return
	}
	c := &repo.Client{
		FullName: req.FullName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Notes:    req.Notes,
	}
	if req.TherapistID != nil && *req.TherapistID != "" {
		tid, err := uuid.Parse(*req.TherapistID)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid therapist_id")
			return
		}
		if _, err := repo.TherapistByID(r.Context(), h.DB, tid); err != nil {
			storageError(w, err)
			return
		}
		c.TherapistID = &tid
	}
	if err := repo.CreateClient(r.Context(), h.DB, c); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"client": clientPayload(c)})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := repo.ClientByID(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"client": clientPayload(c)})
}

type PatchClientRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	TherapistID *string `json:"therapist_id"`
	Notes       *string `json:"notes"`
}

func (h *Handler) PatchClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := repo.ClientByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	var req PatchClientRequest
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
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.TherapistID != nil {
		if *req.TherapistID == "" {
			updates["therapist_id"] = nil
		} else {
			tid, err := uuid.Parse(*req.TherapistID)
			if err != nil {
				errJSON(w, http.StatusBadRequest, "invalid therapist_id")
				return
			}
			if _, err := repo.TherapistByID(r.Context(), h.DB, tid); err != nil {
				storageError(w, err)
				return
			}
			updates["therapist_id"] = tid
		}
	}
	if err := repo.UpdateClient(r.Context(), h.DB, id, updates); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "client updated"})
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := repo.ClientByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	if err := repo.DeleteClient(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}

func clientPayload(c *repo.Client) map[string]interface{} {
	p := map[string]interface{}{
		"id":        c.ID.String(),
		"full_name": c.FullName,
		"email":     c.Email,
		"phone":     c.Phone,
	}
	if c.TherapistID != nil {
		p["therapist_id"] = c.TherapistID.String()
	}
	if c.Notes != nil {
		p["notes"] = *c.Notes
	}
	return p
}
