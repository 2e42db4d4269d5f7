package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/schedule"
)

func workingHoursCacheKey(therapistID uuid.UUID) string {
	return "wh:" + therapistID.String()
}

// GetWorkingHours returns a therapist's weekly blocks. Cached; any replace
// invalidates the entry.
func (h *Handler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if h.Cache != nil {
		if b := h.Cache.Get(workingHoursCacheKey(id)); b != nil {
			writeRawJSON(w, http.StatusOK, b)
			return
		}
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	list, err := repo.ListWorkingHours(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	payload := map[string]interface{}{"working_hours": workingHoursPayload(list)}
	if h.Cache != nil {
		if b, err := json.Marshal(SnakeToCamelKeys(payload)); err == nil {
			h.Cache.Set(workingHoursCacheKey(id), b)
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

type WorkingHoursBlockRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ReplaceWorkingHoursRequest struct {
	WorkingHours []WorkingHoursBlockRequest `json:"working_hours"`
}

// ReplaceWorkingHours swaps the whole weekly schedule. Admins can edit any
// therapist; a therapist can edit their own schedule only while the
// therapists_can_edit setting allows it. Blocks with unparseable times, a
// day outside 0..6, or end at or before start are skipped, not rejected.
func (h *Handler) ReplaceWorkingHours(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if !auth.IsAdmin(r.Context()) {
		uid, err := uuid.Parse(auth.UserIDFrom(r.Context()))
		if err != nil {
			errJSON(w, http.StatusUnauthorized, "invalid token")
			return
		}
		u, err := repo.UserByID(r.Context(), h.DB, uid)
		if err != nil {
			storageError(w, err)
			return
		}
		if u.TherapistID == nil || *u.TherapistID != id {
			errJSON(w, http.StatusForbidden, "cannot edit another therapist's schedule")
			return
		}
		s, err := h.effectiveSettings(r)
		if err != nil {
			storageError(w, err)
			return
		}
		if !s.TherapistsCanEdit {
			errJSON(w, http.StatusForbidden, "schedule editing is disabled")
			return
		}
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}

	var req ReplaceWorkingHoursRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	blocks := make([]repo.WorkingHours, 0, len(req.WorkingHours))
	for _, b := range req.WorkingHours {
		start, okStart := schedule.ParseTimeToMinutes(b.StartTime)
		end, okEnd := schedule.ParseTimeToMinutes(b.EndTime)
		if b.DayOfWeek < 0 || b.DayOfWeek > 6 || !okStart || !okEnd || end <= start {
			log.Printf("[working-hours] skipping invalid block day=%d %s-%s", b.DayOfWeek, b.StartTime, b.EndTime)
			continue
		}
		blocks = append(blocks, repo.WorkingHours{
			DayOfWeek: b.DayOfWeek,
			StartTime: schedule.FormatMinutes(start),
			EndTime:   schedule.FormatMinutes(end),
		})
	}
	if err := repo.ReplaceWorkingHours(r.Context(), h.DB, id, blocks); err != nil {
		storageError(w, err)
		return
	}
	if h.Cache != nil {
		h.Cache.Delete(workingHoursCacheKey(id))
	}
	list, err := repo.ListWorkingHours(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"working_hours": workingHoursPayload(list)})
}

func workingHoursPayload(list []repo.WorkingHours) []interface{} {
	out := make([]interface{}, len(list))
	for i, b := range list {
		out[i] = map[string]interface{}{
			"id":          b.ID.String(),
			"day_of_week": b.DayOfWeek,
			"start_time":  repo.TimeStringToHHMM(b.StartTime),
			"end_time":    repo.TimeStringToHHMM(b.EndTime),
		}
	}
	return out
}
