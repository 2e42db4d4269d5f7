package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/schedule"
)

const dateLayout = "2006-01-02"

// ListAppointments supports therapistId, clientId, from, to and status
// query filters.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	var f repo.AppointmentFilter
	q := r.URL.Query()
	if raw := q.Get("therapistId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid therapistId")
			return
		}
		f.TherapistID = &id
	}
	if raw := q.Get("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid clientId")
			return
		}
		f.ClientID = &id
	}
	if raw := q.Get("from"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid from date")
			return
		}
		f.From = &d
	}
	if raw := q.Get("to"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid to date")
			return
		}
		f.To = &d
	}
	if raw := q.Get("status"); raw != "" {
		if !validStatus(raw) {
			errJSON(w, http.StatusBadRequest, "invalid status")
			return
		}
		f.Status = raw
	}
	list, err := repo.ListAppointments(r.Context(), h.DB, f)
	if err != nil {
		storageError(w, err)
		return
	}
	out := make([]interface{}, len(list))
	for i := range list {
		out[i] = appointmentPayload(&list[i])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"appointments": out})
}

type CreateAppointmentRequest struct {
	TherapistID     string  `json:"therapist_id"`
	ClientID        string  `json:"client_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	tid, err := uuid.Parse(req.TherapistID)
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid therapist_id")
		return
	}
	cid, err := uuid.Parse(req.ClientID)
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid client_id")
		return
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid date")
		return
	}
	start, ok := schedule.ParseTimeToMinutes(req.StartTime)
	if !ok {
		errJSON(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	end := req.EndTime
	if end == "" {
		minutes := 60
		if req.DurationMinutes != nil && *req.DurationMinutes > 0 {
			minutes = *req.DurationMinutes
		}
		end = schedule.AddMinutesToTime(req.StartTime, minutes)
	} else if endMin, ok := schedule.ParseTimeToMinutes(end); !ok || endMin <= start {
		errJSON(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	status := req.Status
	if status == "" {
		status = repo.AppointmentPending
	}
	if !validStatus(status) {
		errJSON(w, http.StatusBadRequest, "invalid status")
		return
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, tid); err != nil {
		storageError(w, err)
		return
	}
	if _, err := repo.ClientByID(r.Context(), h.DB, cid); err != nil {
		storageError(w, err)
		return
	}
	a := &repo.Appointment{
		TherapistID:     tid,
		ClientID:        cid,
		AppointmentDate: day,
		StartTime:       req.StartTime,
		EndTime:         end,
		DurationMinutes: req.DurationMinutes,
		Status:          status,
		Notes:           req.Notes,
	}
	if err := repo.CreateAppointment(r.Context(), h.DB, a); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"appointment": appointmentPayload(a)})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	a, err := repo.AppointmentByID(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"appointment": appointmentPayload(a)})
}

type PatchAppointmentRequest struct {
	Date            *string `json:"date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

func (h *Handler) PatchAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	cur, err := repo.AppointmentByID(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	var req PatchAppointmentRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	updates := map[string]interface{}{}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid date")
			return
		}
		updates["appointment_date"] = d
	}
	if req.StartTime != nil {
		if _, ok := schedule.ParseTimeToMinutes(*req.StartTime); !ok {
			errJSON(w, http.StatusBadRequest, "invalid start_time")
			return
		}
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		if _, ok := schedule.ParseTimeToMinutes(*req.EndTime); !ok {
			errJSON(w, http.StatusBadRequest, "invalid end_time")
			return
		}
		updates["end_time"] = *req.EndTime
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			errJSON(w, http.StatusBadRequest, "invalid status")
			return
		}
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if !patchKeepsTimeOrder(cur, &req) {
		errJSON(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	if err := repo.UpdateAppointment(r.Context(), h.DB, id, updates); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment updated"})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := repo.AppointmentByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	if err := repo.DeleteAppointment(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
}

// patchKeepsTimeOrder checks the times as they would be after the patch:
// each side falls back to the stored value when not patched. Unparseable
// sides are left to the flat-duration fallback, so only a fully resolved
// window is ordered.
func patchKeepsTimeOrder(cur *repo.Appointment, req *PatchAppointmentRequest) bool {
	startStr := repo.TimeStringToHHMM(cur.StartTime)
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	endStr := repo.TimeStringToHHMM(cur.EndTime)
	if req.EndTime != nil {
		endStr = *req.EndTime
	}
	start, okStart := schedule.ParseTimeToMinutes(startStr)
	end, okEnd := schedule.ParseTimeToMinutes(endStr)
	if !okStart || !okEnd {
		return true
	}
	return end > start
}

func validStatus(s string) bool {
	switch s {
	case repo.AppointmentPending, repo.AppointmentConfirmed, repo.AppointmentCancelled:
		return true
	}
	return false
}

func appointmentPayload(a *repo.Appointment) map[string]interface{} {
	p := map[string]interface{}{
		"id":           a.ID.String(),
		"therapist_id": a.TherapistID.String(),
		"client_id":    a.ClientID.String(),
		"date":         a.AppointmentDate.Format(dateLayout),
		"start_time":   repo.TimeStringToHHMM(a.StartTime),
		"end_time":     repo.TimeStringToHHMM(a.EndTime),
		"status":       a.Status,
	}
	if a.DurationMinutes != nil {
		p["duration_minutes"] = *a.DurationMinutes
	}
	if a.Notes != nil {
		p["notes"] = *a.Notes
	}
	return p
}
