package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/schedule"
)

// TherapistWeeklyStats computes occupancy and availability for the week
// containing ?date= (today when absent).
func (h *Handler) TherapistWeeklyStats(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		ref, err = time.Parse(dateLayout, raw)
		if err != nil {
			errJSON(w, http.StatusBadRequest, "invalid date")
			return
		}
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	monday, sundayEnd := schedule.WeekWindow(ref)
	appts, err := repo.ListAppointments(r.Context(), h.DB, repo.AppointmentFilter{
		TherapistID: &id,
		From:        &monday,
		To:          &sundayEnd,
	})
	if err != nil {
		storageError(w, err)
		return
	}
	blocks, err := repo.ListWorkingHours(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	stats := schedule.CalculateWeeklyStats(toScheduleAppointments(appts), toScheduleBlocks(blocks), ref)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"occupancy":    stats.Occupancy,
		"availability": stats.Availability,
	})
}

// TherapistAvailableSlots lists free bookable slots in [from, to] honoring
// the center's appointment window, weekend settings and slot duration.
func (h *Handler) TherapistAvailableSlots(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	q := r.URL.Query()
	from, err := time.Parse(dateLayout, q.Get("from"))
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := time.Parse(dateLayout, q.Get("to"))
	if err != nil {
		errJSON(w, http.StatusBadRequest, "invalid to date")
		return
	}
	if to.Before(from) {
		errJSON(w, http.StatusBadRequest, "to must not be before from")
		return
	}
	if _, err := repo.TherapistByID(r.Context(), h.DB, id); err != nil {
		storageError(w, err)
		return
	}
	s, err := h.effectiveSettings(r)
	if err != nil {
		storageError(w, err)
		return
	}
	blocks, err := repo.ListWorkingHours(r.Context(), h.DB, id)
	if err != nil {
		storageError(w, err)
		return
	}
	appts, err := repo.ListAppointments(r.Context(), h.DB, repo.AppointmentFilter{
		TherapistID: &id,
		From:        &from,
		To:          &to,
	})
	if err != nil {
		storageError(w, err)
		return
	}

	open := make([]schedule.WorkingHoursBlock, 0, len(blocks))
	for _, b := range toScheduleBlocks(blocks) {
		if b.DayOfWeek == 6 && !s.OpenSaturday {
			continue
		}
		if b.DayOfWeek == 0 && !s.OpenSunday {
			continue
		}
		open = append(open, b)
	}
	window := schedule.OperatingWindow{
		WorkOpen:  s.CenterOpenTime,
		WorkClose: s.CenterCloseTime,
		ApptOpen:  s.AppointmentOpenTime,
		ApptClose: s.AppointmentCloseTime,
	}
	slots := schedule.AvailableSlots(open, toScheduleAppointments(appts), window, from, to, s.SlotDurationMinutes)

	out := make([]interface{}, len(slots))
	for i, sl := range slots {
		out[i] = map[string]interface{}{"date": sl.Date, "start_time": sl.StartTime}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slots": out})
}

func toScheduleAppointments(list []repo.Appointment) []schedule.Appointment {
	out := make([]schedule.Appointment, len(list))
	for i, a := range list {
		duration := 0
		if a.DurationMinutes != nil {
			duration = *a.DurationMinutes
		}
		out[i] = schedule.Appointment{
			Date:            a.AppointmentDate,
			StartTime:       repo.TimeStringToHHMM(a.StartTime),
			EndTime:         repo.TimeStringToHHMM(a.EndTime),
			DurationMinutes: duration,
			Status:          a.Status,
		}
	}
	return out
}

func toScheduleBlocks(list []repo.WorkingHours) []schedule.WorkingHoursBlock {
	out := make([]schedule.WorkingHoursBlock, len(list))
	for i, b := range list {
		out[i] = schedule.WorkingHoursBlock{
			DayOfWeek: b.DayOfWeek,
			StartTime: repo.TimeStringToHHMM(b.StartTime),
			EndTime:   repo.TimeStringToHHMM(b.EndTime),
		}
	}
	return out
}
