package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/schedule"
	"github.com/uveral/agendapsico/internal/settings"
)

const settingsCacheKey = "settings"

// CenterSettings is the coerced, normalized view of the settings table the
// rest of the API works with.
type CenterSettings struct {
	CenterOpenTime       string
	CenterCloseTime      string
	AppointmentOpenTime  string
	AppointmentCloseTime string
	OpenSaturday         bool
	OpenSunday           bool
	SlotDurationMinutes  int
	TherapistsCanEdit    bool
}

// effectiveSettings loads the stored rows, coerces every known key with a
// default fallback, and normalizes the operating window. Fallbacks are
// logged with the reason; malformed rows never fail a request.
func (h *Handler) effectiveSettings(r *http.Request) (*CenterSettings, error) {
	stored, err := repo.ListSettings(r.Context(), h.DB)
	if err != nil {
		return nil, err
	}
	defs := settings.Defaults()

	centerOpen := coerceTime(stored, defs, settings.KeyCenterOpenTime)
	centerClose := coerceTime(stored, defs, settings.KeyCenterCloseTime)
	apptOpen := coerceTime(stored, defs, settings.KeyAppointmentOpenTime)
	apptClose := coerceTime(stored, defs, settings.KeyAppointmentCloseTime)
	win := schedule.NormalizeOperatingWindow(schedule.OperatingWindow{
		WorkOpen:  centerOpen,
		WorkClose: centerClose,
		ApptOpen:  apptOpen,
		ApptClose: apptClose,
	})

	return &CenterSettings{
		CenterOpenTime:       win.WorkOpen,
		CenterCloseTime:      win.WorkClose,
		AppointmentOpenTime:  win.ApptOpen,
		AppointmentCloseTime: win.ApptClose,
		OpenSaturday:         coerceBool(stored, settings.KeyOpenSaturday, false),
		OpenSunday:           coerceBool(stored, settings.KeyOpenSunday, false),
		SlotDurationMinutes:  coerceInt(stored, settings.KeySlotDurationMinutes, 60),
		TherapistsCanEdit:    coerceBool(stored, settings.KeyTherapistsCanEdit, true),
	}, nil
}

func coerceTime(stored, defs map[string]string, key string) string {
	res := settings.ParseTime(stored[key], defs[key])
	if res.Fallback {
		log.Printf("[settings] %s: %s, using %s", key, res.Reason, res.Value)
	}
	return res.Value
}

func coerceBool(stored map[string]string, key string, def bool) bool {
	res := settings.ParseBool(stored[key], def)
	if res.Fallback {
		log.Printf("[settings] %s: %s, using %v", key, res.Reason, res.Value)
	}
	return res.Value
}

func coerceInt(stored map[string]string, key string, def int) int {
	res := settings.ParseInt(stored[key], def)
	if res.Fallback {
		log.Printf("[settings] %s: %s, using %d", key, res.Reason, res.Value)
	}
	return res.Value
}

// GetSettings returns the effective settings. The coerced payload is
// cached; any settings write invalidates it.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if h.Cache != nil {
		if b := h.Cache.Get(settingsCacheKey); b != nil {
			writeRawJSON(w, http.StatusOK, b)
			return
		}
	}
	s, err := h.effectiveSettings(r)
	if err != nil {
		storageError(w, err)
		return
	}
	payload := map[string]interface{}{"settings": settingsPayload(s)}
	if h.Cache != nil {
		if b, err := json.Marshal(SnakeToCamelKeys(payload)); err == nil {
			h.Cache.Set(settingsCacheKey, b)
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

type UpdateSettingsRequest struct {
	CenterOpenTime       *string `json:"center_open_time"`
	CenterCloseTime      *string `json:"center_close_time"`
	AppointmentOpenTime  *string `json:"appointment_open_time"`
	AppointmentCloseTime *string `json:"appointment_close_time"`
	OpenSaturday         *bool   `json:"open_saturday"`
	OpenSunday           *bool   `json:"open_sunday"`
	SlotDurationMinutes  *int    `json:"slot_duration_minutes"`
	TherapistsCanEdit    *bool   `json:"therapists_can_edit"`
}

// UpdateSettings is admin only. The claims role is a fast deny; the role
// stored on the profile row is what actually authorizes the write, so a
// demotion takes effect before the token expires.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r.Context()) {
		errJSON(w, http.StatusForbidden, "admin only")
		return
	}
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
	if u.Role != auth.RoleAdmin {
		errJSON(w, http.StatusForbidden, "admin only")
		return
	}

	var req UpdateSettingsRequest
	if err := readJSON(r, &req); err != nil {
		errJSON(w, http.StatusBadRequest, "invalid body")
		return
	}

	updates := map[string]string{}
	putTime := func(key string, v *string) bool {
		if v == nil {
			return true
		}
		res := settings.ParseTime(*v, "")
		if res.Fallback {
			errJSON(w, http.StatusBadRequest, "invalid "+key)
			return false
		}
		updates[key] = res.Value
		return true
	}
	if !putTime(settings.KeyCenterOpenTime, req.CenterOpenTime) ||
		!putTime(settings.KeyCenterCloseTime, req.CenterCloseTime) ||
		!putTime(settings.KeyAppointmentOpenTime, req.AppointmentOpenTime) ||
		!putTime(settings.KeyAppointmentCloseTime, req.AppointmentCloseTime) {
		return
	}
	if req.OpenSaturday != nil {
		updates[settings.KeyOpenSaturday] = boolValue(*req.OpenSaturday)
	}
	if req.OpenSunday != nil {
		updates[settings.KeyOpenSunday] = boolValue(*req.OpenSunday)
	}
	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes <= 0 {
			errJSON(w, http.StatusBadRequest, "slot_duration_minutes must be positive")
			return
		}
		updates[settings.KeySlotDurationMinutes] = strconv.Itoa(*req.SlotDurationMinutes)
	}
	if req.TherapistsCanEdit != nil {
		updates[settings.KeyTherapistsCanEdit] = boolValue(*req.TherapistsCanEdit)
	}

	for k, v := range updates {
		if err := repo.UpsertSetting(r.Context(), h.DB, k, v); err != nil {
			storageError(w, err)
			return
		}
	}
	if h.Cache != nil {
		h.Cache.Delete(settingsCacheKey)
	}
	s, err := h.effectiveSettings(r)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": settingsPayload(s)})
}

func settingsPayload(s *CenterSettings) map[string]interface{} {
	return map[string]interface{}{
		"center_open_time":       s.CenterOpenTime,
		"center_close_time":      s.CenterCloseTime,
		"appointment_open_time":  s.AppointmentOpenTime,
		"appointment_close_time": s.AppointmentCloseTime,
		"open_saturday":          s.OpenSaturday,
		"open_sunday":            s.OpenSunday,
		"slot_duration_minutes":  s.SlotDurationMinutes,
		"therapists_can_edit":    s.TherapistsCanEdit,
	}
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func writeRawJSON(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
