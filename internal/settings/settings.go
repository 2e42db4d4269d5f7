// Package settings defines the per-center configuration keys, their
// defaults, and explicit parsers for the loosely-typed values found in the
// settings table. Stored values may be numbers, localized yes/no strings or
// plain booleans; parsing never errors, it falls back to the default and
// says why.
package settings

import (
	"strconv"
	"strings"

	"github.com/uveral/agendapsico/internal/schedule"
)

// Keys of the individually stored settings rows.
const (
	KeyCenterOpenTime       = "center_open_time"
	KeyCenterCloseTime      = "center_close_time"
	KeyAppointmentOpenTime  = "appointment_open_time"
	KeyAppointmentCloseTime = "appointment_close_time"
	KeyOpenSaturday         = "open_saturday"
	KeyOpenSunday           = "open_sunday"
	KeySlotDurationMinutes  = "slot_duration_minutes"
	KeyTherapistsCanEdit    = "therapists_can_edit"
)

// Defaults returns the documented default for every known key. Unknown or
// malformed stored values fall back to these instead of erroring.
func Defaults() map[string]string {
	return map[string]string{
		KeyCenterOpenTime:       schedule.DefaultOpenTime,
		KeyCenterCloseTime:      schedule.DefaultCloseTime,
		KeyAppointmentOpenTime:  schedule.DefaultOpenTime,
		KeyAppointmentCloseTime: schedule.DefaultCloseTime,
		KeyOpenSaturday:         "false",
		KeyOpenSunday:           "false",
		KeySlotDurationMinutes:  "60",
		KeyTherapistsCanEdit:    "true",
	}
}

// BoolResult is the outcome of coercing a stored value to a boolean.
// Fallback is true when the stored value was missing or unrecognized and
// Value is the default; Reason then says what was wrong.
type BoolResult struct {
	Value    bool
	Fallback bool
	Reason   string
}

// ParseBool coerces a stored value into a boolean. Recognized: true/false,
// yes/no, sí/si/no, on/off, and integers (non-zero is true). Anything else
// falls back to def with a reason.
func ParseBool(raw string, def bool) BoolResult {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return BoolResult{Value: def, Fallback: true, Reason: "value not set"}
	}
	switch v {
	case "true", "yes", "si", "sí", "on":
		return BoolResult{Value: true}
	case "false", "no", "off":
		return BoolResult{Value: false}
	}
	if n, err := strconv.Atoi(v); err == nil {
		return BoolResult{Value: n != 0}
	}
	return BoolResult{Value: def, Fallback: true, Reason: "unrecognized boolean " + strconv.Quote(raw)}
}

// TimeResult is the outcome of coercing a stored value to an "HH:MM" time.
type TimeResult struct {
	Value    string
	Fallback bool
	Reason   string
}

// ParseTime coerces a stored value into a zero-padded "HH:MM" clock string,
// falling back to def when the value is missing or does not parse.
func ParseTime(raw, def string) TimeResult {
	v := strings.TrimSpace(raw)
	if v == "" {
		return TimeResult{Value: def, Fallback: true, Reason: "value not set"}
	}
	min, ok := schedule.ParseTimeToMinutes(v)
	if !ok {
		return TimeResult{Value: def, Fallback: true, Reason: "not a clock time " + strconv.Quote(raw)}
	}
	return TimeResult{Value: schedule.FormatMinutes(min)}
}

// IntResult is the outcome of coercing a stored value to a positive integer.
type IntResult struct {
	Value    int
	Fallback bool
	Reason   string
}

// ParseInt coerces a stored value into a positive integer, falling back to
// def when missing, non-numeric, or not positive.
func ParseInt(raw string, def int) IntResult {
	v := strings.TrimSpace(raw)
	if v == "" {
		return IntResult{Value: def, Fallback: true, Reason: "value not set"}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return IntResult{Value: def, Fallback: true, Reason: "not a number " + strconv.Quote(raw)}
	}
	if n <= 0 {
		return IntResult{Value: def, Fallback: true, Reason: "must be positive"}
	}
	return IntResult{Value: n}
}
