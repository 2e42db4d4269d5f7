package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseTimeToMinutes converts a clock string ("H:MM" or "HH:MM", a trailing
// seconds component is ignored) to minutes past midnight. ok is false for
// empty or unparseable input. Out-of-range components (hour >= 24,
// minute >= 60) are not rejected here; they pass through numerically.
func ParseTimeToMinutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}

// AddMinutesToTime adds delta minutes to a clock string and wraps around
// midnight, returning zero-padded "HH:MM". A missing minute component
// counts as 0 ("9" means "09:00"). If the input cannot be parsed at all it
// is returned unchanged.
func AddMinutesToTime(s string, delta int) string {
	parts := strings.Split(strings.TrimSpace(s), ":")
	hourStr := parts[0]
	minuteStr := "0"
	if len(parts) > 1 && parts[1] != "" {
		minuteStr = parts[1]
	}
	h, err1 := strconv.Atoi(hourStr)
	m, err2 := strconv.Atoi(minuteStr)
	if err1 != nil || err2 != nil {
		return s
	}
	total := (h*60 + m + delta) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return FormatMinutes(total)
}

// FormatMinutes renders minutes past midnight as zero-padded "HH:MM".
func FormatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
