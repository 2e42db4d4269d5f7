package schedule

import "time"

// Slot is one bookable opening on a concrete day.
type Slot struct {
	Date      string // "2006-01-02"
	StartTime string // "HH:MM"
}

// AvailableSlots walks the days in [from, to] and, for each working-hours
// block on that weekday, emits slotMinutes-sized openings clipped to the
// appointment window and not overlapping any non-cancelled appointment on
// the same day. Blocks whose times do not parse, or are non-positive after
// clipping, yield nothing. slotMinutes <= 0 falls back to 60.
func AvailableSlots(blocks []WorkingHoursBlock, appointments []Appointment, window OperatingWindow, from, to time.Time, slotMinutes int) []Slot {
	if slotMinutes <= 0 {
		slotMinutes = defaultAppointmentMinutes
	}
	window = NormalizeOperatingWindow(window)
	openAt, _ := ParseTimeToMinutes(window.ApptOpen)
	closeAt, _ := ParseTimeToMinutes(window.ApptClose)

	busy := busyByDate(appointments)
	var slots []Slot
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		weekday := int(d.Weekday())
		dateStr := d.Format("2006-01-02")
		for _, b := range blocks {
			if b.DayOfWeek != weekday {
				continue
			}
			start, ok1 := ParseTimeToMinutes(b.StartTime)
			end, ok2 := ParseTimeToMinutes(b.EndTime)
			if !ok1 || !ok2 {
				continue
			}
			if start < openAt {
				start = openAt
			}
			if end > closeAt {
				end = closeAt
			}
			for t := start; t+slotMinutes <= end; t += slotMinutes {
				if overlapsAny(busy[dateStr], t, t+slotMinutes) {
					continue
				}
				slots = append(slots, Slot{Date: dateStr, StartTime: FormatMinutes(t)})
			}
		}
	}
	return slots
}

type interval struct{ start, end int }

func busyByDate(appointments []Appointment) map[string][]interval {
	busy := make(map[string][]interval)
	for _, a := range appointments {
		if a.Status == StatusCancelled {
			continue
		}
		start, ok1 := ParseTimeToMinutes(a.StartTime)
		if !ok1 {
			continue
		}
		end, ok2 := ParseTimeToMinutes(a.EndTime)
		if !ok2 || end <= start {
			end = start + appointmentMinutes(a)
		}
		dateStr := a.Date.Format("2006-01-02")
		busy[dateStr] = append(busy[dateStr], interval{start: start, end: end})
	}
	return busy
}

func overlapsAny(intervals []interval, start, end int) bool {
	for _, iv := range intervals {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}
