package schedule

import (
	"math"
	"time"
)

// Appointment statuses as stored in the appointments table.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Fallback duration for appointments that carry neither an explicit
// duration nor a usable start/end pair.
const defaultAppointmentMinutes = 60

// Appointment is the snapshot the stats engine works on. DurationMinutes
// is 0 when the appointment has no explicit duration.
type Appointment struct {
	Date            time.Time
	StartTime       string
	EndTime         string
	DurationMinutes int
	Status          string
}

// WorkingHoursBlock is one recurring weekly availability interval.
// DayOfWeek is 0=Sunday .. 6=Saturday.
type WorkingHoursBlock struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// WeeklyStats holds integer percentages in [0,100]. Availability is always
// the clamped complement of Occupancy.
type WeeklyStats struct {
	Occupancy    int
	Availability int
}

// WeekWindow returns the Monday 00:00:00 and Sunday 23:59:59.999 bounds of
// the week containing ref, in ref's location. Sunday rolls back six days to
// the preceding Monday.
func WeekWindow(ref time.Time) (time.Time, time.Time) {
	offset := -((int(ref.Weekday()) + 6) % 7)
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).AddDate(0, 0, offset)
	sundayEnd := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return monday, sundayEnd
}

// CalculateWeeklyStats computes occupancy and availability percentages for
// the Monday-to-Sunday week containing ref.
//
// Available minutes are summed over blocks whose end parses after their
// start; everything else contributes 0. With no available minutes both
// percentages are 0. Booked minutes come from non-cancelled appointments
// dated inside the week: an explicit positive duration wins, otherwise
// end minus start when both parse and end > start, otherwise a flat 60.
// Overlapping appointments are not de-duplicated; occupancy saturates at
// 100 instead.
func CalculateWeeklyStats(appointments []Appointment, blocks []WorkingHoursBlock, ref time.Time) WeeklyStats {
	available := 0
	for _, b := range blocks {
		start, ok1 := ParseTimeToMinutes(b.StartTime)
		end, ok2 := ParseTimeToMinutes(b.EndTime)
		if ok1 && ok2 && end > start {
			available += end - start
		}
	}
	if available <= 0 {
		return WeeklyStats{}
	}

	monday, sundayEnd := WeekWindow(ref)
	booked := 0
	for _, a := range appointments {
		if a.Status == StatusCancelled {
			continue
		}
		if a.Date.Before(monday) || a.Date.After(sundayEnd) {
			continue
		}
		booked += appointmentMinutes(a)
	}

	occupancy := clampPercent(int(math.Round(float64(booked) / float64(available) * 100)))
	return WeeklyStats{
		Occupancy:    occupancy,
		Availability: clampPercent(100 - occupancy),
	}
}

func appointmentMinutes(a Appointment) int {
	if a.DurationMinutes > 0 {
		return a.DurationMinutes
	}
	start, ok1 := ParseTimeToMinutes(a.StartTime)
	end, ok2 := ParseTimeToMinutes(a.EndTime)
	if ok1 && ok2 && end > start {
		return end - start
	}
	return defaultAppointmentMinutes
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
