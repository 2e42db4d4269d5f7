package schedule

import (
	"testing"
	"time"
)

// Tuesday 09:00-13:00 + Thursday 15:00-19:00 = 480 available minutes/week.
func weekBlocks() []WorkingHoursBlock {
	return []WorkingHoursBlock{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
		{DayOfWeek: 4, StartTime: "15:00", EndTime: "19:00"},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekWindow(t *testing.T) {
	// 2025-02-11 is a Tuesday; its week is Mon 2025-02-10 .. Sun 2025-02-16.
	monday, sundayEnd := WeekWindow(date(2025, 2, 11))
	if !monday.Equal(date(2025, 2, 10)) {
		t.Errorf("monday = %v want 2025-02-10", monday)
	}
	if sundayEnd.Day() != 16 || sundayEnd.Hour() != 23 || sundayEnd.Minute() != 59 {
		t.Errorf("sunday end = %v want 2025-02-16 23:59:59.999", sundayEnd)
	}
	// Sunday rolls back six days, not forward.
	monday, _ = WeekWindow(date(2025, 2, 16))
	if !monday.Equal(date(2025, 2, 10)) {
		t.Errorf("sunday ref: monday = %v want 2025-02-10", monday)
	}
}

func TestCalculateWeeklyStats_ExplicitDuration(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 11), DurationMinutes: 50, Status: StatusConfirmed},
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 10 || got.Availability != 90 {
		t.Errorf("got %+v want {Occupancy:10 Availability:90}", got)
	}
}

func TestCalculateWeeklyStats_DerivedDuration(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 11), StartTime: "09:00", EndTime: "11:00", Status: StatusConfirmed},
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 25 || got.Availability != 75 {
		t.Errorf("got %+v want {Occupancy:25 Availability:75}", got)
	}
}

func TestCalculateWeeklyStats_FallbackSixtyMinutes(t *testing.T) {
	// No duration and no usable times: flat 60 minutes. 60/480 = 12.5 -> 13.
	appts := []Appointment{
		{Date: date(2025, 2, 11), Status: StatusPending},
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 13 || got.Availability != 87 {
		t.Errorf("got %+v want {Occupancy:13 Availability:87}", got)
	}
}

func TestCalculateWeeklyStats_CancelledContributesNothing(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 11), DurationMinutes: 480, Status: StatusCancelled},
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 0 || got.Availability != 100 {
		t.Errorf("got %+v want {Occupancy:0 Availability:100}", got)
	}
}

func TestCalculateWeeklyStats_OutsideWeekExcluded(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 9), DurationMinutes: 120, Status: StatusConfirmed},  // previous Sunday
		{Date: date(2025, 2, 17), DurationMinutes: 120, Status: StatusConfirmed}, // next Monday
		{Date: date(2025, 2, 16), DurationMinutes: 48, Status: StatusConfirmed},  // Sunday inside the week
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 10 || got.Availability != 90 {
		t.Errorf("got %+v want {Occupancy:10 Availability:90}", got)
	}
}

func TestCalculateWeeklyStats_EmptySchedule(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 11), DurationMinutes: 50, Status: StatusConfirmed},
	}
	got := CalculateWeeklyStats(appts, nil, date(2025, 2, 11))
	if got.Occupancy != 0 || got.Availability != 0 {
		t.Errorf("empty schedule: got %+v want {0 0}", got)
	}
	// Blocks with end <= start or unparseable times count as zero capacity.
	blocks := []WorkingHoursBlock{
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "09:00"},
		{DayOfWeek: 2, StartTime: "zzz", EndTime: "10:00"},
	}
	got = CalculateWeeklyStats(appts, blocks, date(2025, 2, 11))
	if got.Occupancy != 0 || got.Availability != 0 {
		t.Errorf("degenerate blocks: got %+v want {0 0}", got)
	}
}

func TestCalculateWeeklyStats_OccupancySaturates(t *testing.T) {
	appts := []Appointment{
		{Date: date(2025, 2, 11), DurationMinutes: 400, Status: StatusConfirmed},
		{Date: date(2025, 2, 13), DurationMinutes: 400, Status: StatusConfirmed},
	}
	got := CalculateWeeklyStats(appts, weekBlocks(), date(2025, 2, 11))
	if got.Occupancy != 100 || got.Availability != 0 {
		t.Errorf("got %+v want {Occupancy:100 Availability:0}", got)
	}
}
