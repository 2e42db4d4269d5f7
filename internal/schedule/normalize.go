package schedule

// Center-wide fallbacks when a stored time does not parse.
const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "21:00"
)

// OperatingWindow is the center configuration that bounds scheduling: the
// working-hours window and, inside it, the window in which clients may book
// appointments.
type OperatingWindow struct {
	WorkOpen  string
	WorkClose string
	ApptOpen  string
	ApptClose string
}

// NormalizeOperatingWindow returns a window where every time is a valid
// zero-padded "HH:MM" and the appointment window is a subset of (or equal
// to) the working window. Unset or unparseable appointment bounds inherit
// the corresponding working bound. The result is what gets persisted and
// what slot generation runs on.
func NormalizeOperatingWindow(w OperatingWindow) OperatingWindow {
	workOpen := minutesOrDefault(w.WorkOpen, DefaultOpenTime)
	workClose := minutesOrDefault(w.WorkClose, DefaultCloseTime)
	if workClose < workOpen {
		workOpen, workClose = workClose, workOpen
	}

	apptOpen := minutesOrDefault(w.ApptOpen, FormatMinutes(workOpen))
	apptClose := minutesOrDefault(w.ApptClose, FormatMinutes(workClose))
	if apptOpen < workOpen {
		apptOpen = workOpen
	}
	if apptClose > workClose {
		apptClose = workClose
	}
	if apptClose < apptOpen {
		apptOpen, apptClose = workOpen, workClose
	}

	return OperatingWindow{
		WorkOpen:  FormatMinutes(workOpen),
		WorkClose: FormatMinutes(workClose),
		ApptOpen:  FormatMinutes(apptOpen),
		ApptClose: FormatMinutes(apptClose),
	}
}

func minutesOrDefault(s, def string) int {
	if min, ok := ParseTimeToMinutes(s); ok {
		return min
	}
	min, _ := ParseTimeToMinutes(def)
	return min
}
