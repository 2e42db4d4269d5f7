package settings

import "testing"

func TestParseBool(t *testing.T) {
	cases := []struct {
		in           string
		def          bool
		want         bool
		wantFallback bool
	}{
		{"true", false, true, false},
		{"FALSE", true, false, false},
		{"yes", false, true, false},
		{"Sí", false, true, false},
		{"si", false, true, false},
		{"no", true, false, false},
		{"on", false, true, false},
		{"off", true, false, false},
		{"1", false, true, false},
		{"0", true, false, false},
		{"42", false, true, false},
		{"", true, true, true},
		{"   ", false, false, true},
		{"maybe", true, true, true},
		{"maybe", false, false, true},
	}
	for _, c := range cases {
		got := ParseBool(c.in, c.def)
		if got.Value != c.want || got.Fallback != c.wantFallback {
			t.Errorf("ParseBool(%q, %v) = %+v want value=%v fallback=%v", c.in, c.def, got, c.want, c.wantFallback)
		}
		if got.Fallback && got.Reason == "" {
			t.Errorf("ParseBool(%q, %v): fallback without reason", c.in, c.def)
		}
	}
}

func TestParseTime(t *testing.T) {
	got := ParseTime("8:30", "09:00")
	if got.Value != "08:30" || got.Fallback {
		t.Errorf("valid time: got %+v", got)
	}
	got = ParseTime("not-a-time", "09:00")
	if got.Value != "09:00" || !got.Fallback || got.Reason == "" {
		t.Errorf("invalid time: got %+v", got)
	}
	got = ParseTime("", "21:00")
	if got.Value != "21:00" || !got.Fallback {
		t.Errorf("empty time: got %+v", got)
	}
}

func TestParseInt(t *testing.T) {
	if got := ParseInt("45", 60); got.Value != 45 || got.Fallback {
		t.Errorf("valid int: got %+v", got)
	}
	if got := ParseInt("-5", 60); got.Value != 60 || !got.Fallback {
		t.Errorf("negative int: got %+v", got)
	}
	if got := ParseInt("abc", 60); got.Value != 60 || !got.Fallback {
		t.Errorf("non-numeric: got %+v", got)
	}
}

func TestDefaultsCoverAllKeys(t *testing.T) {
	d := Defaults()
	keys := []string{
		KeyCenterOpenTime, KeyCenterCloseTime,
		KeyAppointmentOpenTime, KeyAppointmentCloseTime,
		KeyOpenSaturday, KeyOpenSunday,
		KeySlotDurationMinutes, KeyTherapistsCanEdit,
	}
	for _, k := range keys {
		if _, ok := d[k]; !ok {
			t.Errorf("no default for %s", k)
		}
	}
}
