package api

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSnakeToCamelKeys(t *testing.T) {
	in := map[string]interface{}{
		"full_name": "Ana",
		"working_hours": []interface{}{
			map[string]interface{}{"day_of_week": float64(1), "start_time": "09:00"},
		},
		"active": true,
		"id":     "abc",
	}
	want := map[string]interface{}{
		"fullName": "Ana",
		"workingHours": []interface{}{
			map[string]interface{}{"dayOfWeek": float64(1), "startTime": "09:00"},
		},
		"active": true,
		"id":     "abc",
	}
	if got := SnakeToCamelKeys(in); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v\nwant %#v", got, want)
	}
}

func TestCamelToSnakeKeys(t *testing.T) {
	in := map[string]interface{}{
		"therapistId":     "t1",
		"durationMinutes": float64(50),
		"nested":          map[string]interface{}{"endTime": "11:00"},
		"already_snake":   "stays",
	}
	want := map[string]interface{}{
		"therapist_id":     "t1",
		"duration_minutes": float64(50),
		"nested":           map[string]interface{}{"end_time": "11:00"},
		"already_snake":    "stays",
	}
	if got := CamelToSnakeKeys(in); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v\nwant %#v", got, want)
	}
}

func TestCasingRoundTripThroughJSON(t *testing.T) {
	// The shape handlers actually see: decode, rename, re-encode.
	body := []byte(`{"clientId":"c1","slots":[{"appointmentDate":"2025-02-11","startTime":"10:00"}]}`)
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatal(err)
	}
	snake := CamelToSnakeKeys(v)
	m, ok := snake.(map[string]interface{})
	if !ok {
		t.Fatalf("want map, got %T", snake)
	}
	if _, ok := m["client_id"]; !ok {
		t.Errorf("client_id missing: %#v", m)
	}
	slots, _ := m["slots"].([]interface{})
	if len(slots) != 1 {
		t.Fatalf("slots: %#v", m["slots"])
	}
	slot, _ := slots[0].(map[string]interface{})
	if slot["appointment_date"] != "2025-02-11" || slot["start_time"] != "10:00" {
		t.Errorf("slot keys not renamed: %#v", slot)
	}
}

func TestKeyHelpers(t *testing.T) {
	cases := []struct{ snake, camel string }{
		{"day_of_week", "dayOfWeek"},
		{"id", "id"},
		{"must_change_password", "mustChangePassword"},
	}
	for _, c := range cases {
		if got := snakeToCamel(c.snake); got != c.camel {
			t.Errorf("snakeToCamel(%q) = %q want %q", c.snake, got, c.camel)
		}
		if got := camelToSnake(c.camel); got != c.snake {
			t.Errorf("camelToSnake(%q) = %q want %q", c.camel, got, c.snake)
		}
	}
}
