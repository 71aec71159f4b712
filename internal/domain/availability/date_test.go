package availability

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2024, Month: time.June, Day: 10}) {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", d.Weekday())
	}
	if d.String() != "2024-06-10" {
		t.Fatalf("unexpected String(): %s", d.String())
	}

	if _, err := ParseDate("2024-06-10T00:00:00Z"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for timestamp input, got %v", err)
	}
	if _, err := ParseDate("2024-02-30"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for impossible date, got %v", err)
	}
}

func TestParseBoundDate(t *testing.T) {
	want := Date{Year: 2024, Month: time.March, Day: 31}
	for _, in := range []string{
		"2024-03-31",
		"2024-03-31T00:00:00Z",
		"2024-03-31T23:59:59.999Z",
		"2024-03-31T10:00:00+06:00",
		"2024-03-31T10:00:00",
		"2024-03-31T10:00:00.000",
		"2024-03-31 10:00:00",
		"2024-03-31T00:00:00+0000",
		"2024-03-31 00:00:00+00",
		"2024-03-31T00:00:00.000+0000",
		"2024-03-31T00:00",
	} {
		got, err := ParseBoundDate(in)
		if err != nil {
			t.Fatalf("ParseBoundDate(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBoundDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"31/03/2024", "2024-03-31X10:00", "2024-02-30T00:00:00Z"} {
		if _, err := ParseBoundDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseBoundDate(%q): expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 31}
	b := Date{Year: 2024, Month: time.February, Day: 1}
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Fatalf("unexpected ordering between %v and %v", a, b)
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Fatal("unexpected IsZero result")
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-05-06"}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"date":"2024-05-06"}` {
		t.Fatalf("unexpected JSON: %s", out)
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"MONDAY":   time.Monday,
		"monday":   time.Monday,
		" Sunday ": time.Sunday,
		"sat":      time.Saturday,
		"Thu":      time.Thursday,
	} {
		got, ok := ParseWeekday(in)
		if !ok || got != want {
			t.Fatalf("ParseWeekday(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseWeekday("weekend"); ok {
		t.Fatal("expected unknown weekday")
	}
}
