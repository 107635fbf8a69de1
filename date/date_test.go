package date

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	today := New(2024, time.March, 15)

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		{"0d", today, false},
		{"-1d", New(2024, time.March, 14), false},
		{"+1d", New(2024, time.March, 16), false},
		{"1d", Date{}, true},
		{"-2w", New(2024, time.March, 1), false},
		{"+1m", New(2024, time.April, 15), false},
		{"-1y", New(2023, time.March, 15), false},

		{"27", New(2024, time.March, 27), false},
		{"1-15", New(2024, time.January, 15), false},
		{"0", New(2024, time.February, 29), false},
		{"0-15", New(2023, time.December, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parse(tt.input, today)
			if (err != nil) != tt.err {
				t.Errorf("parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddPeriod(t *testing.T) {
	tests := []struct {
		from   string
		period Period
		want   string
	}{
		{"2024-01-01", Daily, "2024-01-02"},
		{"2024-12-31", Daily, "2025-01-01"},
		{"2024-01-01", Weekly, "2024-01-08"},
		{"2024-01-01", Monthly, "2024-02-01"},
		{"2024-02-01", Monthly, "2024-03-01"},
		{"2025-01-31", Monthly, "2025-03-03"},
		{"2024-01-31", Monthly, "2024-03-02"},
		{"2024-06-15", Yearly, "2025-06-15"},
		{"2024-02-29", Yearly, "2025-03-01"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s+%s", tt.from, tt.period), func(t *testing.T) {
			got := MustParse(tt.from).AddPeriod(tt.period)
			if got.String() != tt.want {
				t.Errorf("%s.AddPeriod(%s) = %s, want %s", tt.from, tt.period, got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	from := New(2024, time.March, 1)
	if got := from.DaysUntil(New(2024, time.March, 31)); got != 30 {
		t.Errorf("DaysUntil() = %d, want 30", got)
	}
	if got := from.DaysUntil(New(2024, time.February, 28)); got != -2 {
		t.Errorf("DaysUntil() = %d, want -2", got)
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    Date
		wantErr bool
	}{
		{"iso", `"2025-01-15"`, New(2025, time.January, 15), false},
		{"lenient", `"2025-7-1"`, New(2025, time.July, 1), false},
		{"relative is rejected", `"-1d"`, Date{}, true},
		{"not a string", `20250115`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.json), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.json, got, tt.want)
			}
		})
	}

	b, err := json.Marshal(New(2025, time.July, 1))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-07-01"` {
		t.Errorf("Marshal() = %s, want \"2025-07-01\"", b)
	}
}
