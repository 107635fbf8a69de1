package subwise

import (
	"testing"

	"github.com/etnz/subwise/date"
)

func TestJsonObjectWriter(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty object",
			build: func(*jsonObjectWriter) {},
			want:  `{}`,
		},
		{
			name: "keeps order",
			build: func(w *jsonObjectWriter) {
				w.Append("b", 1).Append("a", "x")
			},
			want: `{"b":1,"a":"x"}`,
		},
		{
			name: "optional zero values are left out",
			build: func(w *jsonObjectWriter) {
				w.Append("id", "tx-1").Optional("note", "").Optional("date", date.Date{}).Optional("isRecurring", false)
			},
			want: `{"id":"tx-1"}`,
		},
		{
			name: "optional values are written",
			build: func(w *jsonObjectWriter) {
				w.Optional("date", date.New(2025, 7, 1)).Optional("isRecurring", true)
			},
			want: `{"date":"2025-07-01","isRecurring":true}`,
		},
		{
			name: "conditional",
			build: func(w *jsonObjectWriter) {
				w.AppendIf(false, "recurrenceFrequency", date.Monthly).AppendIf(true, "type", Income)
			},
			want: `{"type":"income"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w jsonObjectWriter
			tt.build(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("error is sticky", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", make(chan int)).Append("ok", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected an error")
		}
	})
}
