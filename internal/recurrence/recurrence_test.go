package recurrence

import (
	"encoding/binary"
	"testing"
)

// pattern builds a recurrence blob: the 22-byte fixed prefix followed by the
// given tail words.
func pattern(frequency Frequency, patternType uint16, period uint32, tail ...uint32) []byte {
	data := make([]byte, 22)
	binary.LittleEndian.PutUint16(data[0:2], 0x3004) // reader version
	binary.LittleEndian.PutUint16(data[2:4], 0x3004) // writer version
	binary.LittleEndian.PutUint16(data[4:6], uint16(frequency))
	binary.LittleEndian.PutUint16(data[6:8], patternType)
	binary.LittleEndian.PutUint32(data[14:18], period)
	for _, v := range tail {
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], v)
		data = append(data, w[:]...)
	}
	return data
}

func TestRRule(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"daily_no_interval", pattern(Daily, 0, 1), "FREQ=DAILY"},
		{"daily_interval", pattern(Daily, 0, 3), "FREQ=DAILY;INTERVAL=3"},
		{"weekly_mo_we", pattern(Weekly, 1, 2, 0x0A), "FREQ=WEEKLY;BYDAY=MO,WE;INTERVAL=2"},
		{"weekly_all_days", pattern(Weekly, 1, 1, 0x7F), "FREQ=WEEKLY;BYDAY=SU,MO,TU,WE,TH,FR,SA"},
		{"weekly_empty_mask", pattern(Weekly, 1, 1, 0x00), "FREQ=WEEKLY"},
		{"weekly_no_tail", pattern(Weekly, 1, 2), "FREQ=WEEKLY;INTERVAL=2"},
		{"monthly_day_of_month", pattern(Monthly, PatternMonth, 1, 15), "FREQ=MONTHLY;BYMONTHDAY=15"},
		{"month_end", pattern(Monthly, PatternMonthEnd, 2, 31), "FREQ=MONTHLY;BYMONTHDAY=31;INTERVAL=2"},
		{"monthly_nth_friday", pattern(Monthly, PatternMonthNth, 1, 0x20, 2), "FREQ=MONTHLY;BYDAY=2FR"},
		{"monthly_last_friday", pattern(Monthly, PatternMonthNth, 3, 0x20, 5), "FREQ=MONTHLY;BYDAY=-1FR;INTERVAL=3"},
		{"monthly_nth_empty_mask", pattern(Monthly, PatternMonthNth, 1, 0x00, 2), "FREQ=MONTHLY"},
		{"monthly_nth_short_tail", pattern(Monthly, PatternMonthNth, 1, 0x20), "FREQ=MONTHLY"},
		{"yearly", pattern(Yearly, 5, 12), "FREQ=YEARLY;INTERVAL=12"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RRule(tc.data); got != tc.want {
				t.Fatalf("RRule = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNoRecurrence(t *testing.T) {
	if got := RRule(nil); got != "" {
		t.Fatalf("nil blob produced %q", got)
	}
	if got := RRule(make([]byte, 21)); got != "" {
		t.Fatalf("21-byte blob produced %q", got)
	}
	unknown := pattern(Frequency(0x2001), 0, 5)
	if got := RRule(unknown); got != "" {
		t.Fatalf("unknown frequency produced %q", got)
	}
	if Decode(unknown) != nil {
		t.Fatal("unknown frequency must decode to nil")
	}
}

func TestDecodeFields(t *testing.T) {
	p := Decode(pattern(Monthly, PatternMonthNth, 3, 0x20, 5))
	if p == nil {
		t.Fatal("Decode returned nil")
	}
	if p.Frequency != Monthly || p.PatternType != PatternMonthNth || p.Period != 3 {
		t.Fatalf("unexpected prefix fields: %+v", p)
	}
	if !p.HasDayMask || p.DayMask != 0x20 || !p.HasNth || p.Nth != 5 {
		t.Fatalf("unexpected tail fields: %+v", p)
	}

	p = Decode(pattern(Daily, 0, 1))
	if p.HasDayMask || p.HasNth || p.HasDayOfMonth {
		t.Fatalf("daily pattern must not carry tail fields: %+v", p)
	}
}
