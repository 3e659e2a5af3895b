// Package recurrence decodes the binary PidLidAppointmentRecur structure of
// a calendar item into an RFC 5545 RRULE value. Only the fixed-offset-safe
// prefix of the structure is decoded; the end-condition region further in
// depends on the pattern type and is left alone.
package recurrence

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/jtraulle/pstconv/internal/property"
)

// Frequency codes from the recurrence pattern prefix.
type Frequency uint16

const (
	Daily   Frequency = 0x200A
	Weekly  Frequency = 0x200B
	Monthly Frequency = 0x200C
	Yearly  Frequency = 0x200D
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	case Yearly:
		return "YEARLY"
	default:
		return "UNKNOWN"
	}
}

// Monthly pattern types.
const (
	PatternMonth    = 2
	PatternMonthEnd = 3
	PatternMonthNth = 4
)

// Pattern holds the decoded fixed prefix plus the frequency-dependent tail
// fields. DayMask is meaningful for Weekly and Monthly/Nth patterns only;
// Nth only for Monthly/Nth.
type Pattern struct {
	Frequency   Frequency
	PatternType uint16
	Period      uint32

	HasDayMask bool
	DayMask    uint32

	HasDayOfMonth bool
	DayOfMonth    uint32

	HasNth bool
	Nth    uint32
}

// minimum size of the fixed prefix: reader/writer version, frequency,
// pattern type, calendar type, first date-time, period, sliding flag.
const prefixLen = 22

// Decode parses a recurrence pattern blob. A nil result means "not
// recurring": a short blob or an unknown frequency code is a legitimate,
// common state rather than an error.
func Decode(data []byte) *Pattern {
	if len(data) < prefixLen {
		return nil
	}
	p := &Pattern{
		Frequency:   Frequency(binary.LittleEndian.Uint16(data[4:6])),
		PatternType: binary.LittleEndian.Uint16(data[6:8]),
		Period:      binary.LittleEndian.Uint32(data[14:18]),
	}
	switch p.Frequency {
	case Daily, Yearly:
		// No tail fields at fixed offsets.
	case Weekly:
		if len(data) >= 26 {
			p.DayMask = binary.LittleEndian.Uint32(data[22:26])
			p.HasDayMask = true
		}
	case Monthly:
		switch p.PatternType {
		case PatternMonth, PatternMonthEnd:
			if len(data) >= 26 {
				p.DayOfMonth = binary.LittleEndian.Uint32(data[22:26])
				p.HasDayOfMonth = true
			}
		case PatternMonthNth:
			if len(data) >= 30 {
				p.DayMask = binary.LittleEndian.Uint32(data[22:26])
				p.Nth = binary.LittleEndian.Uint32(data[26:30])
				p.HasDayMask = true
				p.HasNth = true
			}
		}
	default:
		return nil
	}
	return p
}

// RRule decodes data and renders the RRULE value, or "" for non-recurring
// input.
func RRule(data []byte) string {
	return Decode(data).RRule()
}

// RRule renders the pattern as an RFC 5545 RRULE value. The nil receiver
// renders to "".
func (p *Pattern) RRule() string {
	if p == nil {
		return ""
	}
	var rrule strings.Builder
	rrule.WriteString("FREQ=")
	rrule.WriteString(p.Frequency.String())

	switch p.Frequency {
	case Weekly:
		if p.HasDayMask {
			if days := byDay(p.DayMask); days != "" {
				rrule.WriteString(";BYDAY=")
				rrule.WriteString(days)
			}
		}
	case Monthly:
		if p.HasDayOfMonth {
			rrule.WriteString(";BYMONTHDAY=")
			rrule.WriteString(strconv.FormatUint(uint64(p.DayOfMonth), 10))
		}
		if p.HasNth {
			if days := byDay(p.DayMask); days != "" {
				// Nth runs 1 to 4, with 5 meaning "last". Exactly one
				// weekday bit is assumed set; a writer that combines an
				// ordinal with several days is undocumented and the days
				// are kept as-is.
				rrule.WriteString(";BYDAY=")
				if p.Nth == 5 {
					rrule.WriteString("-1")
				} else {
					rrule.WriteString(strconv.FormatUint(uint64(p.Nth), 10))
				}
				rrule.WriteString(days)
			}
		}
	}

	if p.Period > 1 {
		rrule.WriteString(";INTERVAL=")
		rrule.WriteString(strconv.FormatUint(uint64(p.Period), 10))
	}
	return rrule.String()
}

var weekdays = []struct {
	mask uint32
	code string
}{
	{0x01, "SU"},
	{0x02, "MO"},
	{0x04, "TU"},
	{0x08, "WE"},
	{0x10, "TH"},
	{0x20, "FR"},
	{0x40, "SA"},
}

// byDay renders the set bits of a day mask as a comma-joined weekday list,
// Sunday first.
func byDay(mask uint32) string {
	var sb strings.Builder
	for _, day := range weekdays {
		if mask&day.mask != 0 {
			if sb.Len() > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(day.code)
		}
	}
	return sb.String()
}

func init() {
	property.Register(property.Entry{
		Tag:   property.PidLidAppointmentRecur,
		Name:  "recurrence",
		Sniff: sniffRecurrence,
	})
}

// sniffRecurrence accepts blobs whose frequency word carries one of the four
// documented codes.
func sniffRecurrence(data []byte) bool {
	if len(data) < prefixLen {
		return false
	}
	switch Frequency(binary.LittleEndian.Uint16(data[4:6])) {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}
