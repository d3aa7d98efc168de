package fhir

import (
	"strings"
	"time"
)

// DatePrecision records how much of a FHIR date/dateTime was present.
type DatePrecision int

const (
	PrecisionYear DatePrecision = iota + 1
	PrecisionMonth
	PrecisionDay
	PrecisionTime
)

var dateLayouts = []struct {
	layout    string
	precision DatePrecision
}{
	{"2006-01-02", PrecisionDay},
	{time.RFC3339Nano, PrecisionTime},
	{"2006-01-02T15:04Z07:00", PrecisionTime},
	{"2006-01-02T15:04:05.999999999", PrecisionTime},
	{"2006-01-02T15:04", PrecisionTime},
	{"2006-01-02 15:04:05Z07:00", PrecisionTime},
	{"2006-01-02 15:04:05", PrecisionTime},
	{"2006-01", PrecisionMonth},
	{"2006", PrecisionYear},
}

// ParseDateTime parses the FHIR date, dateTime and instant forms. Values
// without an offset are read as UTC. ok is false when nothing matches.
func ParseDateTime(s string) (t time.Time, precision DatePrecision, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, 0, false
	}
	for _, l := range dateLayouts {
		if parsed, err := time.Parse(l.layout, s); err == nil {
			return parsed, l.precision, true
		}
	}
	return time.Time{}, 0, false
}

// IsDate reports whether s is a valid FHIR date or dateTime.
func IsDate(s string) bool {
	_, _, ok := ParseDateTime(s)
	return ok
}
