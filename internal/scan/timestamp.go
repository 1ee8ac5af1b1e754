package scan

import (
	"strings"
	"time"
)

// Timestamp is a normalised, timezone-naive scan instant.
//
// Raw exports carry a mix of "2006-01-02T15:04:05" and
// "2006-01-02 15:04:05" forms, with optional fractional seconds and an
// optional trailing zone marker ("Z", "+01:00", "+0100"). A zone
// marker is stripped without shifting the wall-clock digits; the data
// was recorded on the devices' local clocks and must stay comparable
// across files regardless of how a given exporter stamped it.
//
// The fractional-second text is kept exactly as written (frac holds
// the digits, including trailing zeros) so rendering reproduces the
// input precision. Equality and ordering use the parsed instant, so
// ".5" and ".500" land in the same pivot group.
type Timestamp struct {
	wall  time.Time // naive wall clock, held in UTC
	frac  string    // fractional digits as written, "" if none
	valid bool
}

const wallLayout = "2006-01-02 15:04:05"

// ParseTimestamp normalises raw timestamp text. Text that matches no
// recognised form yields the invalid Timestamp; callers keep the row
// and let it sort into the dedicated invalid bucket.
func ParseTimestamp(raw string) Timestamp {
	s := strings.TrimSpace(raw)
	if len(s) < len(wallLayout) {
		return Timestamp{}
	}

	// Normalise the date/time separator.
	if s[10] == 'T' || s[10] == 't' {
		s = s[:10] + " " + s[11:]
	}

	s = stripZone(s)

	base := s
	frac := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		base = s[:dot]
		frac = s[dot+1:]
		if frac == "" || !allDigits(frac) {
			return Timestamp{}
		}
	}

	wall, err := time.ParseInLocation(wallLayout, base, time.UTC)
	if err != nil {
		return Timestamp{}
	}

	return Timestamp{
		wall:  wall.Add(time.Duration(fracNanos(frac))),
		frac:  frac,
		valid: true,
	}
}

// stripZone removes a trailing zone marker without altering the
// wall-clock digits. Offsets are only recognised after the time part
// so date hyphens are never mistaken for a zone sign.
func stripZone(s string) string {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return s[:len(s)-1]
	}
	for i := len(s) - 1; i > len(wallLayout)-1; i-- {
		c := s[i]
		if c == '+' || c == '-' {
			tail := s[i+1:]
			if isZoneOffset(tail) {
				return s[:i]
			}
			return s
		}
		if !(c >= '0' && c <= '9') && c != ':' {
			return s
		}
	}
	return s
}

// isZoneOffset reports whether tail looks like hh, hhmm or hh:mm.
func isZoneOffset(tail string) bool {
	switch len(tail) {
	case 2:
		return allDigits(tail)
	case 4:
		return allDigits(tail)
	case 5:
		return tail[2] == ':' && allDigits(tail[:2]) && allDigits(tail[3:])
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fracNanos converts fractional-second digits to nanoseconds,
// truncating past nanosecond precision.
func fracNanos(frac string) int64 {
	var ns int64
	scale := int64(100_000_000)
	for i := 0; i < len(frac) && scale > 0; i++ {
		ns += int64(frac[i]-'0') * scale
		scale /= 10
	}
	return ns
}

// Valid reports whether the raw text parsed.
func (t Timestamp) Valid() bool { return t.valid }

// String renders the normalised timestamp: timezone-naive, space
// separated, fractional digits exactly as they appeared in the input.
// Invalid timestamps render empty.
func (t Timestamp) String() string {
	if !t.valid {
		return ""
	}
	out := t.wall.Format(wallLayout)
	if t.frac != "" {
		out += "." + t.frac
	}
	return out
}

// Date returns the calendar day as YYYY-MM-DD, or "" when invalid.
func (t Timestamp) Date() string {
	if !t.valid {
		return ""
	}
	return t.wall.Format("2006-01-02")
}

// Hour returns the hour of day (0-23). Only meaningful when Valid.
func (t Timestamp) Hour() int {
	return t.wall.Hour()
}

// Key returns a comparable grouping key for the instant. All invalid
// timestamps share one key, placing them in a single bucket that
// orders before every valid instant.
func (t Timestamp) Key() int64 {
	if !t.valid {
		return -1 << 62
	}
	return t.wall.UnixNano()
}

// Before orders timestamps by instant, invalid first.
func (t Timestamp) Before(u Timestamp) bool {
	return t.Key() < u.Key()
}

// Equal reports whether two timestamps denote the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Key() == u.Key()
}
