package scan

import "testing"

func TestParseTimestampFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		date string
		hour int
	}{
		{"iso separator", "2024-01-01T10:00:00", "2024-01-01 10:00:00", "2024-01-01", 10},
		{"space separator", "2024-01-01 10:00:00", "2024-01-01 10:00:00", "2024-01-01", 10},
		{"fractional", "2024-03-01T08:15:30.5", "2024-03-01 08:15:30.5", "2024-03-01", 8},
		{"microseconds utc", "2024-01-01T10:00:00.123456Z", "2024-01-01 10:00:00.123456", "2024-01-01", 10},
		{"offset colon", "2024-03-01 08:15:30+01:00", "2024-03-01 08:15:30", "2024-03-01", 8},
		{"offset compact", "2024-03-01T23:59:59.250-0700", "2024-03-01 23:59:59.250", "2024-03-01", 23},
		{"trailing zeros kept", "2024-03-01 08:15:30.500", "2024-03-01 08:15:30.500", "2024-03-01", 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := ParseTimestamp(tc.raw)
			if !ts.Valid() {
				t.Fatalf("ParseTimestamp(%q) invalid", tc.raw)
			}
			if got := ts.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
			if got := ts.Date(); got != tc.date {
				t.Errorf("Date() = %q, want %q", got, tc.date)
			}
			if got := ts.Hour(); got != tc.hour {
				t.Errorf("Hour() = %d, want %d", got, tc.hour)
			}
		})
	}
}

// Stripping a zone marker must not shift the wall clock: the same
// digits are re-read as naive local time, not converted to UTC.
func TestParseTimestampZoneStripKeepsWallClock(t *testing.T) {
	plain := ParseTimestamp("2024-03-01 08:15:30.5")
	zoned := ParseTimestamp("2024-03-01T08:15:30.5+05:30")

	if !zoned.Equal(plain) {
		t.Errorf("zoned instant %q != naive instant %q", zoned, plain)
	}
}

func TestParseTimestampFractionGrouping(t *testing.T) {
	a := ParseTimestamp("2024-03-01 08:15:30.5")
	b := ParseTimestamp("2024-03-01 08:15:30.500")

	if !a.Equal(b) {
		t.Error(".5 and .500 should denote the same instant")
	}
	// Rendering still reflects each input's own precision.
	if a.String() == b.String() {
		t.Errorf("expected distinct renderings, both %q", a.String())
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"-",
		"not a timestamp",
		"2024-13-41 27:61:61",
		"2024-03-01 08:15:30.", // bare dot, no digits
	} {
		ts := ParseTimestamp(raw)
		if ts.Valid() {
			t.Errorf("ParseTimestamp(%q) unexpectedly valid: %q", raw, ts.String())
		}
		if got := ts.String(); got != "" {
			t.Errorf("invalid String() = %q, want empty", got)
		}
		if got := ts.Date(); got != "" {
			t.Errorf("invalid Date() = %q, want empty", got)
		}
	}
}

func TestInvalidSortsBeforeValid(t *testing.T) {
	invalid := ParseTimestamp("-")
	valid := ParseTimestamp("1970-01-01 00:00:00")

	if !invalid.Before(valid) {
		t.Error("invalid timestamps must order before every valid instant")
	}
	if !invalid.Equal(ParseTimestamp("also invalid")) {
		t.Error("all invalid timestamps must share one bucket")
	}
}
