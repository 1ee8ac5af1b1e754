// Package pipeline turns loaded scan records into the merged output
// table. Two transforms share the same row shape: FlagAppend keeps one
// output row per input record, Pivot aggregates records into one row
// per (user, timestamp) group. Both feed the same CSV writer.
package pipeline

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/banshee-data/presence.report/internal/beacon"
	"github.com/banshee-data/presence.report/internal/scan"
)

// Mode selects which transform a run applies.
type Mode string

const (
	// ModeFlags emits one row per input record with a per-row beacon
	// indicator (the row-preserving transform).
	ModeFlags Mode = "flags"

	// ModePivot aggregates records into one row per (user, timestamp)
	// with presence flags derived from the whole group.
	ModePivot Mode = "pivot"
)

// ParseMode validates a mode name from the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFlags, ModePivot:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeFlags, ModePivot)
}

// Row is one line of the merged output table.
type Row struct {
	UserID  int64
	Time    scan.Timestamp
	MAC     string
	RSSI    float64
	HasRSSI bool // false only for pivot groups with no registered beacon
	Power   string
	Flags   [beacon.Count]int
}

// Columns is the fixed output column order.
func Columns() []string {
	cols := []string{
		"user_id", "timestamp", "mac_address", "signal_strength",
		"power", "date", "hour",
	}
	for i := 1; i <= beacon.Count; i++ {
		cols = append(cols, fmt.Sprintf("beacon_flag_%d", i))
	}
	return cols
}

// sortRows orders rows by (user_id, timestamp) with a stable sort so
// rows sharing a key keep their input order. Invalid timestamps share
// one bucket ahead of all valid instants.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].Time.Before(rows[j].Time)
	})
}

// fields renders the row in Columns() order.
func (r *Row) fields() []string {
	rssi := ""
	if r.HasRSSI {
		rssi = strconv.FormatFloat(r.RSSI, 'f', -1, 64)
	}
	hour := ""
	if r.Time.Valid() {
		hour = strconv.Itoa(r.Time.Hour())
	}

	out := make([]string, 0, 7+beacon.Count)
	out = append(out,
		strconv.FormatInt(r.UserID, 10),
		r.Time.String(),
		r.MAC,
		rssi,
		r.Power,
		r.Time.Date(),
		hour,
	)
	for _, f := range r.Flags {
		out = append(out, strconv.Itoa(f))
	}
	return out
}
