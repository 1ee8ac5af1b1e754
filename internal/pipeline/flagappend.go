package pipeline

import (
	"github.com/banshee-data/presence.report/internal/beacon"
	"github.com/banshee-data/presence.report/internal/monitoring"
	"github.com/banshee-data/presence.report/internal/scan"
)

// FlagAppend is the row-preserving transform: every input record
// becomes exactly one output row. The record's timestamp is
// normalised, date and hour are derived, and the beacon flag for the
// record's MAC is set when the MAC is registered. Unregistered MACs
// keep all flags at zero; the row is still emitted.
//
// The result is stable-sorted by (user_id, timestamp), so records
// sharing a key retain their relative input order.
func FlagAppend(records []scan.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			UserID:  rec.UserID,
			Time:    scan.ParseTimestamp(rec.Timestamp),
			MAC:     rec.MAC,
			RSSI:    rec.RSSI,
			HasRSSI: true,
			Power:   rec.Power,
		}
		if slot, ok := beacon.SlotFor(rec.MAC); ok {
			row.Flags[slot-1] = 1
		}
		rows = append(rows, row)
	}

	sortRows(rows)
	monitoring.Stagef("transform", "flag-append: %d rows in, %d rows out", len(records), len(rows))
	return rows
}
