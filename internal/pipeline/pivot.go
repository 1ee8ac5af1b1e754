package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/presence.report/internal/beacon"
	"github.com/banshee-data/presence.report/internal/monitoring"
	"github.com/banshee-data/presence.report/internal/scan"
)

// groupKey identifies one (user, instant) pivot group. Grouping is
// exact: no rounding or tolerance window on the timestamp. Invalid
// timestamps share one instant key, so a user's unparseable rows
// collapse into a single bucket rather than being dropped.
type groupKey struct {
	userID int64
	unix   int64
}

// group accumulates the records of one pivot group in input order.
type group struct {
	userID   int64
	time     scan.Timestamp // first record's timestamp, keeps its precision
	mac      string         // representative: first record in input order
	power    string
	bySlot   [beacon.Count][]float64
	observed int // total records, registered or not
}

// Pivot is the aggregating transform: one output row per
// (user, timestamp) group.
//
// Per group, each registered beacon that was observed contributes the
// mean of its RSSI readings; those per-beacon means collapse to 0/1
// presence flags in the output, and their own mean becomes the group's
// overall signal strength. A group whose records all carry
// unregistered MACs is kept (the key exists, the rows were real scans)
// with every flag zero and no signal strength value.
func Pivot(records []scan.Record) []Row {
	groups := make(map[groupKey]*group)
	var order []groupKey

	for _, rec := range records {
		ts := scan.ParseTimestamp(rec.Timestamp)
		key := groupKey{userID: rec.UserID, unix: ts.Key()}

		g, ok := groups[key]
		if !ok {
			g = &group{
				userID: rec.UserID,
				time:   ts,
				mac:    rec.MAC,
				power:  rec.Power,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.observed++

		if slot, ok := beacon.SlotFor(rec.MAC); ok {
			g.bySlot[slot-1] = append(g.bySlot[slot-1], rec.RSSI)
		}
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		rows = append(rows, groups[key].collapse())
	}

	// Map iteration order is irrelevant here: order preserved the
	// first-seen sequence and the final sort is by key anyway.
	sortRows(rows)
	monitoring.Stagef("transform", "pivot: %d rows in, %d groups out", len(records), len(rows))
	return rows
}

// collapse reduces one group to its output row.
func (g *group) collapse() Row {
	row := Row{
		UserID: g.userID,
		Time:   g.time,
		MAC:    g.mac,
		Power:  g.power,
	}

	var slotMeans []float64
	for i, readings := range g.bySlot {
		if len(readings) == 0 {
			continue
		}
		row.Flags[i] = 1
		slotMeans = append(slotMeans, stat.Mean(readings, nil))
	}

	if len(slotMeans) > 0 {
		row.RSSI = stat.Mean(slotMeans, nil)
		row.HasRSSI = true
	}

	return row
}
