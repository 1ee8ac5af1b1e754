// Package report summarises a merge run: aggregate counts for the
// end-of-run banner plus optional chart renderings of the output
// table.
package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/presence.report/internal/beacon"
	"github.com/banshee-data/presence.report/internal/pipeline"
)

// Stats aggregates the merged table for the run summary and charts.
type Stats struct {
	Mode pipeline.Mode
	Rows int
	Cols int

	Users             int
	InvalidTimestamps int
	UnflaggedRows     int // rows with no beacon flag set

	// BeaconCounts[i] is the number of rows with beacon_flag_{i+1} set.
	BeaconCounts [beacon.Count]int

	// HourCounts[h] is the number of rows whose hour of day is h.
	HourCounts [24]int

	// MeanRSSI is the mean signal strength across rows that carry one.
	MeanRSSI    float64
	HasMeanRSSI bool
}

// Collect computes run statistics over the final table.
func Collect(mode pipeline.Mode, rows []pipeline.Row) Stats {
	s := Stats{
		Mode: mode,
		Rows: len(rows),
		Cols: len(pipeline.Columns()),
	}

	users := make(map[int64]bool)
	var rssi []float64
	for i := range rows {
		r := &rows[i]
		users[r.UserID] = true

		if r.Time.Valid() {
			s.HourCounts[r.Time.Hour()]++
		} else {
			s.InvalidTimestamps++
		}

		flagged := false
		for slot, f := range r.Flags {
			if f == 1 {
				s.BeaconCounts[slot]++
				flagged = true
			}
		}
		if !flagged {
			s.UnflaggedRows++
		}

		if r.HasRSSI {
			rssi = append(rssi, r.RSSI)
		}
	}

	s.Users = len(users)
	if len(rssi) > 0 {
		s.MeanRSSI = stat.Mean(rssi, nil)
		s.HasMeanRSSI = true
	}
	return s
}
