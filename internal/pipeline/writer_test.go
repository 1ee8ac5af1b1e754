package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/presence.report/internal/fsutil"
	"github.com/banshee-data/presence.report/internal/scan"
)

func TestColumnsContract(t *testing.T) {
	cols := Columns()
	if len(cols) != 32 {
		t.Fatalf("got %d columns, want 32", len(cols))
	}

	wantHead := []string{"user_id", "timestamp", "mac_address", "signal_strength", "power", "date", "hour"}
	if diff := cmp.Diff(wantHead, cols[:7]); diff != "" {
		t.Errorf("fixed columns mismatch (-want +got):\n%s", diff)
	}
	if cols[7] != "beacon_flag_1" || cols[31] != "beacon_flag_25" {
		t.Errorf("flag columns misplaced: %v", cols[7:])
	}
}

func TestWriterOutput(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	rows := FlagAppend([]scan.Record{
		rec(1, "2024-03-01T08:15:30.5", "F7:7F:78:76:7E:F3", -60),
	})

	w := &Writer{FS: fs, Path: "out/merged.csv"}
	if err := w.Write(rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := fs.ReadFile("out/merged.csv")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if lines[0] != strings.Join(Columns(), ",") {
		t.Errorf("header = %q", lines[0])
	}

	want := "1,2024-03-01 08:15:30.5,F7:7F:78:76:7E:F3,-60,-,2024-03-01,8," +
		"1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"
	if lines[1] != want {
		t.Errorf("row = %q\nwant %q", lines[1], want)
	}
}

func TestWriterRendersAbsentValuesEmpty(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	// A pivot group with no registered beacon and an unparseable
	// timestamp: RSSI, timestamp, date and hour all render empty.
	rows := Pivot([]scan.Record{
		rec(7, "???", "00:00:00:00:00:00", -80),
	})

	w := &Writer{FS: fs, Path: "merged.csv"}
	if err := w.Write(rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, _ := fs.ReadFile("merged.csv")
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := "7,,00:00:00:00:00:00,,-,,," +
		"0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"
	if lines[1] != want {
		t.Errorf("row = %q\nwant %q", lines[1], want)
	}
}

func TestWriterIsAtomic(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	w := &Writer{FS: fs, Path: "merged.csv"}
	if err := w.Write(nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if fs.Exists("merged.csv.tmp") {
		t.Error("temp file left behind after rename")
	}
	if !fs.Exists("merged.csv") {
		t.Error("output file missing")
	}
}
