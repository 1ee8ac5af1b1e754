package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/presence.report/internal/fsutil"
	"github.com/banshee-data/presence.report/internal/monitoring"
)

// rawFields is the fixed column count of a device export.
const rawFields = 6

// DefaultPrefix selects the per-device raw export files.
const DefaultPrefix = "user-ble-id_"

// Loader enumerates raw export files in a directory and concatenates
// their records. One bad file never aborts the batch: its failure is
// recorded and the remaining files are still read.
type Loader struct {
	FS     fsutil.FileSystem
	Dir    string
	Prefix string // file name prefix for raw exports; DefaultPrefix if empty

	// Exclude lists file names to skip, typically previously produced
	// merged outputs sitting in the same directory.
	Exclude []string
}

// FileFailure records one export file that could not be read.
type FileFailure struct {
	Name string
	Err  error
}

// Result is the loader output: all records in file-enumeration order
// (file names sorted ascending, rows in file order) plus the read
// accounting for the run summary.
type Result struct {
	Records    []Record
	FilesFound int
	FilesRead  int
	Failures   []FileFailure
}

// Empty reports whether the load produced nothing usable. Downstream
// stages treat an empty result as "nothing to do".
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Load reads every matching file under the configured directory.
// It returns an error only when the directory itself cannot be
// enumerated; per-file problems land in Result.Failures.
func (l *Loader) Load() (*Result, error) {
	prefix := l.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	names, err := l.FS.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.Dir, err)
	}

	res := &Result{}
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		if l.excluded(name) {
			continue
		}
		res.FilesFound++

		records, err := l.readFile(filepath.Join(l.Dir, name))
		if err != nil {
			monitoring.Stagef("load", "skipping %s: %v", name, err)
			res.Failures = append(res.Failures, FileFailure{Name: name, Err: err})
			continue
		}
		res.FilesRead++
		res.Records = append(res.Records, records...)
	}

	monitoring.Stagef("load", "%d files found, %d read, %d failed, %d records",
		res.FilesFound, res.FilesRead, len(res.Failures), len(res.Records))
	return res, nil
}

func (l *Loader) excluded(name string) bool {
	for _, e := range l.Exclude {
		if name == e {
			return true
		}
	}
	return false
}

// readFile parses one export. Any malformed row fails the whole file:
// exports are machine-written, so a bad row means a truncated or
// foreign file, and contributing half of one would skew the merge.
func (l *Loader) readFile(path string) ([]Record, error) {
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = rawFields

	var records []Record
	for line := 1; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(fields []string) (Record, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("user id %q: %w", fields[0], err)
	}

	rssi, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("rssi %q: %w", fields[4], err)
	}

	return Record{
		UserID:    userID,
		Timestamp: fields[1],
		MAC:       strings.TrimSpace(fields[3]),
		RSSI:      rssi,
		Power:     fields[5],
	}, nil
}
