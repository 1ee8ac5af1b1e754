package pipeline

import (
	"encoding/csv"
	"fmt"

	"github.com/banshee-data/presence.report/internal/fsutil"
	"github.com/banshee-data/presence.report/internal/monitoring"
)

// Writer serialises the merged table to a single CSV file.
//
// The write is all-or-nothing: rows go to <path>.tmp and the file is
// renamed into place only after a clean flush, so a failed run never
// leaves a half-written output behind for the next run's loader to
// trip over.
type Writer struct {
	FS   fsutil.FileSystem
	Path string
}

// Write emits the header and every row in Columns() order.
func (w *Writer) Write(rows []Row) error {
	tmp := w.Path + ".tmp"

	f, err := w.FS.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(rows[i].fields()); err != nil {
			f.Close()
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := w.FS.Rename(tmp, w.Path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	monitoring.Stagef("write", "%s: %d rows, %d columns", w.Path, len(rows), len(Columns()))
	return nil
}
