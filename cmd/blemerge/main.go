// Package main provides the BLE beacon scan-log merge tool.
// It concatenates per-device raw CSV exports, normalises timestamps,
// derives per-beacon indicator columns and writes one merged CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/banshee-data/presence.report/internal/archive"
	"github.com/banshee-data/presence.report/internal/fsutil"
	"github.com/banshee-data/presence.report/internal/monitoring"
	"github.com/banshee-data/presence.report/internal/pipeline"
	"github.com/banshee-data/presence.report/internal/report"
	"github.com/banshee-data/presence.report/internal/scan"
	"github.com/banshee-data/presence.report/internal/timeutil"
	"github.com/banshee-data/presence.report/internal/version"
)

// Config holds the command-line configuration for one merge run.
type Config struct {
	InputDir string
	Output   string
	Mode     string
	Prefix   string
	ZipPath  string
	Charts   bool
	ChartDir string
	Quiet    bool

	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("blemerge %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: input directory is required")
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Quiet {
		monitoring.SetLogger(nil)
	}

	runID := uuid.NewString()
	stats, loadRes, elapsed, err := run(cfg, fsutil.OSFileSystem{}, timeutil.RealClock{})
	if err != nil {
		log.Fatalf("Merge failed: %v", err)
	}

	if !cfg.Quiet {
		printSummary(runID, cfg, loadRes, stats, elapsed)
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.InputDir, "input", "", "Directory containing raw per-device exports (required)")
	flag.StringVar(&cfg.Output, "output", "merged.csv", "Path for the merged CSV output")
	flag.StringVar(&cfg.Mode, "mode", string(pipeline.ModeFlags), "Transform mode: flags (row-preserving) or pivot (aggregate per user+timestamp)")
	flag.StringVar(&cfg.Prefix, "prefix", scan.DefaultPrefix, "File name prefix selecting raw export files")
	flag.StringVar(&cfg.ZipPath, "zip", "", "Optional raw export archive to extract into the input directory first")
	flag.BoolVar(&cfg.Charts, "charts", false, "Write summary charts next to the output file")
	flag.StringVar(&cfg.ChartDir, "chart-dir", "", "Directory for summary charts (default: output file's directory)")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress logging and the run summary")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "BLE Beacon Scan-Log Merge Tool\n\n")
		fmt.Fprintf(os.Stderr, "Merges headerless per-device scan exports into one CSV with\n")
		fmt.Fprintf(os.Stderr, "normalised timestamps, date/hour columns and beacon_flag_1..%d\n", 25)
		fmt.Fprintf(os.Stderr, "indicator columns.\n\n")
		fmt.Fprintf(os.Stderr, "Modes:\n")
		fmt.Fprintf(os.Stderr, "  flags  one output row per scan record; the record's own beacon flagged\n")
		fmt.Fprintf(os.Stderr, "  pivot  one output row per (user, timestamp); flags mark beacons seen\n")
		fmt.Fprintf(os.Stderr, "         anywhere in the group, RSSI averaged across them\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -input ./ble-data -output merged.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input ./ble-data -mode pivot -charts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -zip export.zip -input ./ble-data -output merged.csv\n", os.Args[0])
	}

	flag.Parse()
	return cfg
}

// run executes the full pipeline: optional archive extraction, load,
// transform, write, then chart rendering. It is separated from main
// so the end-to-end path is testable with an injected filesystem and
// clock.
func run(cfg Config, fs fsutil.FileSystem, clock timeutil.Clock) (report.Stats, *scan.Result, float64, error) {
	start := clock.Now()

	mode, err := pipeline.ParseMode(cfg.Mode)
	if err != nil {
		return report.Stats{}, nil, 0, err
	}

	if cfg.ZipPath != "" {
		if err := archive.ExtractZip(cfg.ZipPath, cfg.InputDir); err != nil {
			return report.Stats{}, nil, 0, fmt.Errorf("extract archive: %w", err)
		}
	}

	loader := &scan.Loader{
		FS:     fs,
		Dir:    cfg.InputDir,
		Prefix: cfg.Prefix,
		// Never reprocess a previous run's output or its temp file.
		Exclude: []string{filepath.Base(cfg.Output), filepath.Base(cfg.Output) + ".tmp"},
	}
	loadRes, err := loader.Load()
	if err != nil {
		return report.Stats{}, nil, 0, err
	}
	if loadRes.Empty() {
		if loadRes.FilesFound == 0 {
			return report.Stats{}, loadRes, 0, fmt.Errorf("no raw export files found in %s", cfg.InputDir)
		}
		return report.Stats{}, loadRes, 0, fmt.Errorf("all %d export files failed to read", loadRes.FilesFound)
	}

	var rows []pipeline.Row
	switch mode {
	case pipeline.ModePivot:
		rows = pipeline.Pivot(loadRes.Records)
	default:
		rows = pipeline.FlagAppend(loadRes.Records)
	}

	writer := &pipeline.Writer{FS: fs, Path: cfg.Output}
	if err := writer.Write(rows); err != nil {
		return report.Stats{}, loadRes, 0, err
	}

	stats := report.Collect(mode, rows)

	if cfg.Charts {
		if err := writeCharts(cfg, fs, stats); err != nil {
			// Charts are a convenience; the merged CSV is already safe
			// on disk, so don't fail the run over them.
			log.Printf("Warning: chart rendering failed: %v", err)
		}
	}

	return stats, loadRes, clock.Since(start).Seconds(), nil
}

func writeCharts(cfg Config, fs fsutil.FileSystem, stats report.Stats) error {
	dir := cfg.ChartDir
	if dir == "" {
		dir = filepath.Dir(cfg.Output)
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	htmlPath := filepath.Join(dir, "beacons.html")
	f, err := fs.Create(htmlPath)
	if err != nil {
		return err
	}
	if err := report.RenderBeaconChart(f, stats); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	monitoring.Stagef("report", "beacon chart: %s", htmlPath)

	pngPath := filepath.Join(dir, "hourly.png")
	if err := report.SaveHourlyPlot(pngPath, stats); err != nil {
		return err
	}
	monitoring.Stagef("report", "hourly chart: %s", pngPath)
	return nil
}

func printSummary(runID string, cfg Config, loadRes *scan.Result, stats report.Stats, elapsedSecs float64) {
	fmt.Println("\n========== Merge Summary ==========")
	fmt.Printf("Run: %s\n", runID)
	fmt.Printf("Mode: %s\n", stats.Mode)
	fmt.Printf("Input: %s\n", cfg.InputDir)
	fmt.Printf("Output: %s\n", cfg.Output)
	fmt.Println()
	fmt.Printf("Files: %d found, %d read, %d failed\n",
		loadRes.FilesFound, loadRes.FilesRead, len(loadRes.Failures))
	for _, f := range loadRes.Failures {
		fmt.Printf("  failed: %s (%v)\n", f.Name, f.Err)
	}
	fmt.Printf("Records in: %d\n", len(loadRes.Records))
	fmt.Printf("Rows out: %d (%d columns)\n", stats.Rows, stats.Cols)
	fmt.Printf("Users: %d\n", stats.Users)
	if stats.InvalidTimestamps > 0 {
		fmt.Printf("Unparseable timestamps: %d\n", stats.InvalidTimestamps)
	}
	if stats.UnflaggedRows > 0 {
		fmt.Printf("Rows with no registered beacon: %d\n", stats.UnflaggedRows)
	}
	if stats.HasMeanRSSI {
		fmt.Printf("Mean RSSI: %.1f dBm\n", stats.MeanRSSI)
	}
	fmt.Printf("Elapsed: %.2fs\n", elapsedSecs)
	fmt.Println("===================================")
}
