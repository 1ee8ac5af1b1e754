package scan

import (
	"strings"
	"testing"

	"github.com/banshee-data/presence.report/internal/fsutil"
	"github.com/banshee-data/presence.report/internal/monitoring"
	"github.com/banshee-data/presence.report/internal/testutil"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func newTestFS(t *testing.T, files map[string]string) *fsutil.MemoryFileSystem {
	t.Helper()
	fs := fsutil.NewMemoryFileSystem()
	for name, content := range files {
		if err := fs.WriteFile("data/"+name, []byte(content), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return fs
}

func TestLoaderConcatenatesInFileNameOrder(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		// Named so enumeration order differs from insertion order.
		"user-ble-id_002.csv": testutil.ScanLine("2", "2024-03-01 09:00:00", "C6:CD:5E:3D:2F:BB", "-55.0"),
		"user-ble-id_001.csv": testutil.ScanLine("1", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "-60.5") +
			testutil.ScanLine("1", "2024-03-01 08:00:01", "00:11:22:33:44:55", "-70.0"),
	})

	loader := &Loader{FS: fs, Dir: "data"}
	res, err := loader.Load()
	testutil.AssertNoError(t, err)

	if res.FilesFound != 2 || res.FilesRead != 2 {
		t.Errorf("files found/read = %d/%d, want 2/2", res.FilesFound, res.FilesRead)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}

	// File 001's rows come first, in file order.
	if res.Records[0].UserID != 1 || res.Records[1].UserID != 1 || res.Records[2].UserID != 2 {
		t.Errorf("unexpected concatenation order: %+v", res.Records)
	}
	if res.Records[0].MAC != "F7:7F:78:76:7E:F3" {
		t.Errorf("MAC = %q", res.Records[0].MAC)
	}
	if res.Records[0].RSSI != -60.5 {
		t.Errorf("RSSI = %v, want -60.5", res.Records[0].RSSI)
	}
	if res.Records[0].Power != "-" {
		t.Errorf("Power = %q, want \"-\"", res.Records[0].Power)
	}
}

func TestLoaderSkipsBadFileAndContinues(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"user-ble-id_001.csv": testutil.ScanLine("1", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "-60.0"),
		"user-ble-id_002.csv": "1,2024-03-01 08:00:00,-\n", // wrong field count
		"user-ble-id_003.csv": testutil.ScanLine("3", "2024-03-01 08:00:00", "C6:CD:5E:3D:2F:BB", "-55.0"),
	})

	loader := &Loader{FS: fs, Dir: "data"}
	res, err := loader.Load()
	testutil.AssertNoError(t, err)

	if len(res.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(res.Failures))
	}
	if res.Failures[0].Name != "user-ble-id_002.csv" {
		t.Errorf("failure name = %q", res.Failures[0].Name)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2 (bad file contributes nothing)", len(res.Records))
	}
}

func TestLoaderRejectsMalformedValues(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"user-ble-id_001.csv": testutil.ScanLine("not-an-int", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "-60.0"),
		"user-ble-id_002.csv": testutil.ScanLine("1", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "loud"),
	})

	loader := &Loader{FS: fs, Dir: "data"}
	res, err := loader.Load()
	testutil.AssertNoError(t, err)

	if len(res.Failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(res.Failures))
	}
	if !res.Empty() {
		t.Error("expected empty result when every file fails")
	}
	for _, f := range res.Failures {
		if !strings.Contains(f.Err.Error(), "line 1") {
			t.Errorf("failure %s should name the line: %v", f.Name, f.Err)
		}
	}
}

func TestLoaderFiltersByNameAndExclusion(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"user-ble-id_001.csv": testutil.ScanLine("1", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "-60.0"),
		"merged.csv":          "user_id,timestamp\n", // prior output, wrong prefix
		"user-ble-id_old.bak": "junk",                // wrong extension
		"user-ble-id_x.csv":   testutil.ScanLine("9", "2024-03-01 08:00:00", "F7:7F:78:76:7E:F3", "-61.0"),
	})

	loader := &Loader{FS: fs, Dir: "data", Exclude: []string{"user-ble-id_x.csv"}}
	res, err := loader.Load()
	testutil.AssertNoError(t, err)

	if res.FilesFound != 1 {
		t.Errorf("files found = %d, want 1", res.FilesFound)
	}
	if len(res.Records) != 1 || res.Records[0].UserID != 1 {
		t.Errorf("unexpected records: %+v", res.Records)
	}
}

func TestLoaderEmptyDirectory(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	if err := fs.MkdirAll("data", 0755); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{FS: fs, Dir: "data"}
	res, err := loader.Load()
	testutil.AssertNoError(t, err)

	if !res.Empty() {
		t.Error("expected empty result for a directory with no exports")
	}
	if res.FilesFound != 0 {
		t.Errorf("files found = %d, want 0", res.FilesFound)
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := &Loader{FS: fsutil.NewMemoryFileSystem(), Dir: "nope"}
	_, err := loader.Load()
	testutil.AssertError(t, err)
}
