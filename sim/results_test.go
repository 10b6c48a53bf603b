package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestEnsureHeader_CreatesHeaderOnce(t *testing.T) {
	// GIVEN a path with no file
	path := filepath.Join(t.TempDir(), "results.csv")

	// WHEN EnsureHeader runs twice
	if err := EnsureHeader(path); err != nil {
		t.Fatalf("first EnsureHeader: %v", err)
	}
	if err := EnsureHeader(path); err != nil {
		t.Fatalf("second EnsureHeader: %v", err)
	}

	// THEN the file holds exactly one header line
	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != CSVHeader {
		t.Errorf("expected single header line, got %q", lines)
	}
}

func TestEnsureHeader_LeavesExistingFileAlone(t *testing.T) {
	// GIVEN a pre-existing file with arbitrary content (existence check, not
	// content inspection: malformed files are accepted as-is)
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte("not,a,real,header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// WHEN EnsureHeader runs
	if err := EnsureHeader(path); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}

	// THEN the content is untouched
	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != "not,a,real,header" {
		t.Errorf("expected pre-existing content untouched, got %q", lines)
	}
}

func TestAppendRow_NRowsRegardlessOfHeaderCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := EnsureHeader(path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := EnsureHeader(path); err != nil {
			t.Fatal(err)
		}
		r := ScenarioResult{DistanceM: float64(5 * (i + 1)), ThroughputMbps: 1.5}
		if err := AppendRow(path, r); err != nil {
			t.Fatalf("AppendRow %d: %v", i, err)
		}
	}

	lines := readLines(t, path)
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 data lines, got %d lines", len(lines))
	}
	if lines[0] != CSVHeader {
		t.Errorf("expected header first, got %q", lines[0])
	}
}

func TestAppendRow_FixedTwoDecimalFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	r := ScenarioResult{
		DistanceM:      5,
		ThroughputMbps: 0.888888,
		AvgDelayMs:     5.33333,
		LossPercent:    5,
	}
	if err := AppendRow(path, r); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, path)
	if lines[len(lines)-1] != "5.00,0.89,5.33,5.00" {
		t.Errorf("unexpected row format: %q", lines[len(lines)-1])
	}
}

func TestAppendRow_NeverScientificNotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	r := ScenarioResult{DistanceM: 50, ThroughputMbps: 12345678.9, AvgDelayMs: 0.0000001}
	if err := AppendRow(path, r); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, path)
	row := lines[len(lines)-1]
	if strings.ContainsAny(row, "eE") {
		t.Errorf("expected fixed-point formatting, got %q", row)
	}
	if row != "50.00,12345678.90,0.00,0.00" {
		t.Errorf("unexpected row format: %q", row)
	}
}
