package sim

import (
	"fmt"
	"os"
)

// CSVHeader is the result table's header line (without trailing newline).
const CSVHeader = "distance_m,throughput_mbps,avg_delay_ms,packet_loss_percent"

// EnsureHeader creates path with exactly the header line iff the file does
// not already exist. The check is file existence, not content inspection:
// a malformed pre-existing file is neither detected nor repaired, so
// re-running against an existing path appends rows without re-writing the
// header. Idempotent across process restarts.
func EnsureHeader(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	_, werr := f.WriteString(CSVHeader + "\n")
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write header to %s: %w", path, werr)
	}
	return nil
}

// AppendRow appends one data row, all four fields fixed to two decimals,
// and closes the file before returning so every append is a complete,
// durable write — no buffered writer survives across scenarios.
func AppendRow(path string, r ScenarioResult) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	_, werr := fmt.Fprintf(f, "%.2f,%.2f,%.2f,%.2f\n",
		r.DistanceM, r.ThroughputMbps, r.AvgDelayMs, r.LossPercent)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("append row to %s: %w", path, werr)
	}
	return nil
}
