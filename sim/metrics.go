// Reduces raw per-flow counters into the three reported summary metrics.

package sim

// ScenarioResult is one scenario's summary row: derived once, written once,
// no existence beyond its CSV line.
type ScenarioResult struct {
	DistanceM      float64
	ThroughputMbps float64
	AvgDelayMs     float64
	LossPercent    float64
}

// Reduce converts the sink byte count and the raw flow counters into a
// ScenarioResult. durationS is the sink's active measurement window
// (app stop - app start), not the full simulated span.
//
// Counters are summed across ALL flows unconditionally — if the engine
// reports reverse or control flows they count too. Absence of traffic is
// reported as zero delay/loss, never as an error.
func Reduce(distanceM float64, sinkRxBytes uint64, durationS float64, flows []FlowRawStats) ScenarioResult {
	result := ScenarioResult{DistanceM: distanceM}

	if durationS > 0 {
		result.ThroughputMbps = (float64(sinkRxBytes) * 8.0) / (durationS * 1e6)
	}

	var sumDelayS float64
	var rx, tx, lost uint64
	for _, f := range flows {
		sumDelayS += f.DelaySumS
		rx += f.RxPackets
		tx += f.TxPackets
		lost += f.LostPackets
	}

	if rx > 0 {
		result.AvgDelayMs = sumDelayS / float64(rx) * 1000.0
	}
	if tx > 0 {
		result.LossPercent = 100.0 * float64(lost) / float64(tx)
	}
	return result
}
