package sim

import "fmt"

// RunScenario drives one built topology to completion: a single blocking
// run-to-stop-time request, then one read of the raw counters. There are no
// partial or streaming results; control returns only after the engine
// reaches the stop time. An engine failure abandons the scenario — prior
// and subsequent scenarios are unaffected because each owns a fresh engine.
func RunScenario(e Engine, spec ScenarioSpec) (RawRunStats, error) {
	if err := e.RunUntil(spec.SimStopS); err != nil {
		return RawRunStats{}, fmt.Errorf("run to %vs: %w", spec.SimStopS, err)
	}
	return RawRunStats{
		SinkTotalRxBytes: e.SinkTotalRxBytes(),
		Flows:            e.FlowStats(),
	}, nil
}
