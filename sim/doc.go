// Package sim provides the experiment harness for the WiFi distance study.
//
// # Reading Guide
//
// Start with these three files to understand the harness:
//   - scenario.go: ScenarioSpec (one run's parameters) and the default distance sweep
//   - runner.go: the sequential experiment loop and its failure policy
//   - engine.go: the capability interface every simulation backend must satisfy
//
// # Architecture
//
// The sim package defines the harness and the backend contract; backends live
// in sub-packages:
//   - sim/wireless/: the bundled deterministic discrete-event backend
//
// Sub-packages register their implementations via init() functions that set
// the package-level factory variable (NewEngineFunc).
//
// Data flow for one scenario: ScenarioSpec → BuildTopology (engine calls) →
// RunScenario (blocking run, raw counters) → Reduce (summary metrics) →
// AppendRow (CSV). Each scenario owns a fresh engine which is destroyed
// before the next one starts, so no simulation state crosses scenario
// boundaries; the CSV file is the only accumulated side effect.
package sim
