package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FailurePolicy decides what a scenario-fatal engine error does to the rest
// of the sweep.
type FailurePolicy string

const (
	// FailureSkip logs the failed scenario and continues with the next
	// distance. No row is written for the failed scenario.
	FailureSkip FailurePolicy = "skip"
	// FailureAbort stops the whole run at the first failed scenario.
	FailureAbort FailurePolicy = "abort"
)

// ParseFailurePolicy validates a policy string from the CLI.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case FailureSkip, FailureAbort:
		return FailurePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (want %q or %q)", s, FailureSkip, FailureAbort)
	}
}

// ExperimentConfig groups everything one sweep needs: the distance list,
// the shared scenario timing, the output path, and the failure policy.
type ExperimentConfig struct {
	DistancesM   []float64
	StationCount uint
	AppStartS    float64
	AppStopS     float64
	SimStopS     float64
	StaggerS     float64

	CSVPath   string
	Verbose   bool
	OnFailure FailurePolicy
}

// NewExperimentConfig returns the default sweep configuration.
func NewExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		DistancesM:   append([]float64(nil), DefaultDistancesM...),
		StationCount: DefaultStationCount,
		AppStartS:    DefaultAppStartS,
		AppStopS:     DefaultAppStopS,
		SimStopS:     DefaultSimStopS,
		StaggerS:     DefaultStaggerS,
		CSVPath:      "results.csv",
		OnFailure:    FailureSkip,
	}
}

// Spec builds the ScenarioSpec for one distance of the sweep.
func (c ExperimentConfig) Spec(distanceM float64) ScenarioSpec {
	return ScenarioSpec{
		DistanceM:    distanceM,
		AppStartS:    c.AppStartS,
		AppStopS:     c.AppStopS,
		SimStopS:     c.SimStopS,
		StationCount: c.StationCount,
		StaggerS:     c.StaggerS,
	}
}

// ExperimentRunner iterates the distance list sequentially. Every scenario
// owns a fresh engine that is destroyed before the next iteration starts,
// even on failure, so scenarios are isolated failure domains. The CSV file
// is the only state accumulated across iterations.
type ExperimentRunner struct {
	cfg       ExperimentConfig
	newEngine func(EngineConfig) Engine
	runID     string
}

// NewExperimentRunner validates the configuration and binds a backend
// factory. A nil factory uses the registered NewEngineFunc.
func NewExperimentRunner(cfg ExperimentConfig, newEngine func(EngineConfig) Engine) (*ExperimentRunner, error) {
	if newEngine == nil {
		newEngine = NewEngineFunc
	}
	if newEngine == nil {
		return nil, errors.New("no simulation backend registered")
	}
	if len(cfg.DistancesM) == 0 {
		return nil, errors.New("no distances to evaluate")
	}
	if cfg.CSVPath == "" {
		return nil, errors.New("no output CSV path")
	}
	if cfg.OnFailure == "" {
		cfg.OnFailure = FailureSkip
	}
	if _, err := ParseFailurePolicy(string(cfg.OnFailure)); err != nil {
		return nil, err
	}
	for _, d := range cfg.DistancesM {
		if err := cfg.Spec(d).Validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario at %v m: %w", d, err)
		}
	}
	return &ExperimentRunner{
		cfg:       cfg,
		newEngine: newEngine,
		runID:     uuid.NewString(),
	}, nil
}

// RunID identifies this sweep in log output, so appended CSV rows can be
// correlated with the run that produced them.
func (r *ExperimentRunner) RunID() string {
	return r.runID
}

// Run executes the sweep. Engine failures follow the configured
// FailurePolicy; a CSV write failure is always fatal since losing the
// output channel invalidates the experiment.
func (r *ExperimentRunner) Run() error {
	if err := EnsureHeader(r.cfg.CSVPath); err != nil {
		return err
	}
	logrus.Infof("run %s: sweeping %d distances into %s", r.runID, len(r.cfg.DistancesM), r.cfg.CSVPath)

	for _, d := range r.cfg.DistancesM {
		result, err := r.runOne(r.cfg.Spec(d))
		if err != nil {
			if r.cfg.OnFailure == FailureAbort {
				return fmt.Errorf("scenario at %v m: %w", d, err)
			}
			logrus.Errorf("run %s: scenario at %v m failed, skipping: %v", r.runID, d, err)
			continue
		}
		if err := AppendRow(r.cfg.CSVPath, result); err != nil {
			return err
		}
		if r.cfg.Verbose {
			logrus.Infof("run %s: distance %.1f m | throughput %.2f Mbps | avg delay %.2f ms | loss %.2f %%",
				r.runID, result.DistanceM, result.ThroughputMbps, result.AvgDelayMs, result.LossPercent)
		}
	}
	return nil
}

// runOne builds, runs, and reduces a single scenario against a fresh engine.
// Destroy always runs before returning: the next scenario starts from a
// clean world.
func (r *ExperimentRunner) runOne(spec ScenarioSpec) (ScenarioResult, error) {
	eng := r.newEngine(EngineConfig{Verbose: r.cfg.Verbose})
	defer eng.Destroy()

	if err := BuildTopology(eng, spec); err != nil {
		return ScenarioResult{}, err
	}
	raw, err := RunScenario(eng, spec)
	if err != nil {
		return ScenarioResult{}, err
	}
	return Reduce(spec.DistanceM, raw.SinkTotalRxBytes, spec.MeasurementWindowS(), raw.Flows), nil
}
