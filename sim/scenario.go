package sim

import "fmt"

// DefaultDistancesM is the AP-to-station distance sweep (meters) evaluated
// when no override is given. Kept stable for output compatibility.
var DefaultDistancesM = []float64{5, 10, 20, 35, 50}

// Default timing and traffic-shape parameters shared by every scenario.
const (
	DefaultAppStartS    = 1.0  // senders and sink come up (seconds)
	DefaultAppStopS     = 10.0 // senders and sink shut down (seconds)
	DefaultSimStopS     = 12.0 // simulated time horizon (seconds)
	DefaultStationCount = 3
	DefaultStaggerS     = 0.1 // per-station sender start offset (seconds)
)

// ScenarioSpec is the immutable description of one simulation run: a single
// AP-to-station distance plus the timing and traffic shape applied to it.
// Constructed once per loop iteration and discarded after the scenario
// completes.
type ScenarioSpec struct {
	DistanceM    float64 // AP-to-station-cluster distance (meters)
	AppStartS    float64 // application start time (seconds)
	AppStopS     float64 // application stop time (seconds)
	SimStopS     float64 // simulation stop time (seconds)
	StationCount uint    // number of client stations
	StaggerS     float64 // sender start offset per station index (seconds)
}

// NewScenarioSpec returns a spec for the given distance with the default
// timing and traffic shape.
func NewScenarioSpec(distanceM float64) ScenarioSpec {
	return ScenarioSpec{
		DistanceM:    distanceM,
		AppStartS:    DefaultAppStartS,
		AppStopS:     DefaultAppStopS,
		SimStopS:     DefaultSimStopS,
		StationCount: DefaultStationCount,
		StaggerS:     DefaultStaggerS,
	}
}

// Validate checks the scenario invariants: app_start < app_stop <= sim_stop,
// at least one station, non-negative distance and stagger.
func (s ScenarioSpec) Validate() error {
	if s.DistanceM <= 0 {
		return fmt.Errorf("distance must be positive, got %v m", s.DistanceM)
	}
	if s.StationCount < 1 {
		return fmt.Errorf("station count must be >= 1, got %d", s.StationCount)
	}
	if s.AppStartS >= s.AppStopS {
		return fmt.Errorf("app start (%vs) must precede app stop (%vs)", s.AppStartS, s.AppStopS)
	}
	if s.AppStopS > s.SimStopS {
		return fmt.Errorf("app stop (%vs) must not exceed sim stop (%vs)", s.AppStopS, s.SimStopS)
	}
	if s.StaggerS < 0 {
		return fmt.Errorf("stagger must be non-negative, got %vs", s.StaggerS)
	}
	return nil
}

// MeasurementWindowS is the sink's active window, the denominator for
// throughput. Traffic outside [AppStartS, AppStopS] does not exist by
// construction since no application is active then.
func (s ScenarioSpec) MeasurementWindowS() float64 {
	return s.AppStopS - s.AppStartS
}
