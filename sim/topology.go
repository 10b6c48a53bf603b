package sim

import "fmt"

// Topology constants recovered from the study's reference setup. The network
// identifier and addressing are shared by every scenario; only positions and
// application timing vary.
const (
	NetworkID    = "wifi-distance-ssid"
	SubnetCIDR   = "10.1.1.0/24"
	SinkPort     = 5000
	SegmentBytes = 1448 // typical TCP payload

	APNodeID = "ap"
)

// StationNodeID names the i-th client station.
func StationNodeID(i int) string {
	return fmt.Sprintf("sta-%d", i)
}

// StationSpreadM returns the Y offset (meters) for station i, following the
// pattern 0, +3, -3, +6, -6, ... The spread only avoids exact spatial
// coincidence between stations; it has no protocol significance.
func StationSpreadM(i int) float64 {
	if i == 0 {
		return 0
	}
	mag := float64((i+1)/2) * 3.0
	if i%2 == 1 {
		return mag
	}
	return -mag
}

// BuildTopology translates a ScenarioSpec into engine calls: an AP at the
// origin with a greedy TCP sink, StationCount client stations at
// (DistanceM, spread_i, 0) each running a greedy TCP bulk sender aimed at
// the sink, all on one network identifier and subnet. Sender starts are
// staggered by StaggerS per station index to avoid a synchronized
// connection burst; every application shares the same stop time.
//
// Building is a pure function of the spec: it is deterministic given engine
// defaults and has no failure modes of its own — any error surfaces from
// the engine.
func BuildTopology(e Engine, spec ScenarioSpec) error {
	if err := e.CreateNode(APNodeID, Position{}); err != nil {
		return fmt.Errorf("create AP node: %w", err)
	}
	if err := e.AttachWireless(APNodeID, ModeAccessPoint, NetworkID); err != nil {
		return fmt.Errorf("attach AP device: %w", err)
	}

	for i := 0; i < int(spec.StationCount); i++ {
		id := StationNodeID(i)
		pos := Position{X: spec.DistanceM, Y: StationSpreadM(i)}
		if err := e.CreateNode(id, pos); err != nil {
			return fmt.Errorf("create station %s: %w", id, err)
		}
		if err := e.AttachWireless(id, ModeStation, NetworkID); err != nil {
			return fmt.Errorf("attach station device %s: %w", id, err)
		}
	}

	if err := e.InstallStack(SubnetCIDR); err != nil {
		return fmt.Errorf("install stack: %w", err)
	}

	if err := e.InstallSink(APNodeID, SinkPort, spec.AppStartS, spec.AppStopS); err != nil {
		return fmt.Errorf("install sink: %w", err)
	}
	for i := 0; i < int(spec.StationCount); i++ {
		id := StationNodeID(i)
		start := spec.AppStartS + spec.StaggerS*float64(i)
		if err := e.InstallSender(id, APNodeID, SinkPort, SegmentBytes, start, spec.AppStopS); err != nil {
			return fmt.Errorf("install sender on %s: %w", id, err)
		}
	}

	if err := e.EnableFlowStats(); err != nil {
		return fmt.Errorf("enable flow stats: %w", err)
	}
	return nil
}
