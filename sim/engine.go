package sim

// WirelessMode selects the role of a node's wireless device.
type WirelessMode string

const (
	// ModeAccessPoint configures an infrastructure-mode access point.
	ModeAccessPoint WirelessMode = "ap"
	// ModeStation configures a client-mode station.
	ModeStation WirelessMode = "sta"
)

// Position is a fixed 3D coordinate in meters.
type Position struct {
	X float64
	Y float64
	Z float64
}

// FlowRawStats holds the raw counters the engine tracks for one flow.
// Produced once per run and consumed exactly once by Reduce.
type FlowRawStats struct {
	TxPackets   uint64  // packets sent by the flow's source
	RxPackets   uint64  // packets delivered to the flow's destination
	LostPackets uint64  // packets sent but never delivered
	DelaySumS   float64 // sum of per-packet one-way delays (seconds)
}

// RawRunStats is everything the harness reads back from the engine after a
// run: the sink's cumulative byte count plus per-flow counters.
type RawRunStats struct {
	SinkTotalRxBytes uint64
	Flows            []FlowRawStats
}

// Engine is the capability surface the harness requires from a simulation
// backend. All radio, MAC, and transport behavior lives behind it; the
// harness asserts nothing about the models in use. Swapping backends must
// not change any harness contract.
//
// Engines are single-use: one topology, one RunUntil, one stats read, one
// Destroy. RunUntil blocks until simulated time reaches the stop time; there
// is no cancellation.
type Engine interface {
	// CreateNode adds a node with a fixed position. IDs must be unique.
	CreateNode(id string, pos Position) error
	// AttachWireless installs a wireless device on the node, configured by
	// mode and bound to the shared network identifier.
	AttachWireless(nodeID string, mode WirelessMode, networkID string) error
	// InstallStack installs the network/transport stack on every node
	// created so far and assigns addresses from the subnet.
	InstallStack(subnetCIDR string) error
	// InstallSink installs a greedy TCP receive sink on the node, active
	// during [startS, stopS].
	InstallSink(nodeID string, port uint16, startS, stopS float64) error
	// InstallSender installs a greedy TCP bulk sender on the node, directed
	// at targetID's sink, active during [startS, stopS].
	InstallSender(nodeID, targetID string, port uint16, segmentBytes int, startS, stopS float64) error
	// EnableFlowStats turns on per-flow counter collection.
	EnableFlowStats() error
	// RunUntil advances simulated time to stopS and returns. Scenario-fatal
	// on engine initialization failure (e.g. topology never built).
	RunUntil(stopS float64) error
	// SinkTotalRxBytes reports the sink's cumulative received bytes.
	SinkTotalRxBytes() uint64
	// FlowStats reports the per-flow raw counters collected during the run.
	FlowStats() []FlowRawStats
	// Destroy tears down all simulation state. The engine is unusable
	// afterwards.
	Destroy()
}

// EngineConfig carries harness-side knobs into a backend.
type EngineConfig struct {
	Verbose bool // enable backend event logging
}

// NewEngineFunc is the backend factory. Backend sub-packages set it in their
// init(); the runner refuses to start when it is nil and no explicit factory
// was supplied.
var NewEngineFunc func(cfg EngineConfig) Engine
