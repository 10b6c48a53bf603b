package sim

import "errors"

// fakeEngine records every capability call so tests can assert on the exact
// topology the builder requested, and can be told to fail at any operation.
type engineCall struct {
	op           string
	nodeID       string
	pos          Position
	mode         WirelessMode
	network      string
	subnet       string
	target       string
	port         uint16
	segmentBytes int
	startS       float64
	stopS        float64
}

type fakeEngine struct {
	calls        []engineCall
	failOn       string // operation name that returns an error
	sinkBytes    uint64
	flows        []FlowRawStats
	destroyCount int
	ranUntilS    float64
}

var errFakeEngine = errors.New("engine exploded")

func (f *fakeEngine) fail(op string) error {
	if f.failOn == op {
		return errFakeEngine
	}
	return nil
}

func (f *fakeEngine) CreateNode(id string, pos Position) error {
	f.calls = append(f.calls, engineCall{op: "CreateNode", nodeID: id, pos: pos})
	return f.fail("CreateNode")
}

func (f *fakeEngine) AttachWireless(nodeID string, mode WirelessMode, networkID string) error {
	f.calls = append(f.calls, engineCall{op: "AttachWireless", nodeID: nodeID, mode: mode, network: networkID})
	return f.fail("AttachWireless")
}

func (f *fakeEngine) InstallStack(subnetCIDR string) error {
	f.calls = append(f.calls, engineCall{op: "InstallStack", subnet: subnetCIDR})
	return f.fail("InstallStack")
}

func (f *fakeEngine) InstallSink(nodeID string, port uint16, startS, stopS float64) error {
	f.calls = append(f.calls, engineCall{op: "InstallSink", nodeID: nodeID, port: port, startS: startS, stopS: stopS})
	return f.fail("InstallSink")
}

func (f *fakeEngine) InstallSender(nodeID, targetID string, port uint16, segmentBytes int, startS, stopS float64) error {
	f.calls = append(f.calls, engineCall{
		op: "InstallSender", nodeID: nodeID, target: targetID, port: port,
		segmentBytes: segmentBytes, startS: startS, stopS: stopS,
	})
	return f.fail("InstallSender")
}

func (f *fakeEngine) EnableFlowStats() error {
	f.calls = append(f.calls, engineCall{op: "EnableFlowStats"})
	return f.fail("EnableFlowStats")
}

func (f *fakeEngine) RunUntil(stopS float64) error {
	f.ranUntilS = stopS
	return f.fail("RunUntil")
}

func (f *fakeEngine) SinkTotalRxBytes() uint64 { return f.sinkBytes }

func (f *fakeEngine) FlowStats() []FlowRawStats { return f.flows }

func (f *fakeEngine) Destroy() { f.destroyCount++ }

// ops returns just the operation names, in call order.
func (f *fakeEngine) ops() []string {
	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, c.op)
	}
	return names
}

// callsTo filters the recorded calls by operation name.
func (f *fakeEngine) callsTo(op string) []engineCall {
	var out []engineCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}
