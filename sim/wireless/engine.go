// Package wireless is the bundled simulation backend: a single 802.11a cell
// modeled as a deterministic discrete-event system. Link rates follow a
// log-distance path-loss ladder, saturation goodput is shared equally among
// active senders per service interval, and loss/delay grow with contention
// and shrinking link margin. Identical inputs produce identical counters —
// there is no randomness anywhere in this package.
package wireless

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	sim "github.com/wifi-study/wifi-study/sim"
)

// init registers the backend with the harness.
func init() {
	sim.NewEngineFunc = func(cfg sim.EngineConfig) sim.Engine {
		return New(cfg)
	}
}

type node struct {
	id       string
	pos      sim.Position
	mode     sim.WirelessMode
	network  string
	attached bool
	hasStack bool
	addr     string
}

type sinkApp struct {
	nodeID  string
	port    uint16
	startUs int64
	stopUs  int64
	rxBytes uint64
}

// sender is one greedy TCP bulk source plus the flow accounting for its
// data direction and the reverse ACK stream.
type sender struct {
	nodeID       string
	targetID     string
	port         uint16
	segmentBytes int
	startUs      int64
	stopUs       int64

	// link parameters, resolved once at RunUntil
	rateMbps   float64
	marginDb   float64
	lossRate   float64
	propDelayS float64
	inRange    bool

	// fractional carry-over between service intervals keeps the byte and
	// loss accounting exact without per-packet events
	carryBytes float64
	carryLost  float64

	dataFlow sim.FlowRawStats
	ackFlow  sim.FlowRawStats
}

// Engine holds one scenario's world: nodes, applications, flow counters,
// the event queue, and the integer microsecond clock. Engines are
// single-use; Destroy tears everything down.
type Engine struct {
	cfg       sim.EngineConfig
	nodes     map[string]*node
	sink      *sinkApp
	senders   []*sender
	flowStats bool

	clock     int64
	events    eventQueue
	ran       bool
	destroyed bool
}

// New creates an empty engine world.
func New(cfg sim.EngineConfig) *Engine {
	return &Engine{
		cfg:    cfg,
		nodes:  make(map[string]*node),
		events: make(eventQueue, 0),
	}
}

// logf routes backend event logging: Info when the harness asked for
// verbose engine output, Debug otherwise.
func (e *Engine) logf(format string, args ...any) {
	if e.cfg.Verbose {
		logrus.Infof(format, args...)
		return
	}
	logrus.Debugf(format, args...)
}

// schedule pushes an event into the engine's event queue.
func (e *Engine) schedule(ev event) {
	heap.Push(&e.events, ev)
}

func (e *Engine) CreateNode(id string, pos sim.Position) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	if id == "" {
		return errors.New("empty node id")
	}
	if _, exists := e.nodes[id]; exists {
		return fmt.Errorf("node %q already exists", id)
	}
	e.nodes[id] = &node{id: id, pos: pos}
	return nil
}

func (e *Engine) AttachWireless(nodeID string, mode sim.WirelessMode, networkID string) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	n, ok := e.nodes[nodeID]
	if !ok {
		return fmt.Errorf("unknown node %q", nodeID)
	}
	if n.attached {
		return fmt.Errorf("node %q already has a wireless device", nodeID)
	}
	if mode != sim.ModeAccessPoint && mode != sim.ModeStation {
		return fmt.Errorf("unknown wireless mode %q", mode)
	}
	if networkID == "" {
		return errors.New("empty network identifier")
	}
	n.mode = mode
	n.network = networkID
	n.attached = true
	return nil
}

// InstallStack assigns one address per node. Assignment order is not
// significant: addresses are cosmetic in this backend, traffic accounting
// is keyed by node id.
func (e *Engine) InstallStack(subnetCIDR string) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	if len(e.nodes) == 0 {
		return errors.New("no nodes to install a stack on")
	}
	base, _, ok := strings.Cut(subnetCIDR, "/")
	if !ok {
		return fmt.Errorf("malformed subnet %q", subnetCIDR)
	}
	prefix := base[:strings.LastIndex(base, ".")+1]
	host := 1
	for _, n := range e.nodes {
		if !n.attached {
			return fmt.Errorf("node %q has no wireless device", n.id)
		}
		n.hasStack = true
		n.addr = fmt.Sprintf("%s%d", prefix, host)
		host++
	}
	return nil
}

func (e *Engine) InstallSink(nodeID string, port uint16, startS, stopS float64) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	n, ok := e.nodes[nodeID]
	if !ok {
		return fmt.Errorf("unknown node %q", nodeID)
	}
	if !n.hasStack {
		return fmt.Errorf("node %q has no network stack", nodeID)
	}
	if e.sink != nil {
		return errors.New("sink already installed")
	}
	if stopS <= startS {
		return fmt.Errorf("sink window [%v, %v] is empty", startS, stopS)
	}
	e.sink = &sinkApp{nodeID: nodeID, port: port, startUs: usec(startS), stopUs: usec(stopS)}
	return nil
}

func (e *Engine) InstallSender(nodeID, targetID string, port uint16, segmentBytes int, startS, stopS float64) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	n, ok := e.nodes[nodeID]
	if !ok {
		return fmt.Errorf("unknown node %q", nodeID)
	}
	if !n.hasStack {
		return fmt.Errorf("node %q has no network stack", nodeID)
	}
	if e.sink == nil || e.sink.nodeID != targetID || e.sink.port != port {
		return fmt.Errorf("no sink at %s:%d", targetID, port)
	}
	if segmentBytes <= 0 {
		return fmt.Errorf("segment size must be positive, got %d", segmentBytes)
	}
	if stopS <= startS {
		return fmt.Errorf("sender window [%v, %v] is empty", startS, stopS)
	}
	e.senders = append(e.senders, &sender{
		nodeID:       nodeID,
		targetID:     targetID,
		port:         port,
		segmentBytes: segmentBytes,
		startUs:      usec(startS),
		stopUs:       usec(stopS),
	})
	return nil
}

func (e *Engine) EnableFlowStats() error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	e.flowStats = true
	return nil
}

// RunUntil resolves every sender's link, schedules the application and
// service-interval events, and drains the event queue up to stopS. The call
// blocks until simulated time reaches the stop time; engines run once.
func (e *Engine) RunUntil(stopS float64) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	if e.ran {
		return errors.New("engine already ran; create a fresh one per scenario")
	}
	if e.sink == nil {
		return errors.New("no sink installed")
	}
	if len(e.senders) == 0 {
		return errors.New("no senders installed")
	}
	stopUs := usec(stopS)
	if stopUs < e.sink.stopUs {
		return fmt.Errorf("stop time %vs precedes sink stop", stopS)
	}

	for _, s := range e.senders {
		if err := e.resolveLink(s); err != nil {
			return err
		}
		e.schedule(&senderStartEvent{time: s.startUs, sender: s})
		e.schedule(&senderStopEvent{time: s.stopUs, sender: s})
	}
	e.schedule(&serviceIntervalEvent{time: e.sink.startUs})

	for len(e.events) > 0 {
		ev := heap.Pop(&e.events).(event)
		if ev.timestamp() > stopUs {
			break
		}
		e.clock = ev.timestamp()
		ev.execute(e)
	}
	e.clock = stopUs
	e.ran = true
	return nil
}

// resolveLink computes the static link parameters between a sender and the
// sink node from their positions.
func (e *Engine) resolveLink(s *sender) error {
	src, ok := e.nodes[s.nodeID]
	if !ok {
		return fmt.Errorf("unknown node %q", s.nodeID)
	}
	dst, ok := e.nodes[s.targetID]
	if !ok {
		return fmt.Errorf("unknown node %q", s.targetID)
	}
	d := distance(src.pos, dst.pos)
	s.propDelayS = d / speedOfLightMps

	step, margin, inRange := selectRate(rxPowerDbm(d))
	if !inRange {
		// The station still transmits at the base rate but nothing arrives.
		s.rateMbps = baseRateMbps
		s.lossRate = 1.0
		e.logf("link %s -> %s: %.1f m, out of range", s.nodeID, s.targetID, d)
		return nil
	}
	s.inRange = true
	s.rateMbps = step.mbps
	s.marginDb = margin
	s.lossRate = residualLossRate(margin, len(e.senders))
	e.logf("link %s -> %s: %.1f m, rx %.1f dBm, rate %v Mb/s, margin %.1f dB",
		s.nodeID, s.targetID, d, rxPowerDbm(d), step.mbps, margin)
	return nil
}

// deliverInterval moves one service quantum of traffic: every sender active
// at time t gets an equal airtime share at its own link rate, segments it,
// applies the deterministic loss fraction, and credits the survivors to the
// sink. Fractional bytes and losses carry into the next interval so the
// totals stay exact.
func (e *Engine) deliverInterval(t int64) {
	if t < e.sink.startUs || t >= e.sink.stopUs {
		return
	}
	intervalUs := int64(serviceIntervalUs)
	if rem := e.sink.stopUs - t; rem < intervalUs {
		intervalUs = rem
	}
	intervalS := float64(intervalUs) / 1e6

	var active []*sender
	for _, s := range e.senders {
		if s.startUs <= t && t < s.stopUs {
			active = append(active, s)
		}
	}
	n := len(active)
	if n == 0 {
		return
	}

	for _, s := range active {
		goodput := s.rateMbps * 1e6 * macEfficiency / float64(n) // bit/s
		s.carryBytes += goodput * intervalS / 8

		segs := math.Floor(s.carryBytes / float64(s.segmentBytes))
		s.carryBytes -= segs * float64(s.segmentBytes)
		if segs == 0 {
			continue
		}

		s.carryLost += segs * s.lossRate
		lost := math.Floor(s.carryLost)
		s.carryLost -= lost
		delivered := segs - lost

		s.dataFlow.TxPackets += uint64(segs)
		s.dataFlow.LostPackets += uint64(lost)
		s.dataFlow.RxPackets += uint64(delivered)

		txTimeS := float64(s.segmentBytes*8) / (s.rateMbps * 1e6)
		perPacketDelayS := s.propDelayS + txTimeS*float64(n)*contentionDelayFactor
		s.dataFlow.DelaySumS += delivered * perPacketDelayS
		e.sink.rxBytes += uint64(delivered) * uint64(s.segmentBytes)

		// One TCP ACK rides back per delivered segment, at the base rate.
		if delivered > 0 {
			ackDelayS := s.propDelayS + float64(ackBytes*8)/(baseRateMbps*1e6)
			s.ackFlow.TxPackets += uint64(delivered)
			s.ackFlow.RxPackets += uint64(delivered)
			s.ackFlow.DelaySumS += delivered * ackDelayS
		}
	}
}

func (e *Engine) SinkTotalRxBytes() uint64 {
	if e.sink == nil {
		return 0
	}
	return e.sink.rxBytes
}

// FlowStats reports one record per observed flow: the station-to-AP data
// flow and, when any segment was delivered, the AP-to-station ACK flow.
// Returns nil unless flow statistics were enabled before the run.
func (e *Engine) FlowStats() []sim.FlowRawStats {
	if !e.flowStats {
		return nil
	}
	var flows []sim.FlowRawStats
	for _, s := range e.senders {
		if s.dataFlow.TxPackets > 0 {
			flows = append(flows, s.dataFlow)
		}
		if s.ackFlow.TxPackets > 0 {
			flows = append(flows, s.ackFlow)
		}
	}
	return flows
}

// Destroy discards all simulation state. The engine cannot be reused.
func (e *Engine) Destroy() {
	e.destroyed = true
	e.nodes = nil
	e.sink = nil
	e.senders = nil
	e.events = nil
}

func usec(s float64) int64 {
	return int64(math.Round(s * 1e6))
}

func distance(a, b sim.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
