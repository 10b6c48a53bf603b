package wireless

import "github.com/sirupsen/logrus"

// event defines the interface for all backend events. Each event has a
// timestamp (microseconds of simulated time) and an Execute method that
// advances engine state when invoked.
type event interface {
	timestamp() int64
	execute(*Engine)
}

// eventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []event

func (eq eventQueue) Len() int           { return len(eq) }
func (eq eventQueue) Less(i, j int) bool { return eq[i].timestamp() < eq[j].timestamp() }
func (eq eventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(event))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// senderStartEvent marks a bulk sender's staggered start. Activity windows
// are evaluated by timestamp in deliverInterval, so this event only logs.
type senderStartEvent struct {
	time   int64
	sender *sender
}

func (e *senderStartEvent) timestamp() int64 { return e.time }

func (e *senderStartEvent) execute(eng *Engine) {
	eng.logf("<< SenderStart: %s -> %s at %dus", e.sender.nodeID, e.sender.targetID, e.time)
}

// senderStopEvent marks the shared application stop time.
type senderStopEvent struct {
	time   int64
	sender *sender
}

func (e *senderStopEvent) timestamp() int64 { return e.time }

func (e *senderStopEvent) execute(eng *Engine) {
	eng.logf("<< SenderStop: %s at %dus", e.sender.nodeID, e.time)
}

// serviceIntervalEvent advances one channel-sharing quantum and reschedules
// itself until the sink's window closes.
type serviceIntervalEvent struct {
	time int64
}

func (e *serviceIntervalEvent) timestamp() int64 { return e.time }

func (e *serviceIntervalEvent) execute(eng *Engine) {
	logrus.Tracef("<< ServiceInterval at %dus", e.time)
	eng.deliverInterval(e.time)
	next := e.time + serviceIntervalUs
	if next < eng.sink.stopUs {
		eng.schedule(&serviceIntervalEvent{time: next})
	}
}
