package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce_Throughput(t *testing.T) {
	// 1 MB over a 9 s window: (1e6 * 8) / (9 * 1e6) Mb/s
	got := Reduce(5, 1_000_000, 9.0, nil)
	assert.InDelta(t, 0.8889, got.ThroughputMbps, 0.01)
	assert.Equal(t, 5.0, got.DistanceM)
}

func TestReduce_AvgDelayAcrossFlows(t *testing.T) {
	flows := []FlowRawStats{
		{RxPackets: 100, DelaySumS: 0.5},
		{RxPackets: 50, DelaySumS: 0.3},
	}
	got := Reduce(5, 0, 9.0, flows)
	// (0.8 / 150) * 1000 ms
	assert.InDelta(t, 5.33, got.AvgDelayMs, 0.01)
}

func TestReduce_LossAcrossFlows(t *testing.T) {
	flows := []FlowRawStats{
		{TxPackets: 200, LostPackets: 10},
		{TxPackets: 100, LostPackets: 5},
	}
	got := Reduce(5, 0, 9.0, flows)
	// 100 * 15 / 300
	assert.Equal(t, 5.0, got.LossPercent)
}

func TestReduce_ZeroRxYieldsZeroDelay(t *testing.T) {
	flows := []FlowRawStats{{TxPackets: 40, LostPackets: 40, DelaySumS: 0}}
	got := Reduce(5, 0, 9.0, flows)
	assert.Equal(t, 0.0, got.AvgDelayMs)
}

func TestReduce_ZeroTxYieldsZeroLoss(t *testing.T) {
	got := Reduce(5, 0, 9.0, []FlowRawStats{})
	assert.Equal(t, 0.0, got.LossPercent)
	assert.Equal(t, 0.0, got.AvgDelayMs)
	assert.Equal(t, 0.0, got.ThroughputMbps)
}

func TestReduce_SumsAllFlowsUnconditionally(t *testing.T) {
	// Reverse/control flows count too; nothing filters on direction.
	flows := []FlowRawStats{
		{TxPackets: 100, RxPackets: 90, LostPackets: 10, DelaySumS: 0.9},
		{TxPackets: 90, RxPackets: 90, LostPackets: 0, DelaySumS: 0.09}, // ACK stream
	}
	got := Reduce(20, 0, 9.0, flows)
	assert.InDelta(t, (0.99/180)*1000, got.AvgDelayMs, 1e-9)
	assert.InDelta(t, 100.0*10/190, got.LossPercent, 1e-9)
}

func TestReduce_MetricsStayInBounds(t *testing.T) {
	cases := []struct {
		name  string
		bytes uint64
		flows []FlowRawStats
	}{
		{"no traffic", 0, nil},
		{"total loss", 0, []FlowRawStats{{TxPackets: 500, LostPackets: 500}}},
		{"clean link", 10_000_000, []FlowRawStats{{TxPackets: 500, RxPackets: 500, DelaySumS: 1.2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reduce(10, tc.bytes, 9.0, tc.flows)
			assert.GreaterOrEqual(t, got.LossPercent, 0.0)
			assert.LessOrEqual(t, got.LossPercent, 100.0)
			assert.GreaterOrEqual(t, got.AvgDelayMs, 0.0)
			assert.GreaterOrEqual(t, got.ThroughputMbps, 0.0)
		})
	}
}
