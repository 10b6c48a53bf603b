package wireless

import "math"

// Coarse 802.11a link model. The constants mirror the usual engine defaults
// for a log-distance channel (reference loss 46.6777 dB at 1 m, exponent 3)
// and the standard OFDM rate ladder with per-rate receiver sensitivities.
// This is a throughput/delay/loss approximation for harness purposes, not a
// PHY reimplementation: everything is deterministic in the inputs.
const (
	txPowerDbm       = 16.02
	referenceLossDb  = 46.6777
	pathLossExponent = 3.0

	// macEfficiency is the fraction of the PHY rate left after contention,
	// interframe spacing, MAC ACKs, and TCP overhead under saturation.
	macEfficiency = 0.55

	// serviceIntervalUs is the channel-sharing quantum: active senders split
	// the cell's capacity equally per interval.
	serviceIntervalUs = 10_000

	// contentionDelayFactor scales per-packet queueing with the number of
	// stations contending for the medium.
	contentionDelayFactor = 1.5

	speedOfLightMps = 3.0e8

	// Control frames (TCP ACK carriers) ride the base rate.
	baseRateMbps = 6.0
	ackBytes     = 40
)

// rateStep is one rung of the 802.11a rate ladder.
type rateStep struct {
	mbps           float64
	sensitivityDbm float64
}

var rateLadder = []rateStep{
	{54, -65},
	{48, -66},
	{36, -70},
	{24, -74},
	{18, -77},
	{12, -79},
	{9, -81},
	{6, -82},
}

// pathLossDb is the log-distance path loss at d meters. Distances under the
// 1 m reference are clamped to it.
func pathLossDb(distanceM float64) float64 {
	if distanceM < 1 {
		distanceM = 1
	}
	return referenceLossDb + 10*pathLossExponent*math.Log10(distanceM)
}

// rxPowerDbm is the received signal power at d meters.
func rxPowerDbm(distanceM float64) float64 {
	return txPowerDbm - pathLossDb(distanceM)
}

// selectRate picks the fastest rate whose sensitivity the received power
// meets, returning the rung, the link margin in dB, and whether any rung is
// feasible at all. Out-of-range links report ok=false.
func selectRate(rxDbm float64) (rateStep, float64, bool) {
	for _, step := range rateLadder {
		if rxDbm >= step.sensitivityDbm {
			return step, rxDbm - step.sensitivityDbm, true
		}
	}
	return rateStep{}, 0, false
}

// residualLossRate is the deterministic fraction of sent segments that never
// arrive: a small per-contender collision term plus a penalty that grows as
// the link margin shrinks below 3 dB. Capped at 30%; out-of-range links are
// handled by the caller (total loss).
func residualLossRate(marginDb float64, contenders int) float64 {
	loss := 0.002 * float64(contenders)
	if marginDb < 3 {
		loss += (3 - marginDb) * 0.01
	}
	if loss > 0.3 {
		loss = 0.3
	}
	return loss
}
