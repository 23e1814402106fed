package synth

// LimiterCeiling is the hard output bound: no sample leaving the limiter
// exceeds this magnitude.
const LimiterCeiling = 0.95

// limiterRelease is the per-sample pole of the gain recovery; roughly an
// 80 ms release.
var limiterRelease = expCoef(0.080)

// Limiter is a peak limiter with instant attack and smooth release. When a
// sample would exceed the ceiling the gain snaps down so the louder channel
// lands exactly on it; otherwise the gain eases back toward unity.
type Limiter struct {
	gain float32
}

// NewLimiter returns a limiter at unity gain.
func NewLimiter() Limiter {
	return Limiter{gain: 1}
}

// Process limits the stereo buffers in place. Gain state carries across
// blocks so release behavior does not depend on block boundaries.
func (l *Limiter) Process(left, right []float32) {
	g := l.gain
	for i := range left {
		peak := left[i]
		if peak < 0 {
			peak = -peak
		}
		r := right[i]
		if r < 0 {
			r = -r
		}
		if r > peak {
			peak = r
		}

		if peak*g > LimiterCeiling {
			g = LimiterCeiling / peak
		} else {
			g = 1 - (1-g)*limiterRelease
		}

		left[i] = clampToCeiling(left[i] * g)
		right[i] = clampToCeiling(right[i] * g)
	}
	l.gain = g
}

// clampToCeiling catches the one-ulp overshoot that peak*(ceiling/peak) can
// produce in float32, keeping the output bound exact.
func clampToCeiling(v float32) float32 {
	if v > LimiterCeiling {
		return LimiterCeiling
	}
	if v < -LimiterCeiling {
		return -LimiterCeiling
	}
	return v
}
