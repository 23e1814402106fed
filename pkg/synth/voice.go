package synth

import (
	"math"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

const twoPi = 2 * math.Pi

// silenceFloor is the envelope level (about -80 dB) below which a voice
// deactivates outright instead of decaying into denormal territory.
const silenceFloor = 1e-4

// expCoef returns the per-sample multiplier of an exponential decay with the
// given time constant in seconds.
func expCoef(tauSec float64) float32 {
	return float32(math.Exp(-1.0 / (tauSec * music.SampleRate)))
}

// decayCoefPerMs returns the per-sample multiplier for a decay rate expressed
// in 1/ms: the level falls by a factor of e every 1/rate milliseconds.
func decayCoefPerMs(rate float32) float32 {
	if rate <= 0 {
		return 1
	}
	return float32(math.Exp(-float64(rate) * 1000.0 / music.SampleRate))
}

// wrapPhase keeps an accumulated radian phase in [0, 2π).
func wrapPhase(p float64) float64 {
	if p >= twoPi {
		p -= twoPi
	}
	return p
}
