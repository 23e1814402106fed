package synth

import (
	"math"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// Kick timbre constants, tuned once.
const (
	kickStartHz = 160.0
	kickEndHz   = 45.0
	kickAmp     = 0.85
)

var (
	kickAmpCoef   = expCoef(0.055) // ~0.15 s audible tail
	kickPitchCoef = expCoef(0.012) // fast downward sweep
)

// Kick is a pitch-swept sine with an exponential amplitude envelope.
type Kick struct {
	phase    float64
	env      float32
	pitchEnv float32
	active   bool
}

// Trigger restarts the kick from the top of its sweep.
func (k *Kick) Trigger() {
	k.phase = 0
	k.env = 1
	k.pitchEnv = 1
	k.active = true
}

// Active reports whether the voice is still sounding.
func (k *Kick) Active() bool { return k.active }

// Process adds len(left) frames into the stereo buffers and advances the
// voice state by the same amount. Inactive voices add nothing.
func (k *Kick) Process(left, right []float32) {
	if !k.active {
		return
	}
	for i := range left {
		freq := kickEndHz + (kickStartHz-kickEndHz)*float64(k.pitchEnv)
		k.phase = wrapPhase(k.phase + twoPi*freq/music.SampleRate)
		s := float32(math.Sin(k.phase)) * k.env * kickAmp
		left[i] += s
		right[i] += s

		k.env *= kickAmpCoef
		k.pitchEnv *= kickPitchCoef
		if k.env < silenceFloor {
			k.env = 0
			k.active = false
			return
		}
	}
}
