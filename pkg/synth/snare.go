package synth

import (
	"math"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// Snare timbre constants.
const (
	snareToneHz   = 190.0
	snareToneAmp  = 0.25
	snareNoiseAmp = 0.45
	snareSeed     = 0x5EEDFACE
)

var (
	snareToneCoef  = expCoef(0.035)
	snareNoiseCoef = expCoef(0.045)
)

// Snare is a low tone plus a noise burst, each with its own decay. The noise
// stream is reseeded on every trigger so a hit sounds the same no matter how
// many came before it.
type Snare struct {
	phase    float64
	toneEnv  float32
	noiseEnv float32
	noise    Rand
	active   bool
}

// Trigger restarts the snare hit.
func (s *Snare) Trigger() {
	s.phase = 0
	s.toneEnv = 1
	s.noiseEnv = 1
	s.noise = NewRand(snareSeed)
	s.active = true
}

// Active reports whether the voice is still sounding.
func (s *Snare) Active() bool { return s.active }

// Process adds len(left) frames into the stereo buffers.
func (s *Snare) Process(left, right []float32) {
	if !s.active {
		return
	}
	for i := range left {
		s.phase = wrapPhase(s.phase + twoPi*snareToneHz/music.SampleRate)
		tone := float32(math.Sin(s.phase)) * s.toneEnv * snareToneAmp
		n := (s.noise.Float32()*2 - 1) * s.noiseEnv * snareNoiseAmp

		v := tone + n
		left[i] += v
		right[i] += v

		s.toneEnv *= snareToneCoef
		s.noiseEnv *= snareNoiseCoef
		if s.noiseEnv < silenceFloor && s.toneEnv < silenceFloor {
			s.toneEnv = 0
			s.noiseEnv = 0
			s.active = false
			return
		}
	}
}
