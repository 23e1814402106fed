package synth

import (
	"math"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// MelodyMaxAmp bounds the melody voice's contribution; the envelope never
// exceeds unity, so no rendered melody sample can pass this level.
const MelodyMaxAmp = 0.35

const melodyAttackSec = 0.005

var melodyAttackSamples = uint32(math.Round(melodyAttackSec * music.SampleRate))

// Melody renders a single pitched triangle tone per trigger: a short linear
// attack, then a linear decay that reaches exactly zero at the note's end.
// The envelope is a function of the elapsed sample count alone, so output is
// identical however the duration is split into blocks.
type Melody struct {
	phase      float64
	freq       float32
	pos        uint32
	durSamples uint32
	attSamples uint32
	active     bool
}

// Trigger latches a new note of the given fundamental and duration.
// Non-positive frequency or duration leaves the voice inactive.
func (m *Melody) Trigger(freq, durSec float32) {
	if freq <= 0 || durSec <= 0 {
		return
	}
	m.phase = 0
	m.freq = freq
	m.pos = 0
	m.durSamples = uint32(float64(durSec) * music.SampleRate)
	if m.durSamples == 0 {
		m.durSamples = 1
	}
	m.attSamples = melodyAttackSamples
	if m.attSamples >= m.durSamples {
		m.attSamples = m.durSamples / 2
	}
	m.active = true
}

// Active reports whether a note is still sounding.
func (m *Melody) Active() bool { return m.active }

// Process adds len(left) frames into the stereo buffers.
func (m *Melody) Process(left, right []float32) {
	if !m.active {
		return
	}
	for i := range left {
		if m.pos >= m.durSamples {
			m.active = false
			return
		}

		var env float32
		if m.pos < m.attSamples {
			env = float32(m.pos) / float32(m.attSamples)
		} else {
			env = float32(m.durSamples-m.pos) / float32(m.durSamples-m.attSamples)
		}

		m.phase += float64(m.freq) / music.SampleRate
		if m.phase >= 1 {
			m.phase -= 1
		}
		// triangle in [-1, 1]
		var tri float32
		if m.phase < 0.5 {
			tri = float32(4*m.phase - 1)
		} else {
			tri = float32(3 - 4*m.phase)
		}

		v := tri * env * MelodyMaxAmp
		// nudged left of center; gains stay at or below unity so the
		// voice never exceeds MelodyMaxAmp on either channel
		left[i] += v
		right[i] += v * 0.7

		m.pos++
	}
}
