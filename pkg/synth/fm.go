package synth

import (
	"math"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// FMVoice is a two-operator frequency-modulation voice: a sine carrier whose
// phase is offset by a sine modulator running at freq*ratio. Modulation depth
// and output level share one exponential envelope, giving the classic bright
// attack that mellows as the note dies away. Two instances serve the mid and
// bass registers; they differ only in trigger parameters and pan.
type FMVoice struct {
	carPhase   float64
	modPhase   float64
	freq       float32
	ratio      float32
	index      float32
	amp        float32
	env        float32
	envCoef    float32
	pos        uint32
	durSamples uint32
	panL, panR float32
	active     bool
}

// NewFMVoice returns a voice with the given constant stereo placement.
func NewFMVoice(panL, panR float32) FMVoice {
	return FMVoice{panL: panL, panR: panR}
}

// Trigger latches a new FM note. decay is an exponential rate in 1/ms: the
// envelope falls by a factor of e every 1/decay milliseconds. The note gates
// off hard at durSec even if the envelope has not yet reached the floor.
func (f *FMVoice) Trigger(freq, durSec, ratio, index, amp, decay float32) {
	if freq <= 0 || durSec <= 0 {
		return
	}
	f.carPhase = 0
	f.modPhase = 0
	f.freq = freq
	f.ratio = ratio
	f.index = index
	f.amp = amp
	f.env = 1
	f.envCoef = decayCoefPerMs(decay)
	f.pos = 0
	f.durSamples = uint32(float64(durSec) * music.SampleRate)
	if f.durSamples == 0 {
		f.durSamples = 1
	}
	f.active = true
}

// Active reports whether a note is still sounding.
func (f *FMVoice) Active() bool { return f.active }

// Process adds len(left) frames into the stereo buffers.
func (f *FMVoice) Process(left, right []float32) {
	if !f.active {
		return
	}
	carInc := twoPi * float64(f.freq) / music.SampleRate
	modInc := twoPi * float64(f.freq*f.ratio) / music.SampleRate
	for i := range left {
		if f.pos >= f.durSamples {
			f.active = false
			return
		}

		mod := math.Sin(f.modPhase) * float64(f.index*f.env)
		s := float32(math.Sin(f.carPhase+mod)) * f.amp * f.env

		left[i] += s * f.panL
		right[i] += s * f.panR

		f.carPhase = wrapPhase(f.carPhase + carInc)
		f.modPhase = wrapPhase(f.modPhase + modInc)
		f.env *= f.envCoef
		f.pos++
		if f.env < silenceFloor {
			f.env = 0
			f.active = false
			return
		}
	}
}
