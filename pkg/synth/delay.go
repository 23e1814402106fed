package synth

import "github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"

// maxDelaySamples sizes the ring buffers: one full second per channel.
const maxDelaySamples = music.SampleRate

// maxFeedback caps the feedback coefficient strictly below unity so the
// echo tail is a converging geometric series.
const maxFeedback = 0.99

// Delay is a stereo feedback delay line. The ring buffers persist across
// blocks, so echoes land correctly wherever the block boundaries fall.
type Delay struct {
	bufL    []float32
	bufR    []float32
	pos     int
	samples int // current delay length
}

// NewDelay returns a delay line set to its maximum length.
func NewDelay() Delay {
	return Delay{
		bufL:    make([]float32, maxDelaySamples),
		bufR:    make([]float32, maxDelaySamples),
		samples: maxDelaySamples,
	}
}

// SetTime sets the delay length in samples, clamped to the buffer size.
func (d *Delay) SetTime(samples int) {
	if samples < 1 {
		samples = 1
	}
	if samples > len(d.bufL) {
		samples = len(d.bufL)
	}
	d.samples = samples
}

// Process runs the buffers through the delay in place:
// out = in + feedback*delayed, with out written back into the ring so each
// echo spawns the next.
func (d *Delay) Process(left, right []float32, feedback float32) {
	if feedback > maxFeedback {
		feedback = maxFeedback
	}
	if feedback < 0 {
		feedback = 0
	}
	n := len(d.bufL)
	for i := range left {
		read := d.pos - d.samples
		if read < 0 {
			read += n
		}

		outL := left[i] + feedback*d.bufL[read]
		outR := right[i] + feedback*d.bufR[read]
		d.bufL[d.pos] = outL
		d.bufR[d.pos] = outR
		left[i] = outL
		right[i] = outR

		d.pos++
		if d.pos >= n {
			d.pos = 0
		}
	}
}
