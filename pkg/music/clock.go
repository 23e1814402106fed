// Package music implements the musical timing model and note tables
package music

import (
	"fmt"
	"math"
)

// SampleRate is the fixed process-wide audio sample rate in Hz.
const SampleRate = 44100

// Sequencer grid: 16th-note steps in 4/4 time, one segment per bar.
const (
	StepsPerBeat = 4
	BeatsPerSeg  = 4
	StepsPerSeg  = StepsPerBeat * BeatsPerSeg // 16
)

// Clock holds the sample-domain timing constants derived from a tempo.
// All fields are pure functions of BPM and SampleRate; a Clock is never
// mutated after construction.
type Clock struct {
	BPM         float64
	StepSamples uint32  // samples per sequencer step
	SegFrames   uint32  // frames per loopable segment (one bar)
	SegSeconds  float64 // segment duration in seconds
}

// NewClock derives timing constants for the given tempo.
// Step duration is rounded to the nearest sample rather than truncated,
// so long renders do not accumulate phase drift against the nominal tempo.
func NewClock(bpm float64) (Clock, error) {
	if bpm <= 0 {
		return Clock{}, fmt.Errorf("music: tempo must be positive, got %g", bpm)
	}
	stepSamples := uint32(math.Round(SampleRate * 60.0 / bpm / StepsPerBeat))
	if stepSamples == 0 {
		return Clock{}, fmt.Errorf("music: tempo %g rounds to a zero-sample step at %d Hz", bpm, SampleRate)
	}
	segFrames := stepSamples * StepsPerSeg
	return Clock{
		BPM:         bpm,
		StepSamples: stepSamples,
		SegFrames:   segFrames,
		SegSeconds:  float64(segFrames) / SampleRate,
	}, nil
}

// SegmentsFor returns the number of whole segments closest to the given
// duration in seconds, never fewer than one. Renders are quantized to whole
// segments so the output loops seamlessly.
func (c Clock) SegmentsFor(seconds float64) uint32 {
	n := uint32(seconds/c.SegSeconds + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
