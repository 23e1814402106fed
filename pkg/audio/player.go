// Package audio implements playback and file output around the synth engine
package audio

import (
	"sync"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/synth"
)

// Info is a snapshot of playback state for display.
type Info struct {
	Playing   bool
	Frames    uint64 // frames rendered since construction
	Step      uint64
	StepInSeg int
	Segment   uint64
	Density   float32
	Voices    [synth.NumVoices]bool
}

// Player is the concurrency shell around a Generator: the generator itself
// is strictly sequential, the player serializes render calls against
// control and inspection from other goroutines (the TUI, the audio thread).
type Player struct {
	mu      sync.Mutex
	gen     *synth.Generator
	playing bool
	frames  uint64
}

// NewPlayer wraps a generator. The player takes ownership; no other code
// may call the generator afterwards.
func NewPlayer(g *synth.Generator) *Player {
	return &Player{gen: g}
}

// Play starts rendering.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

// Stop pauses rendering; generator state is kept so playback resumes where
// it left off.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Toggle flips between playing and stopped and reports the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = !p.playing
	return p.playing
}

// Swap replaces the generator, e.g. on reseed, keeping the audio stream
// open. The frame counter restarts with the new generator.
func (p *Player) Swap(g *synth.Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen = g
	p.frames = 0
}

// SetDensity forwards a density change to the generator.
func (p *Player) SetDensity(q float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen.SetDensity(q)
}

// Seed returns the generator's construction seed.
func (p *Player) Seed() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.Seed()
}

// Clock returns the generator's timing constants.
func (p *Player) Clock() music.Clock {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.Clock()
}

// GenerateSamples fills the stereo buffers with the next audio, or silence
// when stopped. Called from the audio output goroutine.
func (p *Player) GenerateSamples(left, right []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		for i := range left {
			left[i] = 0
			right[i] = 0
		}
		return
	}
	p.gen.Generate(left, right)
	p.frames += uint64(len(left))
}

// Info returns a consistent snapshot of playback state.
func (p *Player) Info() Info {
	p.mu.Lock()
	defer p.mu.Unlock()

	step := p.gen.Step()
	return Info{
		Playing:   p.playing,
		Frames:    p.frames,
		Step:      step,
		StepInSeg: int(step % music.StepsPerSeg),
		Segment:   step / music.StepsPerSeg,
		Density:   p.gen.Density(),
		Voices:    p.gen.VoiceActive(),
	}
}
