package synth

import (
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// maxBlockFrames bounds the internal sub-block size. Purely an
// implementation chunking detail; callers may request any frame count.
const maxBlockFrames = 1024

// delayFeedback is the calibrated echo mix for the whole render.
const delayFeedback = 0.45

// delaySteps places the echo on the dotted eighth.
const delaySteps = 3

// DefaultDensity is the initial value of the density control q.
const DefaultDensity = 0.5

// NumVoices is the number of independent synthesis voices.
const NumVoices = 6

// VoiceNames labels the voices in processing order.
var VoiceNames = [NumVoices]string{"kick", "snare", "hat", "melody", "mid-fm", "bass-fm"}

// Generator owns the clock, the six voices, the effects chain, and the
// sequencer state, and drives the whole render. Everything it produces is a
// pure function of (seed, bpm, q): no wall clock, no global randomness, and
// no dependence on how callers slice their Generate requests.
//
// A Generator is not safe for concurrent use; render calls must be strictly
// sequential. Independent generators share nothing and may run in parallel.
type Generator struct {
	clock music.Clock
	seed  uint32
	rng   Rand

	step       uint64
	posInStep  uint32
	eventIndex uint64
	q          float32

	kick   Kick
	snare  Snare
	hat    Hat
	melody Melody
	midFM  FMVoice
	bassFM FMVoice

	delay   Delay
	limiter Limiter
}

// NewGenerator builds a generator for the given seed and tempo. Any 32-bit
// seed is valid; only a non-positive tempo is rejected.
func NewGenerator(seed uint32, bpm float64) (*Generator, error) {
	clock, err := music.NewClock(bpm)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		clock:   clock,
		seed:    seed,
		rng:     NewRand(seed),
		q:       DefaultDensity,
		midFM:   NewFMVoice(0.9, 1.1),
		bassFM:  NewFMVoice(1.0, 1.0),
		delay:   NewDelay(),
		limiter: NewLimiter(),
	}
	g.delay.SetTime(int(clock.StepSamples) * delaySteps)
	return g, nil
}

// Seed returns the construction seed.
func (g *Generator) Seed() uint32 { return g.seed }

// Clock returns the timing constants in use.
func (g *Generator) Clock() music.Clock { return g.clock }

// Step returns the monotonic step counter.
func (g *Generator) Step() uint64 { return g.step }

// PosInStep returns the sample offset within the current step.
func (g *Generator) PosInStep() uint32 { return g.posInStep }

// EventIndex returns the count of trigger decisions made so far.
func (g *Generator) EventIndex() uint64 { return g.eventIndex }

// Density returns the current density control q.
func (g *Generator) Density() float32 { return g.q }

// SetDensity sets the density control q, clamped to [0, 1]. It scales the
// trigger probability of the non-backbone hits (ghost kicks and snares,
// off-grid hats, melody and mid-FM notes); the four-on-the-floor kick,
// backbeat snare, and bar-root bass are unaffected. Takes effect from the
// next step boundary.
func (g *Generator) SetDensity(q float32) {
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	g.q = q
}

// VoiceActive reports which voices are currently sounding, in VoiceNames
// order.
func (g *Generator) VoiceActive() [NumVoices]bool {
	return [NumVoices]bool{
		g.kick.Active(),
		g.snare.Active(),
		g.hat.Active(),
		g.melody.Active(),
		g.midFM.Active(),
		g.bassFM.Active(),
	}
}

// Generate fills the stereo buffers with the next len(left) frames of the
// composition, overwriting their contents. The request is processed in
// sub-blocks of at most maxBlockFrames that never cross a step boundary, so
// trigger decisions always land sample-accurately on step starts.
func (g *Generator) Generate(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for off := 0; off < n; {
		if g.posInStep == 0 {
			g.triggerStep()
		}

		blk := n - off
		if blk > maxBlockFrames {
			blk = maxBlockFrames
		}
		if rem := int(g.clock.StepSamples - g.posInStep); blk > rem {
			blk = rem
		}

		l := left[off : off+blk]
		r := right[off : off+blk]
		for i := range l {
			l[i] = 0
			r[i] = 0
		}

		g.kick.Process(l, r)
		g.snare.Process(l, r)
		g.hat.Process(l, r)
		g.melody.Process(l, r)
		g.midFM.Process(l, r)
		g.bassFM.Process(l, r)
		g.delay.Process(l, r, delayFeedback)
		g.limiter.Process(l, r)

		g.posInStep += uint32(blk)
		if g.posInStep >= g.clock.StepSamples {
			g.posInStep = 0
			g.step++
		}
		off += blk
	}
}

// Render allocates stereo buffers and fills them with the next frameCount
// frames from the generator. Convenience wrapper over Generate for callers
// that do not manage their own buffers.
func Render(g *Generator, frameCount int) (left, right []float32) {
	left = make([]float32, frameCount)
	right = make([]float32, frameCount)
	g.Generate(left, right)
	return left, right
}

// nextEvent consumes one draw from the seeded stream and counts it as a
// trigger decision.
func (g *Generator) nextEvent() float32 {
	g.eventIndex++
	return g.rng.Float32()
}

// stepSeconds is the duration of one sequencer step.
func (g *Generator) stepSeconds() float32 {
	return float32(g.clock.StepSamples) / music.SampleRate
}

// triggerStep decides, for the step about to render, which voices fire and
// with what parameters. Every voice consumes a fixed number of draws per
// step whether or not it fires, so the stream position after N steps does
// not depend on any earlier outcome.
func (g *Generator) triggerStep() {
	pos := int(g.step % music.StepsPerSeg)
	q := g.q
	stepSec := g.stepSeconds()

	// Kick: four on the floor, plus rare ghost hits between beats.
	r := g.nextEvent()
	if pos%4 == 0 || r < 0.08*q {
		g.kick.Trigger()
	}

	// Snare: backbeats on steps 4 and 12, sparse ghosts on offbeats.
	r = g.nextEvent()
	if pos == 4 || pos == 12 || (pos%2 == 1 && r < 0.06*q) {
		g.snare.Trigger()
	}

	// Hat: straight eighths, with q filling in the sixteenths.
	r = g.nextEvent()
	if pos%2 == 0 || r < 0.6*q {
		g.hat.Trigger()
	}

	// Melody: offbeat eighths, pentatonic, one or two steps long.
	r = g.nextEvent()
	pitch := g.nextEvent()
	if pos%4 == 2 && r < 0.25+0.55*q {
		degree := int(pitch * 8)
		durSteps := float32(1 + int(pitch*16)%2)
		g.melody.Trigger(float32(music.PentatonicFreq(degree, 1)), durSteps*stepSec)
	}

	// Mid FM: syncopated arpeggio bells in the upper register.
	r = g.nextEvent()
	pitch = g.nextEvent()
	if (pos == 3 || pos == 7 || pos == 11 || pos == 14) && r < 0.2+0.5*q {
		degree := int(pitch * 10)
		g.midFM.Trigger(float32(music.PentatonicFreq(degree, 2)),
			2*stepSec, 2.0, 3.0+4.0*pitch, 0.22, 0.012)
	}

	// Bass FM: root on the bar, fifth answering mid-bar.
	r = g.nextEvent()
	if pos == 0 || (pos == 8 && r < 0.3+0.6*q) {
		degree := 0
		if pos == 8 && r < 0.3 {
			degree = 3
		}
		g.bassFM.Trigger(float32(music.PentatonicFreq(degree, -1)),
			4*stepSec, 1.0, 2.5, 0.30, 0.004)
	}
}
