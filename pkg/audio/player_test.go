package audio

import (
	"testing"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

func TestPlayerStoppedProducesSilence(t *testing.T) {
	p := NewPlayer(newTestGenerator(t))

	left := make([]float32, 256)
	right := make([]float32, 256)
	for i := range left {
		left[i] = 0.5
		right[i] = -0.5
	}

	p.GenerateSamples(left, right)
	for i := range left {
		if left[i] != 0 || right[i] != 0 {
			t.Fatal("stopped player produced non-silence")
		}
	}
	if info := p.Info(); info.Frames != 0 || info.Playing {
		t.Errorf("Info() = %+v, want stopped with zero frames", info)
	}
}

func TestPlayerAdvancesWhilePlaying(t *testing.T) {
	p := NewPlayer(newTestGenerator(t))
	p.Play()

	left := make([]float32, 1024)
	right := make([]float32, 1024)
	for i := 0; i < 8; i++ {
		p.GenerateSamples(left, right)
	}

	info := p.Info()
	if !info.Playing {
		t.Error("Info().Playing = false after Play")
	}
	if info.Frames != 8*1024 {
		t.Errorf("Frames = %d, want %d", info.Frames, 8*1024)
	}
	if wantStep := info.Frames / uint64(p.Clock().StepSamples); info.Step != wantStep {
		t.Errorf("Step = %d, want %d", info.Step, wantStep)
	}
	if info.StepInSeg != int(info.Step%music.StepsPerSeg) {
		t.Errorf("StepInSeg = %d inconsistent with Step %d", info.StepInSeg, info.Step)
	}
}

func TestPlayerToggle(t *testing.T) {
	p := NewPlayer(newTestGenerator(t))
	if !p.Toggle() {
		t.Error("first Toggle() = false, want true")
	}
	if p.Toggle() {
		t.Error("second Toggle() = true, want false")
	}
}

func TestPlayerSetDensity(t *testing.T) {
	p := NewPlayer(newTestGenerator(t))
	p.SetDensity(0.75)
	if got := p.Info().Density; got != 0.75 {
		t.Errorf("Density = %g, want 0.75", got)
	}
}

func TestPlayerSeedAndClock(t *testing.T) {
	p := NewPlayer(newTestGenerator(t))
	if p.Seed() != 0x12345678 {
		t.Errorf("Seed() = %#x", p.Seed())
	}
	if p.Clock().BPM != 120 {
		t.Errorf("Clock().BPM = %g", p.Clock().BPM)
	}
}
