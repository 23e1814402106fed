package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/audio"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/synth"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/tui"
)

func main() {
	seedStr := flag.String("seed", "0x12345678", "32-bit generator seed (decimal or 0x hex)")
	bpm := flag.Float64("bpm", 120, "tempo in beats per minute")
	seconds := flag.Float64("seconds", 60, "export duration, rounded to whole segments")
	out := flag.String("o", "", "write a WAV file instead of starting the UI")
	loop := flag.Bool("loop", false, "export one segment repeated (seamless loop)")
	density := flag.Float64("q", synth.DefaultDensity, "trigger density 0-1")
	flag.Parse()

	seed64, err := strconv.ParseUint(*seedStr, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", *seedStr, err)
		os.Exit(1)
	}
	seed := uint32(seed64)

	g, err := synth.NewGenerator(seed, *bpm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	g.SetDensity(float32(*density))

	if *out != "" {
		exportFile(g, *out, *seconds, *loop)
		return
	}

	// Interactive: realtime playback behind the TUI.
	player := audio.NewPlayer(g)
	rt, err := audio.NewRealtimeOutput(player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()
	player.Play()

	model := tui.NewModel(player)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func exportFile(g *synth.Generator, path string, seconds float64, loop bool) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	var frames int
	if loop {
		frames, err = audio.ExportLoopWAV(g, f, seconds)
	} else {
		frames, err = audio.ExportWAV(g, f, seconds)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}

	clock := g.Clock()
	fmt.Printf("Wrote %s: seed 0x%08X, %d frames (%.2fs, %d segments)\n",
		path, g.Seed(), frames, float64(frames)/44100.0, frames/int(clock.SegFrames))
}
