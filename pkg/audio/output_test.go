package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/synth"
)

func newTestGenerator(t *testing.T) *synth.Generator {
	t.Helper()
	g, err := synth.NewGenerator(0x12345678, 120)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestExportWAVHeader(t *testing.T) {
	g := newTestGenerator(t)
	clock := g.Clock()

	var buf bytes.Buffer
	frames, err := ExportWAV(g, &buf, clock.SegSeconds)
	if err != nil {
		t.Fatal(err)
	}
	if frames != int(clock.SegFrames) {
		t.Fatalf("frames = %d, want %d", frames, clock.SegFrames)
	}

	b := buf.Bytes()
	dataSize := frames * wavChannels * bytesPerSample
	if len(b) != 44+dataSize {
		t.Fatalf("file size = %d, want %d", len(b), 44+dataSize)
	}

	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(b[12:16]) != "fmt " {
		t.Error("missing fmt chunk")
	}
	le := binary.LittleEndian
	if got := le.Uint32(b[4:]); got != uint32(36+dataSize) {
		t.Errorf("RIFF size = %d, want %d", got, 36+dataSize)
	}
	if got := le.Uint32(b[16:]); got != 16 {
		t.Errorf("fmt chunk size = %d, want 16", got)
	}
	if got := le.Uint16(b[20:]); got != wavFormatIEEEFloat {
		t.Errorf("format tag = %d, want %d (IEEE float)", got, wavFormatIEEEFloat)
	}
	if got := le.Uint16(b[22:]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := le.Uint32(b[24:]); got != music.SampleRate {
		t.Errorf("sample rate = %d, want %d", got, music.SampleRate)
	}
	if got := le.Uint32(b[28:]); got != music.SampleRate*8 {
		t.Errorf("byte rate = %d, want %d", got, music.SampleRate*8)
	}
	if got := le.Uint16(b[32:]); got != 8 {
		t.Errorf("block align = %d, want 8", got)
	}
	if got := le.Uint16(b[34:]); got != wavBitsPerSample {
		t.Errorf("bits per sample = %d, want %d", got, wavBitsPerSample)
	}
	if string(b[36:40]) != "data" {
		t.Error("missing data chunk")
	}
	if got := le.Uint32(b[40:]); got != uint32(dataSize) {
		t.Errorf("data size = %d, want %d", got, dataSize)
	}
}

func TestExportWAVQuantizesToWholeSegments(t *testing.T) {
	g := newTestGenerator(t)
	clock := g.Clock()

	var buf bytes.Buffer
	frames, err := ExportWAV(g, &buf, 4.0)
	if err != nil {
		t.Fatal(err)
	}

	want := int(clock.SegmentsFor(4.0) * clock.SegFrames)
	if frames != want {
		t.Errorf("frames = %d, want %d (whole segments)", frames, want)
	}
	if frames%int(clock.SegFrames) != 0 {
		t.Errorf("frames = %d is not a whole number of segments", frames)
	}
}

func TestExportLoopWAVRepeatsBaseSegment(t *testing.T) {
	g := newTestGenerator(t)
	clock := g.Clock()
	segBytes := int(clock.SegFrames) * wavChannels * bytesPerSample

	var buf bytes.Buffer
	frames, err := ExportLoopWAV(g, &buf, 4.0)
	if err != nil {
		t.Fatal(err)
	}
	repeats := int(clock.SegmentsFor(4.0))
	if frames != repeats*int(clock.SegFrames) {
		t.Fatalf("frames = %d, want %d", frames, repeats*int(clock.SegFrames))
	}

	data := buf.Bytes()[44:]
	first := data[:segBytes]
	for i := 1; i < repeats; i++ {
		seg := data[i*segBytes : (i+1)*segBytes]
		if !bytes.Equal(first, seg) {
			t.Fatalf("segment %d differs from base segment", i)
		}
	}
}

func TestExportLoopMatchesFreshRender(t *testing.T) {
	// A loop file's base segment must equal the first segment a fresh
	// generator renders: repeating the segment N times is the same audio as
	// rendering N segments from reset state each time.
	g := newTestGenerator(t)
	var buf bytes.Buffer
	if _, err := ExportLoopWAV(g, &buf, 2.0); err != nil {
		t.Fatal(err)
	}

	fresh := newTestGenerator(t)
	clock := fresh.Clock()
	left := make([]float32, clock.SegFrames)
	right := make([]float32, clock.SegFrames)
	fresh.Generate(left, right)

	var want bytes.Buffer
	ww := NewWAVWriter(&want, music.SampleRate)
	if err := ww.WriteFrames(left, right); err != nil {
		t.Fatal(err)
	}

	segBytes := int(clock.SegFrames) * wavChannels * bytesPerSample
	got := buf.Bytes()[44 : 44+segBytes]
	if !bytes.Equal(got, want.Bytes()) {
		t.Error("loop base segment differs from a fresh generator's first segment")
	}
}
