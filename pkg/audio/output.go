package audio

import (
	"encoding/binary"
	"io"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/synth"
)

const (
	wavFormatIEEEFloat = 3
	wavChannels        = 2
	wavBitsPerSample   = 32
	bytesPerSample     = wavBitsPerSample / 8
)

// exportChunk is the render granularity for file export.
const exportChunk = 4096

// WAVWriter writes stereo 32-bit IEEE-float WAV data.
type WAVWriter struct {
	writer     io.Writer
	sampleRate int
}

// NewWAVWriter creates a WAV writer at the given sample rate.
func NewWAVWriter(w io.Writer, sampleRate int) *WAVWriter {
	return &WAVWriter{
		writer:     w,
		sampleRate: sampleRate,
	}
}

// WriteHeader writes the 44-byte RIFF/WAVE header for the given total frame
// count. The frame count must be known up front; the writer never seeks.
func (w *WAVWriter) WriteHeader(frames int) error {
	dataSize := frames * wavChannels * bytesPerSample
	byteRate := w.sampleRate * wavChannels * bytesPerSample
	blockAlign := wavChannels * bytesPerSample

	if _, err := w.writer.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w.writer, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return err
	}
	if _, err := w.writer.Write([]byte("WAVE")); err != nil {
		return err
	}

	if _, err := w.writer.Write([]byte("fmt ")); err != nil {
		return err
	}
	for _, v := range []any{
		uint32(16),
		uint16(wavFormatIEEEFloat),
		uint16(wavChannels),
		uint32(w.sampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(wavBitsPerSample),
	} {
		if err := binary.Write(w.writer, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	if _, err := w.writer.Write([]byte("data")); err != nil {
		return err
	}
	return binary.Write(w.writer, binary.LittleEndian, uint32(dataSize))
}

// WriteFrames interleaves the stereo buffers and writes them as float32
// little-endian samples.
func (w *WAVWriter) WriteFrames(left, right []float32) error {
	interleaved := make([]float32, 0, 2*len(left))
	for i := range left {
		interleaved = append(interleaved, left[i], right[i])
	}
	return binary.Write(w.writer, binary.LittleEndian, interleaved)
}

// ExportWAV renders the generator into w as a float WAV, quantized to whole
// segments so the result loops seamlessly. Returns the frame count written.
func ExportWAV(g *synth.Generator, w io.Writer, seconds float64) (int, error) {
	clock := g.Clock()
	totalFrames := int(clock.SegmentsFor(seconds) * clock.SegFrames)

	ww := NewWAVWriter(w, music.SampleRate)
	if err := ww.WriteHeader(totalFrames); err != nil {
		return 0, err
	}

	left := make([]float32, exportChunk)
	right := make([]float32, exportChunk)
	for written := 0; written < totalFrames; {
		n := totalFrames - written
		if n > exportChunk {
			n = exportChunk
		}
		g.Generate(left[:n], right[:n])
		if err := ww.WriteFrames(left[:n], right[:n]); err != nil {
			return written, err
		}
		written += n
	}
	return totalFrames, nil
}

// ExportLoopWAV renders one base segment and writes it repeatedly until the
// requested duration is covered. Unlike ExportWAV the result is a strict
// loop: every segment in the file is sample-identical to the first.
func ExportLoopWAV(g *synth.Generator, w io.Writer, seconds float64) (int, error) {
	clock := g.Clock()
	segFrames := int(clock.SegFrames)
	repeats := int(clock.SegmentsFor(seconds))
	totalFrames := repeats * segFrames

	left := make([]float32, segFrames)
	right := make([]float32, segFrames)
	g.Generate(left, right)

	ww := NewWAVWriter(w, music.SampleRate)
	if err := ww.WriteHeader(totalFrames); err != nil {
		return 0, err
	}
	for i := 0; i < repeats; i++ {
		if err := ww.WriteFrames(left, right); err != nil {
			return i * segFrames, err
		}
	}
	return totalFrames, nil
}
