package music

import "math"

// NoteToFreq converts a MIDI note number to frequency in Hz.
// A4 = note 69 = 440 Hz.
func NoteToFreq(note int) float64 {
	return 440.0 * math.Pow(2.0, float64(note-69)/12.0)
}

// Minor-pentatonic semitone offsets from the root.
var pentatonic = [...]int{0, 3, 5, 7, 10}

// RootNote is the tonal center of all generated material (A2, 110 Hz).
const RootNote = 45

// PentatonicFreq returns the frequency of the given scale degree of the
// minor-pentatonic scale rooted at RootNote. Degrees beyond one octave wrap
// into higher octaves, so degree 5 is the root an octave up.
func PentatonicFreq(degree, octave int) float64 {
	if degree < 0 {
		degree = 0
	}
	oct := octave + degree/len(pentatonic)
	semis := pentatonic[degree%len(pentatonic)]
	return NoteToFreq(RootNote + 12*oct + semis)
}
