package synth

// Hat timbre constants.
const (
	hatAmp  = 0.22
	hatSeed = 0x7A71C0DE
)

var hatCoef = expCoef(0.014)

// Hat is a short noise burst brightened by a first-difference highpass.
type Hat struct {
	env    float32
	prev   float32
	noise  Rand
	active bool
}

// Trigger restarts the hat burst.
func (h *Hat) Trigger() {
	h.env = 1
	h.prev = 0
	h.noise = NewRand(hatSeed)
	h.active = true
}

// Active reports whether the voice is still sounding.
func (h *Hat) Active() bool { return h.active }

// Process adds len(left) frames into the stereo buffers.
func (h *Hat) Process(left, right []float32) {
	if !h.active {
		return
	}
	for i := range left {
		n := h.noise.Float32()*2 - 1
		v := (n - h.prev) * 0.5 * h.env * hatAmp
		h.prev = n

		// nudged right of center
		left[i] += v * 0.8
		right[i] += v * 1.2

		h.env *= hatCoef
		if h.env < silenceFloor {
			h.env = 0
			h.active = false
			return
		}
	}
}
