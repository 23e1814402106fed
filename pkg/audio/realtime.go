package audio

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
)

// RealtimeOutput plays a Player's audio through the system device.
type RealtimeOutput struct {
	player    *Player
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	running   bool
}

// NewRealtimeOutput opens the audio device and starts streaming. The stream
// produces silence while the player is stopped, so the device stays open for
// the whole session.
func NewRealtimeOutput(player *Player) (*RealtimeOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   music.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	rt := &RealtimeOutput{
		player:  player,
		otoCtx:  otoCtx,
		running: true,
	}

	rt.otoPlayer = otoCtx.NewPlayer(&audioStream{
		rt:    rt,
		left:  make([]float32, 512),
		right: make([]float32, 512),
	})
	rt.otoPlayer.SetBufferSize(music.SampleRate / 10 * 8) // 100ms of stereo float32
	rt.otoPlayer.Play()

	return rt, nil
}

// Close stops the audio output.
func (rt *RealtimeOutput) Close() {
	rt.running = false
	if rt.otoPlayer != nil {
		rt.otoPlayer.Close()
	}
}

// audioStream implements io.Reader for oto: interleaved stereo float32.
type audioStream struct {
	rt    *RealtimeOutput
	left  []float32
	right []float32
}

const frameBytes = 8 // 2 channels x 4 bytes

func (s *audioStream) Read(buf []byte) (int, error) {
	frames := len(buf) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	if !s.rt.running {
		n := frames * frameBytes
		for i := 0; i < n; i++ {
			buf[i] = 0
		}
		return n, nil
	}

	if frames > len(s.left) {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	s.rt.player.GenerateSamples(s.left[:frames], s.right[:frames])

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(buf[i*frameBytes:], math.Float32bits(s.left[i]))
		binary.LittleEndian.PutUint32(buf[i*frameBytes+4:], math.Float32bits(s.right[i]))
	}
	return frames * frameBytes, nil
}
