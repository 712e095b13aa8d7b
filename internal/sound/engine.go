// Package sound plays the pop effects that accompany reactions.
package sound

import (
	"bytes"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
)

// Options configures an Engine.
type Options struct {
	Enabled bool
	Volume  float64

	// Optional clips replacing the synthesized sounds.
	PopFile   string
	BurstFile string
}

// Engine plays reaction sounds without blocking the caller. The output
// device is opened lazily on the first sound.
type Engine struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
	synth   *Synth
	pop     *Clip
	burst   *Clip
	logger  *log.Logger

	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	players []*oto.Player
}

// New creates an Engine, decoding any custom clips up front so that a bad
// file is reported at startup.
func New(opts Options, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		enabled: opts.Enabled,
		volume:  opts.Volume,
		synth:   NewSynth(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))),
		logger:  logger,
	}
	for _, c := range []struct {
		path string
		dst  **Clip
	}{
		{opts.PopFile, &e.pop},
		{opts.BurstFile, &e.burst},
	} {
		if c.path == "" {
			continue
		}
		clip, err := LoadClip(c.path)
		if err != nil {
			return nil, err
		}
		*c.dst = &clip
	}
	return e, nil
}

// Enabled reports whether sounds are played.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Toggle flips sound on or off and returns the new state.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = !e.enabled
	return e.enabled
}

// Pop plays the single-reaction sound.
func (e *Engine) Pop() {
	e.play(e.pop, e.synth.Pop)
}

// BurstPop plays the multi-reaction sound.
func (e *Engine) BurstPop() {
	e.play(e.burst, e.synth.BurstPop)
}

func (e *Engine) play(custom *Clip, synth func() beep.Streamer) {
	if !e.Enabled() {
		return
	}
	var clip Clip
	if custom != nil {
		clip = *custom
	} else {
		e.mu.Lock()
		clip = Render(synth())
		e.mu.Unlock()
	}
	go e.start(clip)
}

func (e *Engine) start(clip Clip) {
	ctx, err := e.context()
	if err != nil {
		return
	}

	p := ctx.NewPlayer(bytes.NewReader(clip.pcm))

	e.mu.Lock()
	p.SetVolume(e.volume)
	// Finished players are dropped so the device can release them.
	live := e.players[:0]
	for _, old := range e.players {
		if old.IsPlaying() {
			live = append(live, old)
		}
	}
	e.players = append(live, p)
	e.mu.Unlock()

	p.Play()
}

func (e *Engine) context() (*oto.Context, error) {
	e.otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   int(sampleRate),
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		e.otoCtx, ready, e.otoErr = oto.NewContext(op)
		if e.otoErr != nil {
			e.logger.Warn("audio output unavailable, sound disabled", "err", e.otoErr)
			e.mu.Lock()
			e.enabled = false
			e.mu.Unlock()
			return
		}
		<-ready
	})
	return e.otoCtx, e.otoErr
}

// Close stops any sounds still playing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.players {
		p.Pause()
	}
	e.players = nil
}
