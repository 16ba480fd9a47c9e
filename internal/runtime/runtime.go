// Package runtime owns the console goroutine: it drives the bus one
// cycle at a time, publishes completed frames to a shared double
// buffer, and exchanges Commands/Events with the UI goroutine over
// buffered channels instead of sharing mutable state directly.
package runtime

import (
	"bytes"
	"encoding/binary"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/frame"
	"gones/internal/runtimecfg"
	"gones/internal/trace"
)

const (
	commandQueueSize = 256
	eventQueueSize   = 256

	bytesPerSample = 4 // 16-bit stereo
)

// Console owns a Bus and the machinery that lets a UI drive it from a
// separate goroutine: a command queue, an event queue, a published
// frame buffer, and a trace sink for diagnostics.
type Console struct {
	Bus   *bus.Bus
	Frame *frame.Shared
	Trace *trace.Sink

	commands chan Command
	events   chan Event

	paused    bool
	sampleRem []byte // leftover PCM bytes from a prior Read that didn't fit the caller's buffer
}

// New creates a Console with no cartridge loaded, using default
// runtimecfg settings at the given sample rate; LoadROM must be sent
// before Read will produce anything but silence.
func New(sampleRate int) *Console {
	cfg := runtimecfg.New()
	cfg.Audio.SampleRate = sampleRate
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Console from an explicit runtimecfg.Config,
// applying its sample rate and default channel mutes up front.
func NewWithConfig(cfg *runtimecfg.Config) *Console {
	b := bus.New()
	b.SetAudioSampleRate(cfg.Audio.SampleRate)
	for ch, muted := range cfg.Audio.MutedChannels {
		b.APU.SetChannelMute(ch, muted)
	}

	sink := trace.NewSink(5_000_000)
	b.SetLogger(sink.Log)

	return &Console{
		Bus:      b,
		Frame:    frame.New(),
		Trace:    sink,
		commands: make(chan Command, commandQueueSize),
		events:   make(chan Event, eventQueueSize),
	}
}

// Send enqueues a command for the console goroutine to process on its
// next Read call. It never blocks: a full queue drops the command,
// matching the fire-and-forget semantics of the original unbounded
// channel (a UI that floods commands faster than audio drains them has
// bigger problems than one dropped Reset).
func (c *Console) Send(cmd Command) {
	select {
	case c.commands <- cmd:
	default:
		c.Trace.Log.Warn("command queue full, dropping command")
	}
}

// TryRecv returns the next pending event, if any.
func (c *Console) TryRecv() (Event, bool) {
	select {
	case ev := <-c.events:
		return ev, true
	default:
		return nil, false
	}
}

func (c *Console) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		// Drop rather than block the emulation goroutine on a UI that
		// isn't draining events.
	}
}

// processCommands drains and applies every command queued since the
// last call.
func (c *Console) processCommands() {
	for {
		select {
		case cmd := <-c.commands:
			c.apply(cmd)
		default:
			return
		}
	}
}

func (c *Console) apply(cmd Command) {
	switch v := cmd.(type) {
	case LoadROM:
		cart, err := cartridge.LoadFromReader(bytes.NewReader(v.Data))
		if err != nil {
			c.Trace.Log.WithError(err).Error("failed to load ROM")
			c.emit(RomLoaded{Err: err})
			return
		}
		c.Bus.LoadCartridge(cart)
		c.emit(RomLoaded{Err: nil})
	case Reset:
		c.Bus.Reset()
	case Pause:
		c.paused = v.Paused
	case SetButton:
		c.Bus.SetControllerButton(v.Controller, v.Button, v.Pressed)
	case SetChannelMute:
		c.Bus.APU.SetChannelMute(int(v.Channel), v.Muted)
	default:
		c.Trace.Log.Errorf("unhandled command type %T", cmd)
	}
}

// Read implements io.Reader for an ebiten/v2/audio Player: it advances
// emulation exactly far enough to produce len(p)/bytesPerSample stereo
// 16-bit samples, publishing frames to Frame as they complete. This is
// the Go analogue of the original AudioCallback::render driving the
// emulator from the audio thread's pull, rather than a free-running
// goroutine racing the audio device.
func (c *Console) Read(p []byte) (int, error) {
	c.processCommands()

	n := copy(p, c.sampleRem)
	c.sampleRem = c.sampleRem[n:]
	if n == len(p) {
		return n, nil
	}
	p = p[n:]

	if c.paused {
		for i := range p {
			p[i] = 0
		}
		return len(p) + n, nil
	}

	wanted := len(p) / bytesPerSample
	var pcm []byte
	for len(pcm) < wanted*bytesPerSample {
		preFrame := c.Bus.GetFrameCount()
		c.Bus.Step()
		if c.Bus.GetFrameCount() != preFrame {
			var buf frame.Buffer
			copy(buf[:], c.Bus.GetFrameBuffer())
			c.Frame.Publish(&buf)
			c.emit(FrameComplete{FrameCount: c.Bus.GetFrameCount()})
		}

		for _, s := range c.Bus.GetAudioSamples() {
			sample := int16(s * 32767)
			var sbuf [4]byte
			binary.LittleEndian.PutUint16(sbuf[0:2], uint16(sample))
			binary.LittleEndian.PutUint16(sbuf[2:4], uint16(sample))
			pcm = append(pcm, sbuf[:]...)
		}
	}

	copied := copy(p, pcm)
	c.sampleRem = append(c.sampleRem, pcm[copied:]...)
	return n + copied, nil
}
