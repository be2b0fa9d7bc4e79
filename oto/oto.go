// Package oto implements the strumtab.AudioContext interface on top of the
// oto/v3 library, for playing rendered tabs through the system audio device.
package oto

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/aheikkila/strumtab"
)

type (
	// Context wraps one oto context; there can be only one per process.
	Context struct {
		context *oto.Context
	}

	// Output is an AudioSink feeding the device through a pipe, so WriteAudio
	// blocks with backpressure instead of dropping audio.
	Output struct {
		player    *oto.Player
		pw        *io.PipeWriter
		tmpBuffer []byte
	}
)

// NewContext opens the audio device for stereo float32 output at the core's
// sample rate and waits until it is ready.
func NewContext() (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   strumtab.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{context: context}, nil
}

// Output starts a new player on the context.
func (c *Context) Output() strumtab.AudioSink {
	pr, pw := io.Pipe()
	player := c.context.NewPlayer(pr)
	player.Play()
	return &Output{player: player, pw: pw}
}

// Close implements strumtab.AudioContext. An oto/v3 context lives for the
// whole process and cannot be torn down.
func (c *Context) Close() error {
	return nil
}

// WriteAudio queues a stereo float32 buffer for playback, blocking while the
// device catches up.
func (o *Output) WriteAudio(buffer []float32) error {
	// reuse the previous conversion buffer's capacity
	o.tmpBuffer = floatBufferToBytesLE(buffer, o.tmpBuffer[:0])
	if _, err := o.pw.Write(o.tmpBuffer); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

// Close drains what is still queued and releases the player.
func (o *Output) Close() error {
	if err := o.pw.Close(); err != nil {
		return fmt.Errorf("cannot close pipe: %w", err)
	}
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
