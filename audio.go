package strumtab

// SampleRate is the rendering rate of the audio path, in Hz.
const SampleRate = 44100

// Synth is the seam to the audio-synthesis collaborator. The core never makes
// sound itself; it hands a Synth trigger/release calls and asks it to render
// stereo interleaved float32 buffers. Render fills up to len(buffer)/2 frames
// but never advances more than maxtime frames of synth time, returning how
// many frames were written and how much time passed.
type Synth interface {
	Render(buffer []float32, maxtime int) (samples int, time int, err error)
	Trigger(voice int, pitch Pitch)
	Release(voice int)
}

// AudioSink is where rendered audio goes, e.g. a sound device or a file.
type AudioSink interface {
	WriteAudio(buffer []float32) error
	Close() error
}

// AudioContext produces sinks; one context owns the underlying audio device.
type AudioContext interface {
	Output() AudioSink
	Close() error
}
