package strumtab

// Playback setting bounds. Out-of-range user settings clamp to these instead
// of erroring; unlike structural data, a slider value has an obvious nearest
// valid answer.
const (
	MinTempo = 60
	MaxTempo = 200

	MinVolume = 0.0
	MaxVolume = 1.0
)

// Loop is an optional playback loop region, in ticks, [Start, End).
type Loop struct {
	Start   int
	End     int
	Enabled bool
}

// Transport is the user-facing playback state: tempo, volume, whether the
// piece is playing and where. Like every other core value it is immutable;
// the With* setters return the adjusted state.
type Transport struct {
	Tempo    int
	Volume   float64
	Playing  bool
	Position int
	Loop     Loop
}

// NewTransport returns the default playback state.
func NewTransport() Transport {
	return Transport{Tempo: 120, Volume: 0.8}
}

// WithTempo returns the transport with the tempo clamped into
// [MinTempo, MaxTempo].
func (tr Transport) WithTempo(bpm int) Transport {
	if bpm < MinTempo {
		bpm = MinTempo
	}
	if bpm > MaxTempo {
		bpm = MaxTempo
	}
	tr.Tempo = bpm
	return tr
}

// WithVolume returns the transport with the volume clamped into
// [MinVolume, MaxVolume].
func (tr Transport) WithVolume(v float64) Transport {
	if v < MinVolume {
		v = MinVolume
	}
	if v > MaxVolume {
		v = MaxVolume
	}
	tr.Volume = v
	return tr
}

// WithPosition returns the transport moved to the given tick, clamped to the
// start of the piece.
func (tr Transport) WithPosition(ticks int) Transport {
	if ticks < 0 {
		ticks = 0
	}
	tr.Position = ticks
	return tr
}

// WithLoop returns the transport looping over [start, end) ticks. The region
// is normalized: negative bounds clamp to 0 and an inverted region swaps its
// ends. An empty region disables the loop.
func (tr Transport) WithLoop(start, end int) Transport {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if end < start {
		start, end = end, start
	}
	tr.Loop = Loop{Start: start, End: end, Enabled: start < end}
	return tr
}

// WithoutLoop returns the transport with the loop region disabled.
func (tr Transport) WithoutLoop() Transport {
	tr.Loop.Enabled = false
	return tr
}

// WrapPosition maps a tick position into the loop region: positions at or past
// the loop end wrap back by whole loop lengths. Without an enabled loop it is
// the identity.
func (tr Transport) WrapPosition(ticks int) int {
	if !tr.Loop.Enabled || ticks < tr.Loop.End {
		return ticks
	}
	length := tr.Loop.End - tr.Loop.Start
	return tr.Loop.Start + (ticks-tr.Loop.Start)%length
}

// WithPlaying returns the transport with playback started or stopped.
func (tr Transport) WithPlaying(playing bool) Transport {
	tr.Playing = playing
	return tr
}

// TicksToSeconds converts a tick offset to wall-clock seconds at the given
// tempo.
func TicksToSeconds(ticks, bpm int) float64 {
	if bpm <= 0 {
		return 0
	}
	return float64(ticks) / TicksPerQuarter * 60 / float64(bpm)
}

// SecondsToTicks converts wall-clock seconds back to ticks at the given
// tempo.
func SecondsToTicks(seconds float64, bpm int) int {
	if bpm <= 0 || seconds <= 0 {
		return 0
	}
	return int(seconds * float64(bpm) / 60 * TicksPerQuarter)
}
