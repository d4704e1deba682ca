package events

import "time"

const (
	// KindPlaybackStarted identifies the start of clip playback.
	KindPlaybackStarted Kind = "playback.started"
	// KindPlaybackProgress identifies a playback position update.
	KindPlaybackProgress Kind = "playback.progress"
	// KindPlaybackEnded identifies the end of clip playback.
	KindPlaybackEnded Kind = "playback.ended"
	// KindPlaybackFailed identifies a clip that could not be played.
	KindPlaybackFailed Kind = "playback.failed"
)

// PlaybackStarted marks a clip being handed to the audio output.
type PlaybackStarted struct {
	Base
	Duration time.Duration
}

func NewPlaybackStarted(duration time.Duration) PlaybackStarted {
	return PlaybackStarted{Base: NewBase(KindPlaybackStarted), Duration: duration}
}

// PlaybackProgress reports how much of the current clip has been streamed to
// the output so far.
type PlaybackProgress struct {
	Base
	Position time.Duration
	Duration time.Duration
}

func NewPlaybackProgress(position, duration time.Duration) PlaybackProgress {
	return PlaybackProgress{
		Base:     NewBase(KindPlaybackProgress),
		Position: position,
		Duration: duration,
	}
}

// Fraction returns the played share of the clip in [0,1].
func (p PlaybackProgress) Fraction() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return min(max(float64(p.Position)/float64(p.Duration), 0), 1)
}

// PlaybackEnded marks the output draining the clip.
type PlaybackEnded struct {
	Base
	Duration time.Duration
}

func NewPlaybackEnded(duration time.Duration) PlaybackEnded {
	return PlaybackEnded{Base: NewBase(KindPlaybackEnded), Duration: duration}
}

type PlaybackFailed struct {
	Base
	Err error
}

func NewPlaybackFailed(err error) PlaybackFailed {
	return PlaybackFailed{Base: NewBase(KindPlaybackFailed), Err: err}
}
