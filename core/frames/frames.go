package frames

type Kind string

const (
	// KindAudio identifies a binary audio clip.
	KindAudio Kind = "Audio"
	// KindUpdateTitle identifies a title change for the caption surface.
	KindUpdateTitle Kind = "UpdateTitle"
	// KindChangeScene identifies a request to switch the rendered scene.
	KindChangeScene Kind = "ChangeScene"
	// KindSpeech identifies a caption, optional motion and optional waker for
	// the audio clip that follows it.
	KindSpeech Kind = "Speech"
)

// Frame is one discrete unit received from the backend.
type Frame interface {
	Kind() Kind
	frame()
}

// Audio carries one complete, still encoded audio clip.
type Audio struct {
	Data []byte
}

func NewAudio(data []byte) Audio { return Audio{Data: data} }

func (Audio) Kind() Kind { return KindAudio }
func (Audio) frame()     {}

type UpdateTitle struct {
	Title string
}

func (UpdateTitle) Kind() Kind { return KindUpdateTitle }
func (UpdateTitle) frame()     {}

type ChangeScene struct {
	Index int
}

func (ChangeScene) Kind() Kind { return KindChangeScene }
func (ChangeScene) frame()     {}

// Speech announces what an actor says. Motion and Waker are optional; when
// Waker is set the backend expects it echoed back once the next audio clip
// has finished playing.
type Speech struct {
	ActorID string
	Message string
	Motion  string
	Waker   string
	// Voice is set by backends that announce whether an audio clip follows.
	// Nil when the backend did not say.
	Voice *bool
}

func (Speech) Kind() Kind { return KindSpeech }
func (Speech) frame()     {}

// HasVoice reports whether the backend announced an audio clip for this
// speech. Backends that omit the flag are assumed to send one.
func (s Speech) HasVoice() bool {
	return s.Voice == nil || *s.Voice
}
