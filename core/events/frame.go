package events

const (
	// KindFrameDropped identifies a discarded inbound message or queued frame.
	KindFrameDropped Kind = "frame.dropped"
	// KindSceneChanged identifies a completed scene switch.
	KindSceneChanged Kind = "scene.changed"
)

type FrameDropped struct {
	Base
	// FrameKind is empty when the message could not be classified.
	FrameKind string
	Count     int
	Reason    string
}

func NewFrameDropped(frameKind string, count int, reason string) FrameDropped {
	return FrameDropped{
		Base:      NewBase(KindFrameDropped),
		FrameKind: frameKind,
		Count:     count,
		Reason:    reason,
	}
}

type SceneChanged struct {
	Base
	Index int
}

func NewSceneChanged(index int) SceneChanged {
	return SceneChanged{Base: NewBase(KindSceneChanged), Index: index}
}
