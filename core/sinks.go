package stage

import (
	"context"
)

// CaptionSink shows what actors say and the page title.
type CaptionSink interface {
	Display(actorID, text string)
	SetTitle(title string)
}

// captionClearer is implemented by caption sinks able to wipe what they
// show; it is used when the connection drops.
type captionClearer interface {
	Clear()
}

// RenderSink animates actors.
type RenderSink interface {
	SetExpressionParameter(actorID, paramID string, value, weight float64)
	TriggerMotion(actorID, motionGroup string, priority int)
}

type SceneLoader interface {
	LoadScene(ctx context.Context, index int) error
}

// Player plays one encoded audio clip and returns when it has finished.
type Player interface {
	Play(ctx context.Context, data []byte) error
}

type noopCaptionSink struct{}

func (noopCaptionSink) Display(string, string) {}
func (noopCaptionSink) SetTitle(string)        {}

type noopRenderSink struct{}

func (noopRenderSink) SetExpressionParameter(string, string, float64, float64) {}
func (noopRenderSink) TriggerMotion(string, string, int)                       {}

type noopSceneLoader struct{}

func (noopSceneLoader) LoadScene(context.Context, int) error { return nil }
