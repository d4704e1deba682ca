package stage

import (
	"testing"
	"time"

	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/lipsync"
	"github.com/koscakluka/ema-avatar/internal/testsupport"
)

func TestSpeechThenAudioEndToEnd(t *testing.T) {
	dialer := &testsupport.Dialer{}
	output := testsupport.NewOutput()
	output.Chunk = 480
	render := &testsupport.RenderSink{}
	captions := &testsupport.CaptionSink{}
	log := &eventLog{}

	startClient(t, dialer,
		WithOutput(output),
		WithLipSync(lipsync.WithInterval(2*time.Millisecond)),
		WithRenderSink(render),
		WithCaptionSink(captions),
		WithEventHandler(log.handle),
	)

	conn := dialer.Conn(0)
	conn.DeliverText(speechJSON(t, "Alice", "hi", "wave", "ack1"))
	conn.DeliverBinary(testsupport.NoiseWAV(t, 300*time.Millisecond, 24000))

	testsupport.Eventually(t, 2*time.Second, func() bool { return len(conn.Sent()) == 1 }, "expected the waker to be echoed")
	if sent := conn.Sent(); sent[0] != "ack1" {
		t.Fatalf("expected ack1, got %v", sent)
	}

	if got := captions.Captions(); len(got) != 1 || got[0] != (testsupport.Caption{ActorID: "Alice", Text: "hi"}) {
		t.Fatalf("expected Alice caption, got %v", got)
	}
	if got := render.Motions(); len(got) != 1 || got[0] != (testsupport.MotionCall{ActorID: "Alice", Group: "wave", Priority: 3}) {
		t.Fatalf("expected wave motion, got %v", got)
	}

	parameters := render.Parameters()
	opened := false
	for _, call := range parameters {
		if call.ActorID != "Alice" || call.ParamID != lipsync.DefaultParameterID || call.Weight != lipsync.DefaultWeight {
			t.Fatalf("unexpected parameter call %+v", call)
		}
		if call.Value > lipsync.DefaultThreshold {
			opened = true
		}
	}
	if !opened {
		t.Fatalf("expected the mouth to open during playback, got %v", parameters)
	}
	if last := parameters[len(parameters)-1]; last.Value != 0 {
		t.Fatalf("expected mouth closed at the end, got %+v", last)
	}

	ended, acked := -1, -1
	for i, kind := range log.kinds() {
		switch kind {
		case events.KindPlaybackEnded:
			ended = i
		case events.KindAckSent:
			acked = i
		}
	}
	if ended < 0 || acked < ended {
		t.Fatalf("expected ack after playback ended, got %v", log.kinds())
	}
}
