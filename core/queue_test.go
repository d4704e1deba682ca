package stage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/koscakluka/ema-avatar/core/frames"
)

func TestFrameQueueIsFIFO(t *testing.T) {
	q := newFrameQueue()
	q.Push(frames.Speech{Message: "one"})
	q.Push(frames.NewAudio([]byte{2}))
	q.Push(frames.ChangeScene{Index: 3})

	ctx := context.Background()
	first, _ := q.Pop(ctx)
	second, _ := q.Pop(ctx)
	third, _ := q.Pop(ctx)

	if speech, ok := first.(frames.Speech); !ok || speech.Message != "one" {
		t.Fatalf("expected speech first, got %#v", first)
	}
	if _, ok := second.(frames.Audio); !ok {
		t.Fatalf("expected audio second, got %#v", second)
	}
	if scene, ok := third.(frames.ChangeScene); !ok || scene.Index != 3 {
		t.Fatalf("expected scene change third, got %#v", third)
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
}

func TestFrameQueuePopBlocksUntilPush(t *testing.T) {
	q := newFrameQueue()

	popped := make(chan frames.Frame, 1)
	go func() {
		frame, err := q.Pop(context.Background())
		if err == nil {
			popped <- frame
		}
	}()

	select {
	case frame := <-popped:
		t.Fatalf("expected pop to block on an empty queue, got %#v", frame)
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(frames.UpdateTitle{Title: "late"})

	select {
	case frame := <-popped:
		if title, ok := frame.(frames.UpdateTitle); !ok || title.Title != "late" {
			t.Fatalf("unexpected frame %#v", frame)
		}
	case <-time.After(time.Second):
		t.Fatalf("pop did not wake up after push")
	}
}

func TestFrameQueuePopHonoursContext(t *testing.T) {
	q := newFrameQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := q.Pop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	q.Push(frames.ChangeScene{Index: 1})
	if frame, err := q.Pop(context.Background()); err != nil || frame.Kind() != frames.KindChangeScene {
		t.Fatalf("expected queue to stay usable after a cancelled pop, got %v, %v", frame, err)
	}
}

func TestFrameQueueClearDropsOnlyQueuedFrames(t *testing.T) {
	q := newFrameQueue()
	q.Push(frames.NewAudio([]byte{1}))
	q.Push(frames.NewAudio([]byte{2}))
	q.Push(frames.NewAudio([]byte{3}))

	popped, err := q.Pop(context.Background())
	if err != nil {
		t.Fatalf("unexpected pop error: %v", err)
	}

	if n := q.Clear(); n != 2 {
		t.Fatalf("expected 2 frames cleared, got %d", n)
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue after clear")
	}
	if audio := popped.(frames.Audio); audio.Data[0] != 1 {
		t.Fatalf("expected popped frame to be untouched, got %v", audio.Data)
	}

	q.Push(frames.NewAudio([]byte{4}))
	next, _ := q.Pop(context.Background())
	if audio := next.(frames.Audio); audio.Data[0] != 4 {
		t.Fatalf("expected frame pushed after clear, got %v", audio.Data)
	}
}

func TestFrameQueueConcurrentPopPanics(t *testing.T) {
	q := newFrameQueue()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go q.Pop(ctx)

	deadline := time.Now().Add(time.Second)
	for {
		q.mu.Lock()
		popping := q.popping
		q.mu.Unlock()
		if popping {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first pop never started")
		}
		time.Sleep(time.Millisecond)
	}

	defer func() {
		if recovered := recover(); recovered != errConcurrentPop {
			t.Fatalf("expected concurrent pop panic, got %v", recovered)
		}
	}()
	q.Pop(ctx)
}
