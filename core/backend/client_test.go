package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recordedRequest struct {
	Path        string
	ContentType string
	Body        []byte
	Form        map[string]string
	Voice       []byte
}

type backendStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
}

func (b *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Path: r.URL.EscapedPath(), ContentType: r.Header.Get("Content-Type")}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(1 << 20); err == nil {
		rec.Form = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			rec.Form[name] = values[0]
		}
		if files := r.MultipartForm.File["voice"]; len(files) > 0 {
			f, _ := files[0].Open()
			rec.Voice, _ = io.ReadAll(f)
			f.Close()
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	status := b.status
	b.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, "ok")
}

func (b *backendStub) last(t *testing.T) recordedRequest {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		t.Fatalf("expected a request to reach the backend")
	}
	return b.requests[len(b.requests)-1]
}

func newTestClient(t *testing.T, stub *backendStub) *Client {
	t.Helper()
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	client, err := New(server.URL + "/")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestSayPostsJSONToActorConnection(t *testing.T) {
	stub := &backendStub{}
	client := newTestClient(t, stub)

	if err := client.Say(context.Background(), "stream one", SayRequest{ActorID: "Alice", Text: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := stub.last(t)
	if req.Path != "/api/say/stream%20one" {
		t.Fatalf("unexpected path %q", req.Path)
	}
	if req.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", req.ContentType)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["vtb_name"] != "Alice" || body["text"] != "hi" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["motion"]; ok {
		t.Fatalf("expected empty motion to be omitted, got %v", body)
	}
}

func TestSayFormSendsVoiceClip(t *testing.T) {
	stub := &backendStub{}
	client := newTestClient(t, stub)

	voice := []byte("RIFF....WAVE")
	if err := client.SayForm(context.Background(), SayRequest{ActorID: "Alice", Motion: "wave"}, voice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := stub.last(t)
	if req.Path != "/api/say_form" {
		t.Fatalf("unexpected path %q", req.Path)
	}
	if req.Form["vtb_name"] != "Alice" || req.Form["motion"] != "wave" {
		t.Fatalf("unexpected form %v", req.Form)
	}
	if _, ok := req.Form["text"]; ok {
		t.Fatalf("expected empty text to be omitted, got %v", req.Form)
	}
	if string(req.Voice) != string(voice) {
		t.Fatalf("expected voice clip to be uploaded, got %q", req.Voice)
	}
}

func TestUpdateTitleAndRegisterCallback(t *testing.T) {
	stub := &backendStub{}
	client := newTestClient(t, stub)

	if err := client.UpdateTitle(context.Background(), "Live"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req := stub.last(t); req.Path != "/api/update_title" || string(req.Body) != `{"title":"Live"}` {
		t.Fatalf("unexpected update title request %+v", req)
	}

	if err := client.RegisterCallback(context.Background(), "default", "http://hooks.test/done"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req := stub.last(t); req.Path != "/api/register_callback/default" || string(req.Body) != `{"callback_url":"http://hooks.test/done"}` {
		t.Fatalf("unexpected register callback request %+v", req)
	}

	if err := client.RegisterCallback(context.Background(), "default", "not a url"); err == nil {
		t.Fatalf("expected invalid callback url to be rejected")
	}
}

func TestNonSuccessStatusIsAnError(t *testing.T) {
	stub := &backendStub{status: http.StatusInternalServerError}
	client := newTestClient(t, stub)

	err := client.UpdateTitle(context.Background(), "Live")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ws://backend.test", "backend.test:8000", "http://"} {
		if _, err := New(raw); !errors.Is(err, ErrInvalidBaseURL) {
			t.Fatalf("expected ErrInvalidBaseURL for %q, got %v", raw, err)
		}
	}
}
