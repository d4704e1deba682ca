package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type backendRequest struct {
	path string
	body map[string]string
	form map[string]string
}

type backendStub struct {
	mu       sync.Mutex
	requests []backendRequest
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()

	stub := &backendStub{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := backendRequest{path: r.URL.Path}
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			req.form = map[string]string{}
			for name, values := range r.MultipartForm.Value {
				req.form[name] = values[0]
			}
		} else {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &req.body)
		}
		stub.mu.Lock()
		stub.requests = append(stub.requests, req)
		stub.mu.Unlock()
		io.WriteString(w, "ok")
	}))
	t.Cleanup(server.Close)

	t.Setenv("EMA_AVATAR_BASE_URL", server.URL)
	t.Setenv("EMA_AVATAR_ACTOR", "alice")
	return stub
}

func (s *backendStub) last(t *testing.T) backendRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatalf("expected a backend request")
	}
	return s.requests[len(s.requests)-1]
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.toml")
}

func TestSayPostsToConfiguredActor(t *testing.T) {
	stub := newBackendStub(t)

	out, err := runCLI(t, "--config", missingConfig(t), "say", "hello", "--motion", "wave")
	if err != nil {
		t.Fatalf("say: %v", err)
	}
	requireContains(t, out, "Sent to alice")

	req := stub.last(t)
	if req.path != "/api/say/alice" {
		t.Fatalf("expected /api/say/alice, got %s", req.path)
	}
	if req.body["vtb_name"] != "alice" || req.body["text"] != "hello" || req.body["motion"] != "wave" {
		t.Fatalf("unexpected body %v", req.body)
	}
}

func TestSayWithVoiceUploadsForm(t *testing.T) {
	stub := newBackendStub(t)
	voice := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(voice, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write voice: %v", err)
	}

	if _, err := runCLI(t, "--config", missingConfig(t), "say", "hi", "--actor", "Bob", "--voice", voice); err != nil {
		t.Fatalf("say --voice: %v", err)
	}

	req := stub.last(t)
	if req.path != "/api/say_form" {
		t.Fatalf("expected /api/say_form, got %s", req.path)
	}
	if req.form["vtb_name"] != "Bob" || req.form["text"] != "hi" {
		t.Fatalf("unexpected form %v", req.form)
	}
}

func TestSayRequiresSomethingToSay(t *testing.T) {
	newBackendStub(t)

	if _, err := runCLI(t, "--config", missingConfig(t), "say"); err == nil {
		t.Fatalf("expected error without text, motion or voice")
	}
}

func TestTitleAndRegisterCallback(t *testing.T) {
	stub := newBackendStub(t)

	if _, err := runCLI(t, "--config", missingConfig(t), "title", "Evening show"); err != nil {
		t.Fatalf("title: %v", err)
	}
	req := stub.last(t)
	if req.path != "/api/update_title" || req.body["title"] != "Evening show" {
		t.Fatalf("unexpected title request %+v", req)
	}

	out, err := runCLI(t, "--config", missingConfig(t), "register-callback", "http://example.test/done", "--to", "bob")
	if err != nil {
		t.Fatalf("register-callback: %v", err)
	}
	requireContains(t, out, "Callback registered for bob")
	req = stub.last(t)
	if req.path != "/api/register_callback/bob" || req.body["callback_url"] != "http://example.test/done" {
		t.Fatalf("unexpected callback request %+v", req)
	}
}
