package transport

import (
	"errors"
	"net/url"
	"testing"
)

func TestResolveEndpointsDerivesFallbackFromLocation(t *testing.T) {
	location, _ := url.Parse("https://stage.example.com:8443/index.html?actor=alice")

	endpoints, err := ResolveEndpoints("/ws/{actor}", "alice", location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if endpoints.Primary != "/ws/alice" {
		t.Fatalf("expected primary %q, got %q", "/ws/alice", endpoints.Primary)
	}
	if endpoints.Fallback != "wss://stage.example.com:8443/ws/alice" {
		t.Fatalf("expected fallback %q, got %q", "wss://stage.example.com:8443/ws/alice", endpoints.Fallback)
	}
}

func TestResolveEndpointsDefaultsActorAndPath(t *testing.T) {
	location, _ := url.Parse("http://127.0.0.1:8000")

	endpoints, err := ResolveEndpoints("", "", location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if endpoints.Primary != "/ws/default" {
		t.Fatalf("expected primary %q, got %q", "/ws/default", endpoints.Primary)
	}
	if endpoints.Fallback != "ws://127.0.0.1:8000/ws/default" {
		t.Fatalf("expected fallback %q, got %q", "ws://127.0.0.1:8000/ws/default", endpoints.Fallback)
	}
}

func TestResolveEndpointsWithoutLocation(t *testing.T) {
	endpoints, err := ResolveEndpoints("ws://backend/ws/{actor}", "bob", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoints.Primary != "ws://backend/ws/bob" || endpoints.Fallback != "" {
		t.Fatalf("unexpected endpoints: %+v", endpoints)
	}
}

func TestValidateEndpoint(t *testing.T) {
	if _, err := ValidateEndpoint("ws://127.0.0.1:8000/ws/default"); err != nil {
		t.Fatalf("expected ws endpoint to be valid, got %v", err)
	}

	for _, endpoint := range []string{"/ws/default", "http://127.0.0.1/ws/default", "ws:///ws/default"} {
		if _, err := ValidateEndpoint(endpoint); !errors.Is(err, ErrMalformedEndpoint) {
			t.Fatalf("expected ErrMalformedEndpoint for %q, got %v", endpoint, err)
		}
	}
}
