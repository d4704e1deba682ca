package transport

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultActor = "default"

// ActorPath returns the connection path for an actor, "/ws/{actor}".
func ActorPath(actor string) string {
	if strings.TrimSpace(actor) == "" {
		actor = DefaultActor
	}
	return "/ws/" + url.PathEscape(actor)
}

// Endpoints holds the primary endpoint and the fallback derived from the
// location the client was started for.
type Endpoints struct {
	Primary  string
	Fallback string
}

// ResolveEndpoints expands "{actor}" in endpoint and derives the fallback
// from location: http becomes ws, https becomes wss, and the host (with port
// when present) is joined with the endpoint path.
//
// An empty endpoint means the actor path. A nil location leaves Fallback
// empty.
func ResolveEndpoints(endpoint string, actor string, location *url.URL) (Endpoints, error) {
	if strings.TrimSpace(actor) == "" {
		actor = DefaultActor
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = ActorPath(actor)
	}
	endpoint = strings.ReplaceAll(endpoint, "{actor}", url.PathEscape(actor))

	endpoints := Endpoints{Primary: endpoint}
	if location == nil {
		return endpoints, nil
	}

	primary, err := url.Parse(endpoint)
	if err != nil {
		return endpoints, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}

	fallback := url.URL{
		Scheme:   "ws",
		Host:     location.Host,
		Path:     primary.Path,
		RawPath:  primary.RawPath,
		RawQuery: primary.RawQuery,
	}
	if location.Scheme == "https" || location.Scheme == "wss" {
		fallback.Scheme = "wss"
	}
	if fallback.Host == "" {
		return endpoints, fmt.Errorf("location %q has no host", location.String())
	}

	endpoints.Fallback = fallback.String()
	return endpoints, nil
}

// ValidateEndpoint checks that endpoint can be dialled as-is.
func ValidateEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEndpoint, err)
	}

	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q in %q", ErrMalformedEndpoint, u.Scheme, endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrMalformedEndpoint, endpoint)
	}

	return u, nil
}
