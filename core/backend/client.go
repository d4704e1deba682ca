// Package backend is an HTTP client for the operator endpoints of the avatar
// backend: making actors speak, changing the title and registering
// playback callbacks.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrInvalidBaseURL   = errors.New("invalid backend base URL")
	ErrUnexpectedStatus = errors.New("unexpected backend response status")
)

const DefaultTimeout = 10 * time.Second

// SayRequest is what an actor should say. Text and Motion are optional.
type SayRequest struct {
	ActorID string
	Text    string
	Motion  string
}

type sayPayload struct {
	VtbName string `json:"vtb_name" copier:"ActorID"`
	Text    string `json:"text,omitempty"`
	Motion  string `json:"motion,omitempty"`
}

type updateTitlePayload struct {
	Title string `json:"title"`
}

type registerCallbackPayload struct {
	CallbackURL string `json:"callback_url"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
					return operationName + " " + request.URL.Path
				}),
			),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Say makes an actor on the connection registered under id speak.
func (c *Client) Say(ctx context.Context, id string, req SayRequest) error {
	var payload sayPayload
	if err := copier.Copy(&payload, req); err != nil {
		return fmt.Errorf("failed to build say request: %w", err)
	}
	return c.postJSON(ctx, payload, "api", "say", id)
}

// SayForm makes an actor speak on a random connection, optionally with a
// pre-synthesised voice clip.
func (c *Client) SayForm(ctx context.Context, req SayRequest, voice []byte) error {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"vtb_name", req.ActorID},
		{"text", req.Text},
		{"motion", req.Motion},
	}
	for _, field := range fields {
		if field.value == "" && field.name != "vtb_name" {
			continue
		}
		if err := form.WriteField(field.name, field.value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", field.name, err)
		}
	}
	if len(voice) > 0 {
		part, err := form.CreateFormFile("voice", "voice")
		if err != nil {
			return fmt.Errorf("failed to create voice part: %w", err)
		}
		if _, err := part.Write(voice); err != nil {
			return fmt.Errorf("failed to write voice part: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	return c.post(ctx, form.FormDataContentType(), body, "api", "say_form")
}

func (c *Client) UpdateTitle(ctx context.Context, title string) error {
	return c.postJSON(ctx, updateTitlePayload{Title: title}, "api", "update_title")
}

// RegisterCallback asks the backend to call callbackURL once the connection
// registered under id reports its next playback as finished.
func (c *Client) RegisterCallback(ctx context.Context, id, callbackURL string) error {
	if _, err := url.ParseRequestURI(callbackURL); err != nil {
		return fmt.Errorf("invalid callback url %q: %w", callbackURL, err)
	}
	return c.postJSON(ctx, registerCallbackPayload{CallbackURL: callbackURL}, "api", "register_callback", id)
}

func (c *Client) postJSON(ctx context.Context, payload any, path ...string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.post(ctx, "application/json", bytes.NewReader(body), path...)
}

func (c *Client) post(ctx context.Context, contentType string, body io.Reader, path ...string) (err error) {
	ctx, span := tracer.Start(ctx, "backend request")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	endpoint := c.baseURL.JoinPath(path...)
	span.SetAttributes(attribute.String("request.url", endpoint.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if errorBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil && len(errorBody) > 0 {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	c.logger.Debug("backend request succeeded", "path", endpoint.Path, "status", resp.StatusCode)
	return nil
}
