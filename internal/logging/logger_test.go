package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleLoggerWritesLevelMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf, DisableBridge: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With("session_id", "abc").WithGroup("conn").Info("connection state changed", "to", "open", "note", "two words")
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{" INFO connection state changed", "session_id=abc", "conn.to=open", `conn.note="two words"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug record to be filtered, got %q", out)
	}
}

func TestJSONLoggerUsesCompactKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf, DisableBridge: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("waker forfeited", "reason", "superseded")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode json log %q: %v", buf.String(), err)
	}
	if record["level"] != "debug" || record["msg"] != "waker forfeited" || record["reason"] != "superseded" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

type countingHandler struct {
	level   slog.Level
	handled int
}

func (h *countingHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }
func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.handled++
	return nil
}
func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func TestFanoutRespectsEachHandlerLevel(t *testing.T) {
	debug := &countingHandler{level: slog.LevelDebug}
	warn := &countingHandler{level: slog.LevelWarn}
	logger := slog.New(newFanoutHandler(debug, nil, warn))

	logger.Info("info")
	logger.Warn("warn")

	if debug.handled != 2 || warn.handled != 1 {
		t.Fatalf("expected 2 and 1 records, got %d and %d", debug.handled, warn.handled)
	}
}
