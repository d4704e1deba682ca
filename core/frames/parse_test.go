package frames

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseControlSpeech(t *testing.T) {
	frame, err := ParseControl([]byte(`{"type":"Speech","vtb_name":"Alice","message":"hi","motion":"wave","waker":"ack1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	speech, ok := frame.(Speech)
	if !ok {
		t.Fatalf("expected Speech, got %T", frame)
	}
	if speech.ActorID != "Alice" || speech.Message != "hi" || speech.Motion != "wave" || speech.Waker != "ack1" {
		t.Fatalf("unexpected speech payload: %+v", speech)
	}
	if !speech.HasVoice() {
		t.Fatalf("expected speech without voice flag to assume a clip follows")
	}
}

func TestParseControlSpeechVoiceFlag(t *testing.T) {
	frame, err := ParseControl([]byte(`{"type":"Speech","vtb_name":"Bob","message":"","motion":"","voice":false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	speech := frame.(Speech)
	if speech.Voice == nil || *speech.Voice {
		t.Fatalf("expected voice flag false, got %v", speech.Voice)
	}
	if speech.HasVoice() {
		t.Fatalf("expected HasVoice to follow explicit flag")
	}
}

func TestParseControlUpdateTitle(t *testing.T) {
	frame, err := ParseControl([]byte(`{"type":"UpdateTitle","title":"Live"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := frame.(UpdateTitle).Title; got != "Live" {
		t.Fatalf("expected title %q, got %q", "Live", got)
	}
	if frame.Kind() != KindUpdateTitle {
		t.Fatalf("expected kind %q, got %q", KindUpdateTitle, frame.Kind())
	}
}

func TestParseControlChangeScene(t *testing.T) {
	frame, err := ParseControl([]byte(`{"type":"ChangeScene","index":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := frame.(ChangeScene).Index; got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
}

func TestParseControlChangeSceneRequiresIndex(t *testing.T) {
	for _, payload := range []string{
		`{"type":"ChangeScene"}`,
		`{"type":"ChangeScene","index":-1}`,
		`{"type":"ChangeScene","index":"one"}`,
	} {
		if _, err := ParseControl([]byte(payload)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %s, got %v", payload, err)
		}
	}
}

func TestParseControlRejectsMalformedJSON(t *testing.T) {
	for _, payload := range []string{`not json`, `{}`, `[1,2]`} {
		if _, err := ParseControl([]byte(payload)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", payload, err)
		}
	}
}

func TestParseControlUnknownKind(t *testing.T) {
	_, err := ParseControl([]byte(`{"type":"Dance","style":"tango"}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestControlSchemaListsEveryKind(t *testing.T) {
	schema := ControlSchema()
	if len(schema.OneOf) != 3 {
		t.Fatalf("expected 3 event schemas, got %d", len(schema.OneOf))
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("failed to marshal schema: %v", err)
	}

	var decoded struct {
		OneOf []struct {
			Required []string `json:"required"`
		} `json:"oneOf"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("failed to decode schema: %v", err)
	}
	for i, variant := range decoded.OneOf {
		found := false
		for _, name := range variant.Required {
			if name == "type" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected variant %d to require type, got %v", i, variant.Required)
		}
	}
}

func TestClassifyRoutesByMessageType(t *testing.T) {
	frame, err := Classify(true, []byte(`{"type":"UpdateTitle","title":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audio, ok := frame.(Audio); !ok || string(audio.Data) != `{"type":"UpdateTitle","title":"x"}` {
		t.Fatalf("expected binary payload to stay audio, got %#v", frame)
	}

	frame, err = Classify(false, []byte(`{"type":"UpdateTitle","title":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title, ok := frame.(UpdateTitle); !ok || title.Title != "x" {
		t.Fatalf("expected text payload to parse as control event, got %#v", frame)
	}
}
