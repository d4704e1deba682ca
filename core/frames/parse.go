package frames

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed control event")
	ErrUnknownKind = errors.New("unknown control event type")
)

type envelope struct {
	Type Kind `json:"type"`
}

type updateTitleMessage struct {
	Title string `json:"title"`
}

type changeSceneMessage struct {
	Index *int `json:"index"`
}

type speechMessage struct {
	VtbName string `json:"vtb_name"`
	Message string `json:"message"`
	Motion  string `json:"motion"`
	Waker   string `json:"waker"`
	Voice   *bool  `json:"voice"`
}

// ParseControl decodes a text message into a control event.
//
// Errors wrap [ErrMalformed] when the payload is not a valid event and
// [ErrUnknownKind] when the type discriminator is not recognised.
func ParseControl(data []byte) (Frame, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case KindUpdateTitle:
		var msg updateTitleMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return UpdateTitle{Title: msg.Title}, nil

	case KindChangeScene:
		var msg changeSceneMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		} else if msg.Index == nil {
			return nil, fmt.Errorf("%w: %s: missing index", ErrMalformed, env.Type)
		} else if *msg.Index < 0 {
			return nil, fmt.Errorf("%w: %s: negative index %d", ErrMalformed, env.Type, *msg.Index)
		}
		return ChangeScene{Index: *msg.Index}, nil

	case KindSpeech:
		var msg speechMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return Speech{
			ActorID: msg.VtbName,
			Message: msg.Message,
			Motion:  msg.Motion,
			Waker:   msg.Waker,
			Voice:   msg.Voice,
		}, nil

	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
}

// Classify turns one inbound message into a frame. Binary payloads are
// always audio; text payloads are parsed as control events.
func Classify(binary bool, data []byte) (Frame, error) {
	if binary {
		return NewAudio(data), nil
	}
	return ParseControl(data)
}
