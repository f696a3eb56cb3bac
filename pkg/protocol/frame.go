package protocol

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/vango-dev/navheader/internal/errors"
)

// MaxPayloadSize is the largest event frame accepted.
const MaxPayloadSize = 4096

// DefaultEventType is used when an event frame omits the event name.
const DefaultEventType = "click"

// Event is a client interaction with the element rendered under HID.
type Event struct {
	HID   string `json:"hid"`
	Type  string `json:"event"`
	Value any    `json:"value,omitempty"`
}

// Update is a server frame.
type Update struct {
	HTML string `json:"html,omitempty"`
	Path string `json:"path,omitempty"`

	// Replace asks the client to replace its history entry instead of
	// pushing a new one.
	Replace bool          `json:"replace,omitempty"`
	Error   *ErrorMessage `json:"error,omitempty"`
}

// ErrorMessage describes a failed event.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fatal   bool   `json:"fatal,omitempty"`
}

// DecodeEvent parses an event frame. Errors carry code E400.
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) > MaxPayloadSize {
		return nil, errors.New("E400").WithDetailf("frame of %d bytes exceeds %d", len(data), MaxPayloadSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var e Event
	if err := dec.Decode(&e); err != nil {
		return nil, errors.New("E400").Wrap(err)
	}
	if dec.More() {
		return nil, errors.New("E400").WithDetail("trailing data after event")
	}
	if e.HID == "" {
		return nil, errors.New("E400").WithDetail("hid is required")
	}
	if e.Type == "" {
		e.Type = DefaultEventType
	}
	return &e, nil
}

// EncodeEvent encodes an event frame.
func EncodeEvent(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

// EncodeUpdate encodes a server frame.
func EncodeUpdate(u *Update) ([]byte, error) {
	return json.Marshal(u)
}

// DecodeUpdate parses a server frame.
func DecodeUpdate(data []byte) (*Update, error) {
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, errors.New("E400").Wrap(err)
	}
	return &u, nil
}

// NewErrorMessage converts err into a wire error. Structured errors keep
// their code. Anything else is reported as fatal.
func NewErrorMessage(err error) *ErrorMessage {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return &ErrorMessage{Code: e.Code, Message: e.Message}
	}
	return &ErrorMessage{Code: "internal", Message: err.Error(), Fatal: true}
}
