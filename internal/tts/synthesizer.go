package tts

import (
	"context"
	"errors"
	"fmt"
)

// Fixed request fields.
const (
	SampleRate = 24000
	CodecPCM   = "pcm"
	ModelType  = 1
)

// ErrService classifies failures reported by the remote synthesis service.
var ErrService = errors.New("speech synthesis service error")

// Request is one TextToVoice call.
type Request struct {
	Text            string
	Voice           VoiceSelection
	SampleRate      int
	Speed           int
	Volume          int
	PrimaryLanguage Language
	SessionID       string
}

// Synthesizer submits a request to the remote service and returns the
// base64-encoded raw PCM it answered with.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
}

// ServiceError carries the code and message reported by the service.
type ServiceError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *ServiceError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("[%s] %s (request id %s)", e.Code, e.Message, e.RequestID)
	}

	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return ErrService }
