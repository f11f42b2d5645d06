package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/example/go-tencent-tts/internal/audio"
	"github.com/example/go-tencent-tts/internal/text"
	"github.com/google/uuid"
)

// ErrMalformedAudio is returned when the service answers with audio that is
// not base64-encoded 16-bit PCM.
var ErrMalformedAudio = errors.New("malformed audio payload")

type Service struct {
	synth     Synthesizer
	log       *slog.Logger
	sessionID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithSessionIDs replaces the per-request session id generator.
func WithSessionIDs(fn func() string) Option {
	return func(s *Service) { s.sessionID = fn }
}

func NewService(synth Synthesizer, opts ...Option) *Service {
	s := &Service{
		synth:     synth,
		log:       slog.Default(),
		sessionID: uuid.NewString,
	}
	for _, fn := range opts {
		fn(s)
	}

	return s
}

// Synthesize validates input, calls the remote service once and returns the
// complete WAV container.
func (s *Service) Synthesize(ctx context.Context, input string, p Params) ([]byte, error) {
	pcm, err := s.synthesizePCM(ctx, input, p)
	if err != nil {
		return nil, err
	}

	return audio.EncodePCM16(pcm, SampleRate), nil
}

// SynthesizeToFile runs Synthesize and writes the container to outPath,
// creating missing parent directories. It returns the absolute path written.
func (s *Service) SynthesizeToFile(ctx context.Context, input, outPath string, p Params) (string, error) {
	if strings.TrimSpace(outPath) == "" {
		return "", fmt.Errorf("%w: output path is empty", text.ErrInvalid)
	}
	abs, err := filepath.Abs(outPath)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	pcm, err := s.synthesizePCM(ctx, input, p)
	if err != nil {
		return "", err
	}
	wav := audio.EncodePCM16(pcm, SampleRate)

	if err := writeOutput(abs, wav); err != nil {
		return "", err
	}

	s.log.Info("wrote audio",
		"path", abs,
		"size", humanize.Bytes(uint64(len(wav))),
		"duration", audio.PCMDuration(pcm, SampleRate).String(),
	)

	return abs, nil
}

func (s *Service) synthesizePCM(ctx context.Context, input string, p Params) ([]byte, error) {
	txt, err := text.Validate(input)
	if err != nil {
		return nil, err
	}
	if p.Voice == nil {
		p.Voice = Preset{ID: DefaultVoiceType}
	}

	req := Request{
		Text:            txt,
		Voice:           p.Voice,
		SampleRate:      SampleRate,
		Speed:           p.Speed,
		Volume:          p.Volume,
		PrimaryLanguage: p.PrimaryLanguage,
		SessionID:       s.sessionID(),
	}

	counts := text.Count(txt)
	s.log.Debug("synthesizing",
		"session_id", req.SessionID,
		"voice", req.Voice.String(),
		"language", req.PrimaryLanguage.String(),
		"chinese_chars", counts.Chinese,
		"latin_letters", counts.Latin,
	)

	encoded, err := s.synth.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("text to voice (session %s): %w", req.SessionID, err)
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAudio, err)
	}
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of 16-bit samples", ErrMalformedAudio, len(pcm))
	}

	return pcm, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
