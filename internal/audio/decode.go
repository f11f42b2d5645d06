package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
)

// ErrFormatMismatch is returned when a decoded WAV does not match the format
// EncodePCM16 produces.
var ErrFormatMismatch = errors.New("WAV format mismatch")

// Info describes a decoded WAV file.
type Info struct {
	Format   goaudio.Format
	BitDepth int
	Frames   int
	Duration time.Duration
	Peak     float64
}

// Inspect decodes WAV bytes and reports their format, length and peak level.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, errors.New("empty WAV input")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Info{}, errors.New("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Info{}, fmt.Errorf("reading PCM data: %w", err)
	}

	info := Info{
		Format:   goaudio.Format{SampleRate: int(dec.SampleRate), NumChannels: int(dec.NumChans)},
		BitDepth: int(dec.BitDepth),
	}
	if info.Format.NumChannels > 0 {
		info.Frames = len(buf.Data) / info.Format.NumChannels
	}
	if info.Format.SampleRate > 0 {
		info.Duration = framesDuration(info.Frames, info.Format.SampleRate)
	}
	for _, s := range buf.Data {
		info.Peak = math.Max(info.Peak, math.Abs(float64(s)))
	}

	return info, nil
}

// CheckFormat reports whether info matches the 24 kHz mono 16-bit layout.
func CheckFormat(info Info) error {
	if info.Format.SampleRate != SampleRate {
		return fmt.Errorf("%w: sample rate %d, want %d", ErrFormatMismatch, info.Format.SampleRate, SampleRate)
	}
	if info.Format.NumChannels != Channels {
		return fmt.Errorf("%w: channels %d, want %d", ErrFormatMismatch, info.Format.NumChannels, Channels)
	}
	if info.BitDepth != BitsPerSample {
		return fmt.Errorf("%w: bit depth %d, want %d", ErrFormatMismatch, info.BitDepth, BitsPerSample)
	}

	return nil
}

func framesDuration(frames, sampleRate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
