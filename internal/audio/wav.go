package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Container format produced by EncodePCM16.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
	HeaderSize    = 44
)

// bytesPerSample is the width of one mono 16-bit sample.
const bytesPerSample = BitsPerSample / 8

// ErrMalformedHeader is returned by ParseHeader for input that is not a
// canonical 44-byte-header PCM WAV.
var ErrMalformedHeader = errors.New("malformed WAV header")

// Header holds the fields of a canonical PCM WAV header.
type Header struct {
	RIFFSize      uint32
	FormatCode    uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// EncodePCM16 wraps raw little-endian 16-bit mono PCM in a RIFF/WAVE
// container. The payload is appended verbatim after a 44-byte header; no
// padding or extra chunks are written, so the output is fully determined by
// its inputs.
func EncodePCM16(payload []byte, sampleRate int) []byte {
	const (
		channels   = Channels
		blockAlign = channels * bytesPerSample
	)
	byteRate := sampleRate * channels * bytesPerSample
	dataSize := len(payload)

	out := make([]byte, HeaderSize+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], channels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], BitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))
	copy(out[HeaderSize:], payload)

	return out
}

// ParseHeader splits a container written by EncodePCM16 back into its header
// fields and payload. The returned payload aliases data.
func ParseHeader(data []byte) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedHeader, len(data), HeaderSize)
	}
	for _, tag := range []struct {
		off  int
		want string
	}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
		if got := string(data[tag.off : tag.off+4]); got != tag.want {
			return Header{}, nil, fmt.Errorf("%w: tag at offset %d is %q, want %q", ErrMalformedHeader, tag.off, got, tag.want)
		}
	}
	if fmtSize := binary.LittleEndian.Uint32(data[16:20]); fmtSize != 16 {
		return Header{}, nil, fmt.Errorf("%w: fmt chunk size %d, want 16", ErrMalformedHeader, fmtSize)
	}

	h := Header{
		RIFFSize:      binary.LittleEndian.Uint32(data[4:8]),
		FormatCode:    binary.LittleEndian.Uint16(data[20:22]),
		Channels:      binary.LittleEndian.Uint16(data[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(data[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(data[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(data[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(data[34:36]),
		DataSize:      binary.LittleEndian.Uint32(data[40:44]),
	}

	end := HeaderSize + int(h.DataSize)
	if end > len(data) {
		return Header{}, nil, fmt.Errorf("%w: data size %d exceeds %d available bytes", ErrMalformedHeader, h.DataSize, len(data)-HeaderSize)
	}

	return h, data[HeaderSize:end], nil
}
