package audio

import (
	"encoding/binary"
	"time"

	goaudio "github.com/go-audio/audio"
)

// PCMBuffer views raw little-endian 16-bit mono PCM as a go-audio buffer.
// A trailing odd byte is ignored.
func PCMBuffer(payload []byte, sampleRate int) *goaudio.IntBuffer {
	data := make([]int, len(payload)/bytesPerSample)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(payload[i*bytesPerSample:])))
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: Channels},
		Data:           data,
		SourceBitDepth: BitsPerSample,
	}
}

// PCMDuration returns the playback length of a raw PCM payload.
func PCMDuration(payload []byte, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	return framesDuration(PCMBuffer(payload, sampleRate).NumFrames(), sampleRate)
}
