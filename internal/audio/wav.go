package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// DefaultSampleRate is the canonical output rate for synthesized audio.
const DefaultSampleRate = 22050

// Silence encodes a mono 16-bit PCM WAV of silence for the given duration.
// The TTS layer uses this as its unconditional last resort so callers always
// receive playable bytes.
func Silence(d time.Duration, sampleRate int) []byte {
	numSamples := int(d.Milliseconds()) * sampleRate / 1000
	return SamplesToWAV(make([]float32, numSamples), sampleRate)
}

// SamplesToWAV encodes float32 PCM samples as a mono 16-bit WAV byte slice.
func SamplesToWAV(samples []float32, sampleRate int) []byte {
	dataLen := len(samples) * 2
	buf := make([]byte, 44+dataLen)
	writeWAVHeader(buf, sampleRate, dataLen)

	for i, s := range samples {
		clamped := max(-1.0, min(1.0, s))
		val := int16(clamped * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[44+i*2:], uint16(val))
	}

	return buf
}

func writeWAVHeader(buf []byte, sampleRate, dataSize int) {
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                   // bits per sample
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
}
