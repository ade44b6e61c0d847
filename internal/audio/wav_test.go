package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestSilenceProducesValidWAV(t *testing.T) {
	b := Silence(2*time.Second, DefaultSampleRate)

	wantData := 2 * DefaultSampleRate * 2
	if len(b) != 44+wantData {
		t.Fatalf("length = %d, want %d", len(b), 44+wantData)
	}
	if !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		t.Fatal("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(b[24:28]); rate != DefaultSampleRate {
		t.Fatalf("sample rate = %d, want %d", rate, DefaultSampleRate)
	}
	if size := binary.LittleEndian.Uint32(b[40:44]); size != uint32(wantData) {
		t.Fatalf("data chunk size = %d, want %d", size, wantData)
	}
	for _, v := range b[44:] {
		if v != 0 {
			t.Fatal("silence payload must be all zeros")
		}
	}
}

func TestSamplesToWAVClampsAndEncodes(t *testing.T) {
	b := SamplesToWAV([]float32{0, 1, -1, 2, -2}, 16000)

	if len(b) != 44+10 {
		t.Fatalf("length = %d, want 54", len(b))
	}
	read := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(b[44+i*2:]))
	}
	if read(0) != 0 {
		t.Fatalf("sample 0 = %d, want 0", read(0))
	}
	if read(1) != 32767 {
		t.Fatalf("sample 1 = %d, want 32767", read(1))
	}
	// Out-of-range input clamps to the same extremes.
	if read(3) != read(1) || read(4) != read(2) {
		t.Fatal("out-of-range samples must clamp")
	}
}
