package validate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateAudioSize(t *testing.T) {
	v := NewAudioValidator(1, []string{"wav"})

	if err := v.ValidateAudioSize(make([]byte, 1024)); err != nil {
		t.Fatalf("small payload rejected: %v", err)
	}

	err := v.ValidateAudioSize(bytes.Repeat([]byte{0}, 2*1024*1024))
	if err == nil {
		t.Fatal("oversized payload accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestValidateAudioFormat(t *testing.T) {
	v := NewAudioValidator(10, []string{"webm", "wav", "mp3", "ogg"})

	for _, name := range []string{"clip.wav", "voice.webm", "ogg", "A.MP3"} {
		if err := v.ValidateAudioFormat(name); err != nil {
			t.Fatalf("ValidateAudioFormat(%q) = %v", name, err)
		}
	}
	if err := v.ValidateAudioFormat("track.flac"); err == nil {
		t.Fatal("unsupported format accepted")
	}
	if err := v.ValidateAudioFormat(""); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestValidateTextInputBounds(t *testing.T) {
	v := NewTextValidator(2, 10)

	if err := v.ValidateTextInput("سلام"); err != nil {
		t.Fatalf("in-bounds text rejected: %v", err)
	}
	if err := v.ValidateTextInput(""); err == nil {
		t.Fatal("empty text accepted")
	}
	if err := v.ValidateTextInput("   "); err == nil {
		t.Fatal("whitespace-only text accepted")
	}
	if err := v.ValidateTextInput("a"); err == nil {
		t.Fatal("too-short text accepted")
	}
	if err := v.ValidateTextInput(strings.Repeat("ب", 11)); err == nil {
		t.Fatal("too-long text accepted")
	}
}

func TestValidateLanguageInput(t *testing.T) {
	v := NewTextValidator(1, 1000)

	if err := v.ValidateLanguageInput("سلام دنیا"); err != nil {
		t.Fatalf("Persian text rejected: %v", err)
	}
	if err := v.ValidateLanguageInput("hello"); err != nil {
		t.Fatalf("English text rejected: %v", err)
	}
	if err := v.ValidateLanguageInput("سلام hello"); err != nil {
		t.Fatalf("mixed text rejected: %v", err)
	}
	if err := v.ValidateLanguageInput("12345 !!!"); err == nil {
		t.Fatal("text without letters accepted")
	}
}
