// Package validate rejects malformed input before it reaches the pipeline.
package validate

import (
	"fmt"
	"strings"
)

// ValidationError describes a rejected input. The session layer converts it
// into an error frame without closing the connection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AudioValidator checks decoded audio payloads against configured bounds.
type AudioValidator struct {
	MaxBytes       int
	AllowedFormats []string
}

// NewAudioValidator creates a validator with the given size ceiling in
// megabytes and allowed container formats.
func NewAudioValidator(maxSizeMB int, formats []string) *AudioValidator {
	return &AudioValidator{
		MaxBytes:       maxSizeMB * 1024 * 1024,
		AllowedFormats: formats,
	}
}

// ValidateAudioSize rejects payloads above the configured ceiling.
func (v *AudioValidator) ValidateAudioSize(data []byte) error {
	if len(data) > v.MaxBytes {
		return &ValidationError{
			Field:  "audio",
			Reason: fmt.Sprintf("payload too large: %d bytes, max %d", len(data), v.MaxBytes),
		}
	}
	return nil
}

// ValidateAudioFormat checks a filename or bare extension against the
// allowed format list.
func (v *AudioValidator) ValidateAudioFormat(name string) error {
	if name == "" {
		return &ValidationError{Field: "audio", Reason: "format name is required"}
	}
	ext := strings.ToLower(name)
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = ext[i+1:]
	}
	for _, allowed := range v.AllowedFormats {
		if ext == allowed {
			return nil
		}
	}
	return &ValidationError{
		Field:  "audio",
		Reason: fmt.Sprintf("unsupported format %q, allowed: %v", ext, v.AllowedFormats),
	}
}

// TextValidator checks text utterances against configured length bounds.
type TextValidator struct {
	MinLength int
	MaxLength int
}

// NewTextValidator creates a validator with the given rune-length bounds.
func NewTextValidator(minLength, maxLength int) *TextValidator {
	return &TextValidator{MinLength: minLength, MaxLength: maxLength}
}

// ValidateTextInput rejects empty, too-short, or too-long text.
func (v *TextValidator) ValidateTextInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Reason: "input cannot be empty"}
	}
	n := len([]rune(text))
	if n > v.MaxLength {
		return &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("too long: %d characters, max %d", n, v.MaxLength),
		}
	}
	if n < v.MinLength {
		return &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("too short: %d characters, min %d", n, v.MinLength),
		}
	}
	return nil
}

// ValidateLanguageInput requires at least one Persian or Latin letter.
// Mixed Persian/English text is accepted.
func (v *TextValidator) ValidateLanguageInput(text string) error {
	for _, r := range text {
		if isPersian(r) || isLatin(r) {
			return nil
		}
	}
	return &ValidationError{Field: "text", Reason: "must contain Persian or English characters"}
}

func isPersian(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) || (r >= 0xFB50 && r <= 0xFDFF)
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
