package text

import (
	"errors"
	"fmt"
	"strings"
)

// Per-request quotas of the TextToVoice API.
const (
	MaxChineseChars = 150
	MaxLatinLetters = 500
)

// ErrInvalid classifies every input rejection made before a request is sent.
var ErrInvalid = errors.New("invalid input")

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = fmt.Errorf("%w: text is empty", ErrInvalid)

// Script names a counted character class.
type Script string

const (
	ScriptChinese Script = "chinese"
	ScriptLatin   Script = "latin"
)

// TooLongError reports a character class over its quota.
type TooLongError struct {
	Script Script
	Count  int
	Limit  int
}

func (e *TooLongError) Error() string {
	switch e.Script {
	case ScriptChinese:
		return fmt.Sprintf("text too long: %d Chinese characters (max %d)", e.Count, e.Limit)
	case ScriptLatin:
		return fmt.Sprintf("text too long: %d Latin letters (max %d)", e.Count, e.Limit)
	default:
		return fmt.Sprintf("text too long: %d %s characters (max %d)", e.Count, e.Script, e.Limit)
	}
}

func (e *TooLongError) Unwrap() error { return ErrInvalid }

// Counts holds per-class character counts of a text.
type Counts struct {
	Chinese int
	Latin   int
}

// Count tallies CJK Unified Ideographs (U+4E00..U+9FFF) and ASCII letters.
func Count(s string) Counts {
	var c Counts
	for _, r := range s {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			c.Chinese++
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			c.Latin++
		}
	}

	return c
}

// Validate trims s and checks it against the per-script quotas. The two
// quotas are independent; there is no combined length limit.
func Validate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}

	c := Count(s)
	if c.Chinese > MaxChineseChars {
		return "", &TooLongError{Script: ScriptChinese, Count: c.Chinese, Limit: MaxChineseChars}
	}
	if c.Latin > MaxLatinLetters {
		return "", &TooLongError{Script: ScriptLatin, Count: c.Latin, Limit: MaxLatinLetters}
	}

	return s, nil
}
