// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds posts and vote comments, in characters.
const MaxLength = 100

var (
	// ErrInvalid is wrapped by every text validation error.
	ErrInvalid = errors.New("invalid text")

	ErrEmpty   = fmt.Errorf("%w: message is required", ErrInvalid)
	ErrTooLong = fmt.Errorf("%w: at most %d characters", ErrInvalid, MaxLength)
)

// Normalize trims surrounding space and composes the text to NFC so a
// precomposed and a decomposed Hangul syllable count the same.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// ValidateMessage normalizes a required message and checks its length.
func ValidateMessage(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(s) > MaxLength {
		return "", ErrTooLong
	}
	return s, nil
}

// ValidateComment is ValidateMessage for optional text.
func ValidateComment(raw string) (string, error) {
	s := Normalize(raw)
	if utf8.RuneCountInString(s) > MaxLength {
		return "", ErrTooLong
	}
	return s, nil
}
