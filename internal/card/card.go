// Package card parses delimited two-field lines into flashcards.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord reports a line that does not hold two non-empty fields.
var ErrMalformedRecord = errors.New("malformed record")

// Flashcard is a front/back pair of trimmed, non-empty fields.
type Flashcard struct {
	Front string
	Back  string
}

// Side returns the front for 0 and the back for any other value.
func (c Flashcard) Side(i int) string {
	if i == 0 {
		return c.Front
	}
	return c.Back
}

// Parse splits line on the first sep and trims both fields. Anything after a
// second sep is dropped.
func Parse(line, sep string) (Flashcard, error) {
	if sep == "" {
		return Flashcard{}, fmt.Errorf("%w: empty separator", ErrMalformedRecord)
	}
	front, rest, found := strings.Cut(line, sep)
	if !found {
		return Flashcard{}, fmt.Errorf("%w: missing separator %q in %q", ErrMalformedRecord, sep, Trim(line))
	}
	back, _, _ := strings.Cut(rest, sep)

	c := Flashcard{Front: Trim(front), Back: Trim(back)}
	if c.Front == "" || c.Back == "" {
		return Flashcard{}, fmt.Errorf("%w: empty field in %q", ErrMalformedRecord, Trim(line))
	}
	return c, nil
}

// Trim drops leading spaces and tabs, everything from the first line
// terminator on, and trailing spaces and tabs.
func Trim(s string) string {
	s = strings.TrimLeft(s, " \t")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "\r")
	return strings.TrimRight(s, " \t")
}
