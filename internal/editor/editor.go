// Package editor reads a typed answer on one screen row.
package editor

import (
	"errors"

	"github.com/rivo/uniseg"

	"flashdrill/internal/card"
	"flashdrill/internal/term"
)

// ErrCanceled is returned when the user presses the quit key while typing.
var ErrCanceled = errors.New("input canceled")

// Buffer is an append-only line of text that deletes from the end one
// displayed character at a time.
type Buffer struct {
	text string
}

func (b *Buffer) Insert(r rune) { b.text += string(r) }

// Backspace removes the last grapheme cluster, so a multi-byte or combined
// character goes away in one step. It is a no-op on an empty buffer.
func (b *Buffer) Backspace() {
	b.text = b.text[:lastCluster(b.text)]
}

func (b *Buffer) String() string { return b.text }

func lastCluster(s string) int {
	var (
		start, pos int
		cluster    string
	)
	state := -1
	for rest := s; rest != ""; {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		start = pos
		pos += len(cluster)
	}
	return start
}

// ReadAnswer echoes keystrokes on row y centered on column anchorX until
// Enter, then returns the trimmed text.
func ReadAnswer(d term.Display, y, anchorX int) (string, error) {
	var buf Buffer
	render(d, y, anchorX, &buf)
	for {
		ev := d.ReadKey()
		switch ev.Kind {
		case term.KeyEnter:
			return card.Trim(buf.String()), nil
		case term.KeyQuit:
			return "", ErrCanceled
		case term.KeyBackspace:
			buf.Backspace()
		case term.KeyRune:
			buf.Insert(ev.Rune)
		default:
			continue
		}
		render(d, y, anchorX, &buf)
	}
}

func render(d term.Display, y, anchorX int, buf *Buffer) {
	text := buf.String()
	x := term.CenteredX(anchorX, text)
	d.ClearRow(y)
	d.Put(x, y, text, term.StyleAnswer)
	d.ShowCursor(x+term.Width(text), y)
	d.Show()
}
