// Package term is the display and keyboard boundary of the quiz. The Screen
// type backs it with tcell; termtest provides a scripted stand-in.
package term

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// Kind classifies a key press.
type Kind int

const (
	KeyRune Kind = iota
	KeyEnter
	KeyBackspace
	// KeyQuit is Ctrl-C or Escape.
	KeyQuit
	KeyOther
)

// Event is one key press. Rune is set for KeyRune.
type Event struct {
	Kind Kind
	Rune rune
}

// Style names the few looks the quiz uses.
type Style int

const (
	StyleDefault Style = iota
	StylePrompt
	StyleAnswer
	StyleCorrect
	StyleWrong
	StyleScore
)

// Display is what the quiz needs from a terminal.
type Display interface {
	Clear()
	Size() (width, height int)
	// Put draws text starting at column x of row y.
	Put(x, y int, text string, style Style)
	ClearRow(y int)
	Show()
	ShowCursor(x, y int)
	HideCursor()
	// ReadKey blocks until a key is pressed.
	ReadKey() Event
	// ReadKeyTimeout waits at most d for a key. ok is false on timeout.
	ReadKeyTimeout(d time.Duration) (ev Event, ok bool)
}

// Width is the number of terminal columns text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// CenteredX returns the column at which text starts when centered on
// anchorX, never left of column 0.
func CenteredX(anchorX int, text string) int {
	return max(anchorX-Width(text)/2, 0)
}

// PutCentered draws text on row y centered on column anchorX.
func PutCentered(d Display, y, anchorX int, text string, style Style) {
	d.Put(CenteredX(anchorX, text), y, text, style)
}
