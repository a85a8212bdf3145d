// Package termtest provides an in-memory term.Display driven by a key script.
package termtest

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"flashdrill/internal/term"
)

// Put records one Put call.
type Put struct {
	X, Y  int
	Text  string
	Style term.Style
}

// Fake is a term.Display with a fixed size. Keys are handed out in order by
// ReadKey; once they run out ReadKey returns KeyQuit. ReadKeyTimeout never
// consumes a key and always times out.
type Fake struct {
	Width, Height int
	Keys          []term.Event

	// Puts holds every Put since the last Clear.
	Puts []Put
	// Frames holds the screen text at every Show, non-blank rows only.
	Frames   []string
	Timeouts []time.Duration
	Cursor   struct {
		X, Y    int
		Visible bool
	}

	grid [][]rune
}

// New returns a blank w x h display that will replay keys.
func New(w, h int, keys ...term.Event) *Fake {
	f := &Fake{Width: w, Height: h, Keys: keys}
	f.Clear()
	return f
}

// Type turns text into one KeyRune event per rune.
func Type(text string) []term.Event {
	var evs []term.Event
	for _, r := range text {
		evs = append(evs, term.Event{Kind: term.KeyRune, Rune: r})
	}
	return evs
}

// Script concatenates event lists.
func Script(parts ...[]term.Event) []term.Event {
	var evs []term.Event
	for _, p := range parts {
		evs = append(evs, p...)
	}
	return evs
}

var (
	Enter     = []term.Event{{Kind: term.KeyEnter}}
	Backspace = []term.Event{{Kind: term.KeyBackspace}}
	Quit      = []term.Event{{Kind: term.KeyQuit}}
	AnyKey    = []term.Event{{Kind: term.KeyRune, Rune: ' '}}
)

func (f *Fake) Clear() {
	f.grid = make([][]rune, f.Height)
	for y := range f.grid {
		f.grid[y] = []rune(strings.Repeat(" ", f.Width))
	}
	f.Puts = nil
}

func (f *Fake) Size() (int, int) { return f.Width, f.Height }

func (f *Fake) Put(x, y int, text string, style term.Style) {
	f.Puts = append(f.Puts, Put{X: x, Y: y, Text: text, Style: style})
	if y < 0 || y >= f.Height {
		return
	}
	for _, r := range text {
		w := max(runewidth.RuneWidth(r), 1)
		for i := 0; i < w; i++ {
			if x+i >= 0 && x+i < f.Width {
				f.grid[y][x+i] = 0
			}
		}
		if x >= 0 && x < f.Width {
			f.grid[y][x] = r
		}
		x += w
	}
}

func (f *Fake) ClearRow(y int) {
	if y < 0 || y >= f.Height {
		return
	}
	f.grid[y] = []rune(strings.Repeat(" ", f.Width))
}

func (f *Fake) Show() {
	var rows []string
	for y := range f.grid {
		if r := f.Row(y); r != "" {
			rows = append(rows, r)
		}
	}
	f.Frames = append(f.Frames, strings.Join(rows, "\n"))
}

func (f *Fake) ShowCursor(x, y int) {
	f.Cursor.X, f.Cursor.Y, f.Cursor.Visible = x, y, true
}

func (f *Fake) HideCursor() { f.Cursor.Visible = false }

func (f *Fake) ReadKey() term.Event {
	if len(f.Keys) == 0 {
		return term.Event{Kind: term.KeyQuit}
	}
	ev := f.Keys[0]
	f.Keys = f.Keys[1:]
	return ev
}

func (f *Fake) ReadKeyTimeout(d time.Duration) (term.Event, bool) {
	f.Timeouts = append(f.Timeouts, d)
	return term.Event{}, false
}

// Row returns row y with the margins trimmed. The trailing half of a wide
// character is left out.
func (f *Fake) Row(y int) string {
	var b strings.Builder
	for _, r := range f.grid[y] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// LastPut returns the most recent Put on row y.
func (f *Fake) LastPut(y int) (Put, bool) {
	for i := len(f.Puts) - 1; i >= 0; i-- {
		if f.Puts[i].Y == y {
			return f.Puts[i], true
		}
	}
	return Put{}, false
}
