package term

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ErrDisplay reports a terminal that could not be set up.
var ErrDisplay = errors.New("display unavailable")

var styles = map[Style]tcell.Style{
	StyleDefault: tcell.StyleDefault,
	StylePrompt:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	StyleAnswer:  tcell.StyleDefault.Bold(true),
	StyleCorrect: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	StyleWrong:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	StyleScore:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 255, 255)), // Cyan
}

// Screen is a Display on top of a tcell screen.
type Screen struct {
	s tcell.Screen
}

// New takes over the terminal. Call Fini to give it back.
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplay, err)
	}
	return Wrap(s)
}

// Wrap initializes s and uses it as the display.
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplay, err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	s.Clear()
	return &Screen{s: s}, nil
}

// Fini restores the terminal.
func (sc *Screen) Fini() { sc.s.Fini() }

func (sc *Screen) Clear() { sc.s.Clear() }

func (sc *Screen) Size() (int, int) { return sc.s.Size() }

func (sc *Screen) Show() { sc.s.Show() }

func (sc *Screen) ShowCursor(x, y int) { sc.s.ShowCursor(x, y) }

func (sc *Screen) HideCursor() { sc.s.HideCursor() }

// Put draws one grapheme cluster per cell run, advancing by its display width.
func (sc *Screen) Put(x, y int, text string, style Style) {
	st := styles[style]
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		sc.s.SetContent(x, y, runes[0], runes[1:], st)
		x += runewidth.StringWidth(g.Str())
	}
}

func (sc *Screen) ClearRow(y int) {
	width, _ := sc.s.Size()
	for x := 0; x < width; x++ {
		sc.s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func (sc *Screen) ReadKey() Event {
	for {
		switch ev := sc.s.PollEvent().(type) {
		case nil:
			// screen finalized
			return Event{Kind: KeyQuit}
		case *tcell.EventResize:
			sc.s.Sync()
		case *tcell.EventKey:
			return convert(ev)
		}
	}
}

// ReadKeyTimeout posts an interrupt tagged for this call after d. Interrupts
// left over from earlier calls carry another tag and are skipped.
func (sc *Screen) ReadKeyTimeout(d time.Duration) (Event, bool) {
	tag := new(int)
	t := time.AfterFunc(d, func() {
		_ = sc.s.PostEvent(tcell.NewEventInterrupt(tag))
	})
	defer t.Stop()

	for {
		switch ev := sc.s.PollEvent().(type) {
		case nil:
			return Event{Kind: KeyQuit}, true
		case *tcell.EventResize:
			sc.s.Sync()
		case *tcell.EventInterrupt:
			if ev.Data() == tag {
				return Event{}, false
			}
		case *tcell.EventKey:
			return convert(ev), true
		}
	}
}

func convert(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyEnter:
		return Event{Kind: KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Kind: KeyBackspace}
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return Event{Kind: KeyQuit}
	case tcell.KeyRune:
		return Event{Kind: KeyRune, Rune: ev.Rune()}
	}
	return Event{Kind: KeyOther}
}
