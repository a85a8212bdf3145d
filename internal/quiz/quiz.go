// Package quiz runs a session card by card and keeps the score.
package quiz

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/cases"

	"flashdrill/internal/deck"
	"flashdrill/internal/editor"
	"flashdrill/internal/term"
)

// DefaultWait is how long "Correct" stays up unless a key is pressed.
const DefaultWait = 700 * time.Millisecond

// ErrAborted is returned when the user quits before the last card.
var ErrAborted = errors.New("session aborted")

// Score counts correct answers out of answered cards.
type Score struct {
	Correct int
	Total   int
}

func (s Score) String() string { return fmt.Sprintf("%d/%d", s.Correct, s.Total) }

// Match reports whether answer equals expected under Unicode case folding.
func Match(answer, expected string) bool {
	return cases.Fold().String(answer) == cases.Fold().String(expected)
}

// Runner shows every card of a session on Display and collects answers.
type Runner struct {
	Display term.Display
	// Wait is the pause after a correct answer. Zero means DefaultWait.
	Wait   time.Duration
	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Runner) wait() time.Duration {
	if r.Wait <= 0 {
		return DefaultWait
	}
	return r.Wait
}

// Run plays the session. On ErrAborted the returned score covers the cards
// answered so far.
func (r *Runner) Run(s *deck.Session) (Score, error) {
	var score Score
	start := time.Now()
	for i := 0; i < s.Len(); i++ {
		ok, err := r.card(s.Question(i), s.Answer(i))
		if err != nil {
			r.logger().Info("session aborted", "card", i, "score", score.String())
			return score, err
		}
		score.Total++
		if ok {
			score.Correct++
		}
		r.logger().Debug("card answered", "card", i, "correct", ok)

		if err := r.feedback(ok, s.Question(i), s.Answer(i)); err != nil {
			r.logger().Info("session aborted", "card", i, "score", score.String())
			return score, err
		}
	}
	r.logger().Info("session finished", "score", score.String(), "dur_ms", time.Since(start).Milliseconds())
	return score, nil
}

func (r *Runner) card(question, expected string) (bool, error) {
	d := r.Display
	cx, cy := center(d)

	d.Clear()
	term.PutCentered(d, cy-1, cx, question, term.StylePrompt)
	d.Show()

	answer, err := editor.ReadAnswer(d, cy+1, cx)
	d.HideCursor()
	if errors.Is(err, editor.ErrCanceled) {
		return false, ErrAborted
	}
	if err != nil {
		return false, err
	}
	return Match(answer, expected), nil
}

func (r *Runner) feedback(correct bool, question, expected string) error {
	d := r.Display
	cx, cy := center(d)

	d.Clear()
	if correct {
		term.PutCentered(d, cy, cx, "Correct", term.StyleCorrect)
		d.Show()
		if ev, ok := d.ReadKeyTimeout(r.wait()); ok && ev.Kind == term.KeyQuit {
			return ErrAborted
		}
		return nil
	}

	term.PutCentered(d, cy-1, cx, question, term.StylePrompt)
	term.PutCentered(d, cy+1, cx, expected, term.StyleWrong)
	d.Show()
	if d.ReadKey().Kind == term.KeyQuit {
		return ErrAborted
	}
	return nil
}

// ShowSummary displays the final score and waits for any key.
func (r *Runner) ShowSummary(score Score) {
	d := r.Display
	cx, cy := center(d)

	d.Clear()
	term.PutCentered(d, cy, cx, "Score: "+score.String(), term.StyleScore)
	d.Show()
	d.ReadKey()
}

func center(d term.Display) (x, y int) {
	w, h := d.Size()
	return w / 2, h / 2
}
