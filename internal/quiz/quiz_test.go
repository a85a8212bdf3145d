package quiz

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"flashdrill/internal/card"
	"flashdrill/internal/deck"
	"flashdrill/internal/term"
	"flashdrill/internal/term/termtest"
)

func session(reversed bool, pairs ...string) *deck.Session {
	s := &deck.Session{Reversed: reversed}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Cards = append(s.Cards, card.Flashcard{Front: pairs[i], Back: pairs[i+1]})
	}
	return s
}

func TestMatch(t *testing.T) {
	tests := []struct {
		answer, expected string
		want             bool
	}{
		{"hello", "Hello", true},
		{"HELLO", "hello", true},
		{"straße", "STRASSE", true},
		{"ÉTÉ", "été", true},
		{"ωμέγα", "ΩΜΈΓΑ", true},
		{"cafe", "café", false},
		{"hello", "hello!", false},
		{"", "x", false},
	}
	for _, tt := range tests {
		if got := Match(tt.answer, tt.expected); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}

func TestRunAllCorrect(t *testing.T) {
	s := session(false, "hola", "Hello", "perro", "Dog", "gato", "Cat")
	d := termtest.New(60, 20, termtest.Script(
		termtest.Type("hello"), termtest.Enter,
		termtest.Type("DOG"), termtest.Enter,
		termtest.Type("cat "), termtest.Enter,
	)...)
	r := &Runner{Display: d, Wait: 50 * time.Millisecond}

	score, err := r.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if score.String() != "3/3" {
		t.Fatalf("score = %s, want 3/3", score)
	}
	if len(d.Timeouts) != 3 {
		t.Fatalf("timed waits = %d, want 3", len(d.Timeouts))
	}
	for _, w := range d.Timeouts {
		if w != 50*time.Millisecond {
			t.Fatalf("timed wait %v, want 50ms", w)
		}
	}
	if len(d.Keys) != 0 {
		t.Fatalf("%d keys left unread", len(d.Keys))
	}
}

func TestRunDefaultWait(t *testing.T) {
	d := termtest.New(60, 20, termtest.Script(termtest.Type("b"), termtest.Enter)...)
	if _, err := (&Runner{Display: d}).Run(session(false, "a", "b")); err != nil {
		t.Fatal(err)
	}
	if len(d.Timeouts) != 1 || d.Timeouts[0] != DefaultWait {
		t.Fatalf("timeouts = %v, want [%v]", d.Timeouts, DefaultWait)
	}
}

func TestRunWrongAnswerShowsBothSides(t *testing.T) {
	s := session(false, "perro", "dog")
	d := termtest.New(60, 20, termtest.Script(
		termtest.Type("cat"), termtest.Enter,
		termtest.AnyKey,
	)...)
	r := &Runner{Display: d}

	score, err := r.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if score != (Score{Correct: 0, Total: 1}) {
		t.Fatalf("score = %+v", score)
	}
	if len(d.Timeouts) != 0 {
		t.Fatal("wrong answer must wait for a key, not a timer")
	}
	if d.Row(9) != "perro" || d.Row(11) != "dog" {
		t.Fatalf("feedback rows = %q / %q", d.Row(9), d.Row(11))
	}
	if p, _ := d.LastPut(11); p.Style != term.StyleWrong {
		t.Fatalf("expected answer drawn with style %v", p.Style)
	}
}

func TestRunPromptLayout(t *testing.T) {
	d := termtest.New(60, 20, termtest.Quit...)
	_, _ = (&Runner{Display: d}).Run(session(false, "question", "answer"))

	if len(d.Frames) == 0 || d.Frames[0] != "question" {
		t.Fatalf("first frame = %q", d.Frames)
	}
	p, ok := d.LastPut(9)
	if !ok || p.X != 26 || p.Text != "question" {
		t.Fatalf("prompt put = %+v, want question at x=26 row 9", p)
	}
}

func TestRunReversed(t *testing.T) {
	s := session(true, "dog", "perro")
	d := termtest.New(60, 20, termtest.Script(termtest.Type("Dog"), termtest.Enter)...)
	score, err := (&Runner{Display: d}).Run(s)
	if err != nil || score.String() != "1/1" {
		t.Fatalf("Run = %s, %v", score, err)
	}
	if d.Frames[0] != "perro" {
		t.Fatalf("prompt frame = %q, want perro", d.Frames[0])
	}
}

func TestRunAbortWhileTyping(t *testing.T) {
	s := session(false, "a", "1", "b", "2", "c", "3")
	d := termtest.New(60, 20, termtest.Script(
		termtest.Type("1"), termtest.Enter,
		termtest.Type("x"), termtest.Quit,
	)...)
	score, err := (&Runner{Display: d}).Run(s)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if score != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("score = %+v, want 1/1", score)
	}
	if d.Cursor.Visible {
		t.Fatal("cursor left visible after abort")
	}
}

func TestRunAbortOnFeedback(t *testing.T) {
	s := session(false, "a", "1", "b", "2")
	d := termtest.New(60, 20, termtest.Script(
		termtest.Type("wrong"), termtest.Enter,
		termtest.Quit,
	)...)
	score, err := (&Runner{Display: d}).Run(s)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if score != (Score{Correct: 0, Total: 1}) {
		t.Fatalf("score = %+v, want 0/1", score)
	}
}

func TestShowSummary(t *testing.T) {
	d := termtest.New(60, 20, termtest.AnyKey...)
	(&Runner{Display: d}).ShowSummary(Score{Correct: 2, Total: 3})

	if got := d.Row(10); got != "Score: 2/3" {
		t.Fatalf("summary row = %q", got)
	}
	if len(d.Keys) != 0 {
		t.Fatal("summary did not wait for a key")
	}
}

func TestRunLoadedSession(t *testing.T) {
	s, err := deck.Load(strings.NewReader("dog,perro\ncat,gato\n"), deck.Options{
		Requested: 2,
		Separator: ",",
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"dog": "perro", "cat": "gato"}

	var keys []term.Event
	for i := 0; i < s.Len(); i++ {
		if want[s.Question(i)] != s.Answer(i) {
			t.Fatalf("card %d: %q -> %q", i, s.Question(i), s.Answer(i))
		}
		keys = termtest.Script(keys, termtest.Type(s.Answer(i)), termtest.Enter)
	}

	d := termtest.New(60, 20, keys...)
	score, err := (&Runner{Display: d}).Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if score.Total != 2 || score.Correct != 2 {
		t.Fatalf("score = %s, want 2/2", score)
	}
	prompts := map[string]bool{}
	for _, f := range d.Frames {
		if _, ok := want[f]; ok {
			prompts[f] = true
		}
	}
	if len(prompts) != 2 {
		t.Fatalf("prompts shown = %v, want dog and cat", prompts)
	}
}
