// Package deck builds a quiz session from a delimited text file.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"flashdrill/internal/card"
	"flashdrill/internal/sample"
)

var (
	// ErrSourceUnavailable reports a source file that cannot be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrEmptySource reports a source without a single record line.
	ErrEmptySource = errors.New("empty source")
)

// Options control how a session is drawn from a source.
type Options struct {
	// Requested is the wanted session length; it is clamped to the number
	// of records in the source.
	Requested int
	// Separator splits a line into its two fields.
	Separator string
	// Reversed shows the back and expects the front.
	Reversed bool
	// Rand picks the records. Nil means a generator seeded from the clock.
	Rand   sample.Rand
	Logger *slog.Logger
}

// Session is the ordered list of cards for one run.
type Session struct {
	Cards    []card.Flashcard
	Reversed bool
}

// Len returns the number of cards in the session.
func (s *Session) Len() int { return len(s.Cards) }

// Question returns the side of card i shown to the user.
func (s *Session) Question(i int) string {
	if s.Reversed {
		return s.Cards[i].Back
	}
	return s.Cards[i].Front
}

// Answer returns the side of card i the user has to type.
func (s *Session) Answer(i int) string {
	if s.Reversed {
		return s.Cards[i].Front
	}
	return s.Cards[i].Back
}

// Open reads the source file at path and loads a session from it.
func Open(path string, opts Options) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	return Load(f, opts)
}

// Index returns the byte offset of every record line in r. Blank lines are
// not records and are skipped.
func Index(r io.Reader) ([]int64, error) {
	br := bufio.NewReader(r)
	var (
		offsets []int64
		off     int64
	)
	for {
		line, err := br.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			offsets = append(offsets, off)
		}
		off += int64(len(line))
		if err == io.EOF {
			return offsets, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
	}
}

// Load indexes src once, samples min(Requested, records) lines and parses
// them in draw order. Any malformed sampled line fails the whole load.
func Load(src io.ReadSeeker, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Requested < 1 {
		return nil, fmt.Errorf("deck: requested session length %d, need at least 1", opts.Requested)
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	offsets, err := Index(src)
	if err != nil {
		return nil, err
	}
	if len(offsets) == 0 {
		return nil, ErrEmptySource
	}
	n := min(opts.Requested, len(offsets))
	logger.Info("source indexed", "records", len(offsets), "requested", opts.Requested, "session_len", n)

	picks, err := sample.Indices(rnd, len(offsets), n)
	if err != nil {
		return nil, err
	}

	s := &Session{Cards: make([]card.Flashcard, 0, n), Reversed: opts.Reversed}
	for _, idx := range picks {
		line, err := readLineAt(src, offsets[idx])
		if err != nil {
			return nil, err
		}
		c, err := card.Parse(line, opts.Separator)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		}
		logger.Debug("card loaded", "record", idx+1)
		s.Cards = append(s.Cards, c)
	}
	return s, nil
}

func readLineAt(src io.ReadSeeker, off int64) (string, error) {
	if _, err := src.Seek(off, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	line, err := bufio.NewReader(src).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return line, nil
}
