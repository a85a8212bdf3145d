// Package diag sets up logging and sorts errors into the exit taxonomy.
package diag

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"flashdrill/internal/card"
	"flashdrill/internal/config"
	"flashdrill/internal/deck"
	"flashdrill/internal/quiz"
	"flashdrill/internal/term"
)

// Code is a coarse error class used in logs and for the exit status.
type Code string

const (
	CodeOK                Code = "ok"
	CodeUsage             Code = "usage"
	CodeSourceUnavailable Code = "source_unavailable"
	CodeEmptySource       Code = "empty_source"
	CodeMalformedRecord   Code = "malformed_record"
	CodeAborted           Code = "aborted"
	CodeDisplay           Code = "display"
	CodeUnknown           Code = "unknown"
)

// Classify maps err onto a Code using sentinel errors only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, config.ErrUsage):
		return CodeUsage
	case errors.Is(err, deck.ErrSourceUnavailable):
		return CodeSourceUnavailable
	case errors.Is(err, deck.ErrEmptySource):
		return CodeEmptySource
	case errors.Is(err, card.ErrMalformedRecord):
		return CodeMalformedRecord
	case errors.Is(err, quiz.ErrAborted):
		return CodeAborted
	case errors.Is(err, term.ErrDisplay):
		return CodeDisplay
	}
	return CodeUnknown
}

// ExitCode is the process status for c.
func ExitCode(c Code) int {
	switch c {
	case CodeOK:
		return 0
	case CodeUsage:
		return 2
	case CodeSourceUnavailable, CodeEmptySource, CodeMalformedRecord:
		return 3
	case CodeDisplay:
		return 4
	case CodeAborted:
		return 130
	}
	return 1
}

// NewLogger returns a JSON logger writing to path, tagged with runID. An
// empty path discards everything. The returned closer releases the file.
func NewLogger(path, level, runID string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log file: %v", config.ErrUsage, err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h).With("run_id", runID), f, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
