// Command flash drills the user on a random subset of the front/back pairs
// in a delimited text file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"flashdrill/internal/config"
	"flashdrill/internal/deck"
	"flashdrill/internal/diag"
	"flashdrill/internal/quiz"
	"flashdrill/internal/term"
)

type display interface {
	term.Display
	Fini()
}

var newDisplay = func() (display, error) { return term.New() }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	errOut := pterm.Error.WithWriter(stderr)
	runID := uuid.NewString()

	cfg, err := config.Load()
	if err == nil {
		cfg, err = config.ParseArgs(cfg, args)
	}
	if err != nil {
		errOut.Println(err)
		fmt.Fprintln(stderr, config.Usage)
		return diag.ExitCode(diag.Classify(err))
	}

	logger, closer, err := diag.NewLogger(cfg.LogFile, cfg.LogLevel, runID)
	if err != nil {
		errOut.Println(err)
		return diag.ExitCode(diag.Classify(err))
	}
	defer closer.Close()

	fail := func(err error) int {
		code := diag.Classify(err)
		logger.Error("run failed", "code", string(code), "error", err)
		errOut.Println(err)
		return diag.ExitCode(code)
	}

	sess, err := deck.Open(cfg.Source, deck.Options{
		Requested: cfg.SessionLen,
		Separator: cfg.Separator,
		Reversed:  cfg.Reversed,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:    logger,
	})
	if err != nil {
		return fail(fmt.Errorf("%s: %w", cfg.Source, err))
	}
	logger.Info("session loaded", "source", cfg.Source, "session_len", sess.Len(),
		"requested", cfg.SessionLen, "reversed", cfg.Reversed)

	score, err := play(sess, cfg, logger)
	if err != nil && score.Total == 0 {
		return fail(err)
	}
	fmt.Fprintln(stdout, score)
	return diag.ExitCode(diag.Classify(err))
}

// play owns the screen for the interactive part and always gives it back,
// even on panic.
func play(sess *deck.Session, cfg config.Config, logger *slog.Logger) (score quiz.Score, err error) {
	scr, err := newDisplay()
	if err != nil {
		return score, err
	}
	defer func() {
		p := recover()
		scr.Fini()
		if p != nil {
			panic(p)
		}
	}()

	r := &quiz.Runner{Display: scr, Wait: cfg.CorrectWait, Logger: logger}
	score, err = r.Run(sess)
	if err != nil {
		return score, err
	}
	r.ShowSummary(score)
	return score, nil
}
