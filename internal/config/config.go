// Package config resolves run settings from .env, the environment and the
// command line, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrUsage reports bad arguments or settings.
var ErrUsage = errors.New("usage error")

// Usage is the one-line invocation summary.
const Usage = "usage: flash [-r] [-sep token] [-wait duration] csv_file [n_flashcards]"

type Config struct {
	Source      string
	SessionLen  int
	Separator   string
	Reversed    bool
	CorrectWait time.Duration

	LogFile  string
	LogLevel string
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		SessionLen:  30,
		Separator:   ",",
		CorrectWait: 700 * time.Millisecond,
		LogLevel:    "info",
	}
}

// Load reads .env (if present) and the environment over the defaults.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv applies FLASH_* variables looked up through getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if v := getenv("FLASH_SESSION_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: FLASH_SESSION_LEN=%q is not a number", ErrUsage, v)
		}
		cfg.SessionLen = n
	}
	if v := getenv("FLASH_SEPARATOR"); v != "" {
		cfg.Separator = v
	}
	if v := getenv("FLASH_CORRECT_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: FLASH_CORRECT_WAIT=%q is not a valid duration: %v", ErrUsage, v, err)
		}
		cfg.CorrectWait = d
	}
	cfg.LogFile = getenv("FLASH_LOG_FILE")
	if v := getenv("FLASH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.validate()
}

// ParseArgs applies command-line flags and positional arguments over cfg.
func ParseArgs(cfg Config, args []string) (Config, error) {
	fs := flag.NewFlagSet("flash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.Reversed, "r", cfg.Reversed, "show the back, expect the front")
	fs.StringVar(&cfg.Separator, "sep", cfg.Separator, "field separator token")
	fs.DurationVar(&cfg.CorrectWait, "wait", cfg.CorrectWait, "pause after a correct answer")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return cfg, fmt.Errorf("%w: expected csv_file [n_flashcards]", ErrUsage)
	}
	cfg.Source = rest[0]
	if len(rest) == 2 {
		n, err := strconv.Atoi(rest[1])
		if err != nil {
			return cfg, fmt.Errorf("%w: n_flashcards %q is not a number", ErrUsage, rest[1])
		}
		cfg.SessionLen = n
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.SessionLen < 1:
		return fmt.Errorf("%w: session length must be at least 1, got %d", ErrUsage, c.SessionLen)
	case c.Separator == "":
		return fmt.Errorf("%w: empty separator", ErrUsage)
	case c.CorrectWait < 0:
		return fmt.Errorf("%w: negative wait %v", ErrUsage, c.CorrectWait)
	}
	return nil
}
