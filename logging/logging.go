// Package logging points the standard logger at stdout and, optionally, a
// size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// File is the log file path; empty logs to stdout only
	File      string
	MaxSizeMB int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the standard logger. The returned io.Closer flushes and
// closes the log file, if any.
func Setup(cfg Config) io.Closer {
	return setup(cfg, os.Stdout)
}

func setup(cfg Config, stdout io.Writer) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File == "" {
		log.SetOutput(stdout)
		return nopCloser{}
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(io.MultiWriter(stdout, lj))
	return lj
}
