package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the command-line logger writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakeworld",
		Level:           level,
	})
}
