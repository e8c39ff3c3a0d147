package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewWithWriter creates a plain charm log that writes to w, without timestamps.
// The CLI prints its results through it.
func NewWithWriter(prefix string, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
