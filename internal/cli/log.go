// Package cli implements the umlsvg command-line interface.
//
// Commands render class models and layout files, compute layouts, serve the
// pipeline over HTTP and MCP, and manage the cache. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Generate SVG, PNG, PDF or layout JSON from models or layouts
//   - layout: Place a class model and write the layout JSON
//   - serve: Run the HTTP service
//   - mcp: Run the MCP tool server on stdio
//   - cache: Inspect or clear the cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Rendered 3 files (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
