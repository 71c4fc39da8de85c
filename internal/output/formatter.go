// Package output renders invocation records for terminals, files and the
// web report.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/buemura/reconbox/pkg/types"
)

// Formatter renders invocation records to a writer.
type Formatter interface {
	Format(w io.Writer, invocations []types.Invocation) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown, html)", format)
	}
}

// summary counts outcomes across a batch.
type summary struct {
	Total  int
	OK     int
	Failed int
	Lines  int
}

func summarize(invocations []types.Invocation) summary {
	var s summary
	for _, inv := range invocations {
		s.Total++
		if inv.Succeeded() {
			s.OK++
		} else {
			s.Failed++
		}
		s.Lines += len(inv.Output)
	}
	return s
}

func (s summary) String() string {
	return fmt.Sprintf("%d scanners (%d ok, %d failed), %d lines captured", s.Total, s.OK, s.Failed, s.Lines)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
