package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buemura/reconbox/pkg/types"
)

// MarkdownFormatter renders invocations as Markdown suitable for pasting
// into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, invocations []types.Invocation) error {
	fmt.Fprintln(w, "| Scanner | Command | Status | Duration | Lines |")
	fmt.Fprintln(w, "|---------|---------|--------|----------|-------|")
	for _, inv := range invocations {
		fmt.Fprintf(w, "| %s | `%s` | %s | %s | %s |\n",
			escapeMarkdown(inv.Scanner),
			escapeMarkdown(inv.CommandLine()),
			statusBadge(inv),
			formatDuration(inv.Duration()),
			strconv.Itoa(len(inv.Output)),
		)
	}

	for _, inv := range invocations {
		fmt.Fprintln(w)
		if inv.Error != "" {
			fmt.Fprintf(w, "## %s — Error\n\n> %s\n", inv.Scanner, inv.Error)
			continue
		}

		fmt.Fprintf(w, "## %s — %s\n\n", inv.Scanner, inv.Target.URL)
		if len(inv.Output) == 0 {
			fmt.Fprintln(w, "_No output captured._")
			continue
		}
		fmt.Fprintln(w, "```")
		for _, line := range inv.Output {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, "```")
	}

	fmt.Fprintf(w, "\n**Summary:** %s\n", summarize(invocations))
	return nil
}

func statusBadge(inv types.Invocation) string {
	return fmt.Sprintf("**%s**", inv.Status())
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
