package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/buemura/reconbox/pkg/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders a colored terminal summary followed by the
// captured lines of each scanner.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, invocations []types.Invocation) error {
	if len(invocations) == 0 {
		fmt.Fprintln(w, "No scanners were run.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scanner", "Command", "Status", "Duration", "Lines"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, inv := range invocations {
		table.Append([]string{
			inv.Scanner,
			inv.CommandLine(),
			colorStatus(inv),
			formatDuration(inv.Duration()),
			strconv.Itoa(len(inv.Output)),
		})
	}
	table.Render()

	for _, inv := range invocations {
		switch {
		case inv.Error != "":
			fmt.Fprintf(w, "\n[%s] Error: %s\n", inv.Scanner, inv.Error)
		case len(inv.Output) > 0:
			fmt.Fprintf(w, "\n[%s] %s\n", inv.Scanner, inv.Target.URL)
			for _, line := range inv.Output {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		if inv.Stderr != "" {
			fmt.Fprintf(w, "  %s %s\n", color.YellowString("stderr:"), inv.Stderr)
		}
	}

	fmt.Fprintf(w, "\n  Summary: %s\n", summarize(invocations))
	return nil
}

func colorStatus(inv types.Invocation) string {
	status := inv.Status()
	switch {
	case inv.Succeeded():
		return color.GreenString(status)
	case !inv.Launched():
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}
