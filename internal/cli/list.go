package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available recon tools",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Scanner", "Executable", "Template", "Input", "Installed", "Homepage"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, spec := range appRunner.Registry().All() {
		installed := "yes"
		if _, err := spec.LookPath(); err != nil {
			installed = "no"
		}
		table.Append([]string{
			spec.ID.String(),
			spec.Executable,
			spec.Template(),
			spec.Input(),
			installed,
			spec.Homepage,
		})
	}
	table.Render()
	return nil
}
