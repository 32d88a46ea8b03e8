package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listConfigCmd = &cobra.Command{
	Use:   "list-config",
	Short: "List the full camera configuration",
	Long: `Refresh the complete configuration model from the camera and print
it. The refresh issues one get per entry, so expect a few seconds on
cameras with large configuration trees.`,
	RunE: runListConfig,
}

func init() {
	rootCmd.AddCommand(listConfigCmd)
}

func runListConfig(cmd *cobra.Command, args []string) error {
	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.session.RefreshAll(); err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	model := conn.session.Model()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tCURRENT\tRO\tPATH")
	for _, e := range model.Entries() {
		ro := ""
		if e.Readonly {
			ro = "y"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Type, e.Current, ro, e.Path)
	}
	return w.Flush()
}
