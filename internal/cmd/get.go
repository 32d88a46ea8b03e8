package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <config-path>",
	Short: "Read one configuration entry",
	Long: `Fetch a configuration entry from the camera and print it, for
example: camshell get /main/imgsettings/iso`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	path := args[0]
	if err := conn.session.FetchConfig(path); err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	entry, err := conn.session.Entry(path)
	if err != nil {
		return err
	}

	fmt.Printf("Name:     %s\n", entry.Name)
	if entry.Label != "" {
		fmt.Printf("Label:    %s\n", entry.Label)
	}
	if entry.Type != "" {
		fmt.Printf("Type:     %s\n", entry.Type)
	}
	fmt.Printf("Current:  %s\n", entry.Current)
	if entry.Readonly {
		fmt.Println("Readonly: yes")
	}
	for _, ch := range entry.Choices {
		fmt.Printf("Choice:   %d %s\n", ch.Index, ch.Label)
	}
	if entry.Type == "RANGE" {
		fmt.Printf("Range:    %g..%g step %g\n", entry.Bottom, entry.Top, entry.Step)
	}
	return nil
}
