package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setIndex int

var setCmd = &cobra.Command{
	Use:   "set <config-path> [value]",
	Short: "Write one configuration entry",
	Long: `Write a configuration value, validated against the locally cached
entry: unknown and read-only entries fail without contacting the camera.
Use --index to select a RADIO or MENU choice by index instead of a value.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().IntVar(&setIndex, "index", -1, "choice index for RADIO/MENU entries")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	byIndex := cmd.Flags().Changed("index")
	if !byIndex && len(args) < 2 {
		return fmt.Errorf("either a value or --index is required")
	}
	if byIndex && len(args) == 2 {
		return fmt.Errorf("a value and --index are mutually exclusive")
	}

	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	// The model starts empty; fetch the entry first so validation has
	// something to check against.
	if err := conn.session.FetchConfig(path); err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	if byIndex {
		err = conn.session.SetConfigIndex(path, setIndex)
	} else {
		err = conn.session.SetConfig(path, args[1])
	}
	if err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	entry, err := conn.session.Entry(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", entry.Name, entry.Current)
	return nil
}
