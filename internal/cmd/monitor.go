package cmd

import (
	"github.com/spf13/cobra"

	"camshell/internal/tui"
	"camshell/internal/watch"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Open the interactive session monitor",
	Long: `Open a terminal dashboard showing live session status, capture
activity, downloads, and the configuration model. Captures and refreshes
can be triggered from inside the monitor.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	if conn.cfg.Capture.Watch {
		w, err := watch.New(conn.cfg.Capture.Dir, conn.bus, conn.logger)
		if err != nil {
			conn.logger.Warn("download watcher disabled", "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	// Populate the config table in the background; the monitor renders
	// progress as entries arrive.
	_ = conn.session.RefreshAll()

	return tui.Run(conn.session, conn.bus)
}
