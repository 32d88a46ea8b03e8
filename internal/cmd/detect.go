package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"camshell/internal/config"
	"camshell/internal/discovery"
	"camshell/internal/errors"
	"camshell/internal/logging"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List attached cameras",
	Long:  `Run gphoto2 auto-detection and list the attached cameras and their ports.`,
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	cameras, err := discovery.Detect(cmd.Context(), cfg.Shell.Binary, logger)
	if err != nil {
		if errors.Is(err, errors.ErrCameraNotFound) {
			fmt.Println("No cameras detected")
			return nil
		}
		return err
	}

	fmt.Printf("%-40s %s\n", "Model", "Port")
	for _, cam := range cameras {
		fmt.Printf("%-40s %s\n", cam.Model, cam.Port)
	}
	return nil
}
