package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var capturePreview bool

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture an image and download it",
	Long: `Trigger a capture and wait for the download to finish. With
--preview a low-resolution preview frame is taken instead of a full
image.`,
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().BoolVar(&capturePreview, "preview", false, "capture a preview frame")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	if capturePreview {
		err = conn.session.CapturePreview()
	} else {
		err = conn.session.CaptureImage()
	}
	if err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	files := conn.session.LastCapture()
	if len(files) == 0 {
		return fmt.Errorf("capture finished but no files were downloaded")
	}
	for _, f := range files {
		kind := "image"
		if f.Preview {
			kind = "preview"
		}
		fmt.Printf("%s\t%s\n", kind, f.Path)
	}
	return nil
}
