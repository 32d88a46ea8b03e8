// Package discovery finds attached cameras by running gphoto2's
// auto-detect mode as a one-shot subprocess, outside any interactive
// shell session.
package discovery

import (
	"context"
	"os/exec"
	"strings"

	"camshell/internal/errors"
	"camshell/internal/logging"
)

// Camera is one row of the auto-detect table.
type Camera struct {
	// Model is the camera model string as reported by libgphoto2.
	Model string
	// Port is the port address, e.g. "usb:001,007".
	Port string
}

// Detect runs the auto-detect command and returns the attached cameras.
// Returns ErrCameraNotFound when the table is empty.
func Detect(ctx context.Context, binary string, logger *logging.Logger) ([]Camera, error) {
	out, err := exec.CommandContext(ctx, binary, "--auto-detect").Output()
	if err != nil {
		return nil, errors.NewTransportError("auto-detect", err)
	}

	cameras := ParseAutoDetect(string(out))
	logger.Debug("auto-detect finished", "cameras", len(cameras))
	if len(cameras) == 0 {
		return nil, errors.ErrCameraNotFound
	}
	return cameras, nil
}

// ParseAutoDetect parses the two-column auto-detect table:
//
//	Model                          Port
//	----------------------------------------------------------
//	Canon EOS 550D                 usb:001,007
//
// Header and separator rows are skipped; the port is the last
// whitespace-separated token and the model is everything before it.
func ParseAutoDetect(out string) []Camera {
	var cameras []Camera
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		port := fields[len(fields)-1]
		if !strings.Contains(port, ":") {
			continue
		}
		model := strings.TrimSpace(strings.TrimSuffix(trimmed, port))
		if model == "" || model == "Model" {
			continue
		}
		cameras = append(cameras, Camera{Model: model, Port: port})
	}
	return cameras
}
