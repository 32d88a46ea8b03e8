package camera

import (
	"regexp"
	"strings"
)

// Detector classifies accumulated shell output into a readiness status by
// inspecting the trailing line. The shell signals readiness by printing a
// prompt of the form "<shell-id>: <path>> " with no line terminator, so
// the prompt is almost always the trailing partial line of the buffer.
type Detector struct {
	prompt *regexp.Regexp
}

// NewDetector creates a Detector for the given shell prompt prefix token
// (normally "gphoto2").
func NewDetector(shellID string) *Detector {
	// The trailing whitespace is required: "gphoto2: /main>" is a prompt
	// still being printed, not a ready one.
	pattern := `^` + regexp.QuoteMeta(shellID) + `: .*>\s+$`
	return &Detector{prompt: regexp.MustCompile(pattern)}
}

// Classify maps shell output to a readiness status:
//
//   - StatusError for an empty buffer or a blank trailing line: the
//     subprocess produced nothing where output was expected, so it has
//     likely died.
//   - StatusIdle when the trailing line is a complete prompt.
//   - StatusBusy otherwise, including a prompt still missing its trailing
//     whitespace.
func (d *Detector) Classify(output string) Status {
	if output == "" {
		return StatusError
	}
	tail := lastLine(output)
	if tail == "" {
		return StatusError
	}
	if d.prompt.MatchString(tail) {
		return StatusIdle
	}
	return StatusBusy
}

// lastLine returns the trailing partial line if the output does not end
// in a newline, otherwise the final complete line.
func lastLine(output string) string {
	lines := strings.Split(output, "\n")
	tail := lines[len(lines)-1]
	if tail == "" && len(lines) > 1 {
		tail = lines[len(lines)-2]
	}
	return strings.TrimSuffix(tail, "\r")
}
