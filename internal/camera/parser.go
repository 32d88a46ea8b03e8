package camera

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ResultKind tells a continuation handler what shape the parser produced.
type ResultKind int

const (
	// ResultNone means the output carried nothing usable.
	ResultNone ResultKind = iota
	// ResultValue is a bare value collapsed from a single-field block.
	ResultValue
	// ResultEntry is one parsed configuration entry.
	ResultEntry
	// ResultModel is a multi-block aggregate of entries.
	ResultModel
	// ResultCapture is a list of downloaded files.
	ResultCapture
)

// Result is the parsed form of one command's output.
type Result struct {
	Kind  ResultKind
	Value string
	Entry *Entry
	Model *Model
	Files []CaptureFile
}

// CaptureFile is one file a capture command reported as downloaded and
// that actually exists in the working directory.
type CaptureFile struct {
	Path    string
	Preview bool
}

// Parser converts raw shell output into typed results. It never returns
// an error: device firmware output varies across models and revisions,
// so unrecognizable text degrades to a fallback entry instead of failing
// the whole round trip.
type Parser struct {
	// WorkDir is where capture downloads land; reported filenames are
	// kept only if they exist there.
	WorkDir string
	// PreviewFilename is the fixed name preview captures download as.
	PreviewFilename string
}

// Parse dispatches on the shape of the output. expectedNames, when its
// length matches the number of headerless blocks, names those blocks
// positionally; it is otherwise ignored.
func (p *Parser) Parse(raw string, expectedNames []string) Result {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	if isCaptureEcho(lines) {
		return Result{Kind: ResultCapture, Files: p.parseCapture(lines)}
	}

	blocks := splitBlocks(lines)
	if len(blocks) == 0 {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Result{Kind: ResultNone}
		}
		return Result{Kind: ResultEntry, Entry: &Entry{Current: trimmed, Fallback: true}}
	}

	if len(expectedNames) == len(blocks) {
		for i := range blocks {
			if blocks[i].header == "" {
				blocks[i].name = expectedNames[i]
			}
		}
	}

	if len(blocks) == 1 {
		entry, populated, last := parseBlock(blocks[0])
		if populated == 1 {
			return Result{Kind: ResultValue, Value: last, Entry: entry}
		}
		return Result{Kind: ResultEntry, Entry: entry}
	}

	model := NewModel()
	for _, b := range blocks {
		entry, _, _ := parseBlock(b)
		model.Add(entry)
	}
	return Result{Kind: ResultModel, Model: model}
}

// ExtractPaths returns every hierarchical config path mentioned in the
// output of a full listing, in order of appearance.
func ExtractPaths(raw string) []string {
	var paths []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "/") {
			paths = append(paths, line)
		}
	}
	return paths
}

// isCaptureEcho reports whether the output opens with the echo of a
// capture command. The pty echoes every dispatched command back, so the
// first non-blank line of a capture round trip is the command itself.
func isCaptureEcho(lines []string) bool {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "capture-")
	}
	return false
}

// parseCapture collects downloaded filenames from capture output. Each
// line's last whitespace-separated token is taken as a candidate name
// and kept only if the file exists in the working directory.
func (p *Parser) parseCapture(lines []string) []CaptureFile {
	var files []CaptureFile
	seenEcho := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !seenEcho {
			seenEcho = true
			continue
		}
		fields := strings.Fields(line)
		candidate := filepath.Base(fields[len(fields)-1])
		full := filepath.Join(p.WorkDir, candidate)
		if info, err := os.Stat(full); err != nil || info.IsDir() {
			continue
		}
		files = append(files, CaptureFile{
			Path:    full,
			Preview: candidate == p.PreviewFilename,
		})
	}
	return files
}

type block struct {
	header string
	name   string
	lines  []string
}

// splitBlocks groups output lines into per-entry blocks. A line starting
// with "/" opens a new block; when no such header exists, everything up
// to a sentinel END line is one headerless block.
func splitBlocks(lines []string) []block {
	var blocks []block
	var current *block
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/") {
			blocks = append(blocks, block{
				header: trimmed,
				name:   SanitizeName(lastSegment(trimmed)),
			})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	if len(blocks) > 0 {
		return blocks
	}

	// No path headers: a single anonymous block up to END.
	var body []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "END" {
			break
		}
		body = append(body, line)
	}
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return nil
	}
	return []block{{lines: body}}
}

// parseBlock reads the Label: Value lines of a block into an entry. It
// also returns how many fields it populated and the value of the last
// one, so a single-field block can collapse to a bare value. A block
// with no parseable lines becomes a fallback entry carrying the raw
// text.
func parseBlock(b block) (entry *Entry, populated int, lastValue string) {
	entry = &Entry{Name: b.name, Path: b.header}
	for _, line := range b.lines {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		switch label {
		case "Label":
			entry.Label = value
		case "Type":
			entry.Type = value
		case "Current":
			entry.Current = value
		case "Readonly":
			entry.Readonly = parseBool(value)
		case "Bottom":
			entry.Bottom = parseFloat(value)
		case "Top":
			entry.Top = parseFloat(value)
		case "Step":
			entry.Step = parseFloat(value)
		case "Choice":
			idx, lbl, ok := parseChoice(value)
			if !ok {
				continue
			}
			entry.Choices = append(entry.Choices, Choice{Index: idx, Label: lbl})
		default:
			continue
		}
		populated++
		lastValue = value
	}
	if populated == 0 {
		raw := strings.TrimSpace(strings.Join(b.lines, "\n"))
		if b.header != "" && raw == "" {
			raw = b.header
		}
		entry.Current = raw
		entry.Fallback = true
	}
	return entry, populated, lastValue
}

// parseChoice splits "Choice: <index> <label>" values; the label may
// itself contain spaces.
func parseChoice(value string) (int, string, bool) {
	idxStr, label, _ := strings.Cut(value, " ")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, "", false
	}
	return idx, strings.TrimSpace(label), true
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// SanitizeName makes a path segment a valid identifier: non-alphanumeric
// runes become underscores, and a leading digit gets an underscore
// prefix.
func SanitizeName(segment string) string {
	var sb strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// lastSegment returns the final component of a slash path.
func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
