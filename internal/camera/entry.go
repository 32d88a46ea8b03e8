package camera

// Entry types reported by the shell's get-config output. The set mirrors
// the widget types libgphoto2 exposes; unknown types pass through as raw
// text.
const (
	TypeText   = "TEXT"
	TypeRange  = "RANGE"
	TypeRadio  = "RADIO"
	TypeMenu   = "MENU"
	TypeToggle = "TOGGLE"
	TypeDate   = "DATE"
)

// Choice is one selectable option of a RADIO or MENU entry.
type Choice struct {
	Index int
	Label string
}

// Entry is the typed model of one configuration path as last reported by
// the device, for example /main/imgsettings/iso.
type Entry struct {
	// Name is the sanitized last segment of the entry's path, usable as
	// an identifier.
	Name string
	// Path is the full slash path as reported by the device, empty for
	// headerless blocks.
	Path string
	// Label is the human-readable description.
	Label string
	// Type is one of the Type* constants, or raw text for unrecognized
	// widget types.
	Type string
	// Current is the current value as printed by the shell.
	Current string
	// Readonly entries reject local writes; the device is never asked.
	Readonly bool
	// Choices holds the options of RADIO and MENU entries.
	Choices []Choice
	// Bottom, Top and Step bound RANGE entries.
	Bottom float64
	Top    float64
	Step   float64
	// Fallback marks an entry synthesized from output the parser could
	// not interpret; Current holds the raw text.
	Fallback bool
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Choices != nil {
		c.Choices = make([]Choice, len(e.Choices))
		copy(c.Choices, e.Choices)
	}
	return &c
}

// ChoiceIndex resolves a choice label to its index. Returns false when
// the label is not one of the entry's choices.
func (e *Entry) ChoiceIndex(label string) (int, bool) {
	for _, ch := range e.Choices {
		if ch.Label == label {
			return ch.Index, true
		}
	}
	return 0, false
}

// ChoiceLabel resolves a choice index to its label. Returns false when
// the index is not one of the entry's choices.
func (e *Entry) ChoiceLabel(index int) (string, bool) {
	for _, ch := range e.Choices {
		if ch.Index == index {
			return ch.Label, true
		}
	}
	return "", false
}
