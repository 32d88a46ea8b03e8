package camera

import (
	"testing"

	"camshell/internal/errors"
)

func TestModelAddGet(t *testing.T) {
	m := NewModel()
	m.Add(&Entry{Name: "iso", Current: "200"})

	e, err := m.Get("iso")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if e.Current != "200" {
		t.Errorf("Current = %q, want 200", e.Current)
	}

	if _, err := m.Get("nope"); !errors.Is(err, errors.ErrUnknownConfig) {
		t.Errorf("Get(nope) = %v, want ErrUnknownConfig", err)
	}
}

func TestModelReplaceKeepsOrder(t *testing.T) {
	m := NewModel()
	m.Add(&Entry{Name: "iso"})
	m.Add(&Entry{Name: "shutterspeed"})
	m.Add(&Entry{Name: "iso", Current: "400"})

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	names := m.Names()
	if names[0] != "iso" || names[1] != "shutterspeed" {
		t.Errorf("order = %v, replacement must not reorder", names)
	}
	e, _ := m.Get("iso")
	if e.Current != "400" {
		t.Errorf("Current = %q, want replaced value 400", e.Current)
	}
}

func TestModelSnapshotIsDeep(t *testing.T) {
	m := NewModel()
	m.Add(&Entry{Name: "iso", Current: "200", Choices: []Choice{{0, "Auto"}}})

	snap := m.Snapshot()
	se, _ := snap.Get("iso")
	se.Current = "mutated"
	se.Choices[0].Label = "mutated"

	e, _ := m.Get("iso")
	if e.Current != "200" || e.Choices[0].Label != "Auto" {
		t.Error("mutating a snapshot must not affect the model")
	}
}

func TestEntryChoiceLookup(t *testing.T) {
	e := &Entry{Choices: []Choice{{0, "Auto"}, {1, "100"}}}

	if lbl, ok := e.ChoiceLabel(1); !ok || lbl != "100" {
		t.Errorf("ChoiceLabel(1) = %q, %v", lbl, ok)
	}
	if _, ok := e.ChoiceLabel(9); ok {
		t.Error("ChoiceLabel(9) should miss")
	}
	if idx, ok := e.ChoiceIndex("Auto"); !ok || idx != 0 {
		t.Errorf("ChoiceIndex(Auto) = %d, %v", idx, ok)
	}
	if _, ok := e.ChoiceIndex("bogus"); ok {
		t.Error("ChoiceIndex(bogus) should miss")
	}
}
