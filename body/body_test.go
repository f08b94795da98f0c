package body

import (
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

func carbonAt(x, y, z float64) Atom {
	return Atom{Position: geometry.Vector3{X: x, Y: y, Z: z}, Occupancy: 1, EffectiveCharge: 6, FFType: formfactor.NeutralCarbon}
}

func TestNewBodyStartsDirty(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0)})
	if !b.Dirty() {
		t.Fatal("expected fresh body to be dirty")
	}
	b.AcknowledgeChange()
	if b.Dirty() {
		t.Fatal("expected acknowledged body to be clean")
	}
}

func TestBodyIDsAreUnique(t *testing.T) {
	a := NewBody([]Atom{carbonAt(0, 0, 0)})
	b := NewBody([]Atom{carbonAt(1, 1, 1)})
	if a.ID() == b.ID() {
		t.Fatal("expected distinct body IDs")
	}
}

func TestBodyAtomsAreCopiedNotAliased(t *testing.T) {
	src := []Atom{carbonAt(0, 0, 0)}
	b := NewBody(src)
	src[0].Position.X = 99
	if b.Atoms()[0].Position.X == 99 {
		t.Fatal("expected NewBody to copy the source slice")
	}
}

func TestBodyTransformFlipsChangedBit(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0)})
	b.AcknowledgeChange()
	b.Transform(func(a Atom) Atom {
		a.Position.X += 1
		return a
	})
	if !b.Dirty() {
		t.Fatal("expected Transform to flip the change-signal bit")
	}
	if got := b.Atoms()[0].Position.X; got != 1 {
		t.Fatalf("Transform did not apply: got %v", got)
	}
}

func TestBodySetWatersAlwaysWaterType(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0)})
	b.SetWaters([]Atom{Water(geometry.Vector3{X: 1}, 0.5)})
	if got := b.Waters()[0].FFType; got != formfactor.Water {
		t.Fatalf("Waters()[0].FFType = %v, want Water", got)
	}
}

func TestMoleculeBodyLookup(t *testing.T) {
	b1 := NewBody([]Atom{carbonAt(0, 0, 0)})
	b2 := NewBody([]Atom{carbonAt(1, 0, 0)})
	m := NewMolecule(b1, b2)
	got, err := m.Body(b2.ID())
	if err != nil {
		t.Fatal(err)
	}
	if got != b2 {
		t.Fatal("Body() returned wrong body")
	}
	if _, err := m.Body(999999); err == nil {
		t.Fatal("expected error for unknown body id")
	}
}

func TestMoleculeNumAtoms(t *testing.T) {
	b1 := NewBody([]Atom{carbonAt(0, 0, 0), carbonAt(1, 0, 0)})
	b2 := NewBody([]Atom{carbonAt(2, 0, 0)})
	m := NewMolecule(b1, b2)
	if got := m.NumAtoms(); got != 3 {
		t.Fatalf("NumAtoms() = %v, want 3", got)
	}
}

func TestMoleculeAnyDirty(t *testing.T) {
	b1 := NewBody([]Atom{carbonAt(0, 0, 0)})
	b2 := NewBody([]Atom{carbonAt(1, 0, 0)})
	m := NewMolecule(b1, b2)
	b1.AcknowledgeChange()
	b2.AcknowledgeChange()
	if m.AnyDirty() {
		t.Fatal("expected clean molecule")
	}
	b2.Transform(func(a Atom) Atom { return a })
	if !m.AnyDirty() {
		t.Fatal("expected dirty molecule after one body's transform")
	}
}
