package body

import (
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

func TestFromBodyNoAliasing(t *testing.T) {
	b := NewBody([]Atom{carbonAt(1, 2, 3)})
	cc := FromBody(b, false, false)
	b.Transform(func(a Atom) Atom {
		a.Position.X = 999
		return a
	})
	if cc.X()[0] == 999 {
		t.Fatal("CompactCoordinates aliases the source body's atoms")
	}
}

func TestFromBodyWeightUsesOccupancyByDefault(t *testing.T) {
	a := Atom{Position: geometry.Vector3{}, Occupancy: 0.5, EffectiveCharge: 6, FFType: formfactor.NeutralCarbon}
	b := NewBody([]Atom{a})
	cc := FromBody(b, false, false)
	if got := cc.Weights()[0]; got != 0.5 {
		t.Fatalf("weight = %v, want 0.5 (bare occupancy)", got)
	}
}

func TestFromBodyWeightUsesEffectiveChargeWhenEnabled(t *testing.T) {
	a := Atom{Position: geometry.Vector3{}, Occupancy: 0.5, EffectiveCharge: 6, FFType: formfactor.NeutralCarbon}
	b := NewBody([]Atom{a})
	cc := FromBody(b, false, true)
	if got := cc.Weights()[0]; got != 3.0 {
		t.Fatalf("weight = %v, want 3.0 (occupancy*charge)", got)
	}
}

func TestFromBodyIncludesWatersAsWaterType(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0)})
	b.SetWaters([]Atom{Water(geometry.Vector3{X: 5}, 1)})
	cc := FromBody(b, true, false)
	if got := cc.Len(); got != 2 {
		t.Fatalf("Len() = %v, want 2", got)
	}
	if got := cc.FFTypes()[1]; got != formfactor.Water {
		t.Fatalf("second atom FFType = %v, want Water", got)
	}
}

func TestFromBodyExcludesWatersByDefault(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0)})
	b.SetWaters([]Atom{Water(geometry.Vector3{X: 5}, 1)})
	cc := FromBody(b, false, false)
	if got := cc.Len(); got != 1 {
		t.Fatalf("Len() = %v, want 1", got)
	}
}

func TestImplicitEXVSubtractsConstant(t *testing.T) {
	b := NewBody([]Atom{carbonAt(0, 0, 0), carbonAt(1, 0, 0)})
	cc := FromBody(b, false, false)
	cc.ImplicitEXV(0.2)
	for i, w := range cc.Weights() {
		if w != 0.8 {
			t.Fatalf("Weights()[%d] = %v, want 0.8", i, w)
		}
	}
}

func TestFromAtomsMatchesFromBody(t *testing.T) {
	atoms := []Atom{carbonAt(0, 0, 0), carbonAt(1, 1, 1)}
	b := NewBody(atoms)
	fromB := FromBody(b, false, false)
	fromA := FromAtoms(atoms, false)
	if fromB.Len() != fromA.Len() {
		t.Fatalf("Len mismatch: %v vs %v", fromB.Len(), fromA.Len())
	}
	for i := 0; i < fromB.Len(); i++ {
		if fromB.X()[i] != fromA.X()[i] || fromB.Weights()[i] != fromA.Weights()[i] {
			t.Fatalf("atom %d mismatch between FromBody and FromAtoms", i)
		}
	}
}

func TestCompactCoordinatesAt(t *testing.T) {
	b := NewBody([]Atom{carbonAt(1, 2, 3)})
	cc := FromBody(b, false, false)
	pos, w, ff := cc.At(0)
	if pos != (geometry.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("At() position = %v", pos)
	}
	if w != 1 {
		t.Fatalf("At() weight = %v, want 1", w)
	}
	if ff != formfactor.NeutralCarbon {
		t.Fatalf("At() ff type = %v, want NeutralCarbon", ff)
	}
}
