package geometry

import (
	"errors"
	"testing"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

func TestNewAxisRejectsBadBins(t *testing.T) {
	if _, err := NewAxis(0, 1, 0); !errors.Is(err, ausaxserr.ErrConfigurationError) {
		t.Fatalf("want ErrConfigurationError, got %v", err)
	}
	if _, err := NewAxis(0, 1, -3); !errors.Is(err, ausaxserr.ErrConfigurationError) {
		t.Fatalf("want ErrConfigurationError, got %v", err)
	}
}

func TestNewAxisRejectsBadRange(t *testing.T) {
	if _, err := NewAxis(1, 1, 10); !errors.Is(err, ausaxserr.ErrConfigurationError) {
		t.Fatalf("want ErrConfigurationError, got %v", err)
	}
	if _, err := NewAxis(2, 1, 10); !errors.Is(err, ausaxserr.ErrConfigurationError) {
		t.Fatalf("want ErrConfigurationError, got %v", err)
	}
}

func TestAxisWidthAndValueOf(t *testing.T) {
	a, err := NewAxis(0, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Width(); got != 2 {
		t.Fatalf("Width() = %v, want 2", got)
	}
	if got := a.ValueOf(0); got != 1 {
		t.Fatalf("ValueOf(0) = %v, want 1", got)
	}
	if got := a.ValueOf(4); got != 9 {
		t.Fatalf("ValueOf(4) = %v, want 9", got)
	}
}

func TestAxisIndexOfRoundsToNearest(t *testing.T) {
	a, err := NewAxis(0, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.IndexOf(1); got != 0 {
		t.Fatalf("IndexOf(1) = %v, want 0", got)
	}
	if got := a.IndexOf(2.9); got != 1 {
		t.Fatalf("IndexOf(2.9) = %v, want 1", got)
	}
}

func TestAxisInBounds(t *testing.T) {
	a, err := NewAxis(0, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !a.InBounds(0) || !a.InBounds(4) {
		t.Fatal("expected 0 and 4 in bounds")
	}
	if a.InBounds(-1) || a.InBounds(5) {
		t.Fatal("expected -1 and 5 out of bounds")
	}
}

func TestLimitContainsAndClamp(t *testing.T) {
	l := Limit{Min: 0.92, Max: 1.08}
	if !l.Contains(1.0) {
		t.Fatal("expected 1.0 to be contained")
	}
	if l.Contains(1.2) {
		t.Fatal("expected 1.2 to be out of bracket")
	}
	if got := l.Clamp(2.0); got != l.Max {
		t.Fatalf("Clamp(2.0) = %v, want %v", got, l.Max)
	}
	if got := l.Clamp(-1.0); got != l.Min {
		t.Fatalf("Clamp(-1.0) = %v, want %v", got, l.Min)
	}
}
