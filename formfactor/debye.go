package formfactor

import (
	"fmt"
	"math"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// taylorEpsilon is the d·q threshold below which sin(x)/x is evaluated
// via its Taylor series rather than direct division, per spec.md §4.6's
// "d<ε bins taken from a Taylor series to preserve monotonicity".
const taylorEpsilon = 1e-6

// DebyeTable is the shared, immutable-after-construction sin(q·d)/(q·d)
// lookup table of spec.md §4.6, indexed by (q-bin, d-bin) on the process
// q-axis and d-axis.
type DebyeTable struct {
	qAxis, dAxis geometry.Axis
	values       []float64 // row-major [qBin*dBins + dBin], cache-friendly stride-1 per q row
}

// NewDebyeTable precomputes T[q_index, d_index] = sin(q·d)/(q·d) over the
// given axes, with the d=0 column fixed at 1 and small q·d handled by a
// Taylor expansion to avoid the 0/0 indeterminate form.
func NewDebyeTable(qAxis, dAxis geometry.Axis) *DebyeTable {
	t := &DebyeTable{
		qAxis:  qAxis,
		dAxis:  dAxis,
		values: make([]float64, qAxis.Bins*dAxis.Bins),
	}
	for qi := 0; qi < qAxis.Bins; qi++ {
		q := qAxis.ValueOf(qi)
		row := t.values[qi*dAxis.Bins : (qi+1)*dAxis.Bins]
		// Pairs are binned by round(d/width), so bin di collects the
		// distances around Min + di·width and is evaluated there. Bin 0
		// is the zero-distance (self-pair) bin, per spec.md §4.6's
		// "the d=0 bin set to 1".
		row[0] = 1
		for di := 1; di < dAxis.Bins; di++ {
			d := dAxis.Min + float64(di)*dAxis.Width()
			row[di] = sinc(q * d)
		}
	}
	return t
}

// sinc returns sin(x)/x, using a fourth-order Taylor series near x=0 to
// preserve monotonicity where direct division would be numerically
// unstable or indeterminate.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	if math.Abs(x) < taylorEpsilon {
		x2 := x * x
		return 1 - x2/6 + x2*x2/120
	}
	return math.Sin(x) / x
}

// At returns T[qIndex, dIndex].
func (t *DebyeTable) At(qIndex, dIndex int) (float64, error) {
	if qIndex < 0 || qIndex >= t.qAxis.Bins {
		return 0, fmt.Errorf("formfactor: q-index %d out of range: %w", qIndex, ausaxserr.ErrOutOfBounds)
	}
	if dIndex < 0 || dIndex >= t.dAxis.Bins {
		return 0, fmt.Errorf("formfactor: d-index %d out of range: %w", dIndex, ausaxserr.ErrOutOfBounds)
	}
	return t.values[qIndex*t.dAxis.Bins+dIndex], nil
}

// QAxis returns the table's q-axis.
func (t *DebyeTable) QAxis() geometry.Axis { return t.qAxis }

// DAxis returns the table's d-axis.
func (t *DebyeTable) DAxis() geometry.Axis { return t.dAxis }
