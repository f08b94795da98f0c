// Package histogram computes partial pair-distance histograms and
// combines them with form factors into q-space intensity curves, per
// spec.md §4.2/§4.6/§4.7.
package histogram

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/body"
	"github.com/AUSAXS/AUSAXS-sub011/formfactor"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/workerpool"
)

// defaultJobSize is the "~200 pairs" chunk size of spec.md §4.2.
const defaultJobSize = 200

// PartialHistogram is a Distribution2D over the form-factor-type pair
// index with the d-axis as inner dimension, per spec.md §3.
type PartialHistogram struct {
	axis     geometry.Axis
	ntypes   int
	values   geometry.Distribution2D
	overflow int // pairs whose distance fell outside axis, per spec.md §4.2's overflow tally
}

// NewPartialHistogram allocates an empty table for ntypes form-factor
// types on the given d-axis.
func NewPartialHistogram(axis geometry.Axis, ntypes int, weighted bool) *PartialHistogram {
	return &PartialHistogram{axis: axis, ntypes: ntypes, values: geometry.NewDistribution2D(ntypes, axis.Bins, weighted)}
}

// Axis returns the d-axis the table was built on.
func (p *PartialHistogram) Axis() geometry.Axis { return p.axis }

// NumTypes returns the form-factor-type cardinality.
func (p *PartialHistogram) NumTypes() int { return p.ntypes }

// OverflowCount returns the number of atom pairs dropped for exceeding
// the d-axis. The tally is kept on every call;
// PartialHistogramManager.Verbose only controls whether it is logged.
func (p *PartialHistogram) OverflowCount() int { return p.overflow }

// At returns the accumulated value for the unordered type pair (i,j) at
// distance bin d.
func (p *PartialHistogram) At(i, j formfactor.Type, d int) float64 {
	return p.values.Get(int(i), int(j), d)
}

// add folds weight*distance into bucket (i,j,d).
func (p *PartialHistogram) add(i, j formfactor.Type, d int, weight, distance float64) {
	p.values.Add(int(i), int(j), d, weight, distance)
}

// addInto merges src into p by element-wise addition, the "combiner"
// step of spec.md §4.2/§5.
func (p *PartialHistogram) addInto(src *PartialHistogram) error {
	if src.ntypes != p.ntypes {
		return fmt.Errorf("histogram: form-factor-type space grew from %d to %d: %w", p.ntypes, src.ntypes, ausaxserr.ErrShapeMismatch)
	}
	for i := 0; i < p.ntypes; i++ {
		for j := i; j < p.ntypes; j++ {
			for d := 0; d < p.axis.Bins; d++ {
				v := src.values.Get(i, j, d)
				if v != 0 {
					p.values.Add(i, j, d, v, 0)
				}
			}
		}
	}
	p.overflow += src.overflow
	return nil
}

// pairJob is one chunk of atom-index pairs a worker accumulates.
type pairJob struct {
	lo, hi int // flat pair indices [lo, hi) into the triangular (i<=j) enumeration
}

// PartialHistogramManager computes, for a snapshot of packed
// coordinates, the 2-D partial histogram table indexed by (ff_i,ff_j)
// with inner d-axis, per spec.md §4.2. Weighted/unweighted is chosen at
// construction; fixed-vs-variable bin width is expressed by which Axis
// is supplied (the manager itself does not special-case the axis
// shape, unlike the four-specialization split the original source
// hard-codes — Go's single Distribution2D abstraction over both cases
// already collapses two of those four combinations).
type PartialHistogramManager struct {
	axis     geometry.Axis
	weighted bool
	jobSize  int
	pool     *workerpool.Pool

	// Verbose enables the logrus overflow-tally warning spec.md §4.2
	// reserves for verbose mode; Calculate always counts overflow
	// regardless of this flag, it only gates whether the count is logged.
	Verbose bool
}

// NewPartialHistogramManager constructs a manager for the given d-axis.
// weighted selects bin-center reweighting; jobSize overrides the
// default ~200-pair chunk size (0 keeps the default).
func NewPartialHistogramManager(axis geometry.Axis, weighted bool, jobSize int) *PartialHistogramManager {
	if jobSize <= 0 {
		jobSize = defaultJobSize
	}
	return &PartialHistogramManager{axis: axis, weighted: weighted, jobSize: jobSize, pool: workerpool.Default()}
}

// Calculate builds the full partial-histogram table for one packed
// coordinate snapshot, per spec.md §4.2's algorithm:
//
//  1. Partition all unordered atom pairs i<=j into ~jobSize-pair chunks.
//  2. Each worker accumulates into a private table: self-pairs (i==j)
//     add w_i^2 once; cross-pairs (i!=j) add 2*w_i*w_j once, which
//     satisfies the Debye-limit invariant I(0) = (sum w)^2 of spec.md
//     §8 directly (self terms sum to sum(w_i^2), cross terms to
//     2*sum_{i<j} w_i*w_j, and their sum is exactly (sum w)^2).
//  3. A deterministic combiner folds the private tables together in
//     worker-submission order.
//
// Any panic inside a worker is recovered and surfaced as an
// ausaxserr.Internal error after all workers have joined; no partial
// write to the returned table is visible on that path.
func (m *PartialHistogramManager) Calculate(cc *body.CompactCoordinates, ntypes int) (*PartialHistogram, error) {
	n := cc.Len()
	total := n * (n + 1) / 2
	if total == 0 {
		return NewPartialHistogram(m.axis, ntypes, m.weighted), nil
	}

	numJobs := (total + m.jobSize - 1) / m.jobSize
	partials := make([]*PartialHistogram, numJobs)
	var mu sync.Mutex
	batch := m.pool.NewBatch()

	lo := 0
	for jobIdx := 0; jobIdx < numJobs; jobIdx++ {
		hi := lo + m.jobSize
		if hi > total {
			hi = total
		}
		job := pairJob{lo: lo, hi: hi}
		slot := jobIdx
		batch.Submit(func() {
			local := NewPartialHistogram(m.axis, ntypes, m.weighted)
			accumulateRange(local, cc, job, n, m.axis)
			mu.Lock()
			partials[slot] = local
			mu.Unlock()
		})
		lo = hi
	}

	if p := batch.Join(); p != nil {
		return nil, ausaxserr.Internal("histogram: worker panic during partial accumulation", p)
	}

	out := NewPartialHistogram(m.axis, ntypes, m.weighted)
	for _, p := range partials {
		if err := out.addInto(p); err != nil {
			return nil, err
		}
	}
	if m.Verbose && out.overflow > 0 {
		logrus.WithField("count", out.overflow).WithField("component", "histogram").
			Warn("atom pairs dropped for exceeding the distance axis")
	}
	return out, nil
}

// triangularPairAt maps a flat index k in [0, n*(n+1)/2) to the k-th
// unordered pair (i,j) with i<=j in row-major triangular order.
func triangularPairAt(k, n int) (i, j int) {
	// Solve for i such that the count of pairs with first index < i
	// (each contributing n-i elements) does not exceed k.
	i = 0
	remaining := k
	for {
		rowLen := n - i
		if remaining < rowLen {
			break
		}
		remaining -= rowLen
		i++
	}
	j = i + remaining
	return i, j
}

// accumulateRange walks flat pair indices [job.lo, job.hi) and folds
// each into dst.
func accumulateRange(dst *PartialHistogram, cc *body.CompactCoordinates, job pairJob, n int, axis geometry.Axis) {
	xs, ys, zs, ws, ffs := cc.X(), cc.Y(), cc.Z(), cc.Weights(), cc.FFTypes()
	invWidth := axis.InvWidth()
	for k := job.lo; k < job.hi; k++ {
		i, j := triangularPairAt(k, n)
		if i == j {
			bin := clampBin(0, axis.Bins)
			dst.add(ffs[i], ffs[i], bin, ws[i]*ws[i], 0)
			continue
		}
		dx, dy, dz := xs[i]-xs[j], ys[i]-ys[j], zs[i]-zs[j]
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		bin := int(math.Round(d * invWidth))
		if bin < 0 || bin >= axis.Bins {
			dst.overflow++ // dropped per spec.md §4.2's overflow policy; tallied, never logged here
			continue
		}
		dst.add(ffs[i], ffs[j], bin, 2*ws[i]*ws[j], d)
	}
}

func clampBin(bin, bins int) int {
	if bin < 0 {
		return 0
	}
	if bin >= bins {
		return bins - 1
	}
	return bin
}
