package histogram

import (
	"fmt"
	"math"
	"sync"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
	"github.com/AUSAXS/AUSAXS-sub011/body"
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/workerpool"
)

// BodySnapshot is one body's packed coordinates plus the "dirty since
// last call" flag the incremental variant of spec.md §4.2 keys its
// per-body state off of.
type BodySnapshot struct {
	ID    int
	CC    *body.CompactCoordinates
	Dirty bool
}

type bodyPairKey struct{ a, b int }

func crossKey(a, b int) bodyPairKey {
	if a > b {
		a, b = b, a
	}
	return bodyPairKey{a, b}
}

// IncrementalPartialHistogramManager is the cached, per-body variant of
// PartialHistogramManager described in spec.md §4.2's "Incremental
// variant": a clean body's self-partial, and its cross-partial against
// every other clean body, is reused from cache; only rows and columns
// touching a dirty body are recomputed.
type IncrementalPartialHistogramManager struct {
	axis     geometry.Axis
	weighted bool
	jobSize  int
	pool     *workerpool.Pool

	ntypes     int
	selfCache  map[int]*PartialHistogram
	crossCache map[bodyPairKey]*PartialHistogram
}

// NewIncrementalPartialHistogramManager constructs an empty incremental
// manager for the given d-axis; its first Calculate call is necessarily
// a full computation since nothing is cached yet.
func NewIncrementalPartialHistogramManager(axis geometry.Axis, weighted bool, jobSize int) *IncrementalPartialHistogramManager {
	if jobSize <= 0 {
		jobSize = defaultJobSize
	}
	return &IncrementalPartialHistogramManager{
		axis: axis, weighted: weighted, jobSize: jobSize, pool: workerpool.Default(),
		selfCache:  make(map[int]*PartialHistogram),
		crossCache: make(map[bodyPairKey]*PartialHistogram),
	}
}

// Calculate folds bodies into the molecule-global partial histogram,
// reusing cached self- and cross-partials for every pair of bodies
// neither of which is dirty. Bodies absent from a previous call's list
// are pruned from the cache automatically. Returns ausaxserr.ErrShapeMismatch
// if ntypes disagrees with a prior call.
func (m *IncrementalPartialHistogramManager) Calculate(bodies []BodySnapshot, ntypes int) (*PartialHistogram, error) {
	if m.ntypes != 0 && m.ntypes != ntypes {
		prev := m.ntypes
		m.selfCache = make(map[int]*PartialHistogram)
		m.crossCache = make(map[bodyPairKey]*PartialHistogram)
		m.ntypes = 0
		return nil, fmt.Errorf("histogram: form-factor-type space grew from %d to %d between incremental calls: %w", prev, ntypes, ausaxserr.ErrShapeMismatch)
	}
	m.ntypes = ntypes

	present := make(map[int]bool, len(bodies))
	for _, b := range bodies {
		present[b.ID] = true
	}
	for id := range m.selfCache {
		if !present[id] {
			delete(m.selfCache, id)
		}
	}
	for k := range m.crossCache {
		if !present[k.a] || !present[k.b] {
			delete(m.crossCache, k)
		}
	}

	selfMgr := &PartialHistogramManager{axis: m.axis, weighted: m.weighted, jobSize: m.jobSize, pool: m.pool}
	for _, b := range bodies {
		if b.Dirty || m.selfCache[b.ID] == nil {
			p, err := selfMgr.Calculate(b.CC, ntypes)
			if err != nil {
				return nil, err
			}
			m.selfCache[b.ID] = p
		}
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			key := crossKey(a.ID, b.ID)
			if !a.Dirty && !b.Dirty {
				if _, ok := m.crossCache[key]; ok {
					continue
				}
			}
			p, err := m.computeCross(a.CC, b.CC, ntypes)
			if err != nil {
				return nil, err
			}
			m.crossCache[key] = p
		}
	}

	out := NewPartialHistogram(m.axis, ntypes, m.weighted)
	for _, p := range m.selfCache {
		if err := out.addInto(p); err != nil {
			return nil, err
		}
	}
	for _, p := range m.crossCache {
		if err := out.addInto(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// computeCross builds the cross-partial between two distinct bodies:
// every atom pair (i in ccA, j in ccB) is necessarily a cross-atom pair
// (they belong to different bodies, so i != j always), so every
// contribution is doubled, matching the same accumulation convention
// Calculate uses for its own off-diagonal pairs.
func (m *IncrementalPartialHistogramManager) computeCross(ccA, ccB *body.CompactCoordinates, ntypes int) (*PartialHistogram, error) {
	nA, nB := ccA.Len(), ccB.Len()
	total := nA * nB
	out := NewPartialHistogram(m.axis, ntypes, m.weighted)
	if total == 0 {
		return out, nil
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
			crossAccumulateRange(local, ccA, ccB, job, nB, m.axis)
			mu.Lock()
			partials[slot] = local
			mu.Unlock()
		})
		lo = hi
	}

	if p := batch.Join(); p != nil {
		return nil, ausaxserr.Internal("histogram: worker panic during incremental cross accumulation", p)
	}
	for _, p := range partials {
		if err := out.addInto(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// crossAccumulateRange walks flat indices [job.lo, job.hi) over the
// nA*nB rectangle (i = k/nB, j = k%nB) and folds each atom pair into dst.
func crossAccumulateRange(dst *PartialHistogram, ccA, ccB *body.CompactCoordinates, job pairJob, nB int, axis geometry.Axis) {
	xa, ya, za, wa, ffa := ccA.X(), ccA.Y(), ccA.Z(), ccA.Weights(), ccA.FFTypes()
	xb, yb, zb, wb, ffb := ccB.X(), ccB.Y(), ccB.Z(), ccB.Weights(), ccB.FFTypes()
	invWidth := axis.InvWidth()
	for k := job.lo; k < job.hi; k++ {
		i, j := k/nB, k%nB
		dx, dy, dz := xa[i]-xb[j], ya[i]-yb[j], za[i]-zb[j]
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		bin := int(math.Round(d * invWidth))
		if bin < 0 || bin >= axis.Bins {
			dst.overflow++
			continue
		}
		dst.add(ffa[i], ffb[j], bin, 2*wa[i]*wb[j], d)
	}
}
