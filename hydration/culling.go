package hydration

import (
	"sort"

	gostats "github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"

	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/rng"
)

// Culling reduces a candidate list to a target count, per spec.md
// §4.4. If the target exceeds the number of candidates, the actual
// count is used and a warning logged; this is not an error.
type Culling interface {
	Cull(candidates []Candidate, target int) []Candidate
}

func clampTarget(candidates []Candidate, target int) int {
	if target > len(candidates) {
		logrus.WithField("target", target).WithField("available", len(candidates)).
			Warn("hydration: culling target exceeds placed candidates, using actual count")
		return len(candidates)
	}
	return target
}

// NoCulling is the identity culling strategy.
type NoCulling struct{}

func (NoCulling) Cull(candidates []Candidate, _ int) []Candidate { return candidates }

// CounterCulling keeps every (n_placed/n_target)-th water in the
// incoming order, deterministic given input order, per spec.md §4.4.
type CounterCulling struct{}

func (CounterCulling) Cull(candidates []Candidate, target int) []Candidate {
	target = clampTarget(candidates, target)
	if target == 0 {
		return nil
	}
	stride := float64(len(candidates)) / float64(target)
	out := make([]Candidate, 0, target)
	next := 0.0
	for i := range candidates {
		if float64(i) >= next {
			out = append(out, candidates[i])
			next += stride
		}
		if len(out) == target {
			break
		}
	}
	return out
}

// BodyCounterCulling is CounterCulling applied independently within
// each body's own candidates (grouped by Candidate.BodyIdx), so every
// body retains its proportional share of the target.
type BodyCounterCulling struct{}

func (BodyCounterCulling) Cull(candidates []Candidate, target int) []Candidate {
	target = clampTarget(candidates, target)
	if target == 0 {
		return nil
	}
	byBody := make(map[int][]Candidate)
	var order []int
	for _, c := range candidates {
		if _, ok := byBody[c.BodyIdx]; !ok {
			order = append(order, c.BodyIdx)
		}
		byBody[c.BodyIdx] = append(byBody[c.BodyIdx], c)
	}
	ratio := float64(target) / float64(len(candidates))
	var out []Candidate
	for _, bodyIdx := range order {
		group := byBody[bodyIdx]
		groupTarget := int(float64(len(group))*ratio + 0.5)
		out = append(out, CounterCulling{}.Cull(group, groupTarget)...)
	}
	return out
}

// outlierScore scores a candidate by #nearby-solute-atoms minus
// 2·#nearby-waters, per spec.md §4.4.
func outlierScore(pos geometry.Vector3, solute, waters []geometry.Vector3, radius float64) float64 {
	nearSolute, nearWater := 0, 0
	r2 := radius * radius
	for _, p := range solute {
		if pos.SquaredDistanceTo(p) <= r2 {
			nearSolute++
		}
	}
	for _, p := range waters {
		if pos.SquaredDistanceTo(p) <= r2 {
			nearWater++
		}
	}
	return float64(nearSolute) - 2*float64(nearWater)
}

// OutlierCulling scores each water by #nearby-solute-atoms minus
// 2·#nearby-waters and removes the lowest-scoring until the target is
// reached, per spec.md §4.4. Scores are additionally normalized against
// their own mean/stdev (via github.com/GaryBoone/GoStats) so the
// removal threshold is scale-invariant across differently sized
// candidate sets.
type OutlierCulling struct {
	SoluteAtoms []geometry.Vector3
	Radius      float64
}

func (oc OutlierCulling) Cull(candidates []Candidate, target int) []Candidate {
	target = clampTarget(candidates, target)
	if target >= len(candidates) {
		return candidates
	}
	radius := oc.Radius
	if radius == 0 {
		radius = 3.0
	}
	positions := make([]geometry.Vector3, len(candidates))
	for i, c := range candidates {
		positions[i] = c.Position
	}
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = outlierScore(c.Position, oc.SoluteAtoms, positions, radius)
	}
	if len(scores) > 1 {
		mean := gostats.StatsMean(scores)
		stdev := gostats.StatsSampleStandardDeviation(scores)
		if stdev > 0 {
			for i := range scores {
				scores[i] = (scores[i] - mean) / stdev
			}
		}
	}
	type scored struct {
		c Candidate
		s float64
	}
	ranked := make([]scored, len(candidates))
	for i := range candidates {
		ranked[i] = scored{c: candidates[i], s: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].s > ranked[j].s })
	out := make([]Candidate, target)
	for i := 0; i < target; i++ {
		out[i] = ranked[i].c
	}
	return out
}

// RandomCulling shuffles the candidate list using the shared process
// RNG, then delegates to an inner strategy, per spec.md §4.4's
// RandomCulling<W>.
type RandomCulling struct {
	Inner Culling
}

func (rc RandomCulling) Cull(candidates []Candidate, target int) []Candidate {
	shuffled := append([]Candidate(nil), candidates...)
	src := rng.Default()
	src.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	inner := rc.Inner
	if inner == nil {
		inner = NoCulling{}
	}
	return inner.Cull(shuffled, target)
}
