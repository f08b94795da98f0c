// Package grid implements the dense 3-D voxel lattice of spec.md §4.3:
// atom placement with sphere inflation, deflation on removal, surface
// detection via radial probing, and the bounds-growth retry that backs
// BoundsTooSmall recovery.
package grid

// State is the per-voxel marking.
type State byte

const (
	Empty State = iota
	AtomVolume
	WaterVolume
	AtomCenter
	WaterCenter
)

// rank orders markings from weakest to strongest; a voxel's state never
// moves to a weaker rank while any stronger marking still claims it, per
// spec.md §4.3's "center > volume".
var rank = map[State]int{
	Empty:       0,
	AtomVolume:  1,
	WaterVolume: 1,
	AtomCenter:  2,
	WaterCenter: 2,
}

// stronger reports whether a outranks b (so a marking should not be
// overwritten by b).
func stronger(a, b State) bool { return rank[a] > rank[b] }
