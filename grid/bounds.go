package grid

// rowInterval is the [min,max] occupied column interval of one row.
type rowInterval struct {
	min, max int
	empty    bool
}

// ObjectBounds is, for each z-slice and each row within it, the
// [min,max] column interval spanning non-empty voxels, per spec.md
// §4.3. It supports O(1) iteration over occupied voxels by letting
// callers skip straight past the empty margins of every row.
type ObjectBounds struct {
	nz, ny int
	rows   [][]rowInterval // [z][y]
}

// ComputeObjectBounds scans the grid once and builds its ObjectBounds.
func (g *Grid) ComputeObjectBounds() *ObjectBounds {
	ob := &ObjectBounds{nz: g.nz, ny: g.ny, rows: make([][]rowInterval, g.nz)}
	for z := 0; z < g.nz; z++ {
		ob.rows[z] = make([]rowInterval, g.ny)
		for y := 0; y < g.ny; y++ {
			ri := rowInterval{empty: true}
			for x := 0; x < g.nx; x++ {
				if g.state.Get(z, y, x) == float64(Empty) {
					continue
				}
				if ri.empty {
					ri.min, ri.max, ri.empty = x, x, false
				} else {
					ri.max = x
				}
			}
			ob.rows[z][y] = ri
		}
	}
	return ob
}

// RowInterval reports the occupied column interval for (z,y). ok is
// false if that row has no occupied voxels.
func (ob *ObjectBounds) RowInterval(z, y int) (min, max int, ok bool) {
	ri := ob.rows[z][y]
	return ri.min, ri.max, !ri.empty
}

// Each calls f(x, y, z) for every voxel within each row's occupied
// [min,max] interval, skipping whole rows that have no occupied voxels
// at all. A row's interval may still contain empty voxels between its
// endpoints for non-convex shapes; f is responsible for checking state
// if it needs to distinguish those from truly occupied voxels.
func (ob *ObjectBounds) Each(f func(x, y, z int)) {
	for z := 0; z < ob.nz; z++ {
		for y := 0; y < ob.ny; y++ {
			ri := ob.rows[z][y]
			if ri.empty {
				continue
			}
			for x := ri.min; x <= ri.max; x++ {
				f(x, y, z)
			}
		}
	}
}
