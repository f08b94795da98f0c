package grid

import "github.com/AUSAXS/AUSAXS-sub011/geometry"

// footprint returns the voxels (relative to the grid's absolute integer
// coordinates) that an atom centered at `center` with the given radius
// inflates into, per the grid's ExpandStrategy:
//
//   - Minimal marks only the 6 axis neighbors of center, independent of
//     radius — a coarse, O(1) approximation used when speed matters
//     more than footprint fidelity.
//   - Full marks every voxel whose center lies within radius of center,
//     the complete voxelized ball spec.md §4.3 describes.
func footprint(center geometry.Vector3I, radius, cellWidth float64, strategy ExpandStrategy) []geometry.Vector3I {
	if strategy == Minimal {
		return []geometry.Vector3I{
			{X: center.X + 1, Y: center.Y, Z: center.Z},
			{X: center.X - 1, Y: center.Y, Z: center.Z},
			{X: center.X, Y: center.Y + 1, Z: center.Z},
			{X: center.X, Y: center.Y - 1, Z: center.Z},
			{X: center.X, Y: center.Y, Z: center.Z + 1},
			{X: center.X, Y: center.Y, Z: center.Z - 1},
		}
	}

	reach := int(radius/cellWidth) + 1
	out := make([]geometry.Vector3I, 0, (2*reach+1)*(2*reach+1)*(2*reach+1))
	r2 := radius * radius
	for dz := -reach; dz <= reach; dz++ {
		for dy := -reach; dy <= reach; dy++ {
			for dx := -reach; dx <= reach; dx++ {
				dist2 := float64(dx*dx+dy*dy+dz*dz) * cellWidth * cellWidth
				if dist2 > r2 {
					continue
				}
				out = append(out, geometry.Vector3I{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz})
			}
		}
	}
	return out
}
