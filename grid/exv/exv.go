// Package exv builds the excluded-volume point cloud a grid implies:
// one synthetic excluded-volume atom per occupied voxel, optionally
// split into interior and surface populations so their weights can be
// scaled independently, per spec.md §4.3.
package exv

import (
	"github.com/AUSAXS/AUSAXS-sub011/geometry"
	"github.com/AUSAXS/AUSAXS-sub011/grid"
)

// ExcludedVolume is two point lists — interior and surface — with the
// invariant has_surface() ⇒ surface is non-empty.
type ExcludedVolume struct {
	Interior []geometry.Vector3
	Surface  []geometry.Vector3
	cellWidth float64
}

// HasSurface reports whether this cloud distinguishes a surface
// population at all (as opposed to being built by the raw strategy,
// which never populates Surface).
func (e *ExcludedVolume) HasSurface() bool { return len(e.Surface) > 0 }

// NumPoints returns the total point count across both populations.
func (e *ExcludedVolume) NumPoints() int { return len(e.Interior) + len(e.Surface) }

// voxelCenter converts an integer voxel coordinate back to a world
// position at the grid's own resolution and origin.
func voxelCenter(g *grid.Grid, v geometry.Vector3I) geometry.Vector3 {
	return g.WorldPosition(v)
}

// BuildRaw implements the "raw" strategy of spec.md §4.3: one synthetic
// excluded-volume atom at the center of every atom-volume voxel, with no
// surface/interior distinction.
func BuildRaw(g *grid.Grid) *ExcludedVolume {
	ev := &ExcludedVolume{cellWidth: g.CellWidth()}
	ob := g.ComputeObjectBounds()
	ob.Each(func(x, y, z int) {
		v := geometry.Vector3I{X: x, Y: y, Z: z}
		s := g.StateAt(v)
		if s != grid.AtomVolume && s != grid.AtomCenter {
			return
		}
		ev.Interior = append(ev.Interior, voxelCenter(g, v))
	})
	return ev
}

// BuildWithSurface implements the surface-aware strategy of spec.md
// §4.3: interior atoms plus tagged surface atoms, using the grid's own
// Fibonacci-probe surface classification.
func BuildWithSurface(g *grid.Grid, probeCount, escapeCells int) *ExcludedVolume {
	ev := &ExcludedVolume{cellWidth: g.CellWidth()}
	cls := g.ClassifySurface(probeCount, escapeCells)
	for _, v := range cls.Interior {
		ev.Interior = append(ev.Interior, voxelCenter(g, v))
	}
	for _, v := range cls.Surface {
		ev.Surface = append(ev.Surface, voxelCenter(g, v))
	}
	return ev
}
