package grid

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub011/geometry"
)

// defaultProbeCount is the default number of Fibonacci-distributed
// radial probe directions cast per boundary voxel, per spec.md §4.3.
const defaultProbeCount = 8

// fibonacciSphere returns n points roughly evenly distributed over the
// unit sphere using the Fibonacci-spiral construction, the classical
// cheap approximation to a uniform point set used for radial probing.
func fibonacciSphere(n int) []geometry.Vector3 {
	pts := make([]geometry.Vector3, n)
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		radius := math.Sqrt(1 - y*y)
		theta := goldenAngle * float64(i)
		pts[i] = geometry.Vector3{X: math.Cos(theta) * radius, Y: y, Z: math.Sin(theta) * radius}
	}
	return pts
}

// isBoundary reports whether v is an atom-volume (or water-volume)
// voxel with at least one empty 6-neighbor, per spec.md §4.3.
func (g *Grid) isBoundary(v geometry.Vector3I) bool {
	if !g.inBounds(v) {
		return false
	}
	s := g.StateAt(v)
	if s != AtomVolume && s != WaterVolume {
		return false
	}
	neighbors := []geometry.Vector3I{
		{X: v.X + 1, Y: v.Y, Z: v.Z}, {X: v.X - 1, Y: v.Y, Z: v.Z},
		{X: v.X, Y: v.Y + 1, Z: v.Z}, {X: v.X, Y: v.Y - 1, Z: v.Z},
		{X: v.X, Y: v.Y, Z: v.Z + 1}, {X: v.X, Y: v.Y, Z: v.Z - 1},
	}
	for _, n := range neighbors {
		if !g.inBounds(n) || g.StateAt(n) == Empty {
			return true
		}
	}
	return false
}

// SurfaceClassification splits all occupied voxels into interior and
// surface points, per spec.md §4.3: a boundary voxel is surface if at
// least half of its cast probe directions reach an empty or
// out-of-bounds voxel within escapeCells steps. Center voxels are never
// boundary voxels and are always interior.
type SurfaceClassification struct {
	Interior []geometry.Vector3I
	Surface  []geometry.Vector3I
}

// ClassifySurface scans every occupied voxel and returns its surface
// classification, casting probeCount Fibonacci-distributed directions
// per boundary voxel and escapeCells as the probe travel distance.
func (g *Grid) ClassifySurface(probeCount, escapeCells int) SurfaceClassification {
	if probeCount <= 0 {
		probeCount = defaultProbeCount
	}
	if escapeCells <= 0 {
		escapeCells = 3
	}
	directions := fibonacciSphere(probeCount)
	var out SurfaceClassification

	ob := g.ComputeObjectBounds()
	ob.Each(func(x, y, z int) {
		v := geometry.Vector3I{X: x, Y: y, Z: z}
		if g.StateAt(v) == Empty {
			return
		}
		if !g.isBoundary(v) {
			out.Interior = append(out.Interior, v)
			return
		}
		escaped := 0
		for _, d := range directions {
			if g.probeEscapes(v, d, escapeCells) {
				escaped++
			}
		}
		if escaped*2 >= probeCount {
			out.Surface = append(out.Surface, v)
		} else {
			out.Interior = append(out.Interior, v)
		}
	})
	return out
}

// probeEscapes walks from voxel start along direction dir, one voxel at
// a time, up to maxSteps; it reports true if it ever reaches an Empty
// or out-of-bounds voxel (the probe "escaped" the occupied region).
func (g *Grid) probeEscapes(start geometry.Vector3I, dir geometry.Vector3, maxSteps int) bool {
	pos := geometry.Vector3{X: float64(start.X), Y: float64(start.Y), Z: float64(start.Z)}
	for step := 1; step <= maxSteps; step++ {
		pos = pos.Add(dir)
		v := geometry.Vector3I{X: int(math.Round(pos.X)), Y: int(math.Round(pos.Y)), Z: int(math.Round(pos.Z))}
		if !g.inBounds(v) || g.StateAt(v) == Empty {
			return true
		}
	}
	return false
}
