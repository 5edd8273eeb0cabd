// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/casework/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells is the marching cubes resolution along the longest axis
// of a curved solid.
const DefaultMeshCells = 200

// MaxMeshCells caps the resolution ToMesh raises for slender solids.
const MaxMeshCells = 1024

// minCellsAcross is how many cells ToMesh keeps across the thinnest
// extent of a curved solid.
const minCellsAcross = 4

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid. Boxes also keep
// their size and accumulated transform so ToMesh can emit their faces
// exactly instead of sampling them.
type sdfxSolid struct {
	s   sdf.SDF3
	box *v3.Vec
	m   sdf.M44
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx. It holds no mutable
// state and is safe for concurrent use.
type SdfxKernel struct {
	meshCells int
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution for curved solids.
// Values below 1 keep the default.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: DefaultMeshCells}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// MeshCells returns the minimum marching cubes resolution.
func (k *SdfxKernel) MeshCells() int { return k.meshCells }

// unwrap extracts the sdfx solid from a kernel.Solid.
func unwrap(s kernel.Solid) *sdfxSolid {
	return s.(*sdfxSolid)
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s, m: sdf.Identity3d()}
}

// transform applies m to s, keeping the box record in step.
func transform(s kernel.Solid, m sdf.M44) kernel.Solid {
	in := unwrap(s)
	return &sdfxSolid{
		s:   sdf.Transform3D(in.s, m),
		box: in.box,
		m:   m.Mul(in.m),
	}
}

// Box creates a box with the given dimensions centered on the origin, the
// same convention descriptors use for their positions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	size := v3.Vec{X: x, Y: y, Z: z}
	s, err := sdf.Box3D(size, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return &sdfxSolid{s: s, box: &size, m: sdf.Identity3d()}
}

// Cylinder creates a cylinder with the given height and radius, centered on
// the origin with its axis along Z.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return transform(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	return transform(s, sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad)))
}

// ToMesh converts a solid to a triangle mesh. Boxes become their twelve
// face triangles; other solids go through marching cubes at a resolution
// high enough to keep minCellsAcross cells over their thinnest extent.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	in := unwrap(s)
	if in.box != nil {
		return toMesh(boxTriangles(*in.box, in.m)), nil
	}
	renderer := render.NewMarchingCubesUniform(k.cells(in.s.BoundingBox().Size()))
	return toMesh(render.ToTriangles(in.s, renderer)), nil
}

// cells returns the marching cubes resolution for a solid of the given
// size.
func (k *SdfxKernel) cells(size v3.Vec) int {
	n := k.meshCells
	shortest := size.MinComponent()
	if shortest <= 0 {
		return n
	}
	need := int(math.Ceil(minCellsAcross * size.MaxComponent() / shortest))
	if need > n {
		n = min(need, MaxMeshCells)
	}
	return n
}

// boxCorners orders the corners of a box by bit: bit 0 picks max X, bit 1
// max Y, bit 2 max Z.
func boxCorners(size v3.Vec, m sdf.M44) [8]v3.Vec {
	h := size.MulScalar(0.5)
	var c [8]v3.Vec
	for i := range c {
		p := h.Neg()
		if i&1 != 0 {
			p.X = h.X
		}
		if i&2 != 0 {
			p.Y = h.Y
		}
		if i&4 != 0 {
			p.Z = h.Z
		}
		c[i] = m.MulPosition(p)
	}
	return c
}

// boxFaces lists each face as a counter-clockwise quad seen from outside.
var boxFaces = [6][4]int{
	{0, 4, 6, 2}, // -X
	{1, 3, 7, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{2, 6, 7, 3}, // +Y
	{0, 2, 3, 1}, // -Z
	{4, 5, 7, 6}, // +Z
}

func boxTriangles(size v3.Vec, m sdf.M44) []*sdf.Triangle3 {
	c := boxCorners(size, m)
	triangles := make([]*sdf.Triangle3, 0, 12)
	for _, f := range boxFaces {
		triangles = append(triangles,
			&sdf.Triangle3{c[f[0]], c[f[1]], c[f[2]]},
			&sdf.Triangle3{c[f[0]], c[f[2]], c[f[3]]},
		)
	}
	return triangles
}

// toMesh flattens triangles into a kernel mesh with per-face normals.
func toMesh(triangles []*sdf.Triangle3) *kernel.Mesh {
	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}
