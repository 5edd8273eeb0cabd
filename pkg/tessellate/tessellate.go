// Package tessellate turns a cabinet model into triangle meshes using a
// geometry kernel. One mesh is produced per descriptor, in descriptor order.
package tessellate

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/material"
	"github.com/chazu/casework/pkg/model"
)

// DefaultScale converts inches to scene units.
const DefaultScale = 0.1

// cylinderSegments is passed to kernels that facet cylinders.
const cylinderSegments = 32

// ErrEmptyMesh is returned when a descriptor meshes to no triangles.
var ErrEmptyMesh = errors.New("empty mesh")

// Options control placement of the meshes in scene space.
type Options struct {
	// Scale multiplies every size and position. Zero means DefaultScale.
	Scale float64
	// Local skips the model origin, leaving the cabinet centered on the
	// scene origin instead of standing on the ground plane.
	Local bool
	// Workers bounds how many descriptors are meshed at once. Zero means
	// GOMAXPROCS.
	Workers int
}

func (o Options) scale() float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	return DefaultScale
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Tessellate produces one mesh per descriptor of m using the provided
// geometry kernel, in descriptor order. Descriptors are meshed concurrently,
// so k must be safe for concurrent use. A descriptor that meshes to nothing
// fails the whole call with ErrEmptyMesh. The tessellator is read-only and
// never mutates the model. A nil or cleared model yields no meshes.
func Tessellate(ctx context.Context, m *model.Model, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	if m == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := opts.scale()
	origin := m.Origin()
	if opts.Local {
		origin = model.Vec3{}
	}
	mat := m.Material()

	descs := m.Descriptors()
	meshes := make([]*kernel.Mesh, len(descs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mesh, err := descriptorMesh(k, d, origin, s)
			if err != nil {
				return fmt.Errorf("tessellate: %s: %w", d.Name(), err)
			}
			if mesh.TriangleCount() == 0 {
				return fmt.Errorf("tessellate: %s: %w", d.Name(), ErrEmptyMesh)
			}
			mesh.PartName = d.Name()
			mesh.Color = Color(d, mat)
			meshes[i] = mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// descriptorMesh builds the solid for d, rotates cylinders onto their axis,
// then translates to origin + position.
func descriptorMesh(k kernel.Kernel, d model.Descriptor, origin model.Vec3, s float64) (*kernel.Mesh, error) {
	var solid kernel.Solid

	switch d.Shape {
	case model.ShapeBox:
		solid = k.Box(d.Size.X*s, d.Size.Y*s, d.Size.Z*s)
	case model.ShapeCylinder:
		// Kernel cylinders run along Z.
		solid = k.Cylinder(d.Length()*s, d.Radius*s, cylinderSegments)
		switch d.Axis {
		case model.AxisX:
			solid = k.Rotate(solid, 0, 90, 0)
		case model.AxisY:
			solid = k.Rotate(solid, 90, 0, 0)
		}
	default:
		return nil, fmt.Errorf("unsupported shape %v", d.Shape)
	}

	p := origin.Add(d.Position).Scale(s)
	if p.X != 0 || p.Y != 0 || p.Z != 0 {
		solid = k.Translate(solid, p.X, p.Y, p.Z)
	}

	return k.ToMesh(solid)
}

// Color returns the "#rrggbb" display color of d: the material face color,
// the darker edge shade for frames, or the hardware metal.
func Color(d model.Descriptor, mat material.Info) string {
	switch d.Tone {
	case model.ToneEdge:
		return mat.EdgeHex()
	case model.ToneMetal:
		return material.Hardware.Hex()
	default:
		return mat.Hex()
	}
}

// Stats summarizes a tessellation.
type Stats struct {
	Parts     int `json:"parts"`
	Vertices  int `json:"vertices"`
	Triangles int `json:"triangles"`
}

// Summarize counts parts, vertices and triangles across meshes.
func Summarize(meshes []*kernel.Mesh) Stats {
	st := Stats{Parts: len(meshes)}
	for _, m := range meshes {
		st.Vertices += m.VertexCount()
		st.Triangles += m.TriangleCount()
	}
	return st
}
