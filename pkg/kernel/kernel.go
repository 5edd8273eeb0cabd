// Package kernel defines the abstract geometry kernel interface used to
// turn part descriptors into renderable meshes. Primitives are centered on
// the origin; callers place them with Rotate and Translate.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box is centered on the origin; Cylinder is centered on
	// the origin with its axis along Z.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
