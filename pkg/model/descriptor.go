package model

import "fmt"

// Descriptor describes one geometric primitive. It is a value: once a
// layout pass emits it, nothing changes it.
//
// For boxes Size is the full extent along X, Y, Z. For cylinders Size holds
// the bounding extent, Radius the bar radius, and Axis the bar direction.
// Position is the center, measured from the cabinet center.
type Descriptor struct {
	Role     Role    `json:"role"`
	Index    int     `json:"index"` // ordinal within Role, 0-based
	Shape    Shape   `json:"shape"`
	Size     Vec3    `json:"size"`
	Position Vec3    `json:"position"`
	Axis     Axis    `json:"axis"`
	Radius   float64 `json:"radius,omitempty"`
	Material string  `json:"material"`
	Tone     Tone    `json:"tone"`
}

// Name returns a stable human-readable name such as "shelf-2" or "left".
func (d Descriptor) Name() string {
	if d.Role.IsCarcass() {
		return d.Role.String()
	}
	return fmt.Sprintf("%s-%d", d.Role, d.Index+1)
}

// Length returns the cylinder length along its axis. For boxes it returns
// the extent along Axis.
func (d Descriptor) Length() float64 {
	switch d.Axis {
	case AxisY:
		return d.Size.Y
	case AxisZ:
		return d.Size.Z
	default:
		return d.Size.X
	}
}

// Min returns the lower corner of the bounding box.
func (d Descriptor) Min() Vec3 {
	return d.Position.Add(d.Size.Scale(-0.5))
}

// Max returns the upper corner of the bounding box.
func (d Descriptor) Max() Vec3 {
	return d.Position.Add(d.Size.Scale(0.5))
}

// Box returns a box descriptor.
func Box(role Role, index int, size, pos Vec3, material string, tone Tone) Descriptor {
	return Descriptor{
		Role:     role,
		Index:    index,
		Shape:    ShapeBox,
		Size:     size,
		Position: pos,
		Axis:     AxisX,
		Material: material,
		Tone:     tone,
	}
}

// Cylinder returns a cylinder descriptor of the given length and radius
// laid along axis.
func Cylinder(role Role, index int, length, radius float64, axis Axis, pos Vec3, material string) Descriptor {
	size := Vec3{X: 2 * radius, Y: 2 * radius, Z: 2 * radius}
	switch axis {
	case AxisX:
		size.X = length
	case AxisY:
		size.Y = length
	case AxisZ:
		size.Z = length
	}
	return Descriptor{
		Role:     role,
		Index:    index,
		Shape:    ShapeCylinder,
		Size:     size,
		Position: pos,
		Axis:     axis,
		Radius:   radius,
		Material: material,
		Tone:     ToneMetal,
	}
}
