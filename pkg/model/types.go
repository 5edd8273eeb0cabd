package model

import "fmt"

// Vec3 is a 3D vector in inches.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v multiplied by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Axis is a principal axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Role identifies what a descriptor is in the cabinet.
type Role int

const (
	RoleBottom Role = iota
	RoleTop
	RoleLeft
	RoleRight
	RoleBack
	RoleShelf
	RoleDoorPanel
	RoleDoorFrame
	RoleDrawerFront
	RoleHandle
)

// Roles lists every role in emission order.
var Roles = []Role{
	RoleBottom, RoleTop, RoleLeft, RoleRight, RoleBack,
	RoleShelf, RoleDoorPanel, RoleDoorFrame, RoleDrawerFront, RoleHandle,
}

func (r Role) String() string {
	switch r {
	case RoleBottom:
		return "bottom"
	case RoleTop:
		return "top"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	case RoleBack:
		return "back"
	case RoleShelf:
		return "shelf"
	case RoleDoorPanel:
		return "door-panel"
	case RoleDoorFrame:
		return "door-frame"
	case RoleDrawerFront:
		return "drawer-front"
	case RoleHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// IsCarcass reports whether r is one of the five structural panels.
func (r Role) IsCarcass() bool {
	return r <= RoleBack
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	for _, known := range Roles {
		if known.String() == string(b) {
			*r = known
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", string(b))
}

// Shape distinguishes primitive geometry.
type Shape int

const (
	ShapeBox      Shape = iota // rectangular panel
	ShapeCylinder              // round bar (handles)
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// MarshalText encodes the shape by name.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Tone selects which shade of the material a descriptor is drawn with.
type Tone string

const (
	ToneFace  Tone = "face"
	ToneEdge  Tone = "edge"
	ToneMetal Tone = "metal"
)

// DimensionKind names the dimension a measurement label annotates.
type DimensionKind string

const (
	DimensionWidth  DimensionKind = "width"
	DimensionHeight DimensionKind = "height"
	DimensionDepth  DimensionKind = "depth"
)

// Measurement is label metadata; it carries no geometry.
type Measurement struct {
	Label string        `json:"label"`
	Kind  DimensionKind `json:"kind"`
}
