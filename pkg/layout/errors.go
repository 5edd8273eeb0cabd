package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry matches any *InvalidGeometryError via errors.Is.
var ErrInvalidGeometry = errors.New("invalid geometry")

// InvalidGeometryError reports that computed dimensions are degenerate: a
// panel, leaf, frame or band would have a non-positive size. The whole
// generation pass fails.
type InvalidGeometryError struct {
	Component string // carcass, doors, drawers, ...
	Message   string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s: %s", e.Component, e.Message)
}

// Is lets errors.Is(err, ErrInvalidGeometry) match.
func (e *InvalidGeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

func geometryErrorf(component, format string, args ...any) *InvalidGeometryError {
	return &InvalidGeometryError{Component: component, Message: fmt.Sprintf(format, args...)}
}
