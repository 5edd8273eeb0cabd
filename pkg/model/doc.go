// Package model defines the geometric output of the layout engine: an
// ordered set of immutable primitive descriptors plus measurement labels,
// owned by a single Model. The renderer consumes a Model; nothing it does
// feeds back into layout.
package model
