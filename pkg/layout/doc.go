// Package layout is the parametric geometry engine. It turns a cabinet.Spec
// into positioned primitive descriptors: the five carcass panels, evenly
// spaced shelves, door leaves with inset frames, stacked drawer fronts, and
// handles placed on the same opening geometry the doors and drawers use.
//
// Every function here is pure. Generator.Generate runs the whole pass and
// returns a new model.Model or an error; it never returns a partial model.
//
// All lengths are inches. Positions are measured from the cabinet center,
// +X to the right, +Y up, +Z toward the viewer (the front face).
package layout
