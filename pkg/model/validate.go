package model

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding blocks generation.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// MinStock is the thinnest panel, in inches, a shop can reasonably cut.
// Thinner boxes are reported as warnings.
const MinStock = 0.125

// ValidationError describes a single finding about one descriptor.
type ValidationError struct {
	Name     string // descriptor name, e.g. "door-panel-2"
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Name, e.Message)
}

// Validate checks descriptors for degenerate geometry: every size component
// must be positive and every coordinate finite. Cylinders must have a
// positive radius. Boxes thinner than MinStock get a warning. The slice is
// never mutated.
func Validate(descs []Descriptor) []ValidationError {
	var errs []ValidationError
	for _, d := range descs {
		errs = append(errs, validateSize(d)...)
		errs = append(errs, validatePosition(d)...)
	}
	return errs
}

// Errors filters findings down to blocking ones.
func Errors(findings []ValidationError) []ValidationError {
	return filter(findings, SeverityError)
}

// Warnings filters findings down to informational ones.
func Warnings(findings []ValidationError) []ValidationError {
	return filter(findings, SeverityWarning)
}

func filter(findings []ValidationError, sev ValidationSeverity) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func validateSize(d Descriptor) []ValidationError {
	var errs []ValidationError
	axes := []struct {
		name string
		v    float64
	}{
		{"X", d.Size.X},
		{"Y", d.Size.Y},
		{"Z", d.Size.Z},
	}
	for _, a := range axes {
		if math.IsNaN(a.v) || a.v <= 0 {
			errs = append(errs, ValidationError{
				Name:     d.Name(),
				Message:  fmt.Sprintf("size %s is %.4f, must be positive", a.name, a.v),
				Severity: SeverityError,
			})
		}
	}
	if len(errs) == 0 && d.Shape == ShapeBox {
		if thin := math.Min(d.Size.X, math.Min(d.Size.Y, d.Size.Z)); thin < MinStock {
			errs = append(errs, ValidationError{
				Name:     d.Name(),
				Message:  fmt.Sprintf("thinnest side is %.4f, under %.3f stock", thin, MinStock),
				Severity: SeverityWarning,
			})
		}
	}
	if d.Shape == ShapeCylinder && !(d.Radius > 0) {
		errs = append(errs, ValidationError{
			Name:     d.Name(),
			Message:  fmt.Sprintf("radius is %.4f, must be positive", d.Radius),
			Severity: SeverityError,
		})
	}
	return errs
}

func validatePosition(d Descriptor) []ValidationError {
	for _, v := range []float64{d.Position.X, d.Position.Y, d.Position.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []ValidationError{{
				Name:     d.Name(),
				Message:  fmt.Sprintf("position %s is not finite", d.Position),
				Severity: SeverityError,
			}}
		}
	}
	return nil
}
