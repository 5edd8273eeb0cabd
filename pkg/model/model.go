package model

import (
	"encoding/json"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/material"
)

// Model is the aggregate root of one generation pass. It exclusively owns
// its descriptors and measurements; accessors hand out copies. After Clear
// the model is empty and every descriptor previously read from it must be
// considered stale.
//
// A Model is safe for concurrent readers; Clear may be called from any
// goroutine.
type Model struct {
	mu           sync.RWMutex
	id           uuid.UUID
	spec         cabinet.Spec
	material     material.Info
	origin       Vec3
	descriptors  []Descriptor
	measurements []Measurement
	released     bool
}

// New assembles a model from a finished layout pass. The slices are copied.
func New(spec cabinet.Spec, mat material.Info, origin Vec3, descriptors []Descriptor, measurements []Measurement) *Model {
	m := &Model{
		id:           uuid.New(),
		spec:         spec,
		material:     mat,
		origin:       origin,
		descriptors:  make([]Descriptor, len(descriptors)),
		measurements: make([]Measurement, len(measurements)),
	}
	copy(m.descriptors, descriptors)
	copy(m.measurements, measurements)
	return m
}

// ID returns the unique identifier assigned at creation.
func (m *Model) ID() uuid.UUID { return m.id }

// Spec returns the specification the model was generated from.
func (m *Model) Spec() cabinet.Spec { return m.spec }

// Material returns the resolved material.
func (m *Model) Material() material.Info { return m.material }

// Origin is where the renderer should place the cabinet center in world
// space so the cabinet stands on the ground plane.
func (m *Model) Origin() Vec3 { return m.origin }

// Len returns the number of descriptors.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.descriptors)
}

// Descriptors returns the descriptors in emission order.
func (m *Model) Descriptors() []Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Descriptor, len(m.descriptors))
	copy(out, m.descriptors)
	return out
}

// ByRole returns the descriptors with the given role, in order.
func (m *Model) ByRole(r Role) []Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Descriptor
	for _, d := range m.descriptors {
		if d.Role == r {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many descriptors have role r.
func (m *Model) Count(r Role) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.descriptors {
		if d.Role == r {
			n++
		}
	}
	return n
}

// Measurements returns the measurement labels.
func (m *Model) Measurements() []Measurement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Measurement, len(m.measurements))
	copy(out, m.measurements)
	return out
}

// Bounds returns the axis-aligned bounding box of all descriptors. An empty
// model returns zero vectors.
func (m *Model) Bounds() (min, max Vec3) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.descriptors) == 0 {
		return Vec3{}, Vec3{}
	}
	min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, d := range m.descriptors {
		lo, hi := d.Min(), d.Max()
		min = Vec3{math.Min(min.X, lo.X), math.Min(min.Y, lo.Y), math.Min(min.Z, lo.Z)}
		max = Vec3{math.Max(max.X, hi.X), math.Max(max.Y, hi.Y), math.Max(max.Z, hi.Z)}
	}
	return min, max
}

// Clear releases every descriptor and measurement. Calling it again is a
// no-op.
func (m *Model) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.descriptors = nil
	m.measurements = nil
	m.released = true
}

// Released reports whether Clear has been called.
func (m *Model) Released() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.released
}

// snapshot is the JSON form handed to renderers.
type snapshot struct {
	ID           string        `json:"id"`
	Spec         cabinet.Spec  `json:"spec"`
	Material     string        `json:"material"`
	Color        string        `json:"color"`
	EdgeColor    string        `json:"edge_color"`
	Origin       Vec3          `json:"origin"`
	Descriptors  []Descriptor  `json:"descriptors"`
	Measurements []Measurement `json:"measurements"`
}

// MarshalJSON encodes the model for an external renderer.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		ID:           m.id.String(),
		Spec:         m.spec,
		Material:     m.material.Name,
		Color:        m.material.Hex(),
		EdgeColor:    m.material.EdgeHex(),
		Origin:       m.origin,
		Descriptors:  m.Descriptors(),
		Measurements: m.Measurements(),
	})
}
