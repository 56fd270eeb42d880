// Package relation models the edges and properties a graph transaction
// creates. Relations are handled by pointer, so two *Relation values are
// the same relation exactly when they point at the same object.
package relation

import (
	"fmt"
	"strings"
)

// Kind distinguishes edges from properties
type Kind uint8

const (
	KindEdge Kind = iota
	KindProperty
)

func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindProperty:
		return "property"
	default:
		return "unknown"
	}
}

// ParseKind converts "edge" or "property" to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "edge":
		return KindEdge, nil
	case "property":
		return KindProperty, nil
	default:
		return 0, fmt.Errorf("unknown relation kind %q", s)
	}
}

// Relation is an edge between two vertices or a property on one vertex
type Relation struct {
	ID        uint64
	Kind      Kind
	Type      string // edge label or property key
	OutVertex uint64
	InVertex  uint64 // edges only
	Value     Value  // properties only
}

// NewEdge creates an edge relation from out to in
func NewEdge(id uint64, label string, out, in uint64) *Relation {
	return &Relation{ID: id, Kind: KindEdge, Type: label, OutVertex: out, InVertex: in}
}

// NewProperty creates a property relation on vertex
func NewProperty(id uint64, key string, vertex uint64, value Value) *Relation {
	return &Relation{ID: id, Kind: KindProperty, Type: key, OutVertex: vertex, Value: value}
}

func (r *Relation) IsEdge() bool     { return r.Kind == KindEdge }
func (r *Relation) IsProperty() bool { return r.Kind == KindProperty }

// IsIncidentOn reports whether vertex is an endpoint of the relation
func (r *Relation) IsIncidentOn(vertex uint64) bool {
	if r.OutVertex == vertex {
		return true
	}
	return r.IsEdge() && r.InVertex == vertex
}

// Other returns the endpoint opposite to vertex. Loops return vertex itself.
func (r *Relation) Other(vertex uint64) (uint64, bool) {
	if !r.IsEdge() {
		return 0, false
	}
	switch vertex {
	case r.OutVertex:
		return r.InVertex, true
	case r.InVertex:
		return r.OutVertex, true
	default:
		return 0, false
	}
}

// Clone creates a copy of the relation. The copy is a distinct relation.
func (r *Relation) Clone() *Relation {
	clone := *r
	if r.Value.Data != nil {
		clone.Value.Data = append([]byte(nil), r.Value.Data...)
	}
	return &clone
}

func (r *Relation) String() string {
	if r.IsEdge() {
		return fmt.Sprintf("e%d[%d-%s->%d]", r.ID, r.OutVertex, r.Type, r.InVertex)
	}
	return fmt.Sprintf("p%d[%d.%s=%s]", r.ID, r.OutVertex, r.Type, r.Value)
}
