// Package object defines the geometric object compared by surfcmp: a plane or a
// general surface described by an ordered coefficient vector.
package object

import (
	"fmt"
	"math"
	"slices"

	"github.com/kailas-cloud/surfcmp/internal/domain"
)

// KindPlane is the kind label that puts an object in the plane category.
const KindPlane = "plane"

// Category partitions objects for comparison. Objects are compared only within a category.
type Category string

// Categories.
const (
	Plane   Category = "plane"
	Surface Category = "surface"
)

// Object is an immutable geometric object.
type Object struct {
	id           int64
	kind         string
	coefficients []float64
}

// New creates a validated object. The coefficient slice is copied.
func New(id int64, kind string, coefficients []float64) (Object, error) {
	if id == 0 {
		return Object{}, domain.NewObjectError(id, "id must be nonzero")
	}
	if kind == "" {
		return Object{}, domain.NewObjectError(id, "kind is required")
	}
	if len(coefficients) == 0 {
		return Object{}, domain.NewObjectError(id, "coefficients are required")
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Object{}, domain.NewObjectError(id, fmt.Sprintf("coefficient %d is not finite", i))
		}
	}
	return Reconstruct(id, kind, coefficients), nil
}

// Reconstruct creates an object without validation (trusted callers and tests).
func Reconstruct(id int64, kind string, coefficients []float64) Object {
	return Object{id: id, kind: kind, coefficients: slices.Clone(coefficients)}
}

// ID returns the object identifier.
func (o Object) ID() int64 { return o.id }

// Kind returns the kind label.
func (o Object) Kind() string { return o.kind }

// Coefficients returns a copy of the coefficient vector.
func (o Object) Coefficients() []float64 { return slices.Clone(o.coefficients) }

// Len returns the number of coefficients.
func (o Object) Len() int { return len(o.coefficients) }

// At returns the coefficient at position i.
func (o Object) At(i int) float64 { return o.coefficients[i] }

// Category returns Plane for the "plane" kind and Surface otherwise.
func (o Object) Category() Category {
	if o.kind == KindPlane {
		return Plane
	}
	return Surface
}

// SameShape reports whether o and other have the same kind and coefficient count.
func (o Object) SameShape(other Object) bool {
	return o.kind == other.kind && len(o.coefficients) == len(other.coefficients)
}

// Group is a set of objects of one category, indexed by id.
type Group struct {
	category Category
	byID     map[int64]Object
	ids      []int64
}

// Category returns the group category.
func (g *Group) Category() Category { return g.category }

// Len returns the number of objects in the group.
func (g *Group) Len() int { return len(g.ids) }

// IDs returns the object ids in ascending order.
func (g *Group) IDs() []int64 { return slices.Clone(g.ids) }

// Get returns the object with the given id.
func (g *Group) Get(id int64) (Object, bool) {
	o, ok := g.byID[id]
	return o, ok
}

// Partition splits objects into the plane and surface groups.
// Duplicate ids are rejected with domain.ErrInvalidObject.
func Partition(objects []Object) (planes, surfaces *Group, err error) {
	planes = &Group{category: Plane, byID: make(map[int64]Object)}
	surfaces = &Group{category: Surface, byID: make(map[int64]Object)}

	seen := make(map[int64]struct{}, len(objects))
	for _, o := range objects {
		if _, dup := seen[o.id]; dup {
			return nil, nil, domain.NewObjectError(o.id, "duplicate id")
		}
		seen[o.id] = struct{}{}

		g := surfaces
		if o.Category() == Plane {
			g = planes
		}
		g.byID[o.id] = o
		g.ids = append(g.ids, o.id)
	}

	for _, g := range []*Group{planes, surfaces} {
		slices.Sort(g.ids)
	}
	return planes, surfaces, nil
}
