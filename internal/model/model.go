// Package model defines the read-only boundary to a parsed building
// information model. The core never mutates entities; it reads them through
// the capability interfaces below. A real parser (IFC or otherwise) lives
// outside this repository; the in-memory implementation in memory.go and the
// JSON snapshot codec in snapshot.go stand in for it.
package model

import "fmt"

// Kind tags the entity classes the core cares about.
type Kind int

const (
	KindProject Kind = iota
	KindSpace
	KindFurnishing
	KindUnit
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindSpace:
		return "space"
	case KindFurnishing:
		return "furnishing"
	case KindUnit:
		return "unit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Well-known attribute names. Attr lookups use these keys; parsers map their
// native fields onto them.
const (
	AttrName       = "Name"
	AttrLongName   = "LongName"
	AttrObjectType = "ObjectType"
	AttrTag        = "Tag"
	AttrElemType   = "ElementType"
)

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X, Y, Z float64
}

// PlacementLink is one link of a relative placement chain. Axis and
// RefDirection are optional; missing directions use the defaults (0,0,1)
// and (1,0,0). Parent is nil for the outermost link.
type PlacementLink struct {
	Origin       Vec3
	Axis         *Vec3
	RefDirection *Vec3
	Parent       *PlacementLink
}

// TriangleMesh is a triangulated surface in world coordinates. Faces holds
// vertex indices in triples; a trailing partial triple is ignored.
type TriangleMesh struct {
	Vertices []Vec3
	Faces    []int
}

// Empty reports whether the mesh has no usable geometry.
func (m TriangleMesh) Empty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) < 3
}

// UnitDef describes one declared unit of the model. Either an SI unit
// (SI=true, Name e.g. "metre", optional Prefix e.g. "milli") or a
// conversion-based unit whose ConversionUnit is the SI base it converts to.
type UnitDef struct {
	Measure         string // "length", "area", ...
	SI              bool
	Name            string
	Prefix          string
	ConversionValue float64
	ConversionUnit  *UnitDef
}

// MeasureLength is the measure tag of length units.
const MeasureLength = "length"

// SIMetre is the SI base unit name length scaling keys on.
const SIMetre = "metre"

// Entity is an opaque handle into the parsed model graph. Attr returns the
// raw attribute value and whether it was present; typed fallback helpers
// build on it (DisplayName, FurnishingLabel).
type Entity interface {
	ID() int64
	Kind() Kind
	Attr(name string) (string, bool)
	Placement() (*PlacementLink, bool)
	DefiningType() (Entity, bool)
}

// Model is the entity graph plus on-demand world-space mesh generation.
// EntitiesByKind must return entities in a stable model order so that
// downstream first-match assignment is deterministic.
type Model interface {
	EntitiesByKind(kind Kind) []Entity
	Project() (Entity, bool)
	Units() []UnitDef
	Mesh(e Entity) (TriangleMesh, bool)
}

// FurnishingPoint is the extracted view of a furnishing entity: its raw
// labels and its resolved world-space location. Placed is false when the
// placement chain was missing or broken; such furnishings still count in
// label aggregates but can never be assigned to a room. Immutable after
// extraction.
type FurnishingPoint struct {
	EntityID   int64
	Name       string
	ObjectType string
	TypeName   string
	X, Y, Z    float64
	Placed     bool
}

// attr returns the trimmed-nonempty attribute value, or "".
func attr(e Entity, name string) string {
	if v, ok := e.Attr(name); ok && v != "" {
		return v
	}
	return ""
}

// DisplayName resolves a space entity's display name: LongName, else Name,
// else a synthesized Space_<id>.
func DisplayName(e Entity) string {
	for _, name := range []string{AttrLongName, AttrName} {
		if v := attr(e, name); v != "" {
			return v
		}
	}
	return fmt.Sprintf("Space_%d", e.ID())
}

// FurnishingLabel resolves a furnishing entity's best label: own Name or
// ObjectType, else the defining type's Name, ElementType or Tag, else the
// entity's own Tag. Returns "" when nothing is set.
func FurnishingLabel(e Entity) string {
	for _, name := range []string{AttrName, AttrObjectType} {
		if v := attr(e, name); v != "" {
			return v
		}
	}
	if t, ok := e.DefiningType(); ok {
		for _, name := range []string{AttrName, AttrElemType, AttrTag} {
			if v := attr(t, name); v != "" {
				return v
			}
		}
	}
	return attr(e, AttrTag)
}

// TypeName resolves the defining type's name for a furnishing, or "".
func TypeName(e Entity) string {
	t, ok := e.DefiningType()
	if !ok {
		return ""
	}
	for _, name := range []string{AttrName, AttrElemType} {
		if v := attr(t, name); v != "" {
			return v
		}
	}
	return ""
}
