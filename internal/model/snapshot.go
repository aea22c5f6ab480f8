package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edubim/schoolcheck/internal/errors"
)

// Snapshot is the JSON wire form of a model. It exists so the CLI and tests
// can feed the core without a live parser; a real integration implements
// Model directly instead.
type Snapshot struct {
	Units    []SnapshotUnit   `json:"units,omitempty"`
	Entities []SnapshotEntity `json:"entities"`
}

// SnapshotUnit mirrors UnitDef.
type SnapshotUnit struct {
	Measure         string        `json:"measure"`
	SI              bool          `json:"si,omitempty"`
	Name            string        `json:"name,omitempty"`
	Prefix          string        `json:"prefix,omitempty"`
	ConversionValue float64       `json:"conversionValue,omitempty"`
	ConversionUnit  *SnapshotUnit `json:"conversionUnit,omitempty"`
}

// SnapshotEntity is one entity of the graph. Kind is the lowercase kind
// name. Placement chains are inlined innermost-first.
type SnapshotEntity struct {
	ID        int64             `json:"id"`
	Kind      string            `json:"kind"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Placement []SnapshotLink    `json:"placement,omitempty"`
	TypeRef   int64             `json:"typeRef,omitempty"`
	Mesh      *SnapshotMesh     `json:"mesh,omitempty"`
}

// SnapshotLink is one placement link; nil directions mean defaults.
type SnapshotLink struct {
	Origin       [3]float64  `json:"origin"`
	Axis         *[3]float64 `json:"axis,omitempty"`
	RefDirection *[3]float64 `json:"refDirection,omitempty"`
}

// SnapshotMesh is a flat vertex list plus face index triples.
type SnapshotMesh struct {
	Vertices []float64 `json:"vertices"` // x,y,z interleaved
	Faces    []int     `json:"faces"`
}

var kindNames = map[string]Kind{
	"project":    KindProject,
	"space":      KindSpace,
	"furnishing": KindFurnishing,
	"unit":       KindUnit,
}

// LoadSnapshot reads and decodes a snapshot file into an in-memory model.
func LoadSnapshot(path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("model").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.New(err).
			Component("model").
			Category(errors.CategoryModelParsing).
			Context("path", path).
			Build()
	}
	return FromSnapshot(&snap)
}

// FromSnapshot builds an in-memory model from a decoded snapshot.
func FromSnapshot(snap *Snapshot) (*InMemory, error) {
	m := NewInMemory()
	for _, u := range snap.Units {
		m.AddUnit(snapshotUnit(u))
	}
	for i := range snap.Entities {
		se := &snap.Entities[i]
		kind, ok := kindNames[se.Kind]
		if !ok {
			return nil, errors.Newf("unknown entity kind %q (id %d)", se.Kind, se.ID).
				Component("model").
				Category(errors.CategoryModelParsing).
				Build()
		}
		opts := []EntityOption{WithID(se.ID)}
		for name, value := range se.Attrs {
			opts = append(opts, WithAttr(name, value))
		}
		if len(se.Placement) > 0 {
			opts = append(opts, WithPlacement(snapshotChain(se.Placement)))
		}
		if se.TypeRef != 0 {
			opts = append(opts, WithDefiningType(se.TypeRef))
		}
		e := m.AddEntity(kind, opts...)
		if se.Mesh != nil {
			mesh, err := snapshotMesh(se.Mesh)
			if err != nil {
				return nil, errors.New(err).
					Component("model").
					Category(errors.CategoryModelParsing).
					Context("entity_id", fmt.Sprintf("%d", se.ID)).
					Build()
			}
			m.SetMesh(e, mesh)
		}
	}
	return m, nil
}

func snapshotUnit(u SnapshotUnit) UnitDef {
	def := UnitDef{
		Measure:         u.Measure,
		SI:              u.SI,
		Name:            u.Name,
		Prefix:          u.Prefix,
		ConversionValue: u.ConversionValue,
	}
	if u.ConversionUnit != nil {
		inner := snapshotUnit(*u.ConversionUnit)
		def.ConversionUnit = &inner
	}
	return def
}

// snapshotChain links the inline placement list innermost-first.
func snapshotChain(links []SnapshotLink) *PlacementLink {
	var parent *PlacementLink
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		link := &PlacementLink{
			Origin: Vec3{X: l.Origin[0], Y: l.Origin[1], Z: l.Origin[2]},
			Parent: parent,
		}
		if l.Axis != nil {
			link.Axis = &Vec3{X: l.Axis[0], Y: l.Axis[1], Z: l.Axis[2]}
		}
		if l.RefDirection != nil {
			link.RefDirection = &Vec3{X: l.RefDirection[0], Y: l.RefDirection[1], Z: l.RefDirection[2]}
		}
		parent = link
	}
	return parent
}

func snapshotMesh(sm *SnapshotMesh) (TriangleMesh, error) {
	if len(sm.Vertices)%3 != 0 {
		return TriangleMesh{}, fmt.Errorf("vertex array length %d is not a multiple of 3", len(sm.Vertices))
	}
	mesh := TriangleMesh{Faces: sm.Faces}
	for i := 0; i+2 < len(sm.Vertices); i += 3 {
		mesh.Vertices = append(mesh.Vertices, Vec3{
			X: sm.Vertices[i],
			Y: sm.Vertices[i+1],
			Z: sm.Vertices[i+2],
		})
	}
	nVerts := len(mesh.Vertices)
	for _, idx := range sm.Faces {
		if idx < 0 || idx >= nVerts {
			return TriangleMesh{}, fmt.Errorf("face index %d out of range (have %d vertices)", idx, nVerts)
		}
	}
	return mesh, nil
}
