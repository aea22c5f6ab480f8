package model

import "strings"

// memEntity is the in-memory Entity implementation.
type memEntity struct {
	id        int64
	kind      Kind
	attrs     map[string]string
	placement *PlacementLink
	typeRef   int64 // 0 = none
	owner     *InMemory
}

func (e *memEntity) ID() int64  { return e.id }
func (e *memEntity) Kind() Kind { return e.kind }

func (e *memEntity) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *memEntity) Placement() (*PlacementLink, bool) {
	if e.placement == nil {
		return nil, false
	}
	return e.placement, true
}

func (e *memEntity) DefiningType() (Entity, bool) {
	if e.typeRef == 0 {
		return nil, false
	}
	t, ok := e.owner.byID[e.typeRef]
	return t, ok
}

// InMemory is a Model held entirely in memory. It is what the JSON snapshot
// codec produces and what tests construct directly through the builder API.
type InMemory struct {
	entities []*memEntity
	byID     map[int64]*memEntity
	units    []UnitDef
	meshes   map[int64]TriangleMesh
	nextID   int64
}

// NewInMemory returns an empty in-memory model.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[int64]*memEntity),
		meshes: make(map[int64]TriangleMesh),
		nextID: 1,
	}
}

// EntityOption configures an entity added through AddEntity.
type EntityOption func(*memEntity)

// WithAttr sets a raw attribute value.
func WithAttr(name, value string) EntityOption {
	return func(e *memEntity) { e.attrs[name] = value }
}

// WithPlacement attaches a placement chain.
func WithPlacement(link *PlacementLink) EntityOption {
	return func(e *memEntity) { e.placement = link }
}

// WithDefiningType links the entity to its defining type entity by id.
func WithDefiningType(typeID int64) EntityOption {
	return func(e *memEntity) { e.typeRef = typeID }
}

// WithID forces a specific entity id instead of the next sequential one.
func WithID(id int64) EntityOption {
	return func(e *memEntity) { e.id = id }
}

// AddEntity adds an entity of the given kind and returns it. Insertion order
// is the stable model order reported by EntitiesByKind.
func (m *InMemory) AddEntity(kind Kind, opts ...EntityOption) Entity {
	e := &memEntity{
		id:    m.nextID,
		kind:  kind,
		attrs: make(map[string]string),
		owner: m,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id >= m.nextID {
		m.nextID = e.id + 1
	}
	m.entities = append(m.entities, e)
	m.byID[e.id] = e
	return e
}

// AddUnit declares a model unit.
func (m *InMemory) AddUnit(u UnitDef) {
	m.units = append(m.units, u)
}

// SetMesh attaches a world-space triangle mesh to an entity.
func (m *InMemory) SetMesh(e Entity, mesh TriangleMesh) {
	m.meshes[e.ID()] = mesh
}

// EntitiesByKind returns entities of one kind in insertion order.
func (m *InMemory) EntitiesByKind(kind Kind) []Entity {
	var out []Entity
	for _, e := range m.entities {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Project returns the project entity, if one was added.
func (m *InMemory) Project() (Entity, bool) {
	for _, e := range m.entities {
		if e.kind == KindProject {
			return e, true
		}
	}
	return nil, false
}

// Units returns the declared unit definitions.
func (m *InMemory) Units() []UnitDef {
	return m.units
}

// Mesh returns the triangle mesh attached to the entity, if any.
func (m *InMemory) Mesh(e Entity) (TriangleMesh, bool) {
	mesh, ok := m.meshes[e.ID()]
	if !ok || mesh.Empty() {
		return TriangleMesh{}, false
	}
	return mesh, true
}
