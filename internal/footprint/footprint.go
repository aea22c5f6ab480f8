// Package footprint reduces a space entity's triangulated world-space mesh
// to a single merged 2D footprint polygon plus an elevation band. Triangles
// are projected onto the horizontal plane, degenerate ones dropped, and the
// survivors merged with a planar union; a degenerate union falls back to the
// convex hull of the surviving triangle vertices. A space without usable
// geometry contributes no footprint, which is data rather than an error.
package footprint

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/edubim/schoolcheck/internal/model"
)

// Footprint is one room's merged 2D projection and elevation band. The
// furnishing list is appended by the spatial assigner during one evaluation
// run; everything else is immutable after Build.
type Footprint struct {
	EntityID     int64
	Name         string
	Polygon      orb.MultiPolygon
	Area         float64 // model units squared, before unit scaling
	ZMin         float64
	ZMax         float64
	RefElevation float64 // assignment tolerance anchors here (= ZMin)
	UsedHull     bool    // true when the union failed and the hull stood in
	Furnishings  []int64 // assigned furnishing ids, insertion order
}

// Contains reports boundary-inclusive 2D containment of a point. Furnishings
// placed exactly on a wall line still count.
func (f *Footprint) Contains(pt orb.Point) bool {
	return planar.MultiPolygonContains(f.Polygon, pt)
}

// triangle is one projected 2D triangle that survived degeneracy filtering.
type triangle struct {
	a, b, c geom.XY
}

// Build constructs the footprint for a space entity. Returns false when the
// model yields no mesh or projection leaves no usable area.
func Build(m model.Model, space model.Entity, logger *slog.Logger) (*Footprint, bool) {
	name := model.DisplayName(space)

	mesh, ok := m.Mesh(space)
	if !ok {
		if logger != nil {
			logger.Debug("space has no mesh, skipping", "entity_id", space.ID(), "name", name)
		}
		return nil, false
	}

	// Elevation band spans all mesh vertices, not just surviving triangles,
	// so it reflects true geometric extent even if projection drops area.
	zmin, zmax := math.Inf(1), math.Inf(-1)
	for _, v := range mesh.Vertices {
		zmin = math.Min(zmin, v.Z)
		zmax = math.Max(zmax, v.Z)
	}

	tris := projectTriangles(mesh)
	if len(tris) == 0 {
		if logger != nil {
			logger.Debug("space mesh fully degenerate after projection", "entity_id", space.ID(), "name", name)
		}
		return nil, false
	}

	merged, usedHull := merge(tris)
	if merged.IsEmpty() {
		return nil, false
	}
	if usedHull && logger != nil {
		logger.Warn("planar union failed, footprint built from convex hull",
			"entity_id", space.ID(), "name", name, "triangles", len(tris))
	}

	poly := toOrb(merged)
	if len(poly) == 0 {
		return nil, false
	}

	return &Footprint{
		EntityID:     space.ID(),
		Name:         name,
		Polygon:      poly,
		Area:         merged.Area(),
		ZMin:         zmin,
		ZMax:         zmax,
		RefElevation: zmin,
		UsedHull:     usedHull,
	}, true
}

// projectTriangles drops every triangle whose 2D projection has zero or
// invalid area.
func projectTriangles(mesh model.TriangleMesh) []triangle {
	var tris []triangle
	for i := 0; i+2 < len(mesh.Faces); i += 3 {
		ia, ib, ic := mesh.Faces[i], mesh.Faces[i+1], mesh.Faces[i+2]
		if !validIndex(ia, mesh) || !validIndex(ib, mesh) || !validIndex(ic, mesh) {
			continue
		}
		a := geom.XY{X: mesh.Vertices[ia].X, Y: mesh.Vertices[ia].Y}
		b := geom.XY{X: mesh.Vertices[ib].X, Y: mesh.Vertices[ib].Y}
		c := geom.XY{X: mesh.Vertices[ic].X, Y: mesh.Vertices[ic].Y}
		area := triArea(a, b, c)
		if math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
			continue
		}
		tris = append(tris, triangle{a: a, b: b, c: c})
	}
	return tris
}

func validIndex(i int, mesh model.TriangleMesh) bool {
	return i >= 0 && i < len(mesh.Vertices)
}

// triArea is the unsigned area of the projected triangle.
func triArea(a, b, c geom.XY) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// merge unions the triangle set into one geometry. If the union fails on
// numerically degenerate input it falls back to the convex hull of all
// triangle vertices, which never fails on a valid vertex set. The second
// return reports whether the fallback was taken.
func merge(tris []triangle) (geom.Geometry, bool) {
	acc := triPolygon(tris[0]).AsGeometry()
	for _, tri := range tris[1:] {
		next, err := geom.Union(acc, triPolygon(tri).AsGeometry())
		if err != nil {
			return hull(tris), true
		}
		acc = next
	}
	return acc, false
}

// triPolygon builds a closed CCW ring polygon for one triangle.
func triPolygon(t triangle) geom.Polygon {
	a, b, c := t.a, t.b, t.c
	// Signed area negative means clockwise winding; swap to normalize.
	if (b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y) < 0 {
		b, c = c, b
	}
	seq := geom.NewSequence([]float64{
		a.X, a.Y,
		b.X, b.Y,
		c.X, c.Y,
		a.X, a.Y,
	}, geom.DimXY)
	ring := geom.NewLineString(seq)
	return geom.NewPolygon([]geom.LineString{ring})
}

// hull is the convex hull of every vertex of the surviving triangles.
func hull(tris []triangle) geom.Geometry {
	pts := make([]geom.Point, 0, 3*len(tris))
	for _, t := range tris {
		for _, xy := range []geom.XY{t.a, t.b, t.c} {
			pts = append(pts, geom.NewPoint(geom.Coordinates{XY: xy}))
		}
	}
	return geom.NewMultiPoint(pts).AsGeometry().ConvexHull()
}

// toOrb converts the merged geometry into an orb.MultiPolygon for the
// containment tests downstream. Non-areal results (hull of collinear points)
// convert to nil.
func toOrb(g geom.Geometry) orb.MultiPolygon {
	switch g.Type() {
	case geom.TypePolygon:
		return orb.MultiPolygon{polygonToOrb(g.MustAsPolygon())}
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		out := make(orb.MultiPolygon, 0, mp.NumPolygons())
		for i := 0; i < mp.NumPolygons(); i++ {
			out = append(out, polygonToOrb(mp.PolygonN(i)))
		}
		return out
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		var out orb.MultiPolygon
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, toOrb(gc.GeometryN(i))...)
		}
		return out
	default:
		return nil
	}
}

func polygonToOrb(p geom.Polygon) orb.Polygon {
	out := orb.Polygon{ringToOrb(p.ExteriorRing())}
	for i := 0; i < p.NumInteriorRings(); i++ {
		out = append(out, ringToOrb(p.InteriorRingN(i)))
	}
	return out
}

func ringToOrb(ls geom.LineString) orb.Ring {
	seq := ls.Coordinates()
	ring := make(orb.Ring, 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		ring = append(ring, orb.Point{xy.X, xy.Y})
	}
	return ring
}
