// Package placement composes chains of local-to-parent affine transforms
// into world coordinates. Each placement link contributes one 4x4 matrix;
// the fully composed matrix's translation column is the entity's world
// origin. A broken or missing placement yields "no world point" rather than
// an error.
package placement

import (
	"github.com/edubim/schoolcheck/internal/model"
)

// Transform is a 4x4 affine matrix (rotation + translation) in homogeneous
// coordinates, row-major. Value type; composed, never mutated.
type Transform struct {
	M [4][4]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		t.M[i][i] = 1
	}
	return t
}

// Mul returns a*b (apply b first, then a).
func Mul(a, b Transform) Transform {
	var out Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.M[i][k] * b.M[k][j]
			}
			out.M[i][j] = sum
		}
	}
	return out
}

// Translation returns the translation column of the transform.
func (t Transform) Translation() model.Vec3 {
	return model.Vec3{X: t.M[0][3], Y: t.M[1][3], Z: t.M[2][3]}
}

// Apply transforms a point.
func (t Transform) Apply(p model.Vec3) model.Vec3 {
	return model.Vec3{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]*p.Z + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]*p.Z + t.M[1][3],
		Z: t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]*p.Z + t.M[2][3],
	}
}

var (
	defaultAxis = model.Vec3{X: 0, Y: 0, Z: 1}
	defaultRef  = model.Vec3{X: 1, Y: 0, Z: 0}
)

// linkTransform builds the matrix of one placement link. Rotation columns:
// Z = declared axis (default (0,0,1)), X = declared reference direction
// (default (1,0,0)), Y = Z x X, translation = declared origin.
func linkTransform(link *model.PlacementLink) Transform {
	zaxis := defaultAxis
	if link.Axis != nil {
		zaxis = *link.Axis
	}
	xaxis := defaultRef
	if link.RefDirection != nil {
		xaxis = *link.RefDirection
	}
	yaxis := model.Vec3{
		X: zaxis.Y*xaxis.Z - zaxis.Z*xaxis.Y,
		Y: zaxis.Z*xaxis.X - zaxis.X*xaxis.Z,
		Z: zaxis.X*xaxis.Y - zaxis.Y*xaxis.X,
	}
	return Transform{M: [4][4]float64{
		{xaxis.X, yaxis.X, zaxis.X, link.Origin.X},
		{xaxis.Y, yaxis.Y, zaxis.Y, link.Origin.Y},
		{xaxis.Z, yaxis.Z, zaxis.Z, link.Origin.Z},
		{0, 0, 0, 1},
	}}
}

// Resolve composes an entity's placement chain into a single local-to-world
// transform. The chain is walked from the entity outward; composition runs
// from the outermost parent inward so that the parent-to-world transform is
// applied last. Returns false when the entity has no placement.
func Resolve(e model.Entity) (Transform, bool) {
	link, ok := e.Placement()
	if !ok || link == nil {
		return Transform{}, false
	}
	var mats []Transform
	for cur := link; cur != nil; cur = cur.Parent {
		mats = append(mats, linkTransform(cur))
	}
	composed := mats[len(mats)-1]
	for i := len(mats) - 2; i >= 0; i-- {
		composed = Mul(composed, mats[i])
	}
	return composed, true
}

// WorldPoint returns the entity's world-space origin, resolving the full
// placement chain. The same point results regardless of chain depth.
func WorldPoint(e model.Entity) (model.Vec3, bool) {
	t, ok := Resolve(e)
	if !ok {
		return model.Vec3{}, false
	}
	return t.Translation(), true
}
