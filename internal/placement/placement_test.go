package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubim/schoolcheck/internal/model"
)

func entityWithChain(chain *model.PlacementLink) model.Entity {
	m := model.NewInMemory()
	return m.AddEntity(model.KindFurnishing, model.WithPlacement(chain))
}

func TestWorldPointIdentityChain(t *testing.T) {
	t.Parallel()

	// Three links, all identity rotation, only the innermost carries an
	// origin. The world point must equal that origin.
	root := &model.PlacementLink{}
	mid := &model.PlacementLink{Parent: root}
	inner := &model.PlacementLink{
		Origin: model.Vec3{X: 2.5, Y: -1.0, Z: 0.75},
		Parent: mid,
	}

	pt, ok := WorldPoint(entityWithChain(inner))
	require.True(t, ok)
	assert.InDelta(t, 2.5, pt.X, 1e-12)
	assert.InDelta(t, -1.0, pt.Y, 1e-12)
	assert.InDelta(t, 0.75, pt.Z, 1e-12)
}

func TestWorldPointTranslationChain(t *testing.T) {
	t.Parallel()

	// Translations accumulate through the chain.
	root := &model.PlacementLink{Origin: model.Vec3{X: 10, Y: 0, Z: 0}}
	inner := &model.PlacementLink{Origin: model.Vec3{X: 1, Y: 2, Z: 3}, Parent: root}

	pt, ok := WorldPoint(entityWithChain(inner))
	require.True(t, ok)
	assert.InDelta(t, 11.0, pt.X, 1e-12)
	assert.InDelta(t, 2.0, pt.Y, 1e-12)
	assert.InDelta(t, 3.0, pt.Z, 1e-12)
}

func TestWorldPointRotatedParent(t *testing.T) {
	t.Parallel()

	// Parent rotates 90 degrees about Z (X axis becomes (0,1,0)), so the
	// child's local +X offset lands on world +Y.
	parent := &model.PlacementLink{
		RefDirection: &model.Vec3{X: 0, Y: 1, Z: 0},
	}
	child := &model.PlacementLink{
		Origin: model.Vec3{X: 1, Y: 0, Z: 0},
		Parent: parent,
	}

	pt, ok := WorldPoint(entityWithChain(child))
	require.True(t, ok)
	assert.InDelta(t, 0.0, pt.X, 1e-12)
	assert.InDelta(t, 1.0, pt.Y, 1e-12)
	assert.InDelta(t, 0.0, pt.Z, 1e-12)
}

func TestWorldPointDepthIndependent(t *testing.T) {
	t.Parallel()

	// The same offset reached through one link or through three identity
	// links must resolve to the same world point.
	flat := &model.PlacementLink{Origin: model.Vec3{X: 4, Y: 5, Z: 6}}
	deepRoot := &model.PlacementLink{}
	deepMid := &model.PlacementLink{Parent: deepRoot}
	deep := &model.PlacementLink{Origin: model.Vec3{X: 4, Y: 5, Z: 6}, Parent: deepMid}

	p1, ok1 := WorldPoint(entityWithChain(flat))
	p2, ok2 := WorldPoint(entityWithChain(deep))
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, p1, p2)
}

func TestWorldPointMissingPlacement(t *testing.T) {
	t.Parallel()

	m := model.NewInMemory()
	e := m.AddEntity(model.KindFurnishing)
	_, ok := WorldPoint(e)
	assert.False(t, ok)
}

func TestApplyMatchesTranslation(t *testing.T) {
	t.Parallel()

	link := &model.PlacementLink{
		Origin:       model.Vec3{X: 3, Y: -2, Z: 1},
		RefDirection: &model.Vec3{X: 0, Y: 1, Z: 0},
	}
	tr, ok := Resolve(entityWithChain(link))
	require.True(t, ok)
	assert.Equal(t, tr.Translation(), tr.Apply(model.Vec3{}))
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	id := Identity()
	p := model.Vec3{X: 1.5, Y: 2.5, Z: -3}
	assert.Equal(t, p, id.Apply(p))
	assert.Equal(t, id, Mul(id, id))
}
