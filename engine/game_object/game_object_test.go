package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewWithT(t)

	a := NewGameObject()
	b := NewGameObject()

	g.Expect(a.ID()).NotTo(Equal(b.ID()))
	g.Expect(a.Enabled()).To(BeTrue())
	g.Expect(a.Layers()).To(Equal(common.LayerMask(0)))
	g.Expect(a.Rotation()).To(Equal(mgl32.QuatIdent()))
	g.Expect(a.Scale()).To(Equal(mgl32.Vec3{1, 1, 1}))
	g.Expect(a.Model()).To(BeNil())
	g.Expect(a.Parent()).To(BeNil())
}

func TestBuilderOptions(t *testing.T) {
	g := NewWithT(t)

	box := model.NewBox(1, 1, 1)
	o := NewGameObject(
		WithID(42),
		WithEnabled(false),
		WithModel(box),
		WithPosition(1, 2, 3),
		WithScale(2, 2, 2),
		WithLayers(1, 3),
	)

	g.Expect(o.ID()).To(Equal(uint64(42)))
	g.Expect(o.Enabled()).To(BeFalse())
	g.Expect(o.Model()).To(Equal(box))
	g.Expect(o.Position()).To(Equal(mgl32.Vec3{1, 2, 3}))
	g.Expect(o.Layers().IsEnabled(0)).To(BeFalse())
	g.Expect(o.Layers().IsEnabled(1)).To(BeTrue())
	g.Expect(o.Layers().IsEnabled(3)).To(BeTrue())
}

func TestRotateOnWorldAxis(t *testing.T) {
	g := NewWithT(t)

	o := NewGameObject()
	o.RotateOnWorldAxis(common.AxisZ, math.Pi/2)

	v := o.Rotation().Rotate(mgl32.Vec3{1, 0, 0})
	g.Expect(v.X()).To(BeNumerically("~", 0, 1e-5))
	g.Expect(v.Y()).To(BeNumerically("~", 1, 1e-5))

	// A world-axis rotation applies after the existing orientation.
	o.RotateOnWorldAxis(common.AxisX, math.Pi/2)
	v = o.Rotation().Rotate(mgl32.Vec3{1, 0, 0})
	g.Expect(v.Y()).To(BeNumerically("~", 0, 1e-5))
	g.Expect(v.Z()).To(BeNumerically("~", 1, 1e-5))
}

func TestRotateOnWorldAxisZeroAngleIsNoop(t *testing.T) {
	g := NewWithT(t)

	o := NewGameObject(WithRotation(0.3, 0.2, 0.1))
	before := o.Rotation()

	o.RotateOnWorldAxis(common.AxisY, 0)

	g.Expect(o.Rotation()).To(Equal(before))
}

func TestTranslate(t *testing.T) {
	g := NewWithT(t)

	o := NewGameObject(WithPosition(1, 1, 0))

	g.Expect(o.Translate(mgl32.Vec3{2, -1, 0})).To(Equal(mgl32.Vec3{3, 0, 0}))
	g.Expect(o.Position()).To(Equal(mgl32.Vec3{3, 0, 0}))
}

func TestWorldPositionFollowsParent(t *testing.T) {
	g := NewWithT(t)

	parent := NewGameObject(WithPosition(0, 0, -200))
	child := NewGameObject(WithParent(parent), WithPosition(5, 0, 0))

	g.Expect(child.WorldPosition()).To(Equal(mgl32.Vec3{5, 0, -200}))

	parent.SetPosition(mgl32.Vec3{1, 1, 1})
	g.Expect(child.WorldPosition()).To(Equal(mgl32.Vec3{6, 1, 1}))

	child.SetParent(nil)
	g.Expect(child.WorldPosition()).To(Equal(mgl32.Vec3{5, 0, 0}))
}

func TestSetParentIgnoresSelf(t *testing.T) {
	g := NewWithT(t)

	o := NewGameObject()
	o.SetParent(o)

	g.Expect(o.Parent()).To(BeNil())
}

func TestSetParentRejectsCycles(t *testing.T) {
	g := NewWithT(t)

	root := NewGameObject(WithPosition(1, 0, 0))
	mid := NewGameObject(WithParent(root), WithPosition(0, 2, 0))
	leaf := NewGameObject(WithParent(mid), WithPosition(0, 0, 3))

	root.SetParent(leaf)
	root.SetParent(mid)

	g.Expect(root.Parent()).To(BeNil())
	g.Expect(leaf.WorldPosition()).To(Equal(mgl32.Vec3{1, 2, 3}))

	other := NewGameObject()
	root.SetParent(other)
	g.Expect(root.Parent()).To(Equal(other))
}

func TestWorldMatrixAppliesScale(t *testing.T) {
	g := NewWithT(t)

	o := NewGameObject(WithScale(2, 3, 4), WithPosition(1, 0, 0))
	p := o.WorldMatrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1}).Vec3()

	g.Expect(p).To(Equal(mgl32.Vec3{3, 3, 4}))
}
