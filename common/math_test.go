package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"
)

func TestNormalizePointer(t *testing.T) {
	g := NewWithT(t)

	ndc, ok := NormalizePointer(0, 0, 800, 600)
	g.Expect(ok).To(BeTrue())
	g.Expect(ndc).To(Equal(mgl32.Vec2{-1, 1}))

	ndc, ok = NormalizePointer(800, 600, 800, 600)
	g.Expect(ok).To(BeTrue())
	g.Expect(ndc).To(Equal(mgl32.Vec2{1, -1}))

	ndc, ok = NormalizePointer(400, 300, 800, 600)
	g.Expect(ok).To(BeTrue())
	g.Expect(ndc).To(Equal(mgl32.Vec2{0, 0}))
}

func TestNormalizePointerZeroSurface(t *testing.T) {
	g := NewWithT(t)

	_, ok := NormalizePointer(10, 10, 0, 600)
	g.Expect(ok).To(BeFalse())
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	g := NewWithT(t)

	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, AxisY)
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 1000)
	viewProj := proj.Mul4(view)

	ndc := ProjectPoint(mgl32.Vec3{}, viewProj)
	g.Expect(ndc.X()).To(BeNumerically("~", 0, 1e-5))
	g.Expect(ndc.Y()).To(BeNumerically("~", 0, 1e-5))

	world := UnprojectPoint(ProjectPoint(mgl32.Vec3{10, -5, 0}, viewProj), viewProj.Inv())
	g.Expect(world.ApproxEqualThreshold(mgl32.Vec3{10, -5, 0}, 1e-2)).To(BeTrue(), "world = %v", world)
}

func TestEffectiveFov(t *testing.T) {
	g := NewWithT(t)

	fov := float32(math.Pi / 2)
	g.Expect(EffectiveFov(fov, 1)).To(BeNumerically("~", fov, 1e-6))
	g.Expect(EffectiveFov(fov, 0)).To(BeNumerically("~", fov, 1e-6))
	g.Expect(math.Tan(float64(EffectiveFov(fov, 2)) / 2)).To(BeNumerically("~", 0.5, 1e-5))
}

func TestLayers(t *testing.T) {
	g := NewWithT(t)

	l := LayerMask(0).Enable(3)
	g.Expect(l.IsEnabled(0)).To(BeTrue())
	g.Expect(l.IsEnabled(3)).To(BeTrue())
	g.Expect(l.IsEnabled(1)).To(BeFalse())
	g.Expect(l.Test(LayerMask(3))).To(BeTrue())
	g.Expect(l.Disable(3).Test(LayerMask(3))).To(BeFalse())
	g.Expect(LayerMask(MaxLayers)).To(Equal(Layers(0)))
}

func TestCoalesce(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Coalesce[float32](0, 0, 55)).To(Equal(float32(55)))
	g.Expect(Coalesce("", "b")).To(Equal("b"))
	g.Expect(Coalesce[int]()).To(Equal(0))
}

func TestSign(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Sign(-0.5)).To(Equal(float32(-1)))
	g.Expect(Sign(0)).To(Equal(float32(1)))
	g.Expect(Sign(3)).To(Equal(float32(1)))
}
