package raycaster

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"
)

func boxAt(x, y, z float32, layers ...int) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithModel(model.NewBox(10, 10, 10)),
		game_object.WithPosition(x, y, z),
		game_object.WithLayers(layers...),
	)
}

func TestSetFromCameraCenterHitsObject(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster(WithLayers(1))
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	hits := rc.IntersectObject(boxAt(0, 0, 0, 1))

	g.Expect(hits).To(HaveLen(1))
	g.Expect(hits[0].Distance).To(BeNumerically("~", 95, 1e-3))
	g.Expect(hits[0].Point.Z()).To(BeNumerically("~", 5, 1e-3))
}

func TestLayerMismatchIsIgnored(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster(WithLayers(1))
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	g.Expect(rc.IntersectObject(boxAt(0, 0, 0, 0))).To(BeEmpty())
	g.Expect(rc.Layers()).To(Equal(common.LayerMask(1)))

	rc.SetLayers(common.LayerMask(0))
	g.Expect(rc.IntersectObject(boxAt(0, 0, 0, 0))).To(HaveLen(1))
}

func TestDisabledAndModelessObjectsNeverHit(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	disabled := boxAt(0, 0, 0, 0)
	disabled.SetEnabled(false)
	bare := game_object.NewGameObject()

	g.Expect(rc.IntersectObject(disabled)).To(BeEmpty())
	g.Expect(rc.IntersectObject(bare)).To(BeEmpty())
	g.Expect(rc.IntersectObject(nil)).To(BeEmpty())
}

func TestObjectTransformIsHonoured(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster()
	rc.SetRay(common.NewRay(mgl32.Vec3{30, 0, 100}, mgl32.Vec3{0, 0, -1}))

	g.Expect(rc.IntersectObject(boxAt(0, 0, 0))).To(BeEmpty())

	moved := boxAt(30, 0, 0)
	hits := rc.IntersectObject(moved)
	g.Expect(hits).To(HaveLen(1))
	g.Expect(hits[0].Object).To(Equal(moved))

	scaled := boxAt(0, 0, 0)
	scaled.SetScale(mgl32.Vec3{8, 1, 1})
	hits = rc.IntersectObject(scaled)
	g.Expect(hits).To(HaveLen(1))
	g.Expect(hits[0].Point.X()).To(BeNumerically("~", 30, 1e-3))
}

func TestIntersectObjectsSortedByDistance(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	far := boxAt(0, 0, -50)
	near := boxAt(0, 0, 20)
	miss := boxAt(100, 0, 0)

	hits := rc.IntersectObjects([]game_object.GameObject{far, miss, near})

	g.Expect(hits).To(HaveLen(2))
	g.Expect(hits[0].Object).To(Equal(near))
	g.Expect(hits[1].Object).To(Equal(far))
}

func TestRangeLimitsHits(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster(WithRange(0, 50))
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	g.Expect(rc.IntersectObject(boxAt(0, 0, 0))).To(BeEmpty())
	g.Expect(rc.IntersectObject(boxAt(0, 0, 60))).To(HaveLen(1))
}

func TestIntersectPlane(t *testing.T) {
	g := NewWithT(t)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{}, camera.NewPerspective())

	p, ok := rc.IntersectPlane(common.PlaneXY)
	g.Expect(ok).To(BeTrue())
	g.Expect(p.X()).To(BeNumerically("~", 0, 1e-4))
	g.Expect(p.Y()).To(BeNumerically("~", 0, 1e-4))

	rc.SetRay(common.NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{1, 0, 0}))
	_, ok = rc.IntersectPlane(common.PlaneXY)
	g.Expect(ok).To(BeFalse())
}
