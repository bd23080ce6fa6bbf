package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"
)

func TestOrbitControllerDerivesSphericalCoordinates(t *testing.T) {
	g := NewWithT(t)

	oc := NewOrbitController(NewPerspective(WithPosition(0, 0, 100)))

	g.Expect(oc.Radius()).To(BeNumerically("~", 100, 1e-4))
	g.Expect(oc.Azimuth()).To(BeNumerically("~", 0, 1e-6))
	g.Expect(oc.Elevation()).To(BeNumerically("~", 0, 1e-6))
	g.Expect(oc.Enabled()).To(BeTrue())
}

func TestOrbitControllerPanicsWithoutCamera(t *testing.T) {
	g := NewWithT(t)

	g.Expect(func() { NewOrbitController(nil) }).To(Panic())
}

func TestOrbitZoomDollyPerspective(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam, WithZoomSpeed(10))

	oc.Zoom(2)
	g.Expect(cam.Position().Z()).To(BeNumerically("~", 80, 1e-3))

	oc.Zoom(-1000)
	g.Expect(cam.Position().Z()).To(BeNumerically("~", 2000, 1e-2))
}

func TestOrbitZoomScalesOrthographic(t *testing.T) {
	g := NewWithT(t)

	cam := NewOrthographic()
	oc := NewOrbitController(cam, WithZoomFactor(2), WithZoomBounds(0.5, 4))

	oc.Zoom(1)
	g.Expect(cam.Zoom()).To(BeNumerically("~", 2, 1e-5))
	g.Expect(cam.Position()).To(Equal(mgl32.Vec3{0, 0, 100}))

	oc.Zoom(3)
	g.Expect(cam.Zoom()).To(BeNumerically("~", 4, 1e-5))
}

func TestOrbitIgnoresManipulationWhileDisabled(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam)
	oc.Disable()

	oc.Zoom(1)
	oc.Rotate(50, 50)
	oc.Pan(5, 5)

	g.Expect(oc.Enabled()).To(BeFalse())
	g.Expect(cam.Position()).To(Equal(mgl32.Vec3{0, 0, 100}))
	g.Expect(oc.Target()).To(Equal(mgl32.Vec3{}))
}

func TestOrbitFlagsGateManipulation(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam, WithPanEnabled(false), WithRotateEnabled(false))
	oc.SetZoomEnabled(false)

	oc.Rotate(10, 0)
	oc.Pan(10, 0)
	oc.Zoom(1)

	g.Expect(oc.PanEnabled()).To(BeFalse())
	g.Expect(oc.RotateEnabled()).To(BeFalse())
	g.Expect(oc.ZoomEnabled()).To(BeFalse())
	g.Expect(cam.Position()).To(Equal(mgl32.Vec3{0, 0, 100}))
}

func TestOrbitRotate(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam, WithMouseSensitivity(0.01))

	oc.Rotate(-50, 0)
	pos := cam.Position()
	g.Expect(oc.Azimuth()).To(BeNumerically("~", 0.5, 1e-4))
	g.Expect(pos.X()).To(BeNumerically("~", 100*math.Sin(0.5), 1e-2))
	g.Expect(pos.Z()).To(BeNumerically("~", 100*math.Cos(0.5), 1e-2))

	oc.Rotate(0, 1000)
	g.Expect(oc.Elevation()).To(BeNumerically("~", math.Pi/2-0.1, 1e-4))
}

func TestOrbitPanMovesTargetAndCamera(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam)

	oc.Pan(10, 5)

	g.Expect(oc.Target().X()).To(BeNumerically("~", 10, 1e-4))
	g.Expect(oc.Target().Y()).To(BeNumerically("~", 5, 1e-4))
	g.Expect(cam.Position().X()).To(BeNumerically("~", 10, 1e-4))
	g.Expect(cam.Position().Y()).To(BeNumerically("~", 5, 1e-4))
	g.Expect(cam.Target()).To(Equal(oc.Target()))
}

func TestOrbitSaveStateAndReset(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam)

	oc.Zoom(1)
	oc.SaveState()
	saved := cam.Position()

	oc.Zoom(1)
	g.Expect(cam.Position()).NotTo(Equal(saved))

	oc.Disable()
	oc.Reset()
	g.Expect(cam.Position().Z()).To(BeNumerically("~", saved.Z(), 1e-4))
}

func TestOrbitResetWithoutSaveRestoresConstructionPose(t *testing.T) {
	g := NewWithT(t)

	cam := NewOrthographic()
	oc := NewOrbitController(cam)

	oc.Zoom(2)
	oc.Reset()

	g.Expect(cam.Zoom()).To(Equal(float32(1)))
}

func TestOrbitGoHomeAnimates(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam, WithZoomSpeed(10))
	oc.Zoom(5)
	g.Expect(cam.Position().Z()).To(BeNumerically("~", 50, 1e-3))

	oc.GoHome(1)
	g.Expect(oc.Animating()).To(BeTrue())

	oc.Update(0.5)
	mid := cam.Position().Z()
	g.Expect(mid).To(BeNumerically(">", 50))
	g.Expect(mid).To(BeNumerically("<", 100))

	oc.Update(0.6)
	g.Expect(oc.Animating()).To(BeFalse())
	g.Expect(cam.Position().Z()).To(BeNumerically("~", 100, 1e-3))
}

func TestOrbitGoHomeImmediate(t *testing.T) {
	g := NewWithT(t)

	cam := NewOrthographic()
	oc := NewOrbitController(cam)
	oc.Zoom(3)

	oc.GoHome(0)

	g.Expect(oc.Animating()).To(BeFalse())
	g.Expect(cam.Zoom()).To(Equal(float32(1)))
}

func TestOrbitManipulationCancelsAnimation(t *testing.T) {
	g := NewWithT(t)

	cam := NewPerspective()
	oc := NewOrbitController(cam)
	oc.Zoom(1)
	oc.GoHome(1)

	oc.Zoom(1)

	g.Expect(oc.Animating()).To(BeFalse())
}
