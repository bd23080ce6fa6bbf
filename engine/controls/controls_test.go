package controls

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/observable"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controls", func() {
	var (
		persp    camera.Camera
		ortho    camera.Camera
		target   game_object.GameObject
		surface  *fakeSurface
		recorder *countingRecorder
		c        Controls
		options  []ControlsBuilderOption
	)

	BeforeEach(func() {
		persp = camera.NewPerspective()
		ortho = camera.NewOrthographic()
		target = game_object.NewGameObject(
			game_object.WithModel(model.NewBox(10, 10, 10)),
			game_object.WithLayers(1),
		)
		surface = newFakeSurface()
		recorder = &countingRecorder{}
		options = nil
	})

	JustBeforeEach(func() {
		opts := append([]ControlsBuilderOption{WithSurface(surface), WithEventRecorder(recorder)}, options...)
		c = NewControls(persp, ortho, target, opts...)
	})

	Describe("construction", func() {
		It("starts on the perspective camera and publishes it", func() {
			Expect(c.ActiveCamera()).To(Equal(persp))
			Expect(c.CameraSlot().Get()).To(Equal(persp))
			Expect(c.State()).To(Equal(DragIdle))
			Expect(c.Strategy()).To(Equal(StrategyPlaneDelta))
			Expect(c.Raycaster().Layers()).To(Equal(common.LayerMask(1)))
		})

		It("creates enabled orbit controllers without pan or rotate", func() {
			for _, kind := range []camera.Kind{camera.KindPerspective, camera.KindOrthographic} {
				o := c.Orbit(kind)
				Expect(o.Enabled()).To(BeTrue())
				Expect(o.PanEnabled()).To(BeFalse())
				Expect(o.RotateEnabled()).To(BeFalse())
				Expect(o.ZoomEnabled()).To(BeTrue())
			}
			Expect(c.Orbit(camera.Kind(9))).To(BeNil())
		})

		It("panics without collaborators", func() {
			Expect(func() { NewControls(nil, ortho, target) }).To(Panic())
			Expect(func() { NewControls(persp, nil, target) }).To(Panic())
			Expect(func() { NewControls(persp, ortho, nil) }).To(Panic())
		})

		Context("with a caller-owned camera slot", func() {
			var published []camera.Camera

			BeforeEach(func() {
				published = nil
				slot := observable.NewSlot[camera.Camera](nil)
				slot.Subscribe(func(cam camera.Camera) { published = append(published, cam) })
				options = append(options, WithCameraSlot(slot))
			})

			It("publishes the perspective camera on construction", func() {
				Expect(published).To(Equal([]camera.Camera{persp}))
			})
		})
	})

	Describe("button state machine", func() {
		It("rotates while only the primary button is held", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0.5, 0))
			Expect(c.State()).To(Equal(DragRotating))
			Expect(c.Buttons()).To(Equal(ButtonState{Left: true}))

			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.5, 0.1))
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.4, 0.2))
			Expect(c.State()).To(Equal(DragRotating))

			c.OnPointerUp(pointerAt(common.MouseButtonPrimary, 0.4, 0.2))
			Expect(c.State()).To(Equal(DragIdle))
			Expect(c.Buttons().AnyDown()).To(BeFalse())
		})

		It("moves while only the secondary button is held", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0))
			Expect(c.State()).To(Equal(DragMoving))

			c.OnPointerUp(pointerAt(common.MouseButtonSecondary, 0, 0))
			Expect(c.State()).To(Equal(DragIdle))
		})

		It("does nothing while both buttons are held", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0))
			Expect(c.State()).To(Equal(DragIdle))
			Expect(c.Buttons()).To(Equal(ButtonState{Left: true, Right: true}))

			before := target.Rotation()
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.3, 0.3))
			Expect(target.Rotation()).To(Equal(before))
			Expect(target.Position()).To(Equal(mgl32.Vec3{}))

			c.OnPointerUp(pointerAt(common.MouseButtonPrimary, 0.3, 0.3))
			Expect(c.State()).To(Equal(DragIdle))
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeFalse())

			c.OnPointerUp(pointerAt(common.MouseButtonSecondary, 0.3, 0.3))
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeTrue())
		})

		It("suspends both orbit controllers while a button is held", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeFalse())
			Expect(c.Orbit(camera.KindOrthographic).Enabled()).To(BeFalse())

			c.OnPointerUp(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeTrue())
			Expect(c.Orbit(camera.KindOrthographic).Enabled()).To(BeTrue())
		})

		It("counts every handled event", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0, 0))
			c.OnPointerUp(pointerAt(common.MouseButtonPrimary, 0, 0))
			c.OnWheel(0)
			c.OnKeyDown(common.KeyP)
			Expect(recorder.events).To(Equal(5))
		})
	})

	Describe("picking", func() {
		It("picks the target under the pointer until all buttons are released", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Picked()).To(BeTrue())

			c.OnPointerUp(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Picked()).To(BeFalse())
		})

		It("does not pick empty space", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0.5, 0))
			Expect(c.Picked()).To(BeFalse())
		})

		It("ignores targets outside the ray layer", func() {
			target.SetLayers(common.LayerMask(0))
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Picked()).To(BeFalse())
		})
	})

	Describe("rotating", func() {
		BeforeEach(func() {
			options = append(options, WithRadius(5))
		})

		It("only rolls outside the footprint, signed by the pointer side", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0.5, 0))
			Expect(c.Picked()).To(BeFalse())
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.5, 0.1))

			roll := halfHeight * 0.1 * DefaultTuning().SpeedZ
			expectSameRotation(Default, target.Rotation(), mgl32.QuatRotate(roll, common.AxisZ))
		})

		It("rolls the other way left of the target", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, -0.5, 0))
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, -0.5, 0.1))

			roll := -halfHeight * 0.1 * DefaultTuning().SpeedZ
			expectSameRotation(Default, target.Rotation(), mgl32.QuatRotate(roll, common.AxisZ))
		})

		It("leaves the target untouched when the pointer does not move", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0.5, 0))
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.5, 0))

			Expect(target.Rotation()).To(Equal(mgl32.QuatIdent()))
		})

		It("blends yaw, roll and pitch over a picked target", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.Picked()).To(BeTrue())
			c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.1, 0.05))

			expectSameRotation(Default, target.Rotation(), blendedRotation(DefaultTuning(), 0.1, 0.05))
		})

		Context("with the movement-delta strategy", func() {
			BeforeEach(func() {
				options = append(options, WithStrategy(StrategyMovementDelta))
			})

			It("yaws and pitches a picked target by raw movement", func() {
				c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
				e := pointerAt(common.MouseButtonPrimary, 0.05, 0)
				e.MovementX, e.MovementY = 20, 10
				c.OnPointerMove(e)

				expected := mgl32.QuatRotate(0.1, common.AxisX).Mul(mgl32.QuatRotate(0.2, common.AxisY))
				expectSameRotation(Default, target.Rotation(), expected)
			})

			It("still translates by the plane delta while moving", func() {
				c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0))
				e := pointerAt(common.MouseButtonSecondary, 0.25, 0)
				e.MovementX, e.MovementY = 500, 300
				c.OnPointerMove(e)

				pos := target.Position()
				Expect(pos.X()).To(BeNumerically("~", halfHeight*0.25, 1e-3))
				Expect(pos.Y()).To(BeNumerically("~", 0, 1e-3))
				Expect(target.Rotation()).To(Equal(mgl32.QuatIdent()))
				Expect(c.PositionSlot().Get()).To(Equal(pos))
			})
		})

		Context("with a tuning that leaves the divisors unset", func() {
			BeforeEach(func() {
				options = append(options, WithTuning(Tuning{SpeedX: 0.03, SpeedY: 0.05, SpeedZ: 0.02}))
			})

			It("uses the default divisors and keeps the rotation finite", func() {
				d := DefaultTuning()
				Expect(c.Tuning().RollDownDivisor).To(Equal(d.RollDownDivisor))
				Expect(c.Tuning().FootprintDivX).To(Equal(d.FootprintDivX))
				Expect(c.Tuning().FootprintDivY).To(Equal(d.FootprintDivY))

				c.OnPointerDown(pointerAt(common.MouseButtonPrimary, 0, 0))
				c.OnPointerMove(pointerAt(common.MouseButtonPrimary, 0.1, 0.05))

				expectSameRotation(Default, target.Rotation(), blendedRotation(c.Tuning(), 0.1, 0.05))
			})

			It("fills divisors passed to SetTuning as well", func() {
				c.SetTuning(Tuning{MovementSpeed: 0.01})

				t := c.Tuning()
				Expect(t.MovementSpeed).To(Equal(float32(0.01)))
				Expect(t.SpeedX).To(BeZero())
				Expect(t.FootprintDivX).To(Equal(DefaultTuning().FootprintDivX))
			})
		})
	})

	Describe("moving", func() {
		It("translates the target by the plane delta and publishes it", func() {
			var published []mgl32.Vec3
			c.PositionSlot().Subscribe(func(p mgl32.Vec3) { published = append(published, p) })

			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0))
			c.OnPointerMove(pointerAt(common.MouseButtonSecondary, 0.25, 0))

			pos := target.Position()
			Expect(pos.X()).To(BeNumerically("~", halfHeight*0.25, 1e-3))
			Expect(pos.Y()).To(BeNumerically("~", 0, 1e-3))
			Expect(pos.Z()).To(BeNumerically("~", 0, 1e-3))
			Expect(published).To(Equal([]mgl32.Vec3{pos}))
			Expect(c.PositionSlot().Get()).To(Equal(pos))
		})

		It("does not publish when the pointer does not move", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0.2, 0.2))
			c.OnPointerMove(pointerAt(common.MouseButtonSecondary, 0.2, 0.2))

			Expect(target.Position()).To(Equal(mgl32.Vec3{}))
			Expect(c.PositionSlot().Changes()).NotTo(Receive())
		})
	})

	Describe("degenerate input", func() {
		It("ignores moves on a zero-size surface", func() {
			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0))
			surface.width = 0
			c.OnPointerMove(pointerAt(common.MouseButtonSecondary, 0.5, 0.5))

			Expect(target.Position()).To(Equal(mgl32.Vec3{}))
		})

		It("keeps the previous intersection when the ray misses the plane", func() {
			persp.SetUp(mgl32.Vec3{0, 0, 1})
			persp.SetTarget(mgl32.Vec3{0, 100, 100})
			c.OnPointerDown(pointerAt(common.MouseButtonSecondary, 0, 0.5))
			c.OnPointerMove(pointerAt(common.MouseButtonSecondary, 0.2, 0.6))

			Expect(target.Position()).To(Equal(mgl32.Vec3{}))
		})
	})

	Describe("wheel", func() {
		It("enables and saves both orbit controllers inside the range", func() {
			c.Orbit(camera.KindPerspective).Disable()
			c.Orbit(camera.KindOrthographic).Disable()

			c.OnWheel(0)

			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeTrue())
			Expect(c.Orbit(camera.KindOrthographic).Enabled()).To(BeTrue())
		})

		It("disables and resets both orbit controllers outside the range", func() {
			target.SetPosition(mgl32.Vec3{0, 0, -200})

			c.OnWheel(1)

			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeFalse())
			Expect(c.Orbit(camera.KindOrthographic).Enabled()).To(BeFalse())
			Expect(persp.Position()).To(Equal(mgl32.Vec3{0, 0, 100}))
		})

		It("treats the range bounds as inclusive", func() {
			target.SetPosition(mgl32.Vec3{0, 0, 45})
			c.OnWheel(0)
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeTrue())

			target.SetPosition(mgl32.Vec3{0, 0, 46})
			c.OnWheel(0)
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeFalse())
		})

		It("zooms the active camera and keeps the zoomed pose as the saved state", func() {
			c.OnWheel(1)
			zoomed := persp.Position()
			Expect(zoomed.Z()).To(BeNumerically("<", 100))

			c.Switch(camera.KindPerspective)
			Expect(persp.Position()).To(Equal(zoomed))
		})

		It("measures distance from the perspective camera even when orthographic is active", func() {
			c.Switch(camera.KindOrthographic)
			c.OnWheel(1)

			Expect(ortho.Zoom()).To(BeNumerically(">", 1))
			Expect(persp.Position()).To(Equal(mgl32.Vec3{0, 0, 100}))
			Expect(c.Orbit(camera.KindOrthographic).Enabled()).To(BeTrue())
		})
	})

	Describe("switching cameras", func() {
		It("publishes the requested camera and resets its orbit controller", func() {
			ortho.SetZoom(3)

			c.Switch(camera.KindOrthographic)

			Expect(c.ActiveCamera()).To(Equal(ortho))
			Expect(c.CameraSlot().Get()).To(Equal(ortho))
			Expect(ortho.Zoom()).To(Equal(float32(1)))
		})

		It("is idempotent", func() {
			notified := 0
			c.CameraSlot().Subscribe(func(camera.Camera) { notified++ })

			c.Switch(camera.KindPerspective)
			c.Switch(camera.KindPerspective)

			Expect(notified).To(BeZero())
			Expect(c.ActiveCamera()).To(Equal(persp))
		})

		It("ignores unknown kinds", func() {
			c.Switch(camera.KindOrthographic)
			c.Switch(camera.Kind(5))

			Expect(c.ActiveCamera()).To(Equal(ortho))
		})

		It("switches with the O and P keys", func() {
			c.OnKeyDown(common.KeyO)
			Expect(c.CameraSlot().Get()).To(Equal(ortho))

			c.OnKeyDown('H')
			Expect(c.CameraSlot().Get()).To(Equal(ortho))

			c.OnKeyDown(common.KeyP)
			Expect(c.CameraSlot().Get()).To(Equal(persp))
		})

		It("switches with the number keys", func() {
			c.OnKeyDown(common.Key1)
			Expect(c.ActiveCamera()).To(Equal(ortho))

			c.OnKeyDown(common.Key0)
			Expect(c.ActiveCamera()).To(Equal(persp))
		})

		It("logs diagnostics from the C and I keys without switching", func() {
			Expect(func() {
				c.OnKeyDown(common.KeyC)
				c.OnKeyDown(common.KeyI)
			}).NotTo(Panic())
			Expect(c.ActiveCamera()).To(Equal(persp))
		})
	})

	Describe("reset view", func() {
		It("animates both cameras back to their construction pose", func() {
			c.OnWheel(2)
			c.Orbit(camera.KindOrthographic).Zoom(2)
			Expect(persp.Position().Z()).To(BeNumerically("<", 100))

			c.ResetView()
			c.Update(1)

			Expect(persp.Position().Z()).To(BeNumerically("~", 100, 1e-3))
			Expect(ortho.Zoom()).To(BeNumerically("~", 1, 1e-4))
			Expect(c.Orbit(camera.KindPerspective).Animating()).To(BeFalse())
		})

		It("resets from the R key", func() {
			c.OnWheel(2)
			c.Orbit(camera.KindOrthographic).Zoom(2)

			c.OnKeyDown(common.KeyR)
			Expect(c.Orbit(camera.KindPerspective).Animating()).To(BeTrue())
			c.Update(1)

			Expect(persp.Position().Z()).To(BeNumerically("~", 100, 1e-3))
			Expect(ortho.Zoom()).To(BeNumerically("~", 1, 1e-4))
		})
	})

	Describe("binding", func() {
		It("registers pointer and wheel handlers and removes them on Unbind", func() {
			c.Bind(surface)
			Expect(surface.down).NotTo(BeNil())
			Expect(surface.up).NotTo(BeNil())
			Expect(surface.move).NotTo(BeNil())
			Expect(surface.scroll).NotTo(BeNil())
			Expect(surface.key).To(BeNil())

			surface.down(pointerAt(common.MouseButtonPrimary, 0, 0))
			Expect(c.State()).To(Equal(DragRotating))

			c.Unbind()
			Expect(surface.down).To(BeNil())
			Expect(surface.up).To(BeNil())
			Expect(surface.move).To(BeNil())
			Expect(surface.scroll).To(BeNil())
		})

		Context("with keyboard shortcuts", func() {
			BeforeEach(func() {
				options = append(options, WithKeyboardShortcuts(true))
			})

			It("registers the key handler", func() {
				c.Bind(surface)
				Expect(surface.key).NotTo(BeNil())

				surface.key(common.KeyO)
				Expect(c.ActiveCamera()).To(Equal(ortho))

				c.Unbind()
				Expect(surface.key).To(BeNil())
			})
		})
	})

	Describe("runtime reconfiguration", func() {
		It("updates tuning, range and strategy", func() {
			tuning := DefaultTuning()
			tuning.SpeedY = 1
			c.SetTuning(tuning)
			c.SetStrategy(StrategyMovementDelta)
			c.SetRange(0, 1000, 5)

			Expect(c.Tuning()).To(Equal(tuning))
			Expect(c.Strategy()).To(Equal(StrategyMovementDelta))

			target.SetPosition(mgl32.Vec3{0, 0, -200})
			c.OnWheel(0)
			Expect(c.Orbit(camera.KindPerspective).Enabled()).To(BeTrue())
		})

		It("logs diagnostics without panicking", func() {
			c.SetDebug(true)
			Expect(c.LogCameraInfo).NotTo(Panic())
			Expect(c.LogPointerState).NotTo(Panic())
			Expect(func() { c.OnWheel(0) }).NotTo(Panic())
		})
	})
})
