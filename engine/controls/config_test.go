package controls

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	. "github.com/onsi/gomega"
)

func newConfiguredControls(t *testing.T, cfg *config.Config) Controls {
	t.Helper()
	opts, err := OptionsFromConfig(cfg)
	NewWithT(t).Expect(err).NotTo(HaveOccurred())
	target := game_object.NewGameObject(
		game_object.WithModel(model.NewBox(10, 10, 10)),
		game_object.WithLayers(cfg.Controls.RayLayer),
	)
	return NewControls(camera.NewPerspective(), camera.NewOrthographic(), target, append(opts, WithSurface(newFakeSurface()))...)
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	g := NewWithT(t)
	c := newConfiguredControls(t, config.DefaultConfig())

	g.Expect(c.Strategy()).To(Equal(StrategyPlaneDelta))
	g.Expect(c.Tuning()).To(Equal(DefaultTuning()))
	g.Expect(c.Raycaster().Layers().IsEnabled(config.DefaultRayLayer)).To(BeTrue())
}

func TestOptionsFromConfigUnknownStrategy(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Controls.Strategy = "spin"

	opts, err := OptionsFromConfig(cfg)
	g.Expect(err).To(MatchError(ContainSubstring(`unknown strategy "spin"`)))
	g.Expect(opts).To(BeNil())
}

func TestOptionsFromConfigOrbitSettings(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Orbit.ZoomSpeed = 10
	cfg.Orbit.MinRadius = 80

	c := newConfiguredControls(t, cfg)
	c.OnWheel(1)
	g.Expect(c.ActiveCamera().Position().Z()).To(BeNumerically("~", 90, 1e-3))

	c.OnWheel(5)
	g.Expect(c.ActiveCamera().Position().Z()).To(BeNumerically("~", 80, 1e-3))
}

func TestApplyConfig(t *testing.T) {
	g := NewWithT(t)
	c := newConfiguredControls(t, config.DefaultConfig())

	cfg := config.DefaultConfig()
	cfg.Controls.Strategy = "movement-delta"
	cfg.Controls.Tuning.SpeedY = 0.5
	g.Expect(ApplyConfig(c, cfg)).To(Succeed())
	g.Expect(c.Strategy()).To(Equal(StrategyMovementDelta))
	g.Expect(c.Tuning().SpeedY).To(Equal(float32(0.5)))

	cfg.Controls.Strategy = "spin"
	cfg.Controls.Tuning.SpeedY = 2
	g.Expect(ApplyConfig(c, cfg)).NotTo(Succeed())
	g.Expect(c.Tuning().SpeedY).To(Equal(float32(0.5)))
}
