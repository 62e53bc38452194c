package session_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/session"
)

var _ = Describe("Params.Apply", func() {
	var cfg session.Config

	BeforeEach(func() {
		cfg = session.DefaultConfig()
	})

	withIterations := func(n uint32) session.Params {
		p := cfg.DefaultParams()
		p.MaxIterations = n
		return p
	}

	DescribeTable("iteration limit",
		func(start uint32, in session.Input, expected uint32) {
			Expect(withIterations(start).Apply(in, cfg, 100, 80).MaxIterations).To(Equal(expected))
		},
		Entry("steps up by the jump", uint32(50), session.Input{MoreIterations: true}, uint32(54)),
		Entry("steps down by the jump", uint32(50), session.Input{FewerIterations: true}, uint32(46)),
		Entry("clamps at the lower bound", uint32(13), session.Input{FewerIterations: true}, uint32(10)),
		Entry("stays at the lower bound", uint32(10), session.Input{FewerIterations: true}, uint32(10)),
		Entry("lands exactly on the lower bound", uint32(14), session.Input{FewerIterations: true}, uint32(10)),
		Entry("saturates at the top", uint32(math.MaxUint32-1), session.Input{MoreIterations: true}, uint32(math.MaxUint32)),
		Entry("reset restores the default", uint32(90), session.Input{Reset: true}, uint32(50)),
		Entry("reset wins over a step in the same frame", uint32(90), session.Input{MoreIterations: true, Reset: true}, uint32(50)),
	)

	It("never lets the limit drop below the minimum", func() {
		p := withIterations(37)
		for i := 0; i < 20; i++ {
			p = p.Apply(session.Input{FewerIterations: true}, cfg, 100, 80)
			Expect(p.MaxIterations).To(BeNumerically(">=", cfg.MinIterations))
		}
		Expect(p.MaxIterations).To(Equal(cfg.MinIterations))
	})

	It("resets only the iteration limit", func() {
		p := session.Params{
			C:             escape.Point{Re: 0.3, Im: -0.4},
			Center:        escape.Point{Re: 0.1, Im: 0.2},
			Zoom:          3,
			MaxIterations: 120,
		}
		got := p.Apply(session.Input{Reset: true}, cfg, 100, 80)
		Expect(got.C).To(Equal(p.C))
		Expect(got.Center).To(Equal(p.Center))
		Expect(got.Zoom).To(Equal(p.Zoom))
		Expect(got.MaxIterations).To(Equal(cfg.DefaultIterations))
	})

	It("moves c by the translation distance", func() {
		p := cfg.DefaultParams().Apply(session.Input{Up: true, Right: true}, cfg, 100, 80)
		Expect(p.C.Re).To(BeNumerically("~", cfg.Translation, 1e-12))
		Expect(p.C.Im).To(BeNumerically("~", cfg.Translation, 1e-12))

		p = p.Apply(session.Input{Down: true, Left: true}, cfg, 100, 80)
		Expect(p.C.Re).To(BeNumerically("~", 0, 1e-12))
		Expect(p.C.Im).To(BeNumerically("~", 0, 1e-12))
	})

	It("maps the mouse through the reference view", func() {
		p := cfg.DefaultParams().Apply(session.Input{HasMouse: true, MouseX: 500, MouseY: 400}, cfg, 1000, 800)
		Expect(p.C.Re).To(BeNumerically("~", 0, 1e-12))
		Expect(p.C.Im).To(BeNumerically("~", 0, 1e-12))

		// 1000x800 spans 4.5 x 3.6.
		p = p.Apply(session.Input{HasMouse: true, MouseX: 0, MouseY: 0}, cfg, 1000, 800)
		Expect(p.C.Re).To(BeNumerically("~", -2.25, 1e-12))
		Expect(p.C.Im).To(BeNumerically("~", 1.8, 1e-12))
	})

	It("ignores the mouse on an empty grid", func() {
		p := cfg.DefaultParams().Apply(session.Input{HasMouse: true, MouseX: 3, MouseY: 3}, cfg, 0, 0)
		Expect(p).To(Equal(cfg.DefaultParams()))
	})

	It("zooms by the configured factor", func() {
		p := cfg.DefaultParams().Apply(session.Input{ZoomIn: true}, cfg, 100, 80)
		Expect(p.Zoom).To(BeNumerically("~", cfg.ZoomFactor, 1e-12))

		p = p.Apply(session.Input{ZoomOut: true}, cfg, 100, 80)
		Expect(p.Zoom).To(BeNumerically("~", 1, 1e-12))
	})

	It("pans by a fraction of the visible extent", func() {
		p := cfg.DefaultParams()
		p.Zoom = 2

		// 1000x800 spans 4.5 x 3.6, halved by the zoom.
		got := p.Apply(session.Input{PanRight: true, PanUp: true}, cfg, 1000, 800)
		Expect(got.Center.Re).To(BeNumerically("~", 2.25*cfg.PanFraction, 1e-12))
		Expect(got.Center.Im).To(BeNumerically("~", 1.8*cfg.PanFraction, 1e-12))
		Expect(got.C).To(Equal(p.C))
	})

	It("leaves params untouched without input", func() {
		p := cfg.DefaultParams()
		Expect(p.Apply(session.Input{}, cfg, 100, 80)).To(Equal(p))
	})
})
