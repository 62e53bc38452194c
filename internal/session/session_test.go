package session_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/render"
	"github.com/san-kum/fractalsim/internal/session"
)

var _ = Describe("Session", func() {
	var (
		ctx context.Context
		s   *session.Session
		log *bytes.Buffer
	)

	const w, h = 40, 30

	BeforeEach(func() {
		ctx = context.Background()
		log = &bytes.Buffer{}
		s = session.New(session.DefaultConfig(), palette.Default(), render.New(2))
		s.SetOutput(log)
	})

	update := func(in session.Input, width, height int) []uint32 {
		buf, err := s.Update(ctx, in, width, height)
		Expect(err).NotTo(HaveOccurred())
		return buf
	}

	It("renders the first frame", func() {
		buf := update(session.Input{}, w, h)
		Expect(buf).To(HaveLen(w * h))
		Expect(s.Renders()).To(Equal(1))
		Expect(log.String()).To(ContainSubstring("Max iters =  50"))
	})

	It("does not re-render identical input on an unchanged grid", func() {
		in := session.Input{HasMouse: true, MouseX: 12, MouseY: 9}
		first := update(in, w, h)
		second := update(in, w, h)

		Expect(s.Renders()).To(Equal(1))
		Expect(second).To(Equal(first))
		Expect(&second[0]).To(BeIdenticalTo(&first[0]))
	})

	It("re-renders when the grid is resized", func() {
		update(session.Input{}, w, h)
		buf := update(session.Input{}, w+2, h)

		Expect(s.Renders()).To(Equal(2))
		Expect(buf).To(HaveLen((w + 2) * h))
	})

	It("re-renders when the transposed grid has the same pixel count", func() {
		update(session.Input{}, 6, 4)
		update(session.Input{}, 4, 6)
		Expect(s.Renders()).To(Equal(2))
	})

	It("re-renders only when params change", func() {
		update(session.Input{}, w, h)
		update(session.Input{MoreIterations: true}, w, h)
		Expect(s.Renders()).To(Equal(2))
		Expect(s.Params().MaxIterations).To(Equal(uint32(54)))

		update(session.Input{}, w, h)
		Expect(s.Renders()).To(Equal(2))
	})

	It("re-renders every frame while c keeps moving", func() {
		for i := 0; i < 3; i++ {
			update(session.Input{Right: true}, w, h)
		}
		Expect(s.Renders()).To(Equal(3))
	})

	It("does not re-render when a step is clamped away", func() {
		p := s.Params()
		p.MaxIterations = session.MinIterations
		s.SetParams(p)

		update(session.Input{}, w, h)
		update(session.Input{FewerIterations: true}, w, h)
		Expect(s.Renders()).To(Equal(1))
	})

	It("renders after SetParams changes the view", func() {
		update(session.Input{}, w, h)

		p := s.Params()
		p.C = escape.Point{Re: -0.8, Im: 0.156}
		s.SetParams(p)
		update(session.Input{}, w, h)

		Expect(s.Renders()).To(Equal(2))
	})

	It("raises a restored iteration limit to the minimum", func() {
		p := s.Params()
		p.MaxIterations = 0
		s.SetParams(p)
		Expect(s.Params().MaxIterations).To(Equal(uint32(session.MinIterations)))

		p.MaxIterations = session.MinIterations - 1
		s.SetParams(p)
		Expect(s.Params().MaxIterations).To(Equal(uint32(session.MinIterations)))

		p.MaxIterations = 200
		s.SetParams(p)
		Expect(s.Params().MaxIterations).To(Equal(uint32(200)))
	})

	It("matches a direct Julia render of the current params", func() {
		update(session.Input{HasMouse: true, MouseX: 5, MouseY: 22}, w, h)

		want, err := render.New(1).Render(ctx, s.Job(w, h))
		Expect(err).NotTo(HaveOccurred())
		Expect(update(session.Input{}, w, h)).To(Equal(want))
	})

	Context("reference view", func() {
		It("shows the Mandelbrot map without touching params", func() {
			before := s.Params()
			buf := update(session.Input{Reference: true, MoreIterations: true, Up: true}, w, h)

			want, err := render.New(1).Render(ctx, s.ReferenceJob(w, h))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf).To(Equal(want))
			Expect(s.Params()).To(Equal(before))
		})

		It("renders once per grid size", func() {
			update(session.Input{Reference: true}, w, h)
			update(session.Input{Reference: true}, w, h)
			Expect(s.Renders()).To(Equal(1))

			update(session.Input{Reference: true}, w, h+1)
			Expect(s.Renders()).To(Equal(2))
		})

		It("keeps the Julia frame cached across a reference peek", func() {
			update(session.Input{}, w, h)
			update(session.Input{Reference: true}, w, h)
			update(session.Input{}, w, h)
			Expect(s.Renders()).To(Equal(2))
		})
	})

	Context("when the render is cancelled", func() {
		It("reports the error and renders on the next update", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := s.Update(cancelled, session.Input{}, w, h)
			Expect(err).To(MatchError(context.Canceled))
			Expect(s.Renders()).To(Equal(0))

			update(session.Input{}, w, h)
			Expect(s.Renders()).To(Equal(1))
		})
	})
})
