package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/session"
	"github.com/san-kum/fractalsim/internal/storage"
	"github.com/san-kum/fractalsim/internal/viewport"
	"github.com/san-kum/fractalsim/internal/viz"
)

// statusRows is the space below the fractal for the status and key lines.
const statusRows = 2

const historyLen = 60

type Options struct {
	Session *session.Session
	// Store is optional; without it bookmarking is disabled.
	Store   *storage.Store
	Palette string
	Theme   string
}

type model struct {
	ctx   context.Context
	sess  *session.Session
	store *storage.Store

	paletteName string
	theme       viz.Theme

	cols, rows int
	frame      []uint32
	reference  bool
	err        error
	notice     string

	history []float64
}

func newModel(ctx context.Context, opts Options) model {
	return model{
		ctx:         ctx,
		sess:        opts.Session,
		store:       opts.Store,
		paletteName: opts.Palette,
		theme:       viz.GetTheme(opts.Theme),
		cols:        80,
		rows:        24,
		history:     make([]float64, 0, historyLen),
	}
}

// pixelSize is the grid that fills the terminal above the status lines.
func (m model) pixelSize() (int, int) {
	return viz.CellSize(m.cols, max(m.rows-statusRows, 0))
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m.step(session.Input{}), nil

	case tea.MouseMsg:
		in, ok := m.mouseInput(msg)
		if !ok {
			return m, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.reference = false
		}
		return m.step(in), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.reference = !m.reference
			return m.step(session.Input{}), nil
		case "t":
			m.theme = viz.NextTheme(m.theme)
			return m, nil
		case "b":
			m.bookmark()
			return m, nil
		}
		in, ok := KeyInput(msg.String())
		if !ok {
			return m, nil
		}
		return m.step(in), nil
	}
	return m, nil
}

// KeyInput maps one key press to a frame of session input.
func KeyInput(key string) (session.Input, bool) {
	var in session.Input
	switch key {
	case "w", "up":
		in.Up = true
	case "s", "down":
		in.Down = true
	case "a", "left":
		in.Left = true
	case "d", "right":
		in.Right = true
	case "k":
		in.PanUp = true
	case "j":
		in.PanDown = true
	case "h":
		in.PanLeft = true
	case "l":
		in.PanRight = true
	case "i", "+", "=":
		in.ZoomIn = true
	case "o", "-":
		in.ZoomOut = true
	case "]":
		in.MoreIterations = true
	case "[":
		in.FewerIterations = true
	case "enter":
		in.Reset = true
	default:
		return in, false
	}
	return in, true
}

// mouseInput converts a cell position to the pixel at the centre of its
// upper half. Only motion and left clicks pick c; the wheel zooms.
func (m model) mouseInput(msg tea.MouseMsg) (session.Input, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return session.Input{ZoomIn: true}, true
	case tea.MouseButtonWheelDown:
		return session.Input{ZoomOut: true}, true
	}
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion {
		return session.Input{}, false
	}
	if msg.Y >= m.rows-statusRows {
		return session.Input{}, false
	}
	return session.Input{
		HasMouse: true,
		MouseX:   float64(msg.X),
		MouseY:   float64(msg.Y * 2),
	}, true
}

func (m model) step(in session.Input) model {
	if m.reference {
		in = session.Input{Reference: true}
	}
	w, h := m.pixelSize()
	before := m.sess.Renders()
	frame, err := m.sess.Update(m.ctx, in, w, h)
	m.frame, m.err = frame, err
	if err == nil && m.sess.Renders() != before {
		m.record(m.sess.LastRenderTime())
	}
	return m
}

func (m *model) record(d time.Duration) {
	if len(m.history) == historyLen {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyLen-1]
	}
	m.history = append(m.history, float64(d.Microseconds())/1000)
}

func (m *model) bookmark() {
	if m.store == nil {
		m.notice = "bookmarks disabled"
		return
	}
	if err := m.store.Init(); err != nil {
		m.err = err
		return
	}

	name := m.store.NextName("view")
	b := storage.NewBookmark(name, m.sess.Params())
	b.Palette = m.paletteName
	b.Coloring = m.sess.Config().View.Coloring.String()
	b.Width, b.Height = m.pixelSize()
	if err := m.store.Save(b); err != nil {
		m.err = err
		return
	}
	m.notice = "saved " + name
}

func (m model) View() string {
	w, h := m.pixelSize()
	canvas := viz.NewCanvas(w, h)
	canvas.Load(m.frame)
	if m.reference {
		x, y := referencePixel(m.sess.Params().C, m.sess.Config(), w, h)
		canvas.Crosshair(x, y, 1, 0xffffff)
	}

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render(truncate(
		"wasd c  hjkl pan  i/o zoom  [ ] iters  enter reset  space map  b mark  t theme  q quit", m.cols)))
	return b.String()
}

func (m model) statusLine() string {
	p := m.sess.Params()
	title := m.theme.TitleStyle()
	val := m.theme.ValueStyle()
	muted := m.theme.MutedStyle()

	mode := title.Render("julia")
	if m.reference {
		mode = viz.StatusReference.Render("mandelbrot")
	}
	parts := []string{
		mode,
		muted.Render("c ") + val.Render(p.C.String()),
		muted.Render("iters ") + val.Render(fmt.Sprint(p.MaxIterations)),
		muted.Render("zoom ") + val.Render(fmt.Sprintf("%.3g", p.Zoom)),
		muted.Render("ms ") + viz.SparklineChart(m.history, 12),
	}
	switch {
	case m.err != nil:
		parts = append(parts, viz.StatusError.Render(m.err.Error()))
	case m.notice != "":
		parts = append(parts, muted.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

// referencePixel is the inverse of the mouse mapping: where c sits on the
// Mandelbrot reference frame.
func referencePixel(c escape.Point, cfg session.Config, w, h int) (int, int) {
	ext := viewport.AspectExtent(w, h, cfg.View.MinXRange, cfg.View.MinYRange)
	if ext.Width == 0 || ext.Height == 0 {
		return 0, 0
	}
	x := (c.Re/ext.Width + 0.5) * float64(w)
	y := (0.5 - c.Im/ext.Height) * float64(h)
	return int(x), int(y)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
