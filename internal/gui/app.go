package gui

import (
	"context"
	"fmt"
	"image/color"
	"io"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fractalsim/internal/palette"
	"github.com/san-kum/fractalsim/internal/session"
)

var (
	ColBg   = rl.NewColor(10, 10, 10, 255)
	ColText = rl.NewColor(220, 220, 220, 255)
	ColDim  = rl.NewColor(140, 140, 140, 255)
)

const title = "Julia Explorer"

type Options struct {
	Width, Height int
	// Log receives the session's render timings.
	Log io.Writer
}

// App shows a session in a resizable window. The texture is recreated
// whenever the window size changes.
type App struct {
	sess *session.Session
	ctx  context.Context

	tex     rl.Texture2D
	texW    int
	texH    int
	staging []color.RGBA

	showHUD bool
	err     error
}

func NewApp(ctx context.Context, sess *session.Session) *App {
	return &App{sess: sess, ctx: ctx, showHUD: true}
}

// initWindow opens a resizable window and caps the frame rate at 60.
func initWindow(w, h int) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyEscape)
}

// Run blocks until the window is closed or ctx is done.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	if opts.Log != nil {
		sess.SetOutput(opts.Log)
	}
	initWindow(opts.Width, opts.Height)
	defer rl.CloseWindow()

	app := NewApp(ctx, sess)
	defer app.unload()
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if err := a.ctx.Err(); err != nil {
			return err
		}
		a.Update()
		a.Draw()
	}
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyTab) {
		a.showHUD = !a.showHUD
	}

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	in := readInput(raylibSource{})
	frame, err := a.sess.Update(a.ctx, in, w, h)
	a.err = err
	if len(frame) != w*h {
		return
	}
	a.upload(frame, w, h)
}

// upload copies a packed frame into the window texture.
func (a *App) upload(frame []uint32, w, h int) {
	if w != a.texW || h != a.texH {
		a.unload()
		img := rl.GenImageColor(w, h, rl.Black)
		a.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		a.texW, a.texH = w, h
		a.staging = make([]color.RGBA, w*h)
	}
	for i, p := range frame {
		a.staging[i] = palette.Unpack(p).RGBA()
	}
	rl.UpdateTexture(a.tex, a.staging)
}

func (a *App) unload() {
	if a.texW > 0 {
		rl.UnloadTexture(a.tex)
		a.texW, a.texH = 0, 0
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.texW > 0 {
		rl.DrawTexture(a.tex, 0, 0, rl.White)
	}
	if a.showHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	p := a.sess.Params()
	rl.DrawText(fmt.Sprintf("c = %s", p.C), 10, 10, 20, ColText)
	rl.DrawText(fmt.Sprintf("iters %d  zoom %.3g  %s", p.MaxIterations, p.Zoom, a.sess.LastRenderTime()), 10, 34, 16, ColDim)
	if a.err != nil {
		rl.DrawText(a.err.Error(), 10, 56, 16, rl.Red)
	}
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
}
