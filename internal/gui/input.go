package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fractalsim/internal/session"
)

// inputSource is the slice of raylib's input API the explorer reads.
type inputSource interface {
	KeyDown(key int32) bool
	KeyPressed(key int32) bool
	MouseDown(button rl.MouseButton) bool
	// Mouse reports the cursor position while it is over the window.
	Mouse() (x, y float64, ok bool)
}

// readInput samples one frame. Keys are level-triggered except Enter, so a
// held iteration key keeps stepping every frame.
func readInput(src inputSource) session.Input {
	var in session.Input
	if x, y, ok := src.Mouse(); ok {
		in.HasMouse, in.MouseX, in.MouseY = true, x, y
	}

	in.Up = src.KeyDown(rl.KeyW)
	in.Down = src.KeyDown(rl.KeyS)
	in.Left = src.KeyDown(rl.KeyA)
	in.Right = src.KeyDown(rl.KeyD)

	in.PanUp = src.KeyDown(rl.KeyK)
	in.PanDown = src.KeyDown(rl.KeyJ)
	in.PanLeft = src.KeyDown(rl.KeyH)
	in.PanRight = src.KeyDown(rl.KeyL)
	in.ZoomIn = src.KeyDown(rl.KeyI)
	in.ZoomOut = src.KeyDown(rl.KeyO)

	in.MoreIterations = src.MouseDown(rl.MouseButtonLeft) || src.KeyDown(rl.KeyLeft)
	in.FewerIterations = src.MouseDown(rl.MouseButtonRight) || src.KeyDown(rl.KeyRight)
	in.Reset = src.KeyPressed(rl.KeyEnter)
	in.Reference = src.KeyDown(rl.KeySpace)
	return in
}

type raylibSource struct{}

func (raylibSource) KeyDown(key int32) bool    { return rl.IsKeyDown(key) }
func (raylibSource) KeyPressed(key int32) bool { return rl.IsKeyPressed(key) }

func (raylibSource) MouseDown(button rl.MouseButton) bool {
	return rl.IsMouseButtonDown(button)
}

func (raylibSource) Mouse() (float64, float64, bool) {
	if !rl.IsCursorOnScreen() {
		return 0, 0, false
	}
	pos := rl.GetMousePosition()
	return float64(pos.X), float64(pos.Y), true
}
