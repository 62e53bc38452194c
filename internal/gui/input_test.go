package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fractalsim/internal/session"
)

type fakeSource struct {
	down    map[int32]bool
	pressed map[int32]bool
	buttons map[rl.MouseButton]bool
	mouse   *[2]float64
}

func (f fakeSource) KeyDown(key int32) bool               { return f.down[key] }
func (f fakeSource) KeyPressed(key int32) bool            { return f.pressed[key] }
func (f fakeSource) MouseDown(button rl.MouseButton) bool { return f.buttons[button] }

func (f fakeSource) Mouse() (float64, float64, bool) {
	if f.mouse == nil {
		return 0, 0, false
	}
	return f.mouse[0], f.mouse[1], true
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		src  fakeSource
		want session.Input
	}{
		{"idle", fakeSource{}, session.Input{}},
		{"move c", fakeSource{down: map[int32]bool{rl.KeyW: true, rl.KeyD: true}},
			session.Input{Up: true, Right: true}},
		{"pan and zoom", fakeSource{down: map[int32]bool{rl.KeyH: true, rl.KeyJ: true, rl.KeyI: true}},
			session.Input{PanLeft: true, PanDown: true, ZoomIn: true}},
		{"left arrow raises the limit", fakeSource{down: map[int32]bool{rl.KeyLeft: true}},
			session.Input{MoreIterations: true}},
		{"right arrow lowers the limit", fakeSource{down: map[int32]bool{rl.KeyRight: true}},
			session.Input{FewerIterations: true}},
		{"left mouse raises the limit", fakeSource{buttons: map[rl.MouseButton]bool{rl.MouseButtonLeft: true}},
			session.Input{MoreIterations: true}},
		{"right mouse lowers the limit", fakeSource{buttons: map[rl.MouseButton]bool{rl.MouseButtonRight: true}},
			session.Input{FewerIterations: true}},
		{"held enter does not reset", fakeSource{down: map[int32]bool{rl.KeyEnter: true}}, session.Input{}},
		{"pressed enter resets", fakeSource{pressed: map[int32]bool{rl.KeyEnter: true}},
			session.Input{Reset: true}},
		{"held space shows the reference", fakeSource{down: map[int32]bool{rl.KeySpace: true}},
			session.Input{Reference: true}},
		{"mouse over the window", fakeSource{mouse: &[2]float64{12, 34}},
			session.Input{HasMouse: true, MouseX: 12, MouseY: 34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readInput(tt.src); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
