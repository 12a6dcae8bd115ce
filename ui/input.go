package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Controls is the legend shown at the bottom of the screen.
const Controls = "SPACE pause | +/- speed | wheel zoom | ESC quit"

// Controller is the part of the simulation input can drive.
type Controller interface {
	TogglePause()
	StepsPerFrame() int
	SetStepsPerFrame(n int)
}

// Zoomer is the part of the camera input can drive.
type Zoomer interface {
	Zoom(delta float32)
}

// HandleInput applies keyboard and mouse wheel input for this frame.
func HandleInput(c Controller, z Zoomer) {
	if rl.IsKeyPressed(rl.KeySpace) {
		c.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		c.SetStepsPerFrame(clampSpeed(c.StepsPerFrame() + 1))
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		c.SetStepsPerFrame(clampSpeed(c.StepsPerFrame() - 1))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		z.Zoom(-wheel * 20)
	}
}

// Apply forwards HUD widget actions to c.
func (a HUDActions) Apply(c Controller) {
	if a.TogglePause {
		c.TogglePause()
	}
	if a.Speed != c.StepsPerFrame() {
		c.SetStepsPerFrame(a.Speed)
	}
}
