// Package ui draws the heads-up display and maps keyboard and mouse input
// onto simulation controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme defines colors and metrics for UI rendering.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	TitleColor     rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	StatusColor    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		TitleColor:     rl.White,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.Color{R: 170, G: 200, B: 255, A: 255},
		StatusColor:    rl.Yellow,
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		FontSize:       14,
		HeaderFontSize: 20,
	}
}

// Renderer handles UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the next Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}
