package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the largest steps-per-frame the speed slider offers.
const MaxSpeed = 10

// HUDData holds everything the HUD displays.
type HUDData struct {
	Title    string
	Neurons  int
	Edges    int
	Orbs     int
	Idle     int
	Retired  int // since start
	Tick     int32
	Speed    int
	FPS      int32
	Paused   bool
	ScreenH  int32
	Controls string
}

// HUDActions reports what the user did with the HUD widgets this frame.
type HUDActions struct {
	TogglePause bool
	Speed       int
}

// HUD renders counters plus a pause button and speed slider.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), x: 10, y: 10, width: 280}
}

// Rows returns the label/value pairs shown in the counter panel.
func (d HUDData) Rows() [][2]string {
	return [][2]string{
		{"Neurons", humanize.Comma(int64(d.Neurons))},
		{"Edges", humanize.Comma(int64(d.Edges))},
		{"Orbs", fmt.Sprintf("%s (%s idle)", humanize.Comma(int64(d.Orbs)), humanize.Comma(int64(d.Idle)))},
		{"Retired", humanize.Comma(int64(d.Retired))},
		{"Tick", humanize.Comma(int64(d.Tick))},
		{"FPS", fmt.Sprintf("%d", d.FPS)},
	}
}

// Draw renders the HUD and returns widget interactions.
func (h *HUD) Draw(data HUDData) HUDActions {
	r := h.renderer
	t := r.Theme
	rows := data.Rows()

	height := t.Padding*3 + t.LineHeight*int32(len(rows)+1) + 70
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + t.Padding
	y := h.y + t.Padding
	rl.DrawText(data.Title, x, y, t.HeaderFontSize, t.TitleColor)
	y += t.LineHeight + 6

	for _, row := range rows {
		y = r.DrawLabelValue(x, y, row[0], row[1])
	}
	y += t.Padding

	actions := HUDActions{Speed: data.Speed}

	label := "Pause"
	if data.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 90, Height: 24}, label) {
		actions.TogglePause = true
	}
	if data.Paused {
		rl.DrawText("PAUSED", x+100, y+5, t.FontSize, t.StatusColor)
	}
	y += 32

	speed := gui.SliderBar(
		rl.Rectangle{X: float32(x + 50), Y: float32(y), Width: float32(h.width - 100 - t.Padding), Height: 18},
		"Speed", fmt.Sprintf("%dx", data.Speed),
		float32(data.Speed), 1, MaxSpeed,
	)
	actions.Speed = clampSpeed(int(speed + 0.5))

	if data.Controls != "" {
		rl.DrawText(data.Controls, 10, data.ScreenH-25, t.FontSize, rl.Gray)
	}
	return actions
}

func clampSpeed(v int) int {
	return min(max(v, 1), MaxSpeed)
}
