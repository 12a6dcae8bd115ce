// Package game ties the simulation to the window: input, drawing, and HUD.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/graph"
	"github.com/pthm-cable/synapse/renderer"
	"github.com/pthm-cable/synapse/sim"
	"github.com/pthm-cable/synapse/telemetry"
	"github.com/pthm-cable/synapse/ui"
)

// Title is the window and HUD title.
const Title = "Synapse"

// Game holds the graphical front end for one simulation.
type Game struct {
	sim   *sim.Simulation
	scene *renderer.Scene
	hud   *ui.HUD
	perf  *telemetry.PerfCollector
	stats graph.Stats

	screenH int32
}

// New creates the front end. The raylib window must already be open.
func New(s *sim.Simulation, cfg *config.Config, perf *telemetry.PerfCollector, seed int64) *Game {
	return &Game{
		sim:     s,
		scene:   renderer.NewScene(s, cfg.Camera, seed),
		hud:     ui.NewHUD(),
		perf:    perf,
		stats:   graph.ComputeStats(s.Graph()),
		screenH: int32(cfg.Screen.Height),
	}
}

// Update handles input and advances the simulation by one frame.
func (g *Game) Update() {
	ui.HandleInput(g.sim, g.scene.Camera)
	g.sim.Update()
}

// Draw renders the scene and HUD, applying any HUD interactions.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.scene.Draw(g.sim)

	actions := g.hud.Draw(ui.HUDData{
		Title:    Title,
		Neurons:  g.stats.Neurons,
		Edges:    g.stats.Edges,
		Orbs:     g.sim.OrbCount(),
		Idle:     g.sim.IdleCount(),
		Retired:  g.sim.Retired(),
		Tick:     g.sim.Frame().Tick,
		Speed:    g.sim.StepsPerFrame(),
		FPS:      rl.GetFPS(),
		Paused:   g.sim.Paused(),
		ScreenH:  g.screenH,
		Controls: ui.Controls,
	})
	actions.Apply(g.sim)
	rl.EndDrawing()

	if g.perf != nil {
		g.perf.RecordFrame()
	}
}

// Tick returns the simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Frame().Tick
}

// Unload releases simulation resources.
func (g *Game) Unload() {
	g.sim.Close()
}
