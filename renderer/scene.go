package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/camera"
	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/sim"
)

// Scene draws a simulation from an orbit camera.
type Scene struct {
	Camera *camera.Orbit
	graph  *GraphRenderer
	orbs   *OrbRenderer

	Background rl.Color
}

// NewScene builds a scene for s using the camera section of cfg.
func NewScene(s *sim.Simulation, cfg config.CameraConfig, seed int64) *Scene {
	cam := camera.New(float32(cfg.Distance), float32(cfg.Height), float32(cfg.Fovy))

	gr := NewGraphRenderer(s.Graph())
	gr.Fade = [2]float32{float32(cfg.NodeFade[0]), float32(cfg.NodeFade[1])}

	or := NewOrbRenderer(seed)
	or.Fade = [2]float32{float32(cfg.OrbFade[0]), float32(cfg.OrbFade[1])}

	return &Scene{
		Camera:     cam,
		graph:      gr,
		orbs:       or,
		Background: rl.Color{R: 8, G: 10, B: 18, A: 255},
	}
}

// Draw clears the frame and renders graph and orbs. The orbit angle follows
// the simulation frame clock.
func (sc *Scene) Draw(s *sim.Simulation) {
	sc.Camera.Angle = s.Frame().Angle

	rl.ClearBackground(sc.Background)
	rl.BeginMode3D(sc.camera3D())
	sc.graph.Draw(sc.Camera)
	sc.orbs.Draw(s, sc.Camera)
	rl.EndMode3D()
}

func (sc *Scene) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(sc.Camera.Eye()),
		Target:     vec(sc.Camera.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       sc.Camera.Fovy,
		Projection: rl.CameraPerspective,
	}
}
