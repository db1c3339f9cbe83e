package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/assets"
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/effect"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/renderer"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/window"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// app owns the viewer's window, renderer, and demo scene.
type app struct {
	cfg *config.Config

	win *window.Window
	rnd *renderer.Renderer
	res *assets.Context

	arc *camera.ArcBall
	fly *camera.FirstPerson

	spinner   *scene.Node
	sphere    *scene.Node
	instanced *scene.Node

	post    effect.Effect
	spin    bool
	surface bool
	points  bool
	quit    bool
}

func newApp(cfg *config.Config) (*app, error) {
	win, err := window.New(window.Config{
		Title:      "Prism Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("viewer: window: %w", err)
	}

	dw, dh := win.DrawableSize()
	eye := math.Vec3{X: 4, Y: 3, Z: 4}
	aspect := float32(dw) / float32(dh)
	arc := camera.NewArcBall(eye, math.Vec3{},
		cfg.Camera.FOV, aspect, cfg.Camera.NearClip, cfg.Camera.FarClip)
	arc.SetSensitivity(
		cfg.Camera.DragSensitivity,
		cfg.Camera.DragSensitivity*0.2,
		cfg.Camera.ZoomSensitivity,
	)
	fly := camera.NewFirstPerson(eye, math.Vec3{},
		cfg.Camera.FOV, aspect, cfg.Camera.NearClip, cfg.Camera.FarClip)
	fly.SetSensitivity(cfg.Camera.DragSensitivity, cfg.Camera.MoveSpeed)

	bg := math.Vec3{
		X: cfg.Scene.Background[0],
		Y: cfg.Scene.Background[1],
		Z: cfg.Scene.Background[2],
	}
	rnd, err := renderer.New(win, arc, bg)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("viewer: renderer: %w", err)
	}

	a := &app{
		cfg:     cfg,
		win:     win,
		rnd:     rnd,
		res:     assets.NewContext(gpu.GL),
		arc:     arc,
		fly:     fly,
		spin:    true,
		surface: true,
	}
	if err := a.buildScene(); err != nil {
		a.Close()
		return nil, err
	}
	rnd.SetEventHandler(a.handleEvent)
	return a, nil
}

// buildScene populates the demo: a spinning cube, a sphere and capsule,
// an instanced cube field, and shared debug materials.
func (a *app) buildScene() error {
	normals, err := material.NewNormals()
	if err != nil {
		return fmt.Errorf("viewer: normals material: %w", err)
	}
	if err := a.res.RegisterMaterial("normals", normals); err != nil {
		return err
	}
	uv, err := material.NewUV()
	if err != nil {
		return fmt.Errorf("viewer: uv material: %w", err)
	}
	if err := a.res.RegisterMaterial("uv", uv); err != nil {
		return err
	}
	if err := a.res.RegisterMesh("cube", mesh.Cube(math.Vec3{X: 1, Y: 1, Z: 1})); err != nil {
		return err
	}

	root := a.rnd.Root()

	cube, _ := a.res.Mesh("cube")
	a.spinner = root.AddObject(cube)
	a.spinner.SetLocalTranslation(math.Vec3{Y: 0.5})
	a.spinner.SetColor(1, 0.55, 0.1)

	a.sphere = root.AddSphere(0.6)
	a.sphere.SetLocalTranslation(math.Vec3{X: -2, Y: 0.6})
	a.sphere.SetColor(0.2, 0.5, 1)

	capsule := root.AddCapsule(0.35, 1)
	capsule.SetLocalTranslation(math.Vec3{X: 2, Y: 0.85})
	capsule.SetColor(0.3, 1, 0.4)

	// A field of instanced cubes sharing one mesh and one draw call.
	a.instanced = root.AddObject(cube)
	a.instanced.SetLocalScale(math.Vec3{X: 0.25, Y: 0.25, Z: 0.25})
	var instances []scene.Instance
	for ix := 0; ix < 8; ix++ {
		for iz := 0; iz < 8; iz++ {
			instances = append(instances, scene.Instance{
				Position: math.Vec3{
					X: float32(ix)*1.5 - 5.25,
					Y: -1.5,
					Z: float32(iz)*1.5 - 5.25,
				},
				Color: math.Vec3{
					X: float32(ix) / 7,
					Y: 0.3,
					Z: float32(iz) / 7,
				},
				Deform: math.Identity(),
			})
		}
	}
	a.instanced.SetInstances(instances)

	logger.Info("scene ready",
		zap.Int("instances", len(instances)))
	return nil
}

// handleEvent maps viewer hotkeys; unhandled events fall through to the
// camera.
func (a *app) handleEvent(ev *input.Event) {
	if ev.Type != input.EventKeyDown {
		return
	}
	switch ev.Key {
	case sdl.SCANCODE_ESCAPE:
		a.quit = true
	case sdl.SCANCODE_SPACE:
		a.spin = !a.spin
	case sdl.SCANCODE_1:
		a.spinner.SetMaterial(nil)
	case sdl.SCANCODE_2:
		if m, ok := a.res.Material("normals"); ok {
			a.spinner.SetMaterial(m)
		}
	case sdl.SCANCODE_3:
		if m, ok := a.res.Material("uv"); ok {
			a.spinner.SetMaterial(m)
		}
	case sdl.SCANCODE_W:
		a.surface = !a.surface
		a.spinner.SetSurfaceRendering(a.surface)
		if a.surface {
			a.spinner.SetLinesWidth(0)
		} else {
			a.spinner.SetLinesWidth(a.cfg.Scene.LineWidth)
		}
	case sdl.SCANCODE_C:
		if a.rnd.Camera() == camera.Camera(a.arc) {
			a.fly.LookAt(a.arc.Eye(), a.arc.At())
			a.rnd.SetCamera(a.fly)
		} else {
			a.arc.LookAt(a.fly.Eye(), a.fly.Eye().Add(a.fly.Dir().Scale(a.arc.Dist())))
			a.rnd.SetCamera(a.arc)
		}
	case sdl.SCANCODE_P:
		a.points = !a.points
		if a.points {
			a.sphere.SetPointsSize(a.cfg.Scene.PointSize)
		} else {
			a.sphere.SetPointsSize(0)
		}
	case sdl.SCANCODE_G:
		a.setEffect(effect.NewGrayscale())
	case sdl.SCANCODE_B:
		a.setEffect(effect.NewSobel())
	case sdl.SCANCODE_N:
		a.setEffect(nil, nil)
	default:
		return
	}
	ev.Inhibit()
}

func (a *app) setEffect(e effect.Effect, err error) {
	if err != nil {
		logger.Error("post effect", zap.Error(err))
		return
	}
	if a.post != nil {
		a.post.Release()
	}
	a.post = e
	if err := a.rnd.SetEffect(e); err != nil {
		logger.Error("post effect", zap.Error(err))
	}
}

// Run drives the frame loop until the window closes or Escape is hit.
func (a *app) Run() error {
	axis := math.Vec3{Y: 1}
	last := time.Now()

	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if a.spin {
			a.spinner.AppendRotationWrtCenter(math.QuatFromAxisAngle(axis, dt))
		}
		a.drawGrid()

		if !a.rnd.Frame(dt) || a.quit {
			return nil
		}
	}
}

// drawGrid queues the ground grid with the immediate line batch.
func (a *app) drawGrid() {
	const half = 6
	gray := math.Vec3{X: 0.35, Y: 0.35, Z: 0.35}
	for i := -half; i <= half; i++ {
		f := float32(i)
		a.rnd.DrawLine(math.Vec3{X: -half, Z: f}, math.Vec3{X: half, Z: f}, gray)
		a.rnd.DrawLine(math.Vec3{X: f, Z: -half}, math.Vec3{X: f, Z: half}, gray)
	}
}

// Close tears down in reverse order of creation, while the GL context
// is still current.
func (a *app) Close() {
	if a.post != nil {
		a.post.Release()
	}
	if a.res != nil {
		a.res.Close()
	}
	if a.rnd != nil {
		a.rnd.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}
