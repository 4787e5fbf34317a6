// Package viewer implements the model viewer's main loop: it loads one
// model, uploads it, and redraws it under an interactive camera.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/gpu"
	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/screenshot"
	"github.com/Faultbox/objview/internal/engine/window"
	"github.com/Faultbox/objview/internal/logger"
)

// Viewer is the running viewer instance.
type Viewer struct {
	config   *config.Config
	source   assets.Source
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	events   *input.Queue
	watcher  *assets.Watcher
	shots    *screenshot.Writer
	log      *zap.Logger

	settings camera.Settings
	homeRig  camera.Rig
	rig      camera.Rig
	state    camera.State

	mesh    *gpu.Mesh
	texture *gpu.Texture
}

// New loads the configured model, opens the window and uploads the model.
// Parse and build failures are returned before any window is created.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		source: assets.Source{
			Model:       cfg.Viewer.Model,
			Texture:     cfg.Viewer.Texture,
			Triangulate: cfg.Viewer.Triangulate,
		},
		events:   input.NewQueue(),
		settings: cfg.Camera.Settings(),
		shots:    screenshot.New(cfg.Viewer.ScreenshotDir, "objview"),
		log:      logger.Named("viewer"),
	}

	v.log.Info("loading model",
		zap.String("model", v.source.Model),
		zap.String("texture", v.source.Texture),
		zap.Bool("triangulate", v.source.Triangulate),
	)
	start := time.Now()
	loaded, err := assets.Load(v.source)
	if err != nil {
		return nil, err
	}
	v.log.Info("model loaded",
		zap.Int("vertices", loaded.Mesh.VertexCount()),
		zap.Int("triangles", len(loaded.Mesh.Triangles)),
		zap.Bool("normals", loaded.Mesh.HasNormals()),
		zap.Bool("texcoords", loaded.Mesh.HasTexCoords()),
		zap.Duration("elapsed", time.Since(start)),
	)

	// Window first: the GL context must exist before the renderer.
	v.window, err = window.New(window.Config{
		Title:      v.title(loaded),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Viewer.Background,
		LightDir:   cfg.Viewer.LightDir,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.upload(loaded); err != nil {
		v.Close()
		return nil, err
	}

	v.homeRig = cfg.Camera.Rig()
	if cfg.Viewer.FitCamera {
		v.homeRig = v.homeRig.FitTo(v.mesh.Bounds)
	}
	v.resetCamera()

	if cfg.Viewer.Watch {
		v.watcher, err = assets.NewWatcher(assets.DefaultSettleDelay, v.source.Model, v.source.Texture)
		if err != nil {
			v.log.Warn("file watching disabled", zap.Error(err))
		} else {
			v.log.Info("watching for changes", zap.String("model", v.source.Model))
		}
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window is closed or ESC is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if v.config.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.config.Window.FPSLimit)
	}

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		v.window.PollEvents(v.events)
		v.handleEvents()
		if !v.running {
			break
		}

		if v.watcher != nil {
			select {
			case <-v.watcher.Changes():
				v.reload()
			default:
			}
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.config.Window.ShowFPS {
				v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if v.mesh != nil {
		v.mesh.Release()
	}
	if v.texture != nil {
		v.texture.Release()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, ev := range v.events.Events() {
		switch input.ActionFor(ev) {
		case input.ActionQuit:
			v.running = false
			return
		case input.ActionResetCamera:
			v.resetCamera()
		case input.ActionFitCamera:
			v.rig = v.config.Camera.Rig().FitTo(v.mesh.Bounds)
			v.settings = v.rig.Limits(v.config.Camera.Settings())
			v.state = v.rig.Home()
		case input.ActionToggleWireframe:
			on := v.renderer.ToggleWireframe()
			v.log.Debug("wireframe", zap.Bool("enabled", on))
		case input.ActionScreenshot:
			v.captureScreenshot()
		}

		if ev.Type == input.EventWindowResize {
			v.renderer.Resize(ev.Width, ev.Height)
		}
		v.state = v.settings.Apply(v.state, ev)
	}
}

func (v *Viewer) resetCamera() {
	v.rig = v.homeRig
	v.settings = v.rig.Limits(v.config.Camera.Settings())
	v.state = v.rig.Home()
}

// captureScreenshot redraws the current view and saves it.
func (v *Viewer) captureScreenshot() {
	v.render()
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.SaveBottomUp(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) render() {
	v.renderer.Begin()
	width, height := v.renderer.Size()
	v.renderer.DrawMesh(v.mesh, v.texture, v.rig.Projection(v.state, width, height), v.rig.View(v.state))
	v.renderer.End()
}

// upload replaces the GPU copies of the mesh and texture. On error the
// previous ones stay in place.
func (v *Viewer) upload(a *assets.Model) error {
	m, err := gpu.Upload(a.Mesh)
	if err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}
	tex, err := gpu.UploadTexture(a.Texture)
	if err != nil {
		m.Release()
		return fmt.Errorf("uploading texture: %w", err)
	}

	if v.mesh != nil {
		v.mesh.Release()
	}
	if v.texture != nil {
		v.texture.Release()
	}
	v.mesh, v.texture = m, tex
	return nil
}

// reload re-reads the model and texture. A broken file leaves the current
// model on screen.
func (v *Viewer) reload() {
	loaded, err := assets.Load(v.source)
	if err != nil {
		v.log.Warn("reload failed, keeping previous model", zap.Error(err))
		return
	}
	if err := v.upload(loaded); err != nil {
		v.log.Warn("reload upload failed, keeping previous model", zap.Error(err))
		return
	}
	v.window.SetTitle(v.title(loaded))
	v.log.Info("model reloaded",
		zap.Int("vertices", loaded.Mesh.VertexCount()),
		zap.Int("triangles", len(loaded.Mesh.Triangles)),
	)
}

func (v *Viewer) title(a *assets.Model) string {
	return fmt.Sprintf("%s - %s (%d vertices, %d triangles)",
		v.config.Window.Title, filepath.Base(v.source.Model),
		a.Mesh.VertexCount(), len(a.Mesh.Triangles))
}
