// Package renderer owns the OpenGL state of the viewer and draws one
// textured mesh per frame.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/gpu"
	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	LightDir   [3]float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config    Config
	program   *shader.Program
	wireframe bool
}

// New initializes OpenGL and compiles the mesh program.
// It must be called after the GL context has been created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewMeshProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	if r.program != nil {
		r.program.Release()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ToggleWireframe switches between filled and line polygon mode.
func (r *Renderer) ToggleWireframe() bool {
	r.wireframe = !r.wireframe
	mode := uint32(gl.FILL)
	if r.wireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	return r.wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// DrawMesh draws m with tex bound to unit 0. Lighting is only applied when
// the mesh carries normals.
func (r *Renderer) DrawMesh(m *gpu.Mesh, tex *gpu.Texture, projection, modelView mgl32.Mat4) {
	p := r.program
	p.Use()

	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, &projection[0])
	gl.UniformMatrix4fv(p.Uniform("uModelView"), 1, false, &modelView[0])

	lit := int32(0)
	if m.HasNormals {
		lit = 1
	}
	gl.Uniform1i(p.Uniform("uLit"), lit)
	l := r.config.LightDir
	gl.Uniform3f(p.Uniform("uLightDir"), l[0], l[1], l[2])
	gl.Uniform3f(p.Uniform("uAmbient"), 0.4, 0.4, 0.4)
	gl.Uniform3f(p.Uniform("uDiffuse"), 0.6, 0.6, 0.6)

	tex.Bind(0)
	gl.Uniform1i(p.Uniform("uTexture"), 0)

	m.Draw()
}
