// Package renderer draws the textured, lit mesh with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeviewer/internal/engine/camera"
	"github.com/Faultbox/cubeviewer/internal/engine/lighting"
	"github.com/Faultbox/cubeviewer/internal/engine/model"
	"github.com/Faultbox/cubeviewer/internal/engine/shader"
	"github.com/Faultbox/cubeviewer/internal/engine/texture"
	"github.com/Faultbox/cubeviewer/internal/logger"
	"github.com/Faultbox/cubeviewer/internal/viewer"
)

// Config holds renderer configuration.
type Config struct {
	Width  int // Drawable size in pixels
	Height int
}

// Renderer draws one mesh with one texture and one light.
type Renderer struct {
	config Config

	program     *shader.Program
	vao         uint32
	vbo         uint32
	vertexCount int32
	texture     uint32
	bounds      *boundsOverlay

	projection mgl32.Mat4
}

// New initializes OpenGL, uploads the mesh and texture and compiles the
// lighting shader.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, mesh *model.Mesh, tex *texture.RGBImage) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		projection: camera.Projection(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(shader.LitVertexShader, shader.LitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uploadMesh(mesh)
	r.texture = uploadTexture(tex)

	r.bounds, err = newBoundsOverlay(mesh.Bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create bounds overlay: %w", err)
	}

	logger.Debug("renderer ready",
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("texture_width", tex.Width),
		zap.Int("texture_height", tex.Height),
	)
	return r, nil
}

func (r *Renderer) uploadMesh(mesh *model.Mesh) {
	data := mesh.Flatten()
	r.vertexCount = int32(len(mesh.Vertices))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(model.PositionOffset))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(model.NormalOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, model.VertexStride, gl.PtrOffset(model.TexCoordOffset))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Replace swaps in a new mesh and texture, releasing the old ones.
func (r *Renderer) Replace(mesh *model.Mesh, tex *texture.RGBImage) error {
	bounds, err := newBoundsOverlay(mesh.Bounds)
	if err != nil {
		return fmt.Errorf("failed to create bounds overlay: %w", err)
	}

	r.releaseAssets()
	r.uploadMesh(mesh)
	r.texture = uploadTexture(tex)
	r.bounds = bounds

	logger.Debug("renderer assets replaced",
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("texture_width", tex.Width),
		zap.Int("texture_height", tex.Height),
	)
	return nil
}

// Render clears the frame and draws the mesh as seen from the scene camera.
func (r *Renderer) Render(scene *viewer.Scene) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := scene.Camera.ViewMatrix()
	modelMat := scene.Camera.ModelMatrix()

	r.program.Use()
	r.program.SetMat4("uProjection", r.projection)
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uModel", modelMat)
	r.program.SetMat3("uNormalMatrix", view.Mul4(modelMat).Mat3().Inv().Transpose())

	setLight(r.program, scene.Lights, view, scene.Camera.Position())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	r.program.SetInt("uTexture", 0)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)

	if scene.ShowBounds {
		r.bounds.draw(r.projection.Mul4(view).Mul4(modelMat))
	}
}

func setLight(p *shader.Program, l *lighting.Lights, view mgl32.Mat4, cam mgl32.Vec3) {
	p.SetVec3("uLightPos", l.EyePosition(view, cam))
	p.SetVec4("uLightAmbient", l.Ambient)
	p.SetVec4("uLightDiffuse", l.Diffuse)
	p.SetVec4("uGlobalAmbient", lighting.GlobalAmbient)
	p.SetVec4("uMaterialAmbient", lighting.MaterialAmbient)
	p.SetVec4("uMaterialDiffuse", lighting.MaterialDiffuse)
}

// Resize updates the viewport. The projection is fixed and does not follow
// the aspect ratio.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0, fmt.Errorf("invalid viewport %dx%d", w, h)
	}

	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.releaseAssets()
	if r.program != nil {
		r.program.Delete()
	}
}

func (r *Renderer) releaseAssets() {
	deleteTexture(r.texture)
	r.texture = 0
	if r.bounds != nil {
		r.bounds.close()
		r.bounds = nil
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
}
