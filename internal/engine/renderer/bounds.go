package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/cubeviewer/internal/engine/model"
	"github.com/Faultbox/cubeviewer/internal/engine/shader"
)

const boundsPadding = 0.05

var boundsColor = [4]float32{1, 1, 0, 1}

// boundsOverlay draws the mesh bounding box as lines.
type boundsOverlay struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
}

func newBoundsOverlay(b model.Bounds) (*boundsOverlay, error) {
	program, err := shader.Compile(shader.BoundsVertexShader, shader.BoundsFragmentShader)
	if err != nil {
		return nil, err
	}

	o := &boundsOverlay{program: program}
	lines := b.Wireframe(boundsPadding)

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)

	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, gl.Ptr(lines), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return o, nil
}

func (o *boundsOverlay) draw(mvp mgl32.Mat4) {
	o.program.Use()
	o.program.SetMat4("uMVP", mvp)
	o.program.SetVec4("uColor", boundsColor)

	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.LINES, 0, model.BoundsVertexCount)
	gl.BindVertexArray(0)
}

func (o *boundsOverlay) close() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	o.program.Delete()
}
