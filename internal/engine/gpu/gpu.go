// Package gpu uploads meshes and textures to OpenGL and draws them.
// Every function here must run on the thread that owns the GL context.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/pkg/mesh"
)

// Vertex attribute locations shared with the viewer shaders.
const (
	AttribPosition = 0
	AttribTexCoord = 1
	AttribNormal   = 2
)

// ErrEmptyMesh is returned when uploading a buffer without triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Mesh holds the GL handles for one uploaded mesh.Buffer.
type Mesh struct {
	vao         uint32
	positionVBO uint32
	texCoordVBO uint32
	normalVBO   uint32
	ebo         uint32
	indexCount  int32

	HasNormals   bool
	HasTexCoords bool
	Bounds       mesh.Bounds
}

// Upload copies b into a new VAO with one VBO per present attribute and an
// element buffer. Absent attributes are disabled so the shader reads the
// current generic attribute value instead.
func Upload(b *mesh.Buffer) (*Mesh, error) {
	if len(b.Triangles) == 0 || b.VertexCount() == 0 {
		return nil, ErrEmptyMesh
	}

	m := &Mesh{
		HasNormals:   b.HasNormals(),
		HasTexCoords: b.HasTexCoords(),
		Bounds:       b.Bounds,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	m.positionVBO = uploadVec3(AttribPosition, b.Positions)
	if m.HasNormals {
		m.normalVBO = uploadVec3(AttribNormal, b.Normals)
	}
	if m.HasTexCoords {
		m.texCoordVBO = uploadVec2(AttribTexCoord, b.TexCoords)
	}

	indices := b.Indices()
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	m.indexCount = int32(len(indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m, nil
}

func uploadVec3(loc uint32, data []mgl32.Vec3) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*3*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

func uploadVec2(loc uint32, data []mgl32.Vec2) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*2*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

// IndexCount returns the number of indices drawn per frame.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

// Draw issues one indexed triangle draw call.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Release deletes all GL objects. It is safe to call more than once.
func (m *Mesh) Release() {
	for _, vbo := range []*uint32{&m.positionVBO, &m.texCoordVBO, &m.normalVBO, &m.ebo} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.indexCount = 0
}
