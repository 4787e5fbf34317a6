// Package mesh turns parsed OBJ geometry into a deduplicated vertex buffer
// and triangle index list suitable for indexed drawing.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/pkg/objfile"
)

// Buffer is the immutable result of Build. Normals and TexCoords are nil
// when the source file supplied none; otherwise every attribute slice has
// VertexCount elements and slot i of each describes the same vertex.
type Buffer struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Triangles [][3]uint32
	Bounds    Bounds
}

// VertexCount returns the number of distinct output vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// IndexCount returns the number of indices passed to a triangle draw call.
func (b *Buffer) IndexCount() int {
	return len(b.Triangles) * 3
}

// HasNormals reports whether the buffer carries a normal per vertex.
func (b *Buffer) HasNormals() bool {
	return b.Normals != nil
}

// HasTexCoords reports whether the buffer carries a texcoord per vertex.
func (b *Buffer) HasTexCoords() bool {
	return b.TexCoords != nil
}

// Indices returns the triangle list flattened for element buffer upload.
func (b *Buffer) Indices() []uint32 {
	out := make([]uint32, 0, b.IndexCount())
	for _, t := range b.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	triangulate bool
}

// WithTriangulation fan-triangulates polygons with more than 3 corners.
// Without it such faces fail with ErrNotTriangle.
func WithTriangulation() Option {
	return func(o *buildOptions) {
		o.triangulate = true
	}
}

// Load parses the OBJ file at path and builds a mesh from it.
func Load(path string, opts ...Option) (*Buffer, error) {
	g, err := objfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Build(g, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Build assigns one output vertex per distinct face corner and emits one
// index triple per triangle. A corner lacking an attribute that the file
// supplies (e.g. "f 1 2 3" alongside vn records) is rejected with
// ErrMissingAttribute rather than padded with zeros.
func Build(g *objfile.Geometry, opts ...Option) (*Buffer, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(g.Faces) == 0 {
		return nil, &BuildError{Reason: ErrNoFaces, Face: -1}
	}

	for i, f := range g.Faces {
		if len(f.Corners) < 3 || !o.triangulate && len(f.Corners) != 3 {
			return nil, &BuildError{
				Reason: ErrNotTriangle,
				Face:   i,
				Line:   f.Line,
				Detail: fmt.Sprintf("%d corners", len(f.Corners)),
			}
		}
	}
	faces := g.Faces
	if o.triangulate {
		faces = Triangulate(faces)
	}

	table := AssignSlots(faces)
	n := table.Len()

	b := &Buffer{Positions: make([]mgl32.Vec3, n)}
	if len(g.Normals) > 0 {
		b.Normals = make([]mgl32.Vec3, n)
	}
	if len(g.TexCoords) > 0 {
		b.TexCoords = make([]mgl32.Vec2, n)
	}

	for slot, c := range table.Order {
		if !c.Position.Valid() {
			return nil, cornerError(g.Faces, c, ErrMissingPosition, "")
		}
		if int(c.Position) >= len(g.Positions) {
			return nil, cornerError(g.Faces, c, ErrIndexOutOfRange,
				fmt.Sprintf("position %d of %d", c.Position, len(g.Positions)))
		}
		b.Positions[slot] = g.Positions[c.Position]

		if b.Normals != nil {
			if err := checkAttr(g.Faces, c, c.Normal, len(g.Normals), "normal"); err != nil {
				return nil, err
			}
			b.Normals[slot] = g.Normals[c.Normal]
		}
		if b.TexCoords != nil {
			if err := checkAttr(g.Faces, c, c.TexCoord, len(g.TexCoords), "texcoord"); err != nil {
				return nil, err
			}
			b.TexCoords[slot] = g.TexCoords[c.TexCoord]
		}
	}

	b.Triangles = make([][3]uint32, len(faces))
	for i, f := range faces {
		for j := 0; j < 3; j++ {
			b.Triangles[i][j] = table.Slots[f.Corners[j]]
		}
	}

	b.Bounds = ComputeBounds(b.Positions)
	return b, nil
}

func checkAttr(faces []objfile.Face, c objfile.Corner, idx objfile.Index, n int, kind string) error {
	if !idx.Valid() {
		return cornerError(faces, c, ErrMissingAttribute, kind)
	}
	if int(idx) >= n {
		return cornerError(faces, c, ErrIndexOutOfRange, fmt.Sprintf("%s %d of %d", kind, idx, n))
	}
	return nil
}

// cornerError locates the first source face using c so the error can point
// at the face as written, before any triangulation. Only reached on failure.
func cornerError(faces []objfile.Face, c objfile.Corner, reason error, detail string) error {
	for i, f := range faces {
		for _, fc := range f.Corners {
			if fc == c {
				return &BuildError{Reason: reason, Face: i, Line: f.Line, Detail: detail}
			}
		}
	}
	return &BuildError{Reason: reason, Face: -1, Detail: detail}
}
