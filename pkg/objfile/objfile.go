// Package objfile parses the subset of the Wavefront OBJ format needed to
// build a single indexed mesh: v, vn, vt and f records.
package objfile

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Index is a resolved zero-based index into one of the attribute lists.
type Index int32

// NoIndex marks a corner component that was left empty in the file.
const NoIndex Index = -1

// Valid reports whether the index refers to a list element.
func (i Index) Valid() bool {
	return i >= 0
}

// Corner is one vertex reference of a face. It is comparable and is used
// directly as the deduplication key when building a mesh.
type Corner struct {
	Position Index
	TexCoord Index
	Normal   Index
}

// Face is a polygon as it appears in the file.
type Face struct {
	Corners []Corner
	Line    int // 1-based source line
}

// Geometry is the raw content of an OBJ file.
type Geometry struct {
	Path      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Faces     []Face

	// Skipped counts ignored record types (mtllib, usemtl, g, o, s, ...).
	Skipped map[string]int
}

// CornerCount returns the number of corner occurrences across all faces.
func (g *Geometry) CornerCount() int {
	n := 0
	for _, f := range g.Faces {
		n += len(f.Corners)
	}
	return n
}

// TriangleCount returns how many triangles the faces fan out to.
func (g *Geometry) TriangleCount() int {
	n := 0
	for _, f := range g.Faces {
		if len(f.Corners) >= 3 {
			n += len(f.Corners) - 2
		}
	}
	return n
}
