package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// maxLineSize bounds a single OBJ line. Long face records on dense meshes
// easily exceed bufio's 64KB default.
const maxLineSize = 4 << 20

// ParseFile opens and parses an OBJ file.
func ParseFile(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Detail: err.Error(), Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads OBJ records from r. path is only used in error messages.
func Parse(r io.Reader, path string) (*Geometry, error) {
	p := &parser{
		geom: &Geometry{
			Path:    path,
			Skipped: make(map[string]int),
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: p.line + 1, Detail: fmt.Sprintf("read: %v", err), Err: err}
	}

	if err := p.checkRanges(); err != nil {
		return nil, err
	}
	return p.geom, nil
}

type parser struct {
	geom *Geometry
	line int
}

func (p *parser) errorf(cause error, format string, args ...any) error {
	return &ParseError{
		Path:   p.geom.Path,
		Line:   p.line,
		Detail: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

func (p *parser) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)

	switch fields[0] {
	case "v":
		v, err := p.parseVec3(fields)
		if err != nil {
			return err
		}
		p.geom.Positions = append(p.geom.Positions, v)
	case "vn":
		v, err := p.parseVec3(fields)
		if err != nil {
			return err
		}
		p.geom.Normals = append(p.geom.Normals, v)
	case "vt":
		v, err := p.parseTexCoord(fields)
		if err != nil {
			return err
		}
		p.geom.TexCoords = append(p.geom.TexCoords, v)
	case "f":
		return p.parseFace(fields)
	default:
		p.geom.Skipped[fields[0]]++
	}
	return nil
}

func (p *parser) parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 4 {
		return v, p.errorf(ErrSyntax, "%q record needs 3 components, got %d", fields[0], len(fields)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := p.parseFloat(fields[i+1])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *parser) parseTexCoord(fields []string) (mgl32.Vec2, error) {
	var v mgl32.Vec2
	if len(fields) < 2 {
		return v, p.errorf(ErrSyntax, "vt record needs at least 1 component")
	}
	// A lone u is legal; v defaults to 0.
	for i := 0; i < 2 && i+1 < len(fields); i++ {
		f, err := p.parseFloat(fields[i+1])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// parseFloat reads tok as float64 so a well-formed literal too large for
// float32 is told apart from a malformed one.
func (p *parser) parseFloat(tok string) (float32, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, p.errorf(ErrNumber, "invalid number %q", tok)
	}
	if err != nil || math.Abs(f) > math.MaxFloat32 {
		return 0, p.errorf(ErrNumberRange, "number %q does not fit in float32", tok)
	}
	return float32(f), nil
}

func (p *parser) parseFace(fields []string) error {
	if len(fields) < 4 {
		return p.errorf(ErrSyntax, "face needs at least 3 corners, got %d", len(fields)-1)
	}

	face := Face{
		Corners: make([]Corner, 0, len(fields)-1),
		Line:    p.line,
	}
	counts := [3]int{len(p.geom.Positions), len(p.geom.TexCoords), len(p.geom.Normals)}
	for _, tok := range fields[1:] {
		c, err := ParseCorner(tok, counts)
		if err != nil {
			return p.errorf(err, "face corner %q: %v", tok, err)
		}
		face.Corners = append(face.Corners, c)
	}
	p.geom.Faces = append(p.geom.Faces, face)
	return nil
}

// ParseCorner parses a face corner of the form p, p/t, p/t/n or p//n.
// counts holds the current position, texcoord and normal list lengths and
// is used to resolve negative (relative) indices. Empty components
// resolve to NoIndex.
func ParseCorner(tok string, counts [3]int) (Corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return Corner{}, ErrSyntax
	}

	idx := [3]Index{NoIndex, NoIndex, NoIndex}
	for i, part := range parts {
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return Corner{}, ErrNumber
		}
		switch {
		case v > 0:
			idx[i] = Index(v - 1)
		case v < 0:
			resolved := counts[i] + int(v)
			if resolved < 0 {
				return Corner{}, ErrIndexRange
			}
			idx[i] = Index(resolved)
		default:
			return Corner{}, ErrZeroIndex
		}
	}
	return Corner{Position: idx[0], TexCoord: idx[1], Normal: idx[2]}, nil
}

// checkRanges validates face indices once every list is complete, so faces
// may reference attributes declared later in the file.
func (p *parser) checkRanges() error {
	g := p.geom
	for _, f := range g.Faces {
		for _, c := range f.Corners {
			checks := [3]struct {
				kind string
				idx  Index
				n    int
			}{
				{"position", c.Position, len(g.Positions)},
				{"texcoord", c.TexCoord, len(g.TexCoords)},
				{"normal", c.Normal, len(g.Normals)},
			}
			for _, chk := range checks {
				if chk.idx.Valid() && int(chk.idx) >= chk.n {
					return &ParseError{
						Path:   g.Path,
						Line:   f.Line,
						Detail: fmt.Sprintf("%s index %d out of range (%d %ss)", chk.kind, int(chk.idx)+1, chk.n, chk.kind),
						Err:    ErrIndexRange,
					}
				}
			}
		}
	}
	return nil
}
