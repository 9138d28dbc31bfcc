// Package formats provides parsers for the asset file formats used by the viewer.
// OBJ (Wavefront) mesh parser, restricted to triangulated v/vt/vn/f records.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOpenOBJ           = errors.New("cannot open OBJ file")
	ErrMalformedRecord   = errors.New("malformed OBJ record")
	ErrInvalidIndex      = errors.New("invalid OBJ index")
	ErrMeshTooLarge      = errors.New("mesh too large")
	ErrNonTriangularFace = errors.New("non-triangular OBJ face")
	ErrLineTooLong       = errors.New("OBJ line too long")
)

// DefaultOBJLineLength is the longest accepted line, excluding the line terminator.
const DefaultOBJLineLength = 255

// OBJLimits caps the number of records of each kind. Zero means unlimited.
type OBJLimits struct {
	MaxPositions int `yaml:"max_positions"`
	MaxTexCoords int `yaml:"max_texcoords"`
	MaxNormals   int `yaml:"max_normals"`
	MaxFaces     int `yaml:"max_faces"`
}

// CubeLimits returns the capacities of a textured cube: 8 corners, 4 texture
// corners, 6 side normals and two triangles per side.
func CubeLimits() OBJLimits {
	return OBJLimits{
		MaxPositions: 8,
		MaxTexCoords: 4,
		MaxNormals:   6,
		MaxFaces:     12,
	}
}

// OBJOptions controls parsing.
type OBJOptions struct {
	Limits OBJLimits

	// MaxLineLength is the longest accepted line in bytes (0 = DefaultOBJLineLength).
	MaxLineLength int

	// Triangulate fan-triangulates faces with more than 3 vertices instead of
	// rejecting them.
	Triangulate bool
}

// OBJFaceVertex references one corner of a face. All indices are 1-based.
type OBJFaceVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJFace is a triangle.
type OBJFace [3]OBJFaceVertex

// OBJCounts holds the number of records of each kind.
type OBJCounts struct {
	Positions int
	TexCoords int
	Normals   int
	Faces     int
}

// String returns the counts as "v/vt/vn/f".
func (c OBJCounts) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", c.Positions, c.TexCoords, c.Normals, c.Faces)
}

// OBJMesh is the parsed mesh store.
type OBJMesh struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace
}

// Counts returns the number of records of each kind.
func (m *OBJMesh) Counts() OBJCounts {
	return OBJCounts{
		Positions: len(m.Positions),
		TexCoords: len(m.TexCoords),
		Normals:   len(m.Normals),
		Faces:     len(m.Faces),
	}
}

// Position returns the position referenced by a 1-based index.
func (m *OBJMesh) Position(idx int) [3]float32 { return m.Positions[idx-1] }

// TexCoord returns the texture coordinate referenced by a 1-based index.
func (m *OBJMesh) TexCoord(idx int) [2]float32 { return m.TexCoords[idx-1] }

// Normal returns the normal referenced by a 1-based index.
func (m *OBJMesh) Normal(idx int) [3]float32 { return m.Normals[idx-1] }

// Validate checks that every face index is within range of its attribute.
func (m *OBJMesh) Validate() error {
	counts := m.Counts()
	for i, face := range m.Faces {
		for j, fv := range face {
			if err := checkFaceVertex(fv, counts); err != nil {
				return fmt.Errorf("face %d vertex %d: %w", i+1, j+1, err)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all positions.
// Returns zero vectors for a mesh without positions.
func (m *OBJMesh) Bounds() (min, max [3]float32) {
	if len(m.Positions) == 0 {
		return min, max
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenOBJ, path, err)
	}
	defer f.Close()

	return ParseOBJ(f, opts)
}

// ParseOBJ parses OBJ text from r.
func ParseOBJ(r io.Reader, opts OBJOptions) (*OBJMesh, error) {
	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultOBJLineLength
	}

	// The scanner buffer is larger than maxLine so overlong lines are
	// reported with their line number rather than as a scanner failure.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLine*4+2)

	p := &objParser{opts: opts, mesh: &OBJMesh{}}
	for scanner.Scan() {
		p.line++
		text := scanner.Text()
		if len(text) > maxLine {
			return nil, p.errorf(ErrLineTooLong, "%d bytes, limit %d", len(text), maxLine)
		}
		if err := p.parseLine(text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			p.line++
			return nil, p.errorf(ErrLineTooLong, "limit %d", maxLine)
		}
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return p.mesh, nil
}

type objParser struct {
	opts OBJOptions
	mesh *OBJMesh
	line int
}

func (p *objParser) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", p.line, sentinel, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "v":
		v, err := p.parseFloats(keyword, args, 3)
		if err != nil {
			return err
		}
		if err := p.checkLimit("positions", len(p.mesh.Positions), p.opts.Limits.MaxPositions); err != nil {
			return err
		}
		p.mesh.Positions = append(p.mesh.Positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.parseFloats(keyword, args, 2)
		if err != nil {
			return err
		}
		if err := p.checkLimit("texture coordinates", len(p.mesh.TexCoords), p.opts.Limits.MaxTexCoords); err != nil {
			return err
		}
		p.mesh.TexCoords = append(p.mesh.TexCoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := p.parseFloats(keyword, args, 3)
		if err != nil {
			return err
		}
		if err := p.checkLimit("normals", len(p.mesh.Normals), p.opts.Limits.MaxNormals); err != nil {
			return err
		}
		p.mesh.Normals = append(p.mesh.Normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.parseFace(args)
	}
	return nil
}

func (p *objParser) parseFloats(keyword string, args []string, n int) ([]float32, error) {
	if len(args) != n {
		return nil, p.errorf(ErrMalformedRecord, "%q expects %d values, got %d", keyword, n, len(args))
	}
	out := make([]float32, n)
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, p.errorf(ErrMalformedRecord, "%q value %d: %q is not a number", keyword, i+1, s)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) checkLimit(what string, count, limit int) error {
	if limit > 0 && count >= limit {
		return p.errorf(ErrMeshTooLarge, "more than %d %s", limit, what)
	}
	return nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return p.errorf(ErrMalformedRecord, "face needs 3 vertices, got %d", len(args))
	}
	if len(args) > 3 && !p.opts.Triangulate {
		return p.errorf(ErrNonTriangularFace, "face has %d vertices", len(args))
	}

	counts := p.mesh.Counts()
	verts := make([]OBJFaceVertex, len(args))
	for i, group := range args {
		fv, err := p.parseFaceVertex(group)
		if err != nil {
			return err
		}
		if err := checkFaceVertex(fv, counts); err != nil {
			return fmt.Errorf("line %d: face vertex %d (%s): %w", p.line, i+1, group, err)
		}
		verts[i] = fv
	}

	// Fan triangulation; a triangle yields exactly one face.
	for i := 1; i+1 < len(verts); i++ {
		if err := p.checkLimit("faces", len(p.mesh.Faces), p.opts.Limits.MaxFaces); err != nil {
			return err
		}
		p.mesh.Faces = append(p.mesh.Faces, OBJFace{verts[0], verts[i], verts[i+1]})
	}
	return nil
}

func (p *objParser) parseFaceVertex(group string) (OBJFaceVertex, error) {
	parts := strings.Split(group, "/")
	if len(parts) != 3 {
		return OBJFaceVertex{}, p.errorf(ErrMalformedRecord, "face vertex %q must be position/texcoord/normal", group)
	}

	var idx [3]int
	for i, s := range parts {
		if s == "" {
			return OBJFaceVertex{}, p.errorf(ErrMalformedRecord, "face vertex %q has an empty index", group)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return OBJFaceVertex{}, p.errorf(ErrMalformedRecord, "face vertex %q: %q is not an integer", group, s)
		}
		idx[i] = n
	}

	return OBJFaceVertex{Position: idx[0], TexCoord: idx[1], Normal: idx[2]}, nil
}

// checkFaceVertex returns an error wrapping ErrInvalidIndex when any index is
// outside [1, count].
func checkFaceVertex(fv OBJFaceVertex, counts OBJCounts) error {
	switch {
	case fv.Position < 1 || fv.Position > counts.Positions:
		return fmt.Errorf("%w: position %d of %d", ErrInvalidIndex, fv.Position, counts.Positions)
	case fv.TexCoord < 1 || fv.TexCoord > counts.TexCoords:
		return fmt.Errorf("%w: texcoord %d of %d", ErrInvalidIndex, fv.TexCoord, counts.TexCoords)
	case fv.Normal < 1 || fv.Normal > counts.Normals:
		return fmt.Errorf("%w: normal %d of %d", ErrInvalidIndex, fv.Normal, counts.Normals)
	}
	return nil
}
