package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/tiny3d/vmath"
)

// Options control STL decoding
type Options struct {
	// Scale multiplies every coordinate before quantization; 0 means 1.0
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 1.0
	}
	return o.Scale
}

const (
	stlHeaderSize = 80
	sniffSize     = 512

	// MaxCoordinate bounds scaled coordinates so node sums and products stay exact
	MaxCoordinate = 1 << 24
)

// Decode reads an ASCII or binary STL mesh
func Decode(r io.Reader, opts Options) (*Mesh, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "read stl header")
	}
	if isASCII(head) {
		return decodeASCII(br, opts)
	}
	return decodeBinary(br, opts)
}

// isASCII reports whether head looks like an ASCII STL. Binary headers may also begin
// with "solid", so a facet keyword must follow.
func isASCII(head []byte) bool {
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("solid")) {
		return false
	}
	return bytes.Contains(trimmed, []byte("facet")) || bytes.Contains(trimmed, []byte("endsolid"))
}

// meshBuilder collects facets into an indexed mesh
type meshBuilder struct {
	weld    *welder
	faces   []Face
	normals []vmath.Vector3
	scale   float64
}

func newBuilder(opts Options) *meshBuilder {
	return &meshBuilder{weld: newWelder(), scale: opts.scale()}
}

func (b *meshBuilder) facet(normal [3]float64, verts [3][3]float64) {
	var face Face
	var pts [3]vmath.Vector3
	for i, v := range verts {
		pts[i] = vmath.V3FromFloat(v[0]*b.scale, v[1]*b.scale, v[2]*b.scale)
		face[i] = b.weld.add(pts[i])
	}
	n := vmath.V3FromFloat(normal[0], normal[1], normal[2])
	if n == (vmath.Vector3{}) {
		n = vmath.V3Normalize(vmath.V3Normal(pts[0], pts[1], pts[2]))
	}
	b.faces = append(b.faces, face)
	b.normals = append(b.normals, n)
}

// checkRange rejects a vertex that leaves the supported range once scaled
func (b *meshBuilder) checkRange(v [3]float64) error {
	for i, c := range v {
		if math.Abs(c*b.scale) >= MaxCoordinate {
			return errors.Errorf("coordinate %d: %g out of range, scaled magnitude must stay below %d", i, c, MaxCoordinate)
		}
	}
	return nil
}

func (b *meshBuilder) mesh() *Mesh {
	return &Mesh{Nodes: b.weld.nodes, Faces: b.faces, Normals: b.normals}
}

func decodeASCII(r io.Reader, opts Options) (*Mesh, error) {
	b := newBuilder(opts)
	sc := bufio.NewScanner(r)

	var (
		line    int
		inFacet bool
		normal  [3]float64
		verts   [3][3]float64
		nverts  int
		ended   bool
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid", "outer", "endloop":
		case "facet":
			if inFacet {
				return nil, errors.Errorf("line %d: facet inside facet", line)
			}
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, errors.Errorf("line %d: malformed facet normal", line)
			}
			n, err := parseTriple(fields[2:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			normal, nverts, inFacet = n, 0, true
		case "vertex":
			if !inFacet {
				return nil, errors.Errorf("line %d: vertex outside facet", line)
			}
			if nverts == 3 {
				return nil, errors.Errorf("line %d: facet has more than 3 vertices", line)
			}
			if len(fields) != 4 {
				return nil, errors.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseTriple(fields[1:])
			if err == nil {
				err = b.checkRange(v)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			verts[nverts] = v
			nverts++
		case "endfacet":
			if !inFacet {
				return nil, errors.Errorf("line %d: endfacet outside facet", line)
			}
			if nverts != 3 {
				return nil, errors.Errorf("line %d: facet has %d vertices, want 3", line, nverts)
			}
			b.facet(normal, verts)
			inFacet = false
		case "endsolid":
			ended = true
		default:
			return nil, errors.Errorf("line %d: unexpected keyword %q", line, fields[0])
		}
		if ended {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read ascii stl")
	}
	if inFacet {
		return nil, errors.New("unterminated facet")
	}
	return b.mesh(), nil
}

func parseTriple(fields []string) (out [3]float64, err error) {
	for i, f := range fields {
		out[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return out, errors.Wrapf(err, "coordinate %d", i)
		}
		if math.IsInf(out[i], 0) || math.IsNaN(out[i]) {
			return out, errors.Errorf("coordinate %d: non-finite value %q", i, f)
		}
	}
	return out, nil
}

type stlRecord struct {
	Normal [3]float32
	Verts  [3][3]float32
	Attr   uint16
}

func decodeBinary(r io.Reader, opts Options) (*Mesh, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "read binary stl header")
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read triangle count")
	}

	b := newBuilder(opts)
	for i := uint32(0); i < count; i++ {
		var rec stlRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, "record %d of %d", i, count)
		}
		var verts [3][3]float64
		for j := range verts {
			for k := range verts[j] {
				verts[j][k] = float64(rec.Verts[j][k])
			}
		}
		normal := [3]float64{float64(rec.Normal[0]), float64(rec.Normal[1]), float64(rec.Normal[2])}
		if err := checkFinite(normal, verts); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		for _, v := range verts {
			if err := b.checkRange(v); err != nil {
				return nil, errors.Wrapf(err, "record %d", i)
			}
		}
		b.facet(normal, verts)
	}
	return b.mesh(), nil
}

func checkFinite(normal [3]float64, verts [3][3]float64) error {
	for _, v := range append([][3]float64{normal}, verts[:]...) {
		for _, c := range v {
			if math.IsInf(c, 0) || math.IsNaN(c) {
				return errors.New("non-finite coordinate")
			}
		}
	}
	return nil
}

// EncodeBinary writes m as a binary STL. Coordinates are converted back to float32.
func EncodeBinary(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	var header [stlHeaderSize]byte
	copy(header[:], "tiny3d fixed-point mesh")
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return errors.Wrap(err, "write triangle count")
	}
	for i, f := range m.Faces {
		var rec stlRecord
		n := m.FaceNormal(i)
		if m.Normals != nil {
			n = m.Normals[i]
		}
		rec.Normal = toFloat32(n)
		for j, idx := range f {
			rec.Verts[j] = toFloat32(m.Nodes[idx])
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return errors.Wrapf(err, "write record %d", i)
		}
	}
	return nil
}

func toFloat32(v vmath.Vector3) [3]float32 {
	return [3]float32{float32(vmath.ToFloat(v.X)), float32(vmath.ToFloat(v.Y)), float32(vmath.ToFloat(v.Z))}
}
