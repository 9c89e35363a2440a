// Package models stores galaxy point fields as glTF point clouds.
package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/galaxy/pkg/galaxy"
)

// SavePoints writes f as a glTF document holding one mesh with a single
// POINTS primitive. Positions are float32, colours normalized unsigned bytes.
// A ".gltf" extension writes JSON with an embedded buffer, anything else a
// binary GLB.
func SavePoints(f *galaxy.Field, path string) error {
	if f.Len() == 0 {
		return fmt.Errorf("save points: empty field")
	}

	doc := BuildDocument(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	var err error
	if strings.EqualFold(filepath.Ext(path), ".gltf") {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	} else {
		err = gltf.SaveBinary(doc, path)
	}
	if err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}

// BuildDocument converts f into an in-memory glTF document.
func BuildDocument(f *galaxy.Field, name string) *gltf.Document {
	n := f.Len()
	positions := make([][3]float32, n)
	colors := make([][3]uint8, n)
	for i := range n {
		i3 := i * 3
		positions[i] = [3]float32{f.Positions[i3], f.Positions[i3+1], f.Positions[i3+2]}
		colors[i] = [3]uint8{unorm8(f.Colors[i3]), unorm8(f.Colors[i3+1]), unorm8(f.Colors[i3+2])}
	}

	doc := gltf.NewDocument()
	posIdx := modeler.WritePosition(doc, positions)
	colIdx := modeler.WriteColor(doc, colors)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode: gltf.PrimitivePoints,
			Attributes: map[string]int{
				gltf.POSITION: posIdx,
				gltf.COLOR_0:  colIdx,
			},
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc
}

// LoadPoints reads the first POINTS primitive of a glTF/GLB file back into
// a field. Only Count is set in the returned field's parameters, plus Size
// from size.
func LoadPoints(path string, size float64) (*galaxy.Field, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitivePoints {
				continue
			}
			f, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
			}
			f.Params.Size = size
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: no point primitive", path)
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*galaxy.Field, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("point primitive has no POSITION")
	}
	positions, err := readVec3(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	n := len(positions) / 3
	colors := make([]float32, len(positions))
	for i := range colors {
		colors[i] = 1
	}
	if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		c, err := readVec3(doc, colIdx)
		if err != nil {
			return nil, fmt.Errorf("read colors: %w", err)
		}
		if len(c) != len(positions) {
			return nil, fmt.Errorf("COLOR_0 has %d entries, POSITION has %d", len(c)/3, n)
		}
		colors = c
	}

	return &galaxy.Field{
		Params:    galaxy.Parameters{Count: n},
		Positions: positions,
		Colors:    colors,
	}, nil
}

// readVec3 reads a VEC3 accessor as flat float32 triples. Float components
// are copied, normalized unsigned bytes and shorts are mapped to [0, 1].
func readVec3(doc *gltf.Document, accessorIdx int) ([]float32, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer has no data")
	}
	data := buffer.Data

	var width int
	var read func(b []byte) float32
	switch accessor.ComponentType {
	case gltf.ComponentFloat:
		width = 4
		read = func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
	case gltf.ComponentUbyte:
		width = 1
		read = func(b []byte) float32 { return float32(b[0]) / 255 }
	case gltf.ComponentUshort:
		width = 2
		read = func(b []byte) float32 { return float32(binary.LittleEndian.Uint16(b)) / 65535 }
	default:
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = 3 * width
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	count := accessor.Count
	if count > 0 && start+(count-1)*stride+3*width > len(data) {
		return nil, fmt.Errorf("accessor overruns buffer")
	}

	out := make([]float32, count*3)
	for i := range count {
		offset := start + i*stride
		for j := range 3 {
			out[i*3+j] = read(data[offset+j*width:])
		}
	}
	return out, nil
}

func unorm8(v float32) uint8 {
	return uint8(math.Max(0, math.Min(1, float64(v)))*255 + 0.5)
}
