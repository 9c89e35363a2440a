package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/galaxy/pkg/galaxy"
)

func testField(t *testing.T, count int) *galaxy.Field {
	t.Helper()
	p := galaxy.DefaultParameters()
	p.Count = count
	f, err := galaxy.Generate(p, galaxy.NewSource(3))
	require.NoError(t, err)
	return f
}

func TestLoadPointsInvalidPath(t *testing.T) {
	_, err := LoadPoints("/nonexistent/path.glb", 0.01)
	assert.Error(t, err)
}

func TestBuildDocumentUsesPointPrimitive(t *testing.T) {
	doc := BuildDocument(testField(t, 10), "galaxy")

	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)
	prim := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitivePoints, prim.Mode)
	assert.Contains(t, prim.Attributes, gltf.POSITION)
	assert.Contains(t, prim.Attributes, gltf.COLOR_0)
	assert.Equal(t, 10, doc.Accessors[prim.Attributes[gltf.POSITION]].Count)
	assert.Equal(t, []int{0}, doc.Scenes[0].Nodes)
}

func TestSaveLoadPoints(t *testing.T) {
	for _, ext := range []string{".glb", ".gltf"} {
		t.Run(ext, func(t *testing.T) {
			f := testField(t, 257)
			path := filepath.Join(t.TempDir(), "galaxy"+ext)
			require.NoError(t, SavePoints(f, path))

			got, err := LoadPoints(path, 0.02)
			require.NoError(t, err)
			assert.Equal(t, f.Len(), got.Len())
			assert.Equal(t, 0.02, got.Params.Size)
			assert.Equal(t, f.Positions, got.Positions)
			for i := range f.Colors {
				assert.InDelta(t, f.Colors[i], got.Colors[i], 1.0/255, "colour component %d", i)
			}
		})
	}
}

func TestSavePointsRejectsEmpty(t *testing.T) {
	err := SavePoints(&galaxy.Field{}, filepath.Join(t.TempDir(), "empty.glb"))
	assert.Error(t, err)
}

func TestLoadPointsWithoutPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(gltf.NewDocument(), path))
	_, err := LoadPoints(path, 0.01)
	assert.ErrorContains(t, err, "no point primitive")
}
