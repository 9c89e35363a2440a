package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnDisc(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		r     float64
		y     float64
		want  Vec3
	}{
		{"plus x", 0, 2, 0, V3(2, 0, 0)},
		{"plus z", math.Pi / 2, 2, 0, V3(0, 0, 2)},
		{"minus x", math.Pi, 1, 0.5, V3(-1, 0.5, 0)},
		{"zero radius", 1.3, 0, 0, Zero3()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := OnDisc(tc.angle, tc.r, tc.y)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tc.want.Z, got.Z, 1e-9)
		})
	}
}

func TestDiscLenAndAngle(t *testing.T) {
	v := OnDisc(0.75, 3, 9)
	assert.InDelta(t, 3, v.DiscLen(), 1e-9)
	assert.InDelta(t, 0.75, v.DiscAngle(), 1e-9)
}

func TestMulVec3Translate(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(ScaleUniform(2))
	got := m.MulVec3(V3(1, 1, 1))
	assert.Equal(t, V3(3, 4, 5), got)
}

func TestRotateYQuarterTurn(t *testing.T) {
	got := RotateY(math.Pi / 2).MulVec3(V3(1, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, -1, got.Z, 1e-9)
}

func TestLerpMinMax(t *testing.T) {
	a, b := V3(0, 10, -2), V3(4, 0, 2)
	assert.Equal(t, V3(2, 5, 0), a.Lerp(b, 0.5))
	assert.Equal(t, V3(0, 0, -2), a.Min(b))
	assert.Equal(t, V3(4, 10, 2), a.Max(b))
}
