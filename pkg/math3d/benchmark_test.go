package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkOnDisc(b *testing.B) {
	for b.Loop() {
		_ = OnDisc(1.25, 3, 0.1)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(3, 3, 3), Zero3(), Up())
	proj := Perspective(math.Pi/3, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
