package galaxy

import (
	"context"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(count int) Parameters {
	p := DefaultParameters()
	p.Count = count
	return p
}

func TestGenerateLength(t *testing.T) {
	for _, count := range []int{1, 2, 7, 1000} {
		f, err := Generate(testParams(count), NewSource(1))
		require.NoError(t, err)
		assert.Equal(t, count, f.Len())
		assert.Len(t, f.Positions, count*3)
		assert.Len(t, f.Colors, count*3)
	}
}

func TestGenerateEmpty(t *testing.T) {
	f, err := Generate(testParams(0), NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.Positions)
	assert.Empty(t, f.Colors)
}

func TestGenerateRejectsBranches(t *testing.T) {
	for _, branches := range []int{0, -1} {
		p := testParams(10)
		p.Branches = branches
		f, err := Generate(p, NewSource(1))
		assert.ErrorIs(t, err, ErrInvalidParameter)
		assert.Nil(t, f)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		ok     bool
	}{
		{"defaults", func(p *Parameters) {}, true},
		{"zero count", func(p *Parameters) { p.Count = 0 }, true},
		{"zero radius", func(p *Parameters) { p.Radius = 0 }, true},
		{"negative spin", func(p *Parameters) { p.Spin = -3 }, true},
		{"negative count", func(p *Parameters) { p.Count = -1 }, false},
		{"negative radius", func(p *Parameters) { p.Radius = -1 }, false},
		{"nan radius", func(p *Parameters) { p.Radius = math.NaN() }, false},
		{"infinite spin", func(p *Parameters) { p.Spin = math.Inf(1) }, false},
		{"negative randomness", func(p *Parameters) { p.Randomness = -0.1 }, false},
		{"zero power", func(p *Parameters) { p.RandomnessPower = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)
			err := p.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			}
		})
	}
}

func TestGenerateRadialBound(t *testing.T) {
	p := testParams(5000)
	p.Randomness = 0.8
	p.RandomnessPower = 1
	f, err := Generate(p, NewSource(7))
	require.NoError(t, err)

	// Horizontal jitter is at most Randomness*r on each of x and z.
	bound := p.Radius * (1 + math.Sqrt2*p.Randomness)
	for i := range f.Len() {
		pos := f.Position(i)
		assert.LessOrEqual(t, pos.DiscLen(), bound+1e-4, "point %d", i)
		assert.LessOrEqual(t, math.Abs(pos.Y), p.Randomness*p.Radius/verticalSquash+1e-4, "point %d", i)
	}
}

func TestGenerateColorRange(t *testing.T) {
	p := testParams(2000)
	f, err := Generate(p, NewSource(3))
	require.NoError(t, err)

	in, out := p.InsideColor, p.OutsideColor
	lo := colorful.Color{R: math.Min(in.R, out.R), G: math.Min(in.G, out.G), B: math.Min(in.B, out.B)}
	hi := colorful.Color{R: math.Max(in.R, out.R), G: math.Max(in.G, out.G), B: math.Max(in.B, out.B)}
	const eps = 1e-6
	for i := range f.Len() {
		c := f.Color(i)
		assert.True(t, c.R >= lo.R-eps && c.R <= hi.R+eps, "point %d red %v", i, c.R)
		assert.True(t, c.G >= lo.G-eps && c.G <= hi.G+eps, "point %d green %v", i, c.G)
		assert.True(t, c.B >= lo.B-eps && c.B <= hi.B+eps, "point %d blue %v", i, c.B)
	}
}

func TestGenerateColorFollowsRadius(t *testing.T) {
	p := testParams(500)
	p.Randomness = 0
	p.InsideColor = colorful.Color{R: 0, G: 0, B: 0}
	p.OutsideColor = colorful.Color{R: 1, G: 1, B: 1}
	f, err := Generate(p, NewSource(11))
	require.NoError(t, err)

	for i := range f.Len() {
		want := f.Position(i).DiscLen() / p.Radius
		assert.InDelta(t, want, f.Color(i).R, 1e-5, "point %d", i)
	}
}

func TestGenerateSingleBranchFollowsSpin(t *testing.T) {
	p := testParams(500)
	p.Branches = 1
	p.Randomness = 0
	p.Spin = 0.4
	f, err := Generate(p, NewSource(5))
	require.NoError(t, err)

	for i := range f.Len() {
		pos := f.Position(i)
		r := pos.DiscLen()
		if r < 0.05 {
			continue
		}
		want := math.Remainder(r*p.Spin, 2*math.Pi)
		got := math.Remainder(pos.DiscAngle(), 2*math.Pi)
		assert.InDelta(t, 0, math.Remainder(got-want, 2*math.Pi), 1e-4, "point %d", i)
		assert.Zero(t, pos.Y)
	}
}

func TestGenerateBranchAssignment(t *testing.T) {
	p := testParams(30)
	p.Branches = 3
	p.Randomness = 0
	p.Spin = 0
	f, err := Generate(p, NewSource(9))
	require.NoError(t, err)

	for i := range f.Len() {
		pos := f.Position(i)
		if pos.DiscLen() < 0.05 {
			continue
		}
		want := float64(i%3) / 3 * 2 * math.Pi
		assert.InDelta(t, 0, math.Remainder(pos.DiscAngle()-want, 2*math.Pi), 1e-4, "point %d", i)
	}
}

func TestGenerateZeroRadius(t *testing.T) {
	p := testParams(100)
	p.Radius = 0
	f, err := Generate(p, NewSource(2))
	require.NoError(t, err)

	for i := range f.Len() {
		pos := f.Position(i)
		assert.Zero(t, pos.Len(), "point %d", i)
		c := f.Color(i)
		assert.InDelta(t, p.InsideColor.R, c.R, 1e-6)
		assert.InDelta(t, p.InsideColor.G, c.G, 1e-6)
		assert.InDelta(t, p.InsideColor.B, c.B, 1e-6)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := testParams(1000)
	a, err := Generate(p, NewSource(42))
	require.NoError(t, err)
	b, err := Generate(p, NewSource(42))
	require.NoError(t, err)
	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Colors, b.Colors)

	c, err := Generate(p, NewSource(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.Positions, c.Positions)
}

func TestGenerateParallelIndependentOfWorkers(t *testing.T) {
	p := testParams(ChunkSize*3 + 17)
	one, err := GenerateParallel(context.Background(), p, 99, 1)
	require.NoError(t, err)
	many, err := GenerateParallel(context.Background(), p, 99, 8)
	require.NoError(t, err)

	assert.Equal(t, p.Count, many.Len())
	assert.Equal(t, one.Positions, many.Positions)
	assert.Equal(t, one.Colors, many.Colors)
}

func TestGenerateParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, err := GenerateParallel(ctx, testParams(ChunkSize*2), 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, f)
}

func TestGenerateParallelRejectsBranches(t *testing.T) {
	p := testParams(10)
	p.Branches = 0
	_, err := GenerateParallel(context.Background(), p, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRegenerateDisposesOld(t *testing.T) {
	old, err := Generate(testParams(50), NewSource(1))
	require.NoError(t, err)

	p := testParams(80)
	next, err := Regenerate(old, p, NewSource(2))
	require.NoError(t, err)
	assert.Equal(t, 0, old.Len())
	assert.Nil(t, old.Positions)
	assert.Equal(t, 80, next.Len())
}

func TestRegenerateKeepsOldOnError(t *testing.T) {
	old, err := Generate(testParams(50), NewSource(1))
	require.NoError(t, err)

	p := testParams(80)
	p.Branches = 0
	next, err := Regenerate(old, p, NewSource(2))
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, next)
	assert.Equal(t, 50, old.Len())
}

func TestRegenerateFromNil(t *testing.T) {
	next, err := Regenerate(nil, testParams(5), NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 5, next.Len())
}

func TestClamp(t *testing.T) {
	p := Parameters{Count: 5, Size: 1, Radius: 100, Branches: 0, Spin: -9, Randomness: -1, RandomnessPower: 50}
	got := p.Clamp(DefaultLimits)
	assert.Equal(t, 100, got.Count)
	assert.Equal(t, 0.1, got.Size)
	assert.Equal(t, 20.0, got.Radius)
	assert.Equal(t, 1, got.Branches)
	assert.Equal(t, -5.0, got.Spin)
	assert.Equal(t, 0.0, got.Randomness)
	assert.Equal(t, 10.0, got.RandomnessPower)
	assert.NoError(t, got.Validate())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, colorful.Color{R: 1, G: 0, B: 0}, c)

	_, err = ParseColor("not-a-colour")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestScatter(t *testing.T) {
	f := Scatter(1000, 10, NewSource(4))
	assert.Equal(t, 1000, f.Len())
	for i := range f.Len() {
		p := f.Position(i)
		assert.True(t, math.Abs(p.X) <= 5 && math.Abs(p.Y) <= 5 && math.Abs(p.Z) <= 5)
		c := f.Color(i)
		assert.True(t, c.R >= 0 && c.R < 1)
	}
	assert.Equal(t, 0, Scatter(-3, 10, NewSource(1)).Len())
}

func TestFieldBounds(t *testing.T) {
	f := &Field{Positions: []float32{1, -2, 3, -4, 5, 0}}
	lo, hi := f.Bounds()
	assert.Equal(t, -4.0, lo.X)
	assert.Equal(t, -2.0, lo.Y)
	assert.Equal(t, 0.0, lo.Z)
	assert.Equal(t, 1.0, hi.X)
	assert.Equal(t, 5.0, hi.Y)
	assert.Equal(t, 3.0, hi.Z)

	var empty *Field
	assert.Equal(t, 0, empty.Len())
	empty.Dispose()
}

func BenchmarkGenerate(b *testing.B) {
	p := DefaultParameters()
	rng := NewSource(1)
	for b.Loop() {
		_, _ = Generate(p, rng)
	}
}

func BenchmarkGenerateParallel(b *testing.B) {
	p := DefaultParameters()
	ctx := context.Background()
	for b.Loop() {
		_, _ = GenerateParallel(ctx, p, 1, 0)
	}
}
