package galaxy

// Scatter fills a cube of side extent centred on the origin with count
// points, each with an independent random colour. It is the plain particle
// cloud the spiral generator grew out of and shares its Field layout.
func Scatter(count int, extent float64, rng Source) *Field {
	count = max(count, 0)
	f := newField(Parameters{
		Count:           count,
		Size:            0.1,
		Radius:          extent / 2,
		Branches:        1,
		RandomnessPower: 1,
	})
	for i := range f.Positions {
		f.Positions[i] = float32((rng.Float64() - 0.5) * extent)
		f.Colors[i] = float32(rng.Float64())
	}
	return f
}
