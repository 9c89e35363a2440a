package galaxy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of consecutive points generated from one
// random stream by GenerateParallel.
const ChunkSize = 16384

// GenerateParallel builds the same kind of field as Generate, splitting the
// index range into chunks of ChunkSize points spread over workers
// goroutines. Chunk k draws from NewChunkSource(seed, k), so the result
// depends only on p and seed, never on the number of workers. workers <= 0
// uses GOMAXPROCS.
func GenerateParallel(ctx context.Context, p Parameters, seed uint64, workers int) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	f := newField(p)
	chunks := (p.Count + ChunkSize - 1) / ChunkSize

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := NewChunkSource(seed, chunk)
			start := chunk * ChunkSize
			end := min(start+ChunkSize, p.Count)
			for i := start; i < end; i++ {
				f.fill(i, rng)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// RegenerateParallel is Regenerate on top of GenerateParallel.
func RegenerateParallel(ctx context.Context, old *Field, p Parameters, seed uint64, workers int) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	old.Dispose()
	return GenerateParallel(ctx, p, seed, workers)
}
