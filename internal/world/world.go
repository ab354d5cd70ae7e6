package world

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/logger"

	"go.uber.org/zap"
)

// World owns a set of chunks sharing one set of options, resolver and
// generator.
type World struct {
	opts     Options
	resolver assets.Resolver
	gen      Generator

	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

// New creates an empty world. opts are validated here so that every chunk
// built later shares a valid grid.
func New(opts Options, r assets.Resolver, gen Generator) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &World{
		opts:     opts,
		resolver: r,
		gen:      gen,
		chunks:   make(map[ChunkCoord]*Chunk),
	}, nil
}

// Options returns the chunk options shared by all chunks.
func (w *World) Options() Options {
	return w.opts
}

// Chunk returns the chunk at cc, if present.
func (w *World) Chunk(cc ChunkCoord) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[cc]
	return c, ok
}

// Chunks returns all chunks ordered by X then Z.
func (w *World) Chunks() []*Chunk {
	w.mu.RLock()
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.X != out[j].Coord.X {
			return out[i].Coord.X < out[j].Coord.X
		}
		return out[i].Coord.Z < out[j].Coord.Z
	})
	return out
}

func (w *World) put(c *Chunk) {
	w.mu.Lock()
	w.chunks[c.Coord] = c
	w.mu.Unlock()
}

// Generate creates every listed chunk that does not exist yet, using up to
// workers goroutines.
func (w *World) Generate(ctx context.Context, coords []ChunkCoord, workers int) error {
	var missing []ChunkCoord
	for _, cc := range coords {
		if _, ok := w.Chunk(cc); !ok {
			missing = append(missing, cc)
		}
	}
	return w.run(ctx, StageGenerate, missing, workers)
}

// LoadAll loads every chunk that is still in StateGenerated.
func (w *World) LoadAll(ctx context.Context, workers int) error {
	var pending []ChunkCoord
	for _, c := range w.Chunks() {
		if c.State() == StateGenerated {
			pending = append(pending, c.Coord)
		}
	}
	return w.run(ctx, StageLoad, pending, workers)
}

func (w *World) run(ctx context.Context, stage Stage, coords []ChunkCoord, workers int) error {
	if len(coords) == 0 {
		return nil
	}
	pool := NewLoadPool(ctx, w, workers, len(coords))
	defer pool.Shutdown()

	results := make(chan LoadResult, len(coords))
	for _, cc := range coords {
		if err := pool.SubmitJobBlocking(LoadJob{Coord: cc, Stage: stage, ResultChan: results}); err != nil {
			return err
		}
	}

	var firstErr error
	for range coords {
		select {
		case res := <-results:
			if res.Err != nil {
				logger.Log.Error("chunk job failed",
					zap.Int("x", res.Coord.X), zap.Int("z", res.Coord.Z), zap.Error(res.Err))
				if firstErr == nil {
					firstErr = res.Err
				}
				continue
			}
			if stage == StageGenerate {
				w.put(res.Chunk)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return firstErr
}

// Place stores a block at a world coordinate. The owning chunk must exist.
func (w *World) Place(pos Coord, spec BlockSpec) (*Block, error) {
	cc := ChunkCoordOf(pos.X, pos.Z, w.opts)
	c, ok := w.Chunk(cc)
	if !ok {
		return nil, fmt.Errorf("%w: no chunk at %v for %v", ErrInvalidCoordinate, cc, pos)
	}
	lx, ly, lz := LocalOf(pos.X, pos.Y, pos.Z, w.opts)
	return c.Place(lx, ly, lz, spec)
}

// BlockAt returns the block at a world coordinate, if any.
func (w *World) BlockAt(pos Coord) (*Block, bool) {
	c, ok := w.Chunk(ChunkCoordOf(pos.X, pos.Z, w.opts))
	if !ok {
		return nil, false
	}
	lx, ly, lz := LocalOf(pos.X, pos.Y, pos.Z, w.opts)
	b, err := c.At(lx, ly, lz)
	if err != nil || b == nil {
		return nil, false
	}
	return b, true
}

// PointLights concatenates the packed lights of all loaded chunks in
// Chunks() order.
func (w *World) PointLights() []PackedLight {
	var out []PackedLight
	for _, c := range w.Chunks() {
		lights, err := c.PointLights()
		if err != nil {
			continue
		}
		out = append(out, lights...)
	}
	return out
}

// Area returns the chunk coordinates in a square of the given radius around center.
func Area(center ChunkCoord, radius int) []ChunkCoord {
	var out []ChunkCoord
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			out = append(out, ChunkCoord{X: x, Z: z})
		}
	}
	return out
}
