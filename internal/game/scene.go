package game

import (
	"context"
	"fmt"
	"time"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/config"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

// BuildWorld generates the configured chunk area, places the configured
// lamps and loads every chunk. The returned world is ready to aggregate.
func BuildWorld(ctx context.Context, cfg *config.Config, r assets.Resolver) (*world.World, error) {
	start := time.Now()
	w, err := world.New(cfg.ChunkOptions(), r, cfg.NewGenerator())
	if err != nil {
		return nil, err
	}

	area := world.Area(world.ChunkCoord{}, cfg.Chunk.AreaRadius)
	if err := w.Generate(ctx, area, cfg.Chunk.Workers); err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	for i, l := range cfg.Lights {
		pos, spec := l.Block()
		if _, err := w.Place(pos, spec); err != nil {
			return nil, fmt.Errorf("place light %d at %v: %w", i, pos, err)
		}
	}

	if err := w.LoadAll(ctx, cfg.Chunk.Workers); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	logger.Log.Info("world ready",
		zap.Int("chunks", len(area)),
		zap.Int("pointLights", len(w.PointLights())),
		zap.Duration("elapsed", time.Since(start)))
	return w, nil
}
