package world

import (
	"context"
	"fmt"
	"sync"
)

// Stage selects what a LoadJob does to its chunk.
type Stage int

const (
	StageGenerate Stage = iota // allocate and generate the chunk
	StageLoad                  // cull and collect lights of an existing chunk
)

// LoadJob represents a chunk generation or load request
type LoadJob struct {
	Coord ChunkCoord
	Stage Stage
	// Result channel - will be sent the result when done
	ResultChan chan LoadResult
}

// LoadResult contains the result of a LoadJob
type LoadResult struct {
	Coord ChunkCoord
	Chunk *Chunk
	Err   error
}

// LoadPool runs chunk jobs for one World on a fixed set of goroutines.
// Chunks share nothing during generation or load, so the whole chunk is the
// unit of work.
type LoadPool struct {
	world    *World
	jobQueue chan LoadJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewLoadPool creates a pool bound to ctx and starts its workers.
func NewLoadPool(ctx context.Context, w *World, workers, queueSize int) *LoadPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	pool := &LoadPool{
		world:    w,
		jobQueue: make(chan LoadJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// SubmitJobBlocking blocks until the job is queued or the pool is cancelled.
// After Shutdown it returns context.Canceled.
func (p *LoadPool) SubmitJobBlocking(job LoadJob) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

func (p *LoadPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(job)
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *LoadPool) run(job LoadJob) LoadResult {
	res := LoadResult{Coord: job.Coord}
	switch job.Stage {
	case StageGenerate:
		res.Chunk, res.Err = NewChunk(job.Coord, p.world.opts, p.world.resolver, p.world.gen)
	case StageLoad:
		c, ok := p.world.Chunk(job.Coord)
		if !ok {
			res.Err = fmt.Errorf("load chunk %v: %w", job.Coord, ErrInvalidCoordinate)
			break
		}
		res.Chunk = c
		res.Err = c.Load()
	default:
		res.Err = fmt.Errorf("unknown stage %d", job.Stage)
	}
	return res
}

// Shutdown stops the workers and waits for them to exit. The job queue is
// never closed, so late submissions fail instead of panicking.
func (p *LoadPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
