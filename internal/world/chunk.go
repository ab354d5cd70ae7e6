package world

import (
	"errors"
	"fmt"
	"math"
	"time"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	// Generation sub-volume
	GenSizeX = 16
	GenSizeY = 2
	GenSizeZ = 16

	// MaxChunkCells bounds ExtentX*ExtentY*ExtentZ (256 default chunks).
	MaxChunkCells = 256 * ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

var (
	ErrInvalidCoordinate = errors.New("coordinate out of chunk bounds")
	ErrInvalidExtent     = errors.New("invalid chunk extent")
	ErrLifecycle         = errors.New("chunk lifecycle violation")
)

// Options sets the grid and generation extents of a chunk.
type Options struct {
	ExtentX, ExtentY, ExtentZ          int
	GenExtentX, GenExtentY, GenExtentZ int
}

// DefaultOptions returns a 16x256x16 chunk with a 16x2x16 generation box.
func DefaultOptions() Options {
	return Options{
		ExtentX:    ChunkSizeX,
		ExtentY:    ChunkSizeY,
		ExtentZ:    ChunkSizeZ,
		GenExtentX: GenSizeX,
		GenExtentY: GenSizeY,
		GenExtentZ: GenSizeZ,
	}
}

// Validate rejects non-positive extents, grids of more than MaxChunkCells
// cells and generation boxes larger than the grid.
func (o Options) Validate() error {
	if o.ExtentX <= 0 || o.ExtentY <= 0 || o.ExtentZ <= 0 {
		return fmt.Errorf("%w: extent %dx%dx%d", ErrInvalidExtent, o.ExtentX, o.ExtentY, o.ExtentZ)
	}
	// divide instead of multiplying so huge extents cannot wrap
	if o.ExtentX > MaxChunkCells/o.ExtentY/o.ExtentZ {
		return fmt.Errorf("%w: extent %dx%dx%d exceeds %d cells", ErrInvalidExtent,
			o.ExtentX, o.ExtentY, o.ExtentZ, MaxChunkCells)
	}
	if o.GenExtentX < 0 || o.GenExtentY < 0 || o.GenExtentZ < 0 ||
		o.GenExtentX > o.ExtentX || o.GenExtentY > o.ExtentY || o.GenExtentZ > o.ExtentZ {
		return fmt.Errorf("%w: generation box %dx%dx%d does not fit %dx%dx%d", ErrInvalidExtent,
			o.GenExtentX, o.GenExtentY, o.GenExtentZ, o.ExtentX, o.ExtentY, o.ExtentZ)
	}
	return nil
}

// State is a chunk lifecycle state.
type State int

const (
	StateUnloaded State = iota
	StateGenerated
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateGenerated:
		return "generated"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ChunkCoord locates a chunk on the XZ plane.
type ChunkCoord struct {
	X, Z int
}

// box is a half-open region of local coordinates.
type box struct {
	min, max Coord
}

func (b box) empty() bool {
	return b.min.X >= b.max.X || b.min.Y >= b.max.Y || b.min.Z >= b.max.Z
}

// extend grows b to cover p.
func (b box) extend(p Coord) box {
	if b.empty() {
		return box{min: p, max: Coord{p.X + 1, p.Y + 1, p.Z + 1}}
	}
	b.min = Coord{min(b.min.X, p.X), min(b.min.Y, p.Y), min(b.min.Z, p.Z)}
	b.max = Coord{max(b.max.X, p.X+1), max(b.max.Y, p.Y+1), max(b.max.Z, p.Z+1)}
	return b
}

// Chunk is a fixed-extent grid of optional blocks.
type Chunk struct {
	Coord    ChunkCoord
	opts     Options
	blocks   []*Block
	resolver assets.Resolver
	state    State
	lights   []PackedLight
	// cull covers the generation box plus every manually placed cell.
	cull box
}

// NewChunk allocates the grid, runs gen over it and leaves the chunk in
// StateGenerated. A nil gen leaves the grid empty.
func NewChunk(coord ChunkCoord, opts Options, r assets.Resolver, gen Generator) (*Chunk, error) {
	defer profiling.Track("world.NewChunk")()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	c := &Chunk{
		Coord:    coord,
		opts:     opts,
		blocks:   make([]*Block, opts.ExtentX*opts.ExtentY*opts.ExtentZ),
		resolver: r,
		state:    StateUnloaded,
		cull:     box{max: Coord{opts.GenExtentX, opts.GenExtentY, opts.GenExtentZ}},
	}

	if gen != nil {
		if err := gen.Generate(c); err != nil {
			return nil, fmt.Errorf("generate chunk %v: %w", coord, err)
		}
	}
	c.state = StateGenerated

	logger.Log.Debug("chunk constructed",
		zap.Int("x", coord.X), zap.Int("z", coord.Z),
		zap.Int("blocks", c.Count()),
		zap.Duration("elapsed", time.Since(start)))
	return c, nil
}

// Options returns the extents the chunk was built with.
func (c *Chunk) Options() Options {
	return c.opts
}

// State returns the lifecycle state.
func (c *Chunk) State() State {
	return c.state
}

// InBounds reports whether (x, y, z) is a local coordinate of this chunk.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.opts.ExtentX && y >= 0 && y < c.opts.ExtentY && z >= 0 && z < c.opts.ExtentZ
}

// index converts local coordinates (x, y, z) → flat index. Callers check bounds.
func (c *Chunk) index(x, y, z int) int {
	return x*c.opts.ExtentY*c.opts.ExtentZ + y*c.opts.ExtentZ + z
}

func (c *Chunk) checkBounds(x, y, z int) error {
	if !c.InBounds(x, y, z) {
		return fmt.Errorf("%w: (%d, %d, %d) outside %dx%dx%d", ErrInvalidCoordinate,
			x, y, z, c.opts.ExtentX, c.opts.ExtentY, c.opts.ExtentZ)
	}
	return nil
}

// At returns the block at local coordinates, or nil for an empty cell.
func (c *Chunk) At(x, y, z int) (*Block, error) {
	if err := c.checkBounds(x, y, z); err != nil {
		return nil, err
	}
	return c.blocks[c.index(x, y, z)], nil
}

// occupied is the unchecked lookup used by the culling pass.
func (c *Chunk) occupied(x, y, z int) bool {
	return c.blocks[c.index(x, y, z)] != nil
}

// WorldCoord translates local coordinates into world space.
func (c *Chunk) WorldCoord(x, y, z int) Coord {
	return Coord{
		X: x + c.Coord.X*c.opts.ExtentX,
		Y: y,
		Z: z + c.Coord.Z*c.opts.ExtentZ,
	}
}

// Place builds a block from spec and stores it at local coordinates,
// replacing any previous occupant. Placement is only allowed before Load.
func (c *Chunk) Place(x, y, z int, spec BlockSpec) (*Block, error) {
	if c.state == StateLoaded {
		return nil, fmt.Errorf("%w: place at (%d, %d, %d) after load", ErrLifecycle, x, y, z)
	}
	if err := c.checkBounds(x, y, z); err != nil {
		return nil, err
	}
	b, err := NewBlock(c.resolver, c.WorldCoord(x, y, z), spec)
	if err != nil {
		return nil, err
	}
	c.blocks[c.index(x, y, z)] = b
	c.cull = c.cull.extend(Coord{x, y, z})
	return b, nil
}

// Remove empties a cell. Like Place it is only allowed before Load.
func (c *Chunk) Remove(x, y, z int) error {
	if c.state == StateLoaded {
		return fmt.Errorf("%w: remove at (%d, %d, %d) after load", ErrLifecycle, x, y, z)
	}
	if err := c.checkBounds(x, y, z); err != nil {
		return err
	}
	c.blocks[c.index(x, y, z)] = nil
	return nil
}

// Load runs face culling and light collection once and moves the chunk to
// StateLoaded. There is no way back to StateGenerated.
func (c *Chunk) Load() error {
	if c.state != StateGenerated {
		return fmt.Errorf("%w: load from state %s", ErrLifecycle, c.state)
	}
	defer profiling.Track("world.Load")()

	start := time.Now()
	Cull(c)
	cullTime := time.Since(start)

	start = time.Now()
	c.lights = CollectLights(c)
	collectTime := time.Since(start)

	c.state = StateLoaded
	logger.Log.Info("chunk loaded",
		zap.Int("x", c.Coord.X), zap.Int("z", c.Coord.Z),
		zap.Int("pointLights", len(c.lights)),
		zap.Int("packedLightBytes", len(c.lights)*PackedLightSize),
		zap.Duration("cull", cullTime),
		zap.Duration("collect", collectTime))
	return nil
}

// PointLights returns the lights packed during Load.
func (c *Chunk) PointLights() ([]PackedLight, error) {
	if c.state != StateLoaded {
		return nil, fmt.Errorf("%w: point lights requested in state %s", ErrLifecycle, c.state)
	}
	return c.lights, nil
}

// Each calls fn for every occupied cell in x-outer, y-middle, z-inner order.
func (c *Chunk) Each(fn func(x, y, z int, b *Block)) {
	for x := 0; x < c.opts.ExtentX; x++ {
		for y := 0; y < c.opts.ExtentY; y++ {
			for z := 0; z < c.opts.ExtentZ; z++ {
				if b := c.blocks[c.index(x, y, z)]; b != nil {
					fn(x, y, z, b)
				}
			}
		}
	}
}

// Count returns the number of occupied cells.
func (c *Chunk) Count() int {
	n := 0
	for _, b := range c.blocks {
		if b != nil {
			n++
		}
	}
	return n
}

// Probe returns the block whose unit cube contains world position p, if p
// falls inside this chunk and the cell is occupied.
func (c *Chunk) Probe(p mgl32.Vec3) (*Block, bool) {
	// block centers sit on integer coordinates
	wx := int(math.Floor(float64(p.X()) + 0.5))
	wy := int(math.Floor(float64(p.Y()) + 0.5))
	wz := int(math.Floor(float64(p.Z()) + 0.5))
	if ChunkCoordOf(wx, wz, c.opts) != c.Coord {
		return nil, false
	}
	lx, ly, lz := LocalOf(wx, wy, wz, c.opts)
	if !c.InBounds(lx, ly, lz) {
		return nil, false
	}
	b := c.blocks[c.index(lx, ly, lz)]
	return b, b != nil
}

// ChunkCoordOf returns the chunk containing world column (wx, wz).
func ChunkCoordOf(wx, wz int, opts Options) ChunkCoord {
	return ChunkCoord{X: floorDiv(wx, opts.ExtentX), Z: floorDiv(wz, opts.ExtentZ)}
}

// LocalOf converts world coordinates into chunk-local ones.
func LocalOf(wx, wy, wz int, opts Options) (int, int, int) {
	return floorMod(wx, opts.ExtentX), wy, floorMod(wz, opts.ExtentZ)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
