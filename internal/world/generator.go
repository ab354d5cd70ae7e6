package world

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Generator populates a freshly allocated chunk. Implementations only
// write inside the chunk's generation box.
type Generator interface {
	Generate(c *Chunk) error
}

// FlatGenerator fills the whole generation box with one block kind.
type FlatGenerator struct {
	Block BlockSpec
}

func (g FlatGenerator) Generate(c *Chunk) error {
	o := c.Options()
	for x := 0; x < o.GenExtentX; x++ {
		for y := 0; y < o.GenExtentY; y++ {
			for z := 0; z < o.GenExtentZ; z++ {
				if _, err := c.Place(x, y, z, g.Block); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// PerlinGenerator builds a heightmap inside the generation box. Columns are
// at least one block tall so the ground has no holes.
type PerlinGenerator struct {
	Block BlockSpec
	noise *perlin.Perlin
	scale float64
}

// NewPerlinGenerator creates a generator. alpha and beta are the perlin
// weight and harmonic scaling, n the number of octaves.
func NewPerlinGenerator(block BlockSpec, seed int64, alpha, beta float64, n int32, scale float64) *PerlinGenerator {
	if scale <= 0 {
		scale = 1.0 / 32.0
	}
	return &PerlinGenerator{
		Block: block,
		noise: perlin.NewPerlin(alpha, beta, n, seed),
		scale: scale,
	}
}

// HeightAt returns the column height in blocks at world X,Z, in [1, maxHeight].
func (g *PerlinGenerator) HeightAt(worldX, worldZ, maxHeight int) int {
	if maxHeight <= 1 {
		return maxHeight
	}
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	// Noise2D is roughly in [-1, 1]
	h := 1 + int(math.Floor((n+1)/2*float64(maxHeight)))
	if h < 1 {
		h = 1
	}
	if h > maxHeight {
		h = maxHeight
	}
	return h
}

func (g *PerlinGenerator) Generate(c *Chunk) error {
	o := c.Options()
	for x := 0; x < o.GenExtentX; x++ {
		for z := 0; z < o.GenExtentZ; z++ {
			w := c.WorldCoord(x, 0, z)
			top := g.HeightAt(w.X, w.Z, o.GenExtentY)
			for y := 0; y < top; y++ {
				if _, err := c.Place(x, y, z, g.Block); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
