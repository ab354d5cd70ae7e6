package render

import (
	"testing"

	"mini-voxel/internal/world"
)

func BenchmarkAggregate(b *testing.B) {
	c, err := world.NewChunk(world.ChunkCoord{}, world.DefaultOptions(), resolver(), world.FlatGenerator{Block: ground})
	if err != nil {
		b.Fatal(err)
	}
	for x := 1; x < world.ChunkSizeX; x += 4 {
		if _, err := c.Place(x, world.GenSizeY, 5, lamp(red)); err != nil {
			b.Fatal(err)
		}
	}
	if err := c.Load(); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := NewFrame(uint64(i))
		if err := Aggregate(c, f); err != nil {
			b.Fatal(err)
		}
		_ = f.Batches()
	}
}
