package render

import (
	"fmt"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// Frame collects the records of one rendered frame.
type Frame struct {
	Number  uint64
	Records []Record
}

// NewFrame returns an empty frame. Records from a previous frame are never reused.
func NewFrame(number uint64) *Frame {
	return &Frame{Number: number}
}

// Aggregate appends the records of every occupied cell of c to f, in the
// chunk's x, y, z visitation order: one SolidVoxel per block, followed by a
// LightMarker when the block is emissive.
func Aggregate(c *world.Chunk, f *Frame) error {
	if c.State() != world.StateLoaded {
		return fmt.Errorf("%w: aggregate chunk %v in state %s", world.ErrLifecycle, c.Coord, c.State())
	}
	defer profiling.Track("render.Aggregate")()

	c.Each(func(_, _, _ int, b *world.Block) {
		f.Records = append(f.Records, SolidVoxel{
			Location: b.Position,
			Material: b.Material,
			Faces:    b.Faces,
		})
		if b.Light != nil {
			f.Records = append(f.Records, LightMarker{Light: *b.Light})
		}
	})
	return nil
}

// AggregateWorld aggregates every chunk of w in World.Chunks order.
func AggregateWorld(w *world.World, f *Frame) error {
	for _, c := range w.Chunks() {
		if err := Aggregate(c, f); err != nil {
			return err
		}
	}
	return nil
}

// SolidVoxels returns the voxel records in emission order.
func (f *Frame) SolidVoxels() []SolidVoxel {
	var out []SolidVoxel
	for _, r := range f.Records {
		if v, ok := r.(SolidVoxel); ok {
			out = append(out, v)
		}
	}
	return out
}

// LightMarkers returns the light records in emission order.
func (f *Frame) LightMarkers() []LightMarker {
	var out []LightMarker
	for _, r := range f.Records {
		if m, ok := r.(LightMarker); ok {
			out = append(out, m)
		}
	}
	return out
}

// Batch is a run of voxels sharing one shader.
type Batch struct {
	Shader assets.ShaderHandle
	Voxels []SolidVoxel
}

// Batches groups the frame's voxels by shader. Groups appear in the order
// their shader was first seen; voxels keep emission order within a group.
func (f *Frame) Batches() []Batch {
	defer profiling.Track("render.Batches")()

	var batches []Batch
	index := make(map[assets.ShaderHandle]int)
	for _, r := range f.Records {
		v, ok := r.(SolidVoxel)
		if !ok {
			continue
		}
		i, seen := index[v.Material.Shader]
		if !seen {
			i = len(batches)
			index[v.Material.Shader] = i
			batches = append(batches, Batch{Shader: v.Material.Shader})
		}
		batches[i].Voxels = append(batches[i].Voxels, v)
	}
	return batches
}

// Counts returns the number of voxel and light records.
func (f *Frame) Counts() (voxels, lights int) {
	for _, r := range f.Records {
		switch r.(type) {
		case SolidVoxel:
			voxels++
		case LightMarker:
			lights++
		}
	}
	return voxels, lights
}
