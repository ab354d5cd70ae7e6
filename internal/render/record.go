package render

import (
	"mini-voxel/internal/assets"
	"mini-voxel/internal/world"
)

// Record is one unit of per-frame draw information. The set of kinds is
// closed: SolidVoxel and LightMarker are the only implementations.
type Record interface {
	isRecord()
}

// SolidVoxel draws one block with its material.
type SolidVoxel struct {
	Location world.Coord
	Material assets.Material
	Faces    world.FaceMask
}

// LightMarker carries a point light present in the frame.
type LightMarker struct {
	Light world.PointLight
}

func (SolidVoxel) isRecord()  {}
func (LightMarker) isRecord() {}

// Shader returns the shader the voxel is drawn with.
func (v SolidVoxel) Shader() assets.ShaderHandle {
	return v.Material.Shader
}

// Packed returns the GPU layout of the marker's light.
func (m LightMarker) Packed() world.PackedLight {
	return world.Pack(m.Light)
}
