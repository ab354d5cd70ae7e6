package world

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is a positional light with Phong color terms and
// constant/linear/quadratic distance attenuation.
type PointLight struct {
	Position  mgl32.Vec3
	Ambient   mgl32.Vec3
	Color     mgl32.Vec3 // diffuse
	Specular  mgl32.Vec3
	Intensity float32

	Constant  float32
	Linear    float32
	Quadratic float32
}

// PackedLight is the GPU-side layout of a PointLight in the lights storage
// buffer. Every row of four floats is self-contained so the struct needs no
// padding under std430. Keep in sync with struct PointLight in voxel.frag.
type PackedLight struct {
	PositionX, PositionY, PositionZ, Intensity float32
	AmbientR, AmbientG, AmbientB, Constant     float32
	ColorR, ColorG, ColorB, Linear             float32
	SpecularR, SpecularG, SpecularB, Quadratic float32
}

// PackedLightSize is the size of one PackedLight in bytes.
const PackedLightSize = 16 * 4

// Pack converts l into its GPU layout.
func Pack(l PointLight) PackedLight {
	return PackedLight{
		PositionX: l.Position.X(),
		PositionY: l.Position.Y(),
		PositionZ: l.Position.Z(),
		Intensity: l.Intensity,

		AmbientR: l.Ambient.X(),
		AmbientG: l.Ambient.Y(),
		AmbientB: l.Ambient.Z(),
		Constant: l.Constant,

		ColorR: l.Color.X(),
		ColorG: l.Color.Y(),
		ColorB: l.Color.Z(),
		Linear: l.Linear,

		SpecularR: l.Specular.X(),
		SpecularG: l.Specular.Y(),
		SpecularB: l.Specular.Z(),
		Quadratic: l.Quadratic,
	}
}

// Unpack is the inverse of Pack.
func (p PackedLight) Unpack() PointLight {
	return PointLight{
		Position:  mgl32.Vec3{p.PositionX, p.PositionY, p.PositionZ},
		Ambient:   mgl32.Vec3{p.AmbientR, p.AmbientG, p.AmbientB},
		Color:     mgl32.Vec3{p.ColorR, p.ColorG, p.ColorB},
		Specular:  mgl32.Vec3{p.SpecularR, p.SpecularG, p.SpecularB},
		Intensity: p.Intensity,
		Constant:  p.Constant,
		Linear:    p.Linear,
		Quadratic: p.Quadratic,
	}
}

// Floats returns the fields in buffer order.
func (p PackedLight) Floats() [16]float32 {
	return [16]float32{
		p.PositionX, p.PositionY, p.PositionZ, p.Intensity,
		p.AmbientR, p.AmbientG, p.AmbientB, p.Constant,
		p.ColorR, p.ColorG, p.ColorB, p.Linear,
		p.SpecularR, p.SpecularG, p.SpecularB, p.Quadratic,
	}
}

func packedFromFloats(f [16]float32) PackedLight {
	return PackedLight{
		f[0], f[1], f[2], f[3],
		f[4], f[5], f[6], f[7],
		f[8], f[9], f[10], f[11],
		f[12], f[13], f[14], f[15],
	}
}

// CollectLights packs the light of every emissive block in visitation order.
// The chunk is not modified.
func CollectLights(c *Chunk) []PackedLight {
	var lights []PackedLight
	c.Each(func(_, _, _ int, b *Block) {
		if b.Light != nil {
			lights = append(lights, Pack(*b.Light))
		}
	})
	return lights
}

// MarshalLights serializes lights into a little-endian buffer ready for upload.
func MarshalLights(lights []PackedLight) []byte {
	buf := make([]byte, len(lights)*PackedLightSize)
	for i, l := range lights {
		off := i * PackedLightSize
		for j, v := range l.Floats() {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v))
		}
	}
	return buf
}

// UnmarshalLights decodes a buffer written by MarshalLights.
func UnmarshalLights(buf []byte) ([]PackedLight, error) {
	if len(buf)%PackedLightSize != 0 {
		return nil, fmt.Errorf("light buffer length %d is not a multiple of %d", len(buf), PackedLightSize)
	}
	lights := make([]PackedLight, len(buf)/PackedLightSize)
	for i := range lights {
		var f [16]float32
		off := i * PackedLightSize
		for j := range f {
			f[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+j*4:]))
		}
		lights[i] = packedFromFloats(f)
	}
	return lights, nil
}
