package graphics

import (
	"mini-voxel/internal/logger"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"
)

// LightBinding is the storage buffer binding point of the point lights
// array; it matches layout(binding = 0) in voxel.frag.
const LightBinding = 0

// LightBuffer owns the shader storage buffer holding the packed point lights.
type LightBuffer struct {
	ssbo  uint32
	count int
}

func NewLightBuffer() *LightBuffer {
	lb := &LightBuffer{}
	gl.GenBuffers(1, &lb.ssbo)
	return lb
}

// Upload replaces the buffer contents with lights and binds it to LightBinding.
func (lb *LightBuffer) Upload(lights []world.PackedLight) {
	data := world.MarshalLights(lights)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, lb.ssbo)
	if len(data) == 0 {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, LightBinding, lb.ssbo)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	lb.count = len(lights)

	logger.Log.Info("point lights uploaded",
		zap.Int("count", lb.count), zap.Int("bytes", len(data)))
}

// Count returns the number of lights in the buffer.
func (lb *LightBuffer) Count() int {
	return lb.count
}

// Apply sets the light count uniform on s. s must be bound.
func (lb *LightBuffer) Apply(s *Shader) {
	s.SetInt("pLightNum", int32(lb.count))
}

func (lb *LightBuffer) Delete() {
	gl.DeleteBuffers(1, &lb.ssbo)
}
