package graphics

import (
	"fmt"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/render"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Texture units of the material maps
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// Shininess is the Phong exponent applied to every lit material.
const Shininess = 32.0

// DrawStats counts the GL work of one frame.
type DrawStats struct {
	Batches      int
	Voxels       int
	Culled       int // voxels outside the view frustum
	Faces        int
	ProgramBinds int
}

// Backend draws render frames with a single shared unit-cube VAO.
type Backend struct {
	vao, vbo uint32
	shaders  map[uint32]*Shader
	lamp     string
	lights   *LightBuffer

	// last bound state; binds of the same value are skipped
	program           uint32
	diffuse, specular uint32
}

// Init loads the GL function pointers and sets the fixed pipeline state.
func Init() error {
	if err := gl.Init(); err != nil {
		return err
	}
	gl.Enable(gl.DEPTH_TEST)
	// CubeVertices is wound CCW
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	return nil
}

// NewBackend uploads the cube mesh. lampShader names the unlit shader whose
// voxels are tinted with their light color.
func NewBackend(shaders []*Shader, lampShader string, lights *LightBuffer) *Backend {
	b := &Backend{
		shaders: make(map[uint32]*Shader, len(shaders)),
		lamp:    lampShader,
		lights:  lights,
	}
	for _, s := range shaders {
		b.shaders[s.ID] = s
	}
	b.setupCubeVAO()
	return b
}

func (b *Backend) setupCubeVAO() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(world.CubeVertices)*4, gl.Ptr(world.CubeVertices), gl.STATIC_DRAW)

	stride := int32(world.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
}

func (b *Backend) useProgram(s *Shader, stats *DrawStats) {
	if b.program == s.ID {
		return
	}
	s.Use()
	b.program = s.ID
	stats.ProgramBinds++
}

func (b *Backend) bindTextures(t assets.TextureSet) {
	if b.diffuse != t.Diffuse {
		gl.ActiveTexture(gl.TEXTURE0 + DiffuseUnit)
		gl.BindTexture(gl.TEXTURE_2D, t.Diffuse)
		b.diffuse = t.Diffuse
	}
	if b.specular != t.Specular {
		gl.ActiveTexture(gl.TEXTURE0 + SpecularUnit)
		gl.BindTexture(gl.TEXTURE_2D, t.Specular)
		b.specular = t.Specular
	}
}

// Draw renders every voxel of f inside the camera frustum, one batch per
// shader and one draw call per visible face.
func (b *Backend) Draw(f *render.Frame, cam *Camera) (DrawStats, error) {
	defer profiling.Track("graphics.Draw")()

	var stats DrawStats
	view := cam.GetViewMatrix()
	projection := cam.GetProjectionMatrix()
	frustum := NewFrustum(projection.Mul4(view))
	tints := LampTints(f)

	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)

	for _, batch := range f.Batches() {
		s, ok := b.shaders[batch.Shader.Program]
		if !ok {
			return stats, fmt.Errorf("%w: program %d (%s) not owned by backend",
				assets.ErrMissingMaterial, batch.Shader.Program, batch.Shader.Name)
		}
		stats.Batches++
		b.useProgram(s, &stats)

		s.SetMatrix4("view", view)
		s.SetMatrix4("projection", projection)
		s.SetVec3("viewPos", cam.Position)
		lamp := batch.Shader.Name == b.lamp
		if !lamp {
			s.SetInt("material.diffuse", DiffuseUnit)
			s.SetInt("material.specular", SpecularUnit)
			s.SetFloat("material.shininess", Shininess)
			if b.lights != nil {
				b.lights.Apply(s)
			}
		}

		for _, v := range batch.Voxels {
			if !frustum.ContainsVoxel(v.Location) {
				stats.Culled++
				continue
			}
			b.bindTextures(v.Material.Textures)
			s.SetMatrix4("model", mgl32.Translate3D(float32(v.Location.X), float32(v.Location.Y), float32(v.Location.Z)))
			if lamp {
				tint, ok := tints[v.Location]
				if !ok {
					tint = mgl32.Vec3{1, 1, 1}
				}
				s.SetVec3("fragColor", tint)
			}
			stats.Voxels++
			stats.Faces += drawFaces(v.Faces)
		}
	}
	return stats, nil
}

func drawFaces(m world.FaceMask) int {
	n := 0
	for f := world.FaceNorth; f <= world.FaceBottom; f++ {
		if !m.Has(f) {
			continue
		}
		first, count := world.FaceRange(f)
		gl.DrawArrays(gl.TRIANGLES, first, count)
		n++
	}
	return n
}

// LampTints maps the block position of every light marker in f to its
// diffuse color.
func LampTints(f *render.Frame) map[world.Coord]mgl32.Vec3 {
	markers := f.LightMarkers()
	tints := make(map[world.Coord]mgl32.Vec3, len(markers))
	for _, m := range markers {
		p := m.Light.Position
		pos := world.Coord{X: int(p.X()), Y: int(p.Y()), Z: int(p.Z())}
		tints[pos] = m.Light.Color
	}
	return tints
}

// Clear clears the color and depth buffers.
func Clear() {
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe switches polygon rasterization between lines and fill.
func SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Viewport resizes the GL viewport.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Dispose releases the cube mesh and the owned shaders.
func (b *Backend) Dispose() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	for _, s := range b.shaders {
		s.Delete()
	}
	b.program = 0
}
