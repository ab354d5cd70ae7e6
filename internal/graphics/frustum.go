package graphics

import (
	"math"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// voxelMargin inflates each voxel box before testing so faces at the screen
// edge are never dropped by rounding.
const voxelMargin float32 = 0.1

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a projection*view matrix in the order
// left, right, bottom, top, near, far.
type Frustum [6]plane

// NewFrustum extracts the planes of clip.
func NewFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 matrices are column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return Frustum{
		normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}),
		normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}),
		normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}),
		normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}),
		normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}),
		normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}),
	}
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IntersectsBox reports whether the axis-aligned box touches the frustum.
func (f *Frustum) IntersectsBox(min, max mgl32.Vec3) bool {
	for _, p := range f {
		// positive vertex for this plane normal
		px := max.X()
		if p.a < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.b < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

// ContainsVoxel tests the unit cube centered on a block position.
func (f *Frustum) ContainsVoxel(c world.Coord) bool {
	h := 0.5 + voxelMargin
	center := mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
	return f.IntersectsBox(center.Sub(mgl32.Vec3{h, h, h}), center.Add(mgl32.Vec3{h, h, h}))
}
