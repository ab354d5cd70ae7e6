package world

import (
	"math/bits"
	"strings"

	"mini-voxel/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
)

// Coord is an integer block position, either chunk-local or world-space.
type Coord struct {
	X, Y, Z int
}

// Vec3 converts the coordinate to a float vector (block center).
func (c Coord) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth  BlockFace = iota // +Z
	FaceSouth                   // -Z
	FaceEast                    // +X
	FaceWest                    // -X
	FaceTop                     // +Y
	FaceBottom                  // -Y

	numFaces = 6
)

var faceNames = [numFaces]string{"North", "South", "East", "West", "Top", "Bottom"}

func (f BlockFace) String() string {
	if f < 0 || f >= numFaces {
		return "Unknown"
	}
	return faceNames[f]
}

// FaceMask holds one visibility bit per BlockFace.
type FaceMask uint8

// AllFaces is the mask of a block with every face exposed.
const AllFaces FaceMask = 1<<numFaces - 1

// MaskOf returns the single-bit mask for f.
func MaskOf(f BlockFace) FaceMask {
	return 1 << uint(f)
}

// Has reports whether face f is visible.
func (m FaceMask) Has(f BlockFace) bool {
	return m&MaskOf(f) != 0
}

// Without returns m with face f cleared.
func (m FaceMask) Without(f BlockFace) FaceMask {
	return m &^ MaskOf(f)
}

// Count returns the number of visible faces.
func (m FaceMask) Count() int {
	return bits.OnesCount8(uint8(m & AllFaces))
}

// String lists the visible faces, e.g. "North East Top".
func (m FaceMask) String() string {
	var sb strings.Builder
	for f := BlockFace(0); f < numFaces; f++ {
		if !m.Has(f) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// BlockSpec describes a block before its material is resolved.
type BlockSpec struct {
	Shader   string
	Textures string
	// Light makes the block emissive. Its Position is ignored; the light is
	// anchored at the block.
	Light *PointLight
}

// Block is one unit-cube voxel occupying a grid cell.
type Block struct {
	Position Coord // world space
	Material assets.Material
	Light    *PointLight
	Faces    FaceMask
}

// NewBlock resolves spec against r. Unknown shader or texture ids fail here
// rather than at draw time.
func NewBlock(r assets.Resolver, pos Coord, spec BlockSpec) (*Block, error) {
	mat, err := assets.Resolve(r, spec.Shader, spec.Textures)
	if err != nil {
		return nil, err
	}
	b := &Block{
		Position: pos,
		Material: mat,
		Faces:    AllFaces,
	}
	if spec.Light != nil {
		l := *spec.Light
		l.Position = pos.Vec3()
		b.Light = &l
	}
	return b, nil
}

// Emissive reports whether the block carries a point light.
func (b *Block) Emissive() bool {
	return b.Light != nil
}

// AppendVertices appends the CubeVertices of every visible face to dst.
func (b *Block) AppendVertices(dst []float32) []float32 {
	for f := BlockFace(0); f < numFaces; f++ {
		if b.Faces.Has(f) {
			start, n := FaceRange(f)
			dst = append(dst, CubeVertices[start*VertexStride:(start+n)*VertexStride]...)
		}
	}
	return dst
}

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// FaceRange returns the first vertex and vertex count of face f in CubeVertices.
func FaceRange(f BlockFace) (first, count int32) {
	return int32(f) * 6, 6
}

// CubeVertices is a unit cube centered on the origin, six vertices per face,
// faces ordered like BlockFace.
var CubeVertices = []float32{
	// NORTH
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,

	// SOUTH
	0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	-0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	-0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	0.5, -0.5, -0.5, 0, 0, -1, 0, 0,

	// EAST
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, 0.5, 0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,

	// WEST
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 1,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 1,
	-0.5, 0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 0,

	// TOP
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,

	// BOTTOM
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 0,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 1,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 1,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 0,
}
