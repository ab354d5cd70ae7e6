package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/render"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}

func TestCameraFront(t *testing.T) {
	c := NewCamera(800, 600, 45)
	if !near(c.Front(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("default front = %v, want -Z", c.Front())
	}
	c.Turn(90, 0)
	if !near(c.Front(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("front after yaw 90 = %v, want +X", c.Front())
	}
	if !near(c.Right(), mgl32.Vec3{0, 0, 1}) {
		t.Errorf("right after yaw 90 = %v, want +Z", c.Right())
	}
	c.Turn(0, 120)
	if c.Pitch != 89 {
		t.Errorf("pitch = %v, want clamped to 89", c.Pitch)
	}
}

func TestCameraViewport(t *testing.T) {
	c := NewCamera(800, 400, 45)
	if c.AspectRatio != 2 {
		t.Fatalf("aspect = %v, want 2", c.AspectRatio)
	}
	c.SetViewport(0, 0)
	if c.AspectRatio != 2 {
		t.Errorf("minimized window changed aspect to %v", c.AspectRatio)
	}
	p := c.GetProjectionMatrix()
	if math.IsNaN(float64(p[0])) || p[0] == 0 {
		t.Errorf("bad projection %v", p)
	}
}

func TestLampTints(t *testing.T) {
	f := render.NewFrame(1)
	red := world.PointLight{Position: mgl32.Vec3{-3, 2, 5}, Color: mgl32.Vec3{1, 0, 0}}
	f.Records = append(f.Records,
		render.SolidVoxel{Location: world.Coord{X: -3, Y: 2, Z: 5}, Material: assets.Material{}, Faces: world.AllFaces},
		render.LightMarker{Light: red},
		render.SolidVoxel{Location: world.Coord{X: 0, Y: 0, Z: 0}},
	)
	tints := LampTints(f)
	if len(tints) != 1 {
		t.Fatalf("got %d tints, want 1", len(tints))
	}
	if got := tints[world.Coord{X: -3, Y: 2, Z: 5}]; got != red.Color {
		t.Errorf("tint = %v, want %v", got, red.Color)
	}
}

func TestDecodeImageFlipsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	rgba, err := DecodeImage(path)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	// bottom row first
	if rgba.Pix[2] != 255 || rgba.Pix[4] != 255 {
		t.Errorf("rows not flipped: %v", rgba.Pix)
	}

	if _, err := DecodeImage(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestFrustumContainsVoxel(t *testing.T) {
	c := NewCamera(800, 600, 45)
	c.Position = mgl32.Vec3{0, 0, 0}
	f := NewFrustum(c.GetProjectionMatrix().Mul4(c.GetViewMatrix()))

	tests := []struct {
		name string
		at   world.Coord
		want bool
	}{
		{"ahead", world.Coord{Z: -10}, true},
		{"behind", world.Coord{Z: 10}, false},
		{"far left", world.Coord{X: -50, Z: -5}, false},
		{"edge of view", world.Coord{X: 4, Z: -10}, true},
		{"beyond far plane", world.Coord{Z: -5000}, false},
	}
	for _, tt := range tests {
		if got := f.ContainsVoxel(tt.at); got != tt.want {
			t.Errorf("%s: ContainsVoxel(%v) = %v, want %v", tt.name, tt.at, got, tt.want)
		}
	}
}
