package assets

import (
	"errors"
	"testing"
)

func TestTableResolve(t *testing.T) {
	tbl := NewTable()
	tbl.AddShader("simpleVoxel", 3)
	tbl.AddTextures("container2", 7, 8)

	m, err := Resolve(tbl, "simpleVoxel", "container2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Shader.Program != 3 || m.Shader.Name != "simpleVoxel" {
		t.Errorf("unexpected shader handle %+v", m.Shader)
	}
	if m.Textures.Diffuse != 7 || m.Textures.Specular != 8 {
		t.Errorf("unexpected texture set %+v", m.Textures)
	}
}

func TestTableMissing(t *testing.T) {
	tbl := NewTable()
	tbl.AddShader("simpleVoxel", 1)

	if _, err := tbl.Shader("lamp"); !errors.Is(err, ErrMissingMaterial) {
		t.Errorf("Shader(lamp) err = %v, want ErrMissingMaterial", err)
	}
	if _, err := Resolve(tbl, "simpleVoxel", "nope"); !errors.Is(err, ErrMissingMaterial) {
		t.Errorf("Resolve with unknown textures err = %v, want ErrMissingMaterial", err)
	}
}

func TestTableShadersSorted(t *testing.T) {
	tbl := NewTable()
	tbl.AddShader("b", 2)
	tbl.AddShader("a", 1)

	got := tbl.Shaders()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("Shaders() = %+v, want sorted a,b", got)
	}
}
