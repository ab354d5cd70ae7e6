package assets

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingMaterial is returned when a shader or texture-set id is unknown.
var ErrMissingMaterial = errors.New("missing material")

// ShaderHandle identifies a compiled shader program. Program is opaque to
// the core; only the rendering backend interprets it.
type ShaderHandle struct {
	Name    string
	Program uint32
}

// TextureSet is a diffuse/specular texture pair. A zero handle means "no texture".
type TextureSet struct {
	Name     string
	Diffuse  uint32
	Specular uint32
}

// Material is what a block resolves to at construction time.
type Material struct {
	Shader   ShaderHandle
	Textures TextureSet
}

// Resolver turns asset ids into handles.
type Resolver interface {
	Shader(id string) (ShaderHandle, error)
	Textures(id string) (TextureSet, error)
}

// Resolve looks up both halves of a material.
func Resolve(r Resolver, shaderID, texturesID string) (Material, error) {
	sh, err := r.Shader(shaderID)
	if err != nil {
		return Material{}, err
	}
	tex, err := r.Textures(texturesID)
	if err != nil {
		return Material{}, err
	}
	return Material{Shader: sh, Textures: tex}, nil
}

// Table is an application-owned handle table. It is filled once during
// startup and then only read, so it carries no lock.
type Table struct {
	shaders  map[string]ShaderHandle
	textures map[string]TextureSet
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		shaders:  make(map[string]ShaderHandle),
		textures: make(map[string]TextureSet),
	}
}

// AddShader registers a shader program under id.
func (t *Table) AddShader(id string, program uint32) ShaderHandle {
	h := ShaderHandle{Name: id, Program: program}
	t.shaders[id] = h
	return h
}

// AddTextures registers a diffuse/specular pair under id.
func (t *Table) AddTextures(id string, diffuse, specular uint32) TextureSet {
	s := TextureSet{Name: id, Diffuse: diffuse, Specular: specular}
	t.textures[id] = s
	return s
}

// Shader implements Resolver.
func (t *Table) Shader(id string) (ShaderHandle, error) {
	h, ok := t.shaders[id]
	if !ok {
		return ShaderHandle{}, fmt.Errorf("%w: shader %q", ErrMissingMaterial, id)
	}
	return h, nil
}

// Textures implements Resolver.
func (t *Table) Textures(id string) (TextureSet, error) {
	s, ok := t.textures[id]
	if !ok {
		return TextureSet{}, fmt.Errorf("%w: texture set %q", ErrMissingMaterial, id)
	}
	return s, nil
}

// Shaders returns all registered shader handles sorted by name.
func (t *Table) Shaders() []ShaderHandle {
	out := make([]ShaderHandle, 0, len(t.shaders))
	for _, h := range t.shaders {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
