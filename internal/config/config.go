package config

import (
	"fmt"
	"os"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Generator GeneratorConfig `yaml:"generator"`
	Assets    AssetsConfig    `yaml:"assets"`
	Lights    []LightConfig   `yaml:"lights"`
	Log       LogConfig       `yaml:"log"`
}

type WindowConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Title    string  `yaml:"title"`
	VSync    bool    `yaml:"vsync"`
	FPSLimit int     `yaml:"fps_limit"`
	FOV      float32 `yaml:"fov"`
}

type ChunkConfig struct {
	ExtentX    int `yaml:"extent_x"`
	ExtentY    int `yaml:"extent_y"`
	ExtentZ    int `yaml:"extent_z"`
	GenExtentX int `yaml:"gen_extent_x"`
	GenExtentY int `yaml:"gen_extent_y"`
	GenExtentZ int `yaml:"gen_extent_z"`
	// AreaRadius is the number of chunks generated around the origin.
	AreaRadius int `yaml:"area_radius"`
	Workers    int `yaml:"workers"`
}

type GeneratorConfig struct {
	Kind     string  `yaml:"kind"` // flat | perlin | none
	Shader   string  `yaml:"shader"`
	Textures string  `yaml:"textures"`
	Seed     int64   `yaml:"seed"`
	Alpha    float64 `yaml:"alpha"`
	Beta     float64 `yaml:"beta"`
	Octaves  int32   `yaml:"octaves"`
	Scale    float64 `yaml:"scale"`
}

type AssetsConfig struct {
	ShaderDir  string             `yaml:"shader_dir"`
	TextureDir string             `yaml:"texture_dir"`
	Shaders    []ShaderConfig     `yaml:"shaders"`
	Textures   []TextureSetConfig `yaml:"textures"`
}

type ShaderConfig struct {
	ID       string `yaml:"id"`
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// TextureSetConfig names a diffuse/specular pair. Empty paths select the
// built-in null texture.
type TextureSetConfig struct {
	ID       string `yaml:"id"`
	Diffuse  string `yaml:"diffuse"`
	Specular string `yaml:"specular"`
}

// LightConfig places one emissive block in world coordinates.
type LightConfig struct {
	Position  [3]int     `yaml:"position"`
	Shader    string     `yaml:"shader"`
	Textures  string     `yaml:"textures"`
	Ambient   [3]float32 `yaml:"ambient"`
	Color     [3]float32 `yaml:"color"`
	Specular  [3]float32 `yaml:"specular"`
	Intensity float32    `yaml:"intensity"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		c.Window.FOV = 45
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("window.fps_limit cannot be negative")
	}
	if err := c.ChunkOptions().Validate(); err != nil {
		return fmt.Errorf("chunk: %w", err)
	}
	if c.Chunk.AreaRadius < 0 {
		return fmt.Errorf("chunk.area_radius cannot be negative")
	}
	if c.Chunk.Workers <= 0 {
		c.Chunk.Workers = 1
	}

	shaders := make(map[string]bool, len(c.Assets.Shaders))
	for i, s := range c.Assets.Shaders {
		if s.ID == "" || s.Vertex == "" || s.Fragment == "" {
			return fmt.Errorf("assets.shaders[%d] needs id, vertex and fragment", i)
		}
		if shaders[s.ID] {
			return fmt.Errorf("assets.shaders[%d]: duplicate id %q", i, s.ID)
		}
		shaders[s.ID] = true
	}
	textures := make(map[string]bool, len(c.Assets.Textures))
	for i, t := range c.Assets.Textures {
		if t.ID == "" {
			return fmt.Errorf("assets.textures[%d].id must be set", i)
		}
		if textures[t.ID] {
			return fmt.Errorf("assets.textures[%d]: duplicate id %q", i, t.ID)
		}
		textures[t.ID] = true
	}

	switch c.Generator.Kind {
	case "none":
	case "flat", "perlin":
		if !shaders[c.Generator.Shader] || !textures[c.Generator.Textures] {
			return fmt.Errorf("generator material %s/%s is not declared in assets",
				c.Generator.Shader, c.Generator.Textures)
		}
	default:
		return fmt.Errorf("generator.kind %q must be flat, perlin or none", c.Generator.Kind)
	}

	for i, l := range c.Lights {
		if !shaders[l.Shader] || !textures[l.Textures] {
			return fmt.Errorf("lights[%d] material %s/%s is not declared in assets", i, l.Shader, l.Textures)
		}
		// the renderer draws every voxel of the lamp shader unlit
		if c.Generator.Kind != "none" && l.Shader == c.Generator.Shader {
			return fmt.Errorf("lights[%d] shader %q is also the generator shader", i, l.Shader)
		}
		if l.Shader != c.Lights[0].Shader {
			return fmt.Errorf("lights[%d] shader %q differs from lamp shader %q", i, l.Shader, c.Lights[0].Shader)
		}
		if l.Position[1] < 0 || l.Position[1] >= c.Chunk.ExtentY {
			return fmt.Errorf("lights[%d] height %d outside chunk", i, l.Position[1])
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

// LampShader returns the shader id shared by all lamps, or "" without lamps.
func (c *Config) LampShader() string {
	if len(c.Lights) == 0 {
		return ""
	}
	return c.Lights[0].Shader
}

// ChunkOptions converts the chunk section into world options.
func (c *Config) ChunkOptions() world.Options {
	return world.Options{
		ExtentX:    c.Chunk.ExtentX,
		ExtentY:    c.Chunk.ExtentY,
		ExtentZ:    c.Chunk.ExtentZ,
		GenExtentX: c.Chunk.GenExtentX,
		GenExtentY: c.Chunk.GenExtentY,
		GenExtentZ: c.Chunk.GenExtentZ,
	}
}

// NewGenerator builds the configured terrain generator. Kind "none" yields nil.
func (c *Config) NewGenerator() world.Generator {
	g := c.Generator
	spec := world.BlockSpec{Shader: g.Shader, Textures: g.Textures}
	switch g.Kind {
	case "flat":
		return world.FlatGenerator{Block: spec}
	case "perlin":
		return world.NewPerlinGenerator(spec, g.Seed, g.Alpha, g.Beta, g.Octaves, g.Scale)
	default:
		return nil
	}
}

// Block returns the world position and block spec of the light.
func (l LightConfig) Block() (world.Coord, world.BlockSpec) {
	pos := world.Coord{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]}
	return pos, world.BlockSpec{
		Shader:   l.Shader,
		Textures: l.Textures,
		Light: &world.PointLight{
			Ambient:   mgl32.Vec3(l.Ambient),
			Color:     mgl32.Vec3(l.Color),
			Specular:  mgl32.Vec3(l.Specular),
			Intensity: l.Intensity,
			Constant:  l.Constant,
			Linear:    l.Linear,
			Quadratic: l.Quadratic,
		},
	}
}
