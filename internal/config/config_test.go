package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/world"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if got := cfg.ChunkOptions(); got != world.DefaultOptions() {
		t.Fatalf("ChunkOptions() = %+v, want %+v", got, world.DefaultOptions())
	}
	if len(cfg.Lights) != 3 {
		t.Fatalf("default lights = %d, want 3", len(cfg.Lights))
	}
	pos, spec := cfg.Lights[2].Block()
	if pos != (world.Coord{X: 9, Y: 2, Z: 9}) {
		t.Errorf("third lamp at %v, want 9,2,9", pos)
	}
	if spec.Light == nil || spec.Light.Color.Z() != 1 || spec.Light.Linear != 0.09 {
		t.Errorf("third lamp light = %+v", spec.Light)
	}
	if _, ok := cfg.NewGenerator().(world.FlatGenerator); !ok {
		t.Errorf("default generator is %T, want FlatGenerator", cfg.NewGenerator())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
window:
  width: 800
  height: 600
  fps_limit: 60
chunk:
  extent_y: 64
  gen_extent_y: 6
  area_radius: 1
generator:
  kind: perlin
  seed: 99
lights:
  - position: [1, 3, 1]
    shader: lightedSimpleVoxel
    textures: "null"
    color: [1, 1, 1]
    intensity: 2
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.FPSLimit != 60 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Window.Title != "mini-voxel" {
		t.Errorf("Title = %q, want default", cfg.Window.Title)
	}
	opts := cfg.ChunkOptions()
	if opts.ExtentX != 16 || opts.ExtentY != 64 || opts.GenExtentY != 6 {
		t.Errorf("ChunkOptions() = %+v", opts)
	}
	if _, ok := cfg.NewGenerator().(*world.PerlinGenerator); !ok {
		t.Errorf("generator is %T, want *PerlinGenerator", cfg.NewGenerator())
	}
	if len(cfg.Lights) != 1 || cfg.Lights[0].Intensity != 2 {
		t.Errorf("lights = %+v", cfg.Lights)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateRejectsInvalidConfigurations(t *testing.T) {
	tests := map[string]func(*Config){
		"zero window":       func(c *Config) { c.Window.Width = 0 },
		"negative fps":      func(c *Config) { c.Window.FPSLimit = -1 },
		"gen box too large": func(c *Config) { c.Chunk.GenExtentX = 17 },
		"unknown generator": func(c *Config) { c.Generator.Kind = "caves" },
		"undeclared ground": func(c *Config) { c.Generator.Textures = "stone" },
		"undeclared lamp":   func(c *Config) { c.Lights[0].Shader = "glow" },
		"lamp above chunk":  func(c *Config) { c.Lights[1].Position[1] = 256 },
		"duplicate shader":  func(c *Config) { c.Assets.Shaders = append(c.Assets.Shaders, c.Assets.Shaders[0]) },
		"shader no vertex":  func(c *Config) { c.Assets.Shaders[0].Vertex = "" },
		"texture no id":     func(c *Config) { c.Assets.Textures[0].ID = "" },
		"oversized chunk":   func(c *Config) { c.Chunk.ExtentX, c.Chunk.ExtentY, c.Chunk.ExtentZ = 1<<22, 1<<22, 1<<22 },
		"lamp on ground shader": func(c *Config) {
			c.Lights[2].Shader = c.Generator.Shader
		},
		"mixed lamp shaders": func(c *Config) {
			c.Assets.Shaders = append(c.Assets.Shaders, ShaderConfig{ID: "glow", Vertex: "voxel.vert", Fragment: "lamp.frag"})
			c.Lights[1].Shader = "glow"
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() succeeded, want error")
			}
		})
	}
}

func TestLampShader(t *testing.T) {
	cfg := Default()
	if got := cfg.LampShader(); got != "lightedSimpleVoxel" {
		t.Errorf("LampShader() = %q, want lightedSimpleVoxel", got)
	}
	cfg.Lights = nil
	if got := cfg.LampShader(); got != "" {
		t.Errorf("LampShader() without lamps = %q, want empty", got)
	}

	// with no generator the ground shader may light lamps
	cfg = Default()
	cfg.Generator.Kind = "none"
	for i := range cfg.Lights {
		cfg.Lights[i].Shader = "simpleVoxel"
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateChunkWrapsExtentError(t *testing.T) {
	cfg := Default()
	cfg.Chunk.ExtentZ = 0
	if err := cfg.Validate(); !errors.Is(err, world.ErrInvalidExtent) {
		t.Errorf("Validate() = %v, want ErrInvalidExtent", err)
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := Default()
	cfg.Window.FOV = 0
	cfg.Chunk.Workers = 0
	cfg.Log.Level = ""
	cfg.Generator.Kind = "none"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Window.FOV != 45 || cfg.Chunk.Workers != 1 || cfg.Log.Level != "info" {
		t.Errorf("defaults not applied: %+v %+v %+v", cfg.Window, cfg.Chunk, cfg.Log)
	}
	if cfg.NewGenerator() != nil {
		t.Error("kind none should yield no generator")
	}
}

func TestFPSLimitClamp(t *testing.T) {
	defer SetFPSLimit(0)
	SetFPSLimit(-5)
	if got := GetFPSLimit(); got != 0 {
		t.Errorf("GetFPSLimit() = %d, want 0", got)
	}
	SetFPSLimit(144)
	if got := GetFPSLimit(); got != 144 {
		t.Errorf("GetFPSLimit() = %d, want 144", got)
	}
	SetFPSLimit(5000)
	if got := GetFPSLimit(); got != 1000 {
		t.Errorf("GetFPSLimit() = %d, want 1000", got)
	}
}

func TestLoadBundledPerlinScene(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "perlin.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chunk.AreaRadius != 1 || cfg.Chunk.Workers != 4 {
		t.Errorf("chunk config = %+v", cfg.Chunk)
	}
	if len(cfg.Lights) != 2 {
		t.Fatalf("lights = %d, want 2", len(cfg.Lights))
	}
	if pos, _ := cfg.Lights[1].Block(); pos != (world.Coord{X: -8, Y: 9, Z: -8}) {
		t.Errorf("second lamp at %v", pos)
	}
	// assets are not overridden by the file
	if len(cfg.Assets.Shaders) != 2 {
		t.Errorf("shaders = %d, want the 2 defaults", len(cfg.Assets.Shaders))
	}
}
