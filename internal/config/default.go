package config

import "mini-voxel/internal/world"

// Default returns the demo scene: one flat chunk lit by a red, a green and a
// blue lamp.
func Default() *Config {
	opts := world.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "mini-voxel",
			VSync:  true,
			FOV:    45,
		},
		Chunk: ChunkConfig{
			ExtentX:    opts.ExtentX,
			ExtentY:    opts.ExtentY,
			ExtentZ:    opts.ExtentZ,
			GenExtentX: opts.GenExtentX,
			GenExtentY: opts.GenExtentY,
			GenExtentZ: opts.GenExtentZ,
			AreaRadius: 0,
			Workers:    2,
		},
		Generator: GeneratorConfig{
			Kind:     "flat",
			Shader:   "simpleVoxel",
			Textures: "container2",
			Seed:     1,
			Alpha:    2,
			Beta:     2,
			Octaves:  3,
			Scale:    1.0 / 32.0,
		},
		Assets: AssetsConfig{
			ShaderDir:  "assets/shaders",
			TextureDir: "assets/textures",
			Shaders: []ShaderConfig{
				{ID: "simpleVoxel", Vertex: "voxel.vert", Fragment: "voxel.frag"},
				{ID: "lightedSimpleVoxel", Vertex: "voxel.vert", Fragment: "lamp.frag"},
			},
			Textures: []TextureSetConfig{
				{ID: "container2", Diffuse: "container2.png", Specular: "container2_specular.png"},
				{ID: "null"},
			},
		},
		Lights: DefaultLights(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultLights returns the three demo lamps.
func DefaultLights() []LightConfig {
	lamp := func(pos [3]int, textures string, ambient, color, specular [3]float32) LightConfig {
		return LightConfig{
			Position:  pos,
			Shader:    "lightedSimpleVoxel",
			Textures:  textures,
			Ambient:   ambient,
			Color:     color,
			Specular:  specular,
			Intensity: 1,
			Constant:  1,
			Linear:    0.09,
			Quadratic: 0.032,
		}
	}
	return []LightConfig{
		lamp([3]int{5, 2, 5}, "null", [3]float32{0.8, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0.4, 0, 0}),
		lamp([3]int{9, 2, 5}, "container2", [3]float32{0, 0.8, 0}, [3]float32{0, 1, 0}, [3]float32{0.4, 0, 0}),
		lamp([3]int{9, 2, 9}, "container2", [3]float32{0, 0, 0.8}, [3]float32{0, 0, 1}, [3]float32{0, 0, 0.4}),
	}
}
