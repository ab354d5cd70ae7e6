package graphics

import (
	"path/filepath"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/config"
	"mini-voxel/internal/logger"

	"go.uber.org/zap"
)

// LoadAssets compiles every configured shader and uploads every texture set,
// registering the resulting handles in a new table. Every shader id gets its
// own program.
func LoadAssets(cfg config.AssetsConfig) (*assets.Table, []*Shader, error) {
	table := assets.NewTable()
	shaders := make([]*Shader, 0, len(cfg.Shaders))

	for _, sc := range cfg.Shaders {
		s, err := NewShader(sc.ID,
			filepath.Join(cfg.ShaderDir, sc.Vertex),
			filepath.Join(cfg.ShaderDir, sc.Fragment))
		if err != nil {
			for _, prev := range shaders {
				prev.Delete()
			}
			return nil, nil, err
		}
		shaders = append(shaders, s)
		table.AddShader(sc.ID, s.ID)
		logger.Log.Debug("shader compiled", zap.String("id", sc.ID), zap.Uint32("program", s.ID))
	}

	for _, tc := range cfg.Textures {
		diffuse, err := GetTexture(texturePath(cfg.TextureDir, tc.Diffuse))
		if err != nil {
			return nil, nil, err
		}
		specular, err := GetTexture(texturePath(cfg.TextureDir, tc.Specular))
		if err != nil {
			return nil, nil, err
		}
		table.AddTextures(tc.ID, diffuse, specular)
		logger.Log.Debug("texture set loaded", zap.String("id", tc.ID),
			zap.Uint32("diffuse", diffuse), zap.Uint32("specular", specular))
	}

	logger.Log.Info("assets loaded",
		zap.Int("shaders", len(cfg.Shaders)), zap.Int("textureSets", len(cfg.Textures)))
	return table, shaders, nil
}

// texturePath keeps the empty path that selects the null texture.
func texturePath(dir, name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
