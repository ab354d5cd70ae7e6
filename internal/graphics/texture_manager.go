package graphics

import (
	"sync"

	"github.com/go-gl/gl/v4.3-core/gl"
)

var (
	textureCache = make(map[string]uint32)
	cacheMutex   sync.RWMutex
)

// GetTexture returns a cached texture ID for the given path.
// An empty path maps to the shared null texture, so texture sets that
// reuse one image file upload it once.
func GetTexture(path string) (uint32, error) {
	cacheMutex.RLock()
	if tex, ok := textureCache[path]; ok {
		cacheMutex.RUnlock()
		return tex, nil
	}
	cacheMutex.RUnlock()

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Double check locking
	if tex, ok := textureCache[path]; ok {
		return tex, nil
	}

	if path == "" {
		tex := NullTexture()
		textureCache[path] = tex
		return tex, nil
	}

	tex, _, _, err := LoadTexture(path)
	if err != nil {
		return 0, err
	}

	textureCache[path] = tex
	return tex, nil
}

// ReleaseTextures deletes every cached texture.
func ReleaseTextures() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	for path, tex := range textureCache {
		gl.DeleteTextures(1, &tex)
		delete(textureCache, path)
	}
}
