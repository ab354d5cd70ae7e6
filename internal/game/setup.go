package game

import (
	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow opens an OpenGL 4.3 core window (storage buffers need 4.3) and
// initializes the GL bindings.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := graphics.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// With V-Sync off the FPS limiter paces frames
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	config.SetFPSLimit(cfg.FPSLimit)

	return window, nil
}
