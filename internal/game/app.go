package game

import (
	"context"
	"time"

	"mini-voxel/internal/config"
	standardInput "mini-voxel/internal/input"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// slowFrame is the processing time above which a frame's top tasks are logged.
const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *standardInput.InputManager

	session *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(ctx context.Context, window *glfw.Window, cfg *config.Config) (*App, error) {
	im := standardInput.NewInputManager()
	im.SetCallbacks(window)

	session, err := NewSession(ctx, window, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		window:       window,
		inputManager: im,
		session:      session,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.session.Resize(fbWidth, fbHeight)
	})
	return app, nil
}

// Run drives the frame loop until the window closes, ctx is cancelled or a
// frame fails.
func (a *App) Run(ctx context.Context) error {
	defer a.session.Cleanup()
	for !a.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("shutting down", zap.Error(context.Cause(ctx)))
			return nil
		}
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if a.session.Update(dt, a.inputManager) {
		a.window.SetShouldClose(true)
	}
	if err := a.session.Render(); err != nil {
		return err
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	// Check if frame took too long
	processingDuration := time.Since(startTick)
	if processingDuration > slowFrame {
		logger.Log.Debug("slow frame",
			zap.Duration("elapsed", processingDuration),
			zap.String("top", profiling.TopN(5)))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags

	// FPS limit
	unfocused := a.window.GetAttrib(glfw.Focused) == glfw.False
	a.fpsLimiter.Wait(unfocused)
	return nil
}
