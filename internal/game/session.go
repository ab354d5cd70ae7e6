package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	standardInput "mini-voxel/internal/input"
	"mini-voxel/internal/logger"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/render"
	"mini-voxel/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// probeReach is how far along the view ray the probe action looks, in blocks.
const probeReach = 8.0

type Session struct {
	Window  *glfw.Window
	World   *world.World
	Backend *graphics.Backend
	Lights  *graphics.LightBuffer
	Camera  *graphics.Camera

	Captured      bool // cursor captured for mouse look
	Wireframe     bool
	ShowProfiling bool

	Frames           int
	LastFPSCheckTime time.Time
	frameNumber      uint64
}

func NewSession(ctx context.Context, window *glfw.Window, cfg *config.Config) (*Session, error) {
	table, shaders, err := graphics.LoadAssets(cfg.Assets)
	if err != nil {
		return nil, err
	}

	w, err := buildOrRelease(ctx, cfg, table, func() { releaseAssets(shaders) })
	if err != nil {
		return nil, err
	}

	lights := graphics.NewLightBuffer()
	lights.Upload(w.PointLights())

	width, height := window.GetFramebufferSize()
	graphics.Viewport(width, height)
	cam := graphics.NewCamera(width, height, cfg.Window.FOV)

	s := &Session{
		Window:           window,
		World:            w,
		Backend:          graphics.NewBackend(shaders, cfg.LampShader(), lights),
		Lights:           lights,
		Camera:           cam,
		LastFPSCheckTime: time.Now(),
	}
	s.SetCaptured(true)
	return s, nil
}

// buildOrRelease builds the world and runs release when that fails, so GPU
// assets loaded for it do not outlive a failed startup.
func buildOrRelease(ctx context.Context, cfg *config.Config, table assets.Resolver, release func()) (*world.World, error) {
	w, err := BuildWorld(ctx, cfg, table)
	if err != nil {
		release()
		return nil, err
	}
	return w, nil
}

// releaseAssets deletes programs and textures loaded before a failed startup.
func releaseAssets(shaders []*graphics.Shader) {
	for _, s := range shaders {
		s.Delete()
	}
	graphics.ReleaseTextures()
}

func (s *Session) Cleanup() {
	s.Backend.Dispose()
	s.Lights.Delete()
	graphics.ReleaseTextures()

	// Explicitly nil out
	s.World = nil
	s.Backend = nil
	s.Lights = nil
}

// Update applies input for one frame. It returns true when the user asked to quit.
func (s *Session) Update(dt float64, im *standardInput.InputManager) bool {
	defer profiling.Track("game.Update")()

	if im.JustPressed(standardInput.ActionQuit) {
		return true
	}
	if im.JustPressed(standardInput.ActionRelease) && s.Captured {
		s.SetCaptured(false)
	} else if im.JustPressed(standardInput.ActionMouseLeft) && !s.Captured {
		s.SetCaptured(true)
		im.ResetCursor()
	}

	if im.JustPressed(standardInput.ActionToggleWireframe) {
		s.Wireframe = !s.Wireframe
		graphics.SetWireframe(s.Wireframe)
	}
	if im.JustPressed(standardInput.ActionToggleProfiling) {
		s.ShowProfiling = !s.ShowProfiling
	}
	if im.JustPressed(standardInput.ActionProbe) {
		s.logProbe()
	}

	MoveCamera(s.Camera, im, dt, s.Captured)
	return false
}

func (s *Session) logProbe() {
	b, dist, ok := ProbeView(s.World, s.Camera.Position, s.Camera.Front(), probeReach)
	if !ok {
		logger.Log.Info("probe: no block in reach",
			zap.String("camera", fmt.Sprint(s.Camera.Position)))
		return
	}
	fields := []zap.Field{
		zap.Int("x", b.Position.X), zap.Int("y", b.Position.Y), zap.Int("z", b.Position.Z),
		zap.Float32("distance", dist),
		zap.String("shader", b.Material.Shader.Name),
		zap.String("textures", b.Material.Textures.Name),
		zap.Stringer("faces", b.Faces),
	}
	if b.Light != nil {
		fields = append(fields, zap.String("light", fmt.Sprint(b.Light.Color)))
	}
	logger.Log.Info("probe", fields...)
}

// ProbeView marches along dir from origin in steps of a tenth of a block and
// returns the first block hit within reach.
func ProbeView(w *world.World, origin, dir mgl32.Vec3, reach float32) (*world.Block, float32, bool) {
	if dir.Len() == 0 {
		return nil, 0, false
	}
	dir = dir.Normalize()
	opts := w.Options()
	const step = 0.1
	for t := float32(0); t <= reach; t += step {
		p := origin.Add(dir.Mul(t))
		wx, wz := roundCoord(p.X()), roundCoord(p.Z())
		c, ok := w.Chunk(world.ChunkCoordOf(wx, wz, opts))
		if !ok {
			continue
		}
		if b, ok := c.Probe(p); ok {
			return b, t, true
		}
	}
	return nil, 0, false
}

// roundCoord maps a world position onto the integer block center it belongs to.
func roundCoord(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}

// Render aggregates the world into a fresh frame and draws it.
func (s *Session) Render() error {
	graphics.Clear()

	s.frameNumber++
	frame := render.NewFrame(s.frameNumber)
	if err := render.AggregateWorld(s.World, frame); err != nil {
		return err
	}
	stats, err := s.Backend.Draw(frame, s.Camera)
	if err != nil {
		return err
	}

	s.Frames++
	if time.Since(s.LastFPSCheckTime) >= time.Second {
		aggregate, draw := frameTimings()
		logger.Log.Info("fps",
			zap.Int("fps", s.Frames),
			zap.Duration("aggregate", aggregate),
			zap.Duration("draw", draw),
			zap.Int("batches", stats.Batches),
			zap.Int("voxels", stats.Voxels),
			zap.Int("culled", stats.Culled),
			zap.Int("faces", stats.Faces),
			zap.Int("programBinds", stats.ProgramBinds))
		if s.ShowProfiling {
			logger.Log.Info("profile", zap.String("top", profiling.TopN(5)))
		}
		s.Frames = 0
		s.LastFPSCheckTime = time.Now()
	}
	return nil
}

// frameTimings sums the current frame's tracked time spent building the
// render stream and issuing draw calls.
func frameTimings() (aggregate, draw time.Duration) {
	return profiling.SumWithPrefix("render."), profiling.SumWithPrefix("graphics.")
}

func (s *Session) SetCaptured(captured bool) {
	s.Captured = captured
	if captured {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Resize updates the viewport and the camera aspect ratio.
func (s *Session) Resize(width, height int) {
	graphics.Viewport(width, height)
	s.Camera.SetViewport(width, height)
}
