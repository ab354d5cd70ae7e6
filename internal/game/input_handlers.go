package game

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	mouseSensitivity = 0.1 // degrees per pixel
	flySpeed         = 5.0 // blocks per second
	sprintFactor     = 3.0
)

// MoveCamera applies the held movement actions and the frame's mouse delta.
func MoveCamera(cam *graphics.Camera, im *input.InputManager, dt float64, captured bool) {
	if captured {
		dx, dy := im.MouseDelta()
		cam.Turn(float32(dx*mouseSensitivity), float32(-dy*mouseSensitivity))
	}

	var dir mgl32.Vec3
	front := cam.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	right := cam.Right()
	up := mgl32.Vec3{0, 1, 0}

	if im.IsActive(input.ActionMoveForward) {
		dir = dir.Add(flat)
	}
	if im.IsActive(input.ActionMoveBackward) {
		dir = dir.Sub(flat)
	}
	if im.IsActive(input.ActionMoveRight) {
		dir = dir.Add(right)
	}
	if im.IsActive(input.ActionMoveLeft) {
		dir = dir.Sub(right)
	}
	if im.IsActive(input.ActionMoveUp) {
		dir = dir.Add(up)
	}
	if im.IsActive(input.ActionMoveDown) {
		dir = dir.Sub(up)
	}
	if dir.Len() == 0 {
		return
	}

	speed := float32(flySpeed * dt)
	if im.IsActive(input.ActionSprint) {
		speed *= sprintFactor
	}
	cam.Position = cam.Position.Add(dir.Normalize().Mul(speed))
}
