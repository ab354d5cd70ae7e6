package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	if !im.IsActive(ActionMoveForward) || !im.JustPressed(ActionMoveForward) {
		t.Fatal("W press not reported as forward")
	}
	im.PostUpdate()
	if im.JustPressed(ActionMoveForward) {
		t.Error("JustPressed survived PostUpdate")
	}

	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	if !im.IsActive(ActionMoveForward) || im.JustPressed(ActionMoveForward) {
		t.Error("repeat should keep the action held without a new edge")
	}

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	if im.IsActive(ActionMoveForward) || !im.JustReleased(ActionMoveForward) {
		t.Error("release not reported")
	}
}

func TestAlternateBindings(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	if !im.IsActive(ActionMoveLeft) {
		t.Error("arrow key not bound to move left")
	}
	im.UnbindKey(glfw.KeyP)
	im.HandleKeyEvent(glfw.KeyP, glfw.Press)
	if im.IsActive(ActionProbe) {
		t.Error("unbound key still triggers probe")
	}
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Error("out of range actions must report false")
	}
}

func TestMouseDelta(t *testing.T) {
	im := NewInputManager()

	im.HandleCursorPos(100, 100)
	if dx, dy := im.MouseDelta(); dx != 0 || dy != 0 {
		t.Fatalf("first cursor event moved by %v,%v", dx, dy)
	}
	im.HandleCursorPos(110, 95)
	im.HandleCursorPos(115, 90)
	if dx, dy := im.MouseDelta(); dx != 15 || dy != -10 {
		t.Errorf("MouseDelta() = %v,%v, want 15,-10", dx, dy)
	}

	im.PostUpdate()
	if dx, dy := im.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("delta not cleared by PostUpdate: %v,%v", dx, dy)
	}

	im.ResetCursor()
	im.HandleCursorPos(0, 0)
	if dx, dy := im.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("jump after ResetCursor counted as movement: %v,%v", dx, dy)
	}
}
