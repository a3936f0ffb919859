package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	renderer "fpsandbox/internal/graphics/renderer"
	"fpsandbox/internal/input"
	"fpsandbox/internal/player"
)

func setupInputHandlers(window *glfw.Window, actions *input.ActionMap, cam *player.Camera, r *renderer.Renderer) {
	mouse := player.NewMouseTracker()

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if dx, dy, ok := mouse.Delta(xpos, ypos); ok {
			cam.ProcessMouseMovement(dx, dy)
		}
	})

	// Regaining focus can jump the cursor; start over from the next sample
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if focused {
			mouse.Reset()
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		if t, ok := transition(action); ok {
			actions.HandleKeyEvent(input.Key(key), t)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		r.UpdateViewport(fbWidth, fbHeight)
	})
}

// transition maps GLFW actions; key repeat counts as a press
func transition(action glfw.Action) (input.Transition, bool) {
	switch action {
	case glfw.Press, glfw.Repeat:
		return input.Pressed, true
	case glfw.Release:
		return input.Released, true
	}
	return 0, false
}
