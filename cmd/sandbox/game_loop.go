package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"fpsandbox/internal/game"
	renderer "fpsandbox/internal/graphics/renderer"
	"fpsandbox/internal/profiling"
)

// GameLoop drives one frame at a time on the main thread
type GameLoop struct {
	window   *glfw.Window
	session  *game.Session
	renderer *renderer.Renderer

	fpsLimiter *game.FPSLimiter
	reporter   *profiling.Reporter
	lastTime   time.Time
}

func NewGameLoop(window *glfw.Window, session *game.Session, r *renderer.Renderer, fpsLimit int, log *zap.Logger) *GameLoop {
	return &GameLoop{
		window:     window,
		session:    session,
		renderer:   r,
		fpsLimiter: game.NewFPSLimiter(fpsLimit),
		reporter:   profiling.NewReporter(log, time.Second),
		lastTime:   time.Now(),
	}
}

// Run returns when the window is asked to close
func (gl *GameLoop) Run() {
	for !gl.window.ShouldClose() {
		gl.tick()
	}
}

func (gl *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	// Key callbacks fire here and update the action map
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	func() { defer profiling.Track("game.Update")(); gl.session.Update(float32(dt)) }()

	func() {
		defer profiling.Track("renderer.Render")()
		gl.renderer.Render(gl.session.Controller.Camera, dt)
	}()

	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()

	gl.session.EndFrame()
	gl.reporter.EndFrame()
	gl.fpsLimiter.Wait()
}
