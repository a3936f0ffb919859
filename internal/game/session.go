// Package game runs the per-frame simulation between window events and rendering.
package game

import (
	"go.uber.org/zap"

	"fpsandbox/internal/input"
	"fpsandbox/internal/player"
)

// ChangeSource reports whether the keymap file changed since the last call,
// and any error the watch itself ran into. input.KeymapWatcher satisfies it.
type ChangeSource interface {
	Poll() bool
	Err() error
}

// Session ties the action map, keymap and controller together for one run
type Session struct {
	Actions    *input.ActionMap
	Keymap     *input.Keymap
	Controller *player.Controller

	// Optional; nil disables hot reload
	Changes ChangeSource

	OnQuit            func()
	OnToggleWireframe func()

	log *zap.Logger
}

func NewSession(actions *input.ActionMap, keymap *input.Keymap, controller *player.Controller, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		Actions:    actions,
		Keymap:     keymap,
		Controller: controller,
		log:        log.Named("game"),
	}
}

// Update runs after window events were polled: reload bindings if the file
// changed, react to one-shot actions, then step the controller.
func (s *Session) Update(dt float32) {
	if s.Changes != nil && s.Keymap != nil {
		if err := s.Changes.Err(); err != nil {
			s.log.Warn("keymap watch error, hot reload may miss changes",
				zap.String("path", s.Keymap.Path()),
				zap.Error(err))
		}
		if s.Changes.Poll() {
			s.reloadKeymap()
		}
	}

	if s.Actions.IsJustPressed(input.ActionQuit) && s.OnQuit != nil {
		s.OnQuit()
	}
	if s.Actions.IsJustPressed(input.ActionToggleWireframe) && s.OnToggleWireframe != nil {
		s.OnToggleWireframe()
	}

	s.Controller.Update(dt, s.Actions)
}

// EndFrame clears the edge flags; call once after rendering
func (s *Session) EndFrame() {
	s.Actions.EndOfFrame()
}

// reloadKeymap keeps the previous bindings when the new file is unusable
func (s *Session) reloadKeymap() {
	if err := s.Keymap.Load(); err != nil {
		s.log.Warn("keymap reload failed, keeping previous bindings",
			zap.String("path", s.Keymap.Path()),
			zap.Error(err))
	}
}
