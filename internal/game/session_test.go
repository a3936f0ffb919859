package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fpsandbox/internal/input"
	"fpsandbox/internal/player"
)

const (
	keySpace input.Key = 32
	keyW     input.Key = 87
	keyQ     input.Key = 81
	keyF     input.Key = 70
	keyE     input.Key = 69
)

type fakeChanges struct {
	pending bool
	err     error
}

func (f *fakeChanges) Err() error {
	err := f.err
	f.err = nil
	return err
}

func (f *fakeChanges) Poll() bool {
	p := f.pending
	f.pending = false
	return p
}

func newTestSession(t *testing.T, log *zap.Logger) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keymaps.json")

	actions := input.NewActionMap()
	keymap := input.NewKeymap(path, actions, log)
	require.NoError(t, keymap.LoadOrCreate(map[string][]input.Key{
		input.ActionJump:            {keySpace},
		input.ActionMoveForward:     {keyW},
		input.ActionQuit:            {keyQ},
		input.ActionToggleWireframe: {keyF},
	}))

	cam := player.NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, player.DefaultYaw, player.DefaultPitch)
	controller := player.NewController(player.DefaultSettings(), cam, 0, 0)
	return NewSession(actions, keymap, controller, log), path
}

func TestSessionJumpFrame(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.Actions.HandleKeyEvent(keySpace, input.Pressed)
	s.Update(0.1)
	s.EndFrame()

	assert.Equal(t, player.Airborne, s.Controller.State)
	assert.InDelta(t, 5.038, s.Controller.FeetVelocity.Y(), 1e-4)
	assert.False(t, s.Actions.IsJustPressed(input.ActionJump))
	assert.True(t, s.Actions.IsPressed(input.ActionJump))
}

func TestSessionOneShotActions(t *testing.T) {
	s, _ := newTestSession(t, nil)
	quits, toggles := 0, 0
	s.OnQuit = func() { quits++ }
	s.OnToggleWireframe = func() { toggles++ }

	s.Actions.HandleKeyEvent(keyF, input.Pressed)
	s.Update(0.016)
	s.EndFrame()
	// Held key does not toggle again
	s.Update(0.016)
	s.EndFrame()
	assert.Equal(t, 1, toggles)

	s.Actions.HandleKeyEvent(keyQ, input.Pressed)
	s.Update(0.016)
	s.EndFrame()
	assert.Equal(t, 1, quits)
}

func TestSessionReloadsKeymap(t *testing.T) {
	s, path := newTestSession(t, nil)
	changes := &fakeChanges{}
	s.Changes = changes

	require.NoError(t, os.WriteFile(path, []byte(`{"jump": [69]}`), 0644))

	// Without a change notification nothing is re-read
	s.Update(0.016)
	assert.Equal(t, []input.Key{keySpace}, s.Actions.Bindings()[input.ActionJump])

	changes.pending = true
	s.Update(0.016)
	assert.Equal(t, map[string][]input.Key{input.ActionJump: {keyE}}, s.Actions.Bindings())
}

func TestSessionKeepsBindingsOnBadReload(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, path := newTestSession(t, zap.New(core))
	s.Changes = &fakeChanges{pending: true}

	require.NoError(t, os.WriteFile(path, []byte(`{"jump": [`), 0644))
	s.Update(0.016)

	assert.Equal(t, []input.Key{keySpace}, s.Actions.Bindings()[input.ActionJump])
	assert.Equal(t, 1, logs.FilterMessage("keymap reload failed, keeping previous bindings").Len())
}

func TestSessionLogsWatchErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, _ := newTestSession(t, zap.New(core))
	changes := &fakeChanges{err: errors.New("event queue overflow")}
	s.Changes = changes

	s.Update(0.016)
	s.Update(0.016)

	entries := logs.FilterMessage("keymap watch error, hot reload may miss changes").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "event queue overflow", entries[0].ContextMap()["error"])
	assert.Equal(t, []input.Key{keySpace}, s.Actions.Bindings()[input.ActionJump])
}
