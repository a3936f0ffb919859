package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeKeymap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keymaps.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestKeymapLoadAppliesBindings(t *testing.T) {
	path := writeKeymap(t, `{
		"jump": [32],
		"forward": [87, 265]
	}`)

	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	assert.Equal(t, []Key{87, 265}, km.Table()[ActionMoveForward])

	am.HandleKeyEvent(265, Pressed)
	assert.True(t, am.IsPressed(ActionMoveForward))
}

func TestKeymapLoadMalformed(t *testing.T) {
	path := writeKeymap(t, `{"jump": [32`)

	am := NewActionMap()
	am.Bind(ActionJump, 74)
	km := NewKeymap(path, am, nil)

	require.Error(t, km.Load())
	// Existing bindings untouched
	assert.Equal(t, []Key{74}, am.Bindings()[ActionJump])
}

func TestKeymapLoadMissingFile(t *testing.T) {
	km := NewKeymap(filepath.Join(t.TempDir(), "nope.json"), NewActionMap(), nil)
	assert.Error(t, km.Load())
}

func TestKeymapReloadReplacesTable(t *testing.T) {
	path := writeKeymap(t, `{"jump": [32], "quit": [256]}`)
	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	require.NoError(t, os.WriteFile(path, []byte(`{"jump": [74]}`), 0644))
	require.NoError(t, km.Load())

	assert.Equal(t, map[string][]Key{ActionJump: {74}}, am.Bindings())
}

func TestKeymapMutationsRewriteFile(t *testing.T) {
	path := writeKeymap(t, `{"jump": [32]}`)
	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	require.NoError(t, km.AddBinding(ActionJump, 74))
	require.NoError(t, km.AddBinding(ActionMoveLeft, 65))
	require.NoError(t, km.SetBinding(ActionJump, 0, 257))

	reread := NewKeymap(path, NewActionMap(), nil)
	require.NoError(t, reread.Load())
	assert.Equal(t, []Key{257, 74}, reread.Table()[ActionJump])
	assert.Equal(t, []Key{65}, reread.Table()[ActionMoveLeft])

	require.NoError(t, km.RemoveBinding(ActionJump, 0))
	require.NoError(t, reread.Load())
	assert.Equal(t, []Key{74}, reread.Table()[ActionJump])

	// Mutations are applied to the live action map too
	am.HandleKeyEvent(74, Pressed)
	assert.True(t, am.IsPressed(ActionJump))
	am.HandleKeyEvent(257, Pressed)
	am.HandleKeyEvent(74, Released)
	assert.False(t, am.IsPressed(ActionJump))
}

func TestKeymapFileIsPrettyPrinted(t *testing.T) {
	path := writeKeymap(t, `{"jump":[32]}`)
	km := NewKeymap(path, nil, nil)
	require.NoError(t, km.Load())
	require.NoError(t, km.AddBinding(ActionJump, 74))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"jump\": [\n        32,\n        74\n    ]\n}\n", string(data))
}

func TestKeymapRemoveOutOfRangeIsLoggedNoop(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := writeKeymap(t, `{"jump": [32]}`)
	km := NewKeymap(path, NewActionMap(), zap.New(core))
	require.NoError(t, km.Load())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NoError(t, km.RemoveBinding(ActionJump, 3))
	assert.NoError(t, km.RemoveBinding(ActionJump, -1))
	assert.NoError(t, km.RemoveBinding("missing", 0))
	assert.NoError(t, km.SetBinding("missing", 0, 10))

	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, []Key{32}, km.Table()[ActionJump])

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestKeymapLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "keymaps.json")
	am := NewActionMap()
	km := NewKeymap(path, am, nil)

	defaults := map[string][]Key{ActionJump: {32}}
	require.NoError(t, km.LoadOrCreate(defaults))
	assert.FileExists(t, path)
	assert.Equal(t, []Key{32}, am.Bindings()[ActionJump])

	// Existing file wins over defaults
	require.NoError(t, os.WriteFile(path, []byte(`{"jump": [74]}`), 0644))
	require.NoError(t, km.LoadOrCreate(defaults))
	assert.Equal(t, []Key{74}, am.Bindings()[ActionJump])
}

func TestKeymapReloadReleasesUnboundHeldKey(t *testing.T) {
	path := writeKeymap(t, `{"forward": [87]}`)
	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	am.HandleKeyEvent(87, Pressed)
	am.EndOfFrame()
	require.True(t, am.IsPressed(ActionMoveForward))

	require.NoError(t, os.WriteFile(path, []byte(`{"forward": [265]}`), 0644))
	require.NoError(t, km.Load())

	assert.False(t, am.IsPressed(ActionMoveForward))
	assert.True(t, am.IsReleased(ActionMoveForward))

	am.HandleKeyEvent(87, Released)
	am.EndOfFrame()
	assert.False(t, am.IsPressed(ActionMoveForward))
	assert.False(t, am.IsReleased(ActionMoveForward))
}

func TestKeymapReloadKeepsKeyHeldUnderNewBinding(t *testing.T) {
	path := writeKeymap(t, `{"forward": [87]}`)
	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	am.HandleKeyEvent(265, Pressed)
	am.HandleKeyEvent(87, Pressed)
	am.EndOfFrame()

	require.NoError(t, os.WriteFile(path, []byte(`{"forward": [265], "jump": [87]}`), 0644))
	require.NoError(t, km.Load())

	assert.True(t, am.IsPressed(ActionMoveForward))
	assert.False(t, am.IsReleased(ActionMoveForward))
	assert.True(t, am.IsPressed(ActionJump))
	assert.False(t, am.IsJustPressed(ActionJump))

	am.HandleKeyEvent(265, Released)
	assert.False(t, am.IsPressed(ActionMoveForward))
}

func TestKeymapFailedSaveKeepsTable(t *testing.T) {
	path := writeKeymap(t, `{"jump": [32]}`)
	am := NewActionMap()
	km := NewKeymap(path, am, nil)
	require.NoError(t, km.Load())

	// A directory in place of the file makes every write fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	assert.Error(t, km.AddBinding(ActionJump, 74))
	assert.Error(t, km.SetBinding(ActionJump, 0, 257))
	assert.Error(t, km.RemoveBinding(ActionJump, 0))

	assert.Equal(t, map[string][]Key{ActionJump: {32}}, km.Table())
	assert.Equal(t, map[string][]Key{ActionJump: {32}}, am.Bindings())
}
