package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrIndexOutOfRange is reported (logged, never returned) when a binding edit
// names an unknown action or a key index outside its list.
var ErrIndexOutOfRange = errors.New("keymap: binding index out of range")

// Keymap is the persisted binding table.
// Every mutation rewrites the file and re-applies the table to the ActionMap.
type Keymap struct {
	path    string
	table   map[string][]Key
	actions *ActionMap
	log     *zap.Logger
}

// NewKeymap creates a keymap backed by the JSON file at path
func NewKeymap(path string, actions *ActionMap, log *zap.Logger) *Keymap {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keymap{
		path:    path,
		table:   make(map[string][]Key),
		actions: actions,
		log:     log.Named("keymap"),
	}
}

// Path returns the backing file path
func (k *Keymap) Path() string {
	return k.path
}

// Table returns a copy of the persisted binding table
func (k *Keymap) Table() map[string][]Key {
	return copyTable(k.table)
}

// Load reads the file and replaces the entire binding table.
// Malformed input is returned as an error; the current table is left untouched.
func (k *Keymap) Load() error {
	data, err := os.ReadFile(k.path)
	if err != nil {
		return fmt.Errorf("could not read keymap file: %w", err)
	}

	table := make(map[string][]Key)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("could not unmarshal keymap json: %w", err)
	}

	k.table = table
	k.apply()
	k.log.Info("keymap loaded", zap.String("path", k.path), zap.Int("actions", len(table)))
	return nil
}

// LoadOrCreate loads the file, writing defaults first when it does not exist
func (k *Keymap) LoadOrCreate(defaults map[string][]Key) error {
	if _, err := os.Stat(k.path); errors.Is(err, fs.ErrNotExist) {
		if err := k.commit(copyTable(defaults)); err != nil {
			return err
		}
		k.log.Info("keymap created with defaults", zap.String("path", k.path))
		return nil
	}
	return k.Load()
}

// Save writes the table as pretty-printed JSON
func (k *Keymap) Save() error {
	return k.write(k.table)
}

func (k *Keymap) write(table map[string][]Key) error {
	data, err := json.MarshalIndent(table, "", "    ")
	if err != nil {
		return fmt.Errorf("could not marshal keymap: %w", err)
	}
	if dir := filepath.Dir(k.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(k.path, append(data, '\n'), 0644)
}

// SetBinding replaces the key at index in the action's list
func (k *Keymap) SetBinding(action string, index int, key Key) error {
	keys, ok := k.table[action]
	if !ok || index < 0 || index >= len(keys) {
		k.log.Warn("set binding ignored",
			zap.String("action", action),
			zap.Int("index", index),
			zap.Error(ErrIndexOutOfRange))
		return nil
	}
	table := copyTable(k.table)
	table[action][index] = key
	return k.commit(table)
}

// AddBinding appends a key to the action's list, creating the action if needed
func (k *Keymap) AddBinding(action string, key Key) error {
	table := copyTable(k.table)
	table[action] = append(table[action], key)
	return k.commit(table)
}

// RemoveBinding drops the key at index from the action's list.
// An unknown action or bad index is logged and ignored.
func (k *Keymap) RemoveBinding(action string, index int) error {
	keys, ok := k.table[action]
	if !ok || index < 0 || index >= len(keys) {
		k.log.Warn("remove binding ignored",
			zap.String("action", action),
			zap.Int("index", index),
			zap.Error(ErrIndexOutOfRange))
		return nil
	}
	table := copyTable(k.table)
	table[action] = append(keys[:index:index], keys[index+1:]...)
	return k.commit(table)
}

// commit persists table and only then makes it current
func (k *Keymap) commit(table map[string][]Key) error {
	if err := k.write(table); err != nil {
		return err
	}
	k.table = table
	k.apply()
	return nil
}

func (k *Keymap) apply() {
	if k.actions != nil {
		k.actions.SetBindings(k.table)
	}
}

func copyTable(table map[string][]Key) map[string][]Key {
	out := make(map[string][]Key, len(table))
	for action, keys := range table {
		out[action] = append([]Key(nil), keys...)
	}
	return out
}
