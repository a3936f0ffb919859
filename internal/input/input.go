package input

// Key is a physical key code as delivered by the windowing layer.
// The values match GLFW key codes so bindings files stay portable.
type Key int

// Transition is the direction of a physical key change
type Transition int

const (
	Pressed Transition = iota
	Released
)

// Action names used by the sandbox
const (
	ActionMoveForward     = "forward"
	ActionMoveBackward    = "backward"
	ActionMoveLeft        = "left"
	ActionMoveRight       = "right"
	ActionJump            = "jump"
	ActionToggleWireframe = "toggle_wireframe"
	ActionQuit            = "quit"
)

// ActionState is the per-frame state of one action
type ActionState struct {
	Pressed     bool
	JustPressed bool
	Released    bool
}

// ActionMap maps named actions to physical keys and tracks edge state.
// It is owned by the frame loop and is not safe for concurrent use:
// key callbacks and game logic run on the same thread.
type ActionMap struct {
	// Action to keys mapping (one key can drive multiple actions)
	bindings map[string][]Key

	// Lazily materialized per-action state
	states map[string]*ActionState

	// Physical keys currently down, bound or not
	held map[Key]bool
}

// NewActionMap creates an empty action map
func NewActionMap() *ActionMap {
	return &ActionMap{
		bindings: make(map[string][]Key),
		states:   make(map[string]*ActionState),
		held:     make(map[Key]bool),
	}
}

// Bind appends a key to the action's binding list.
// Duplicates are not filtered; callers decide what they bind.
func (am *ActionMap) Bind(action string, key Key) {
	am.bindings[action] = append(am.bindings[action], key)
}

// SetBindings replaces the whole binding table.
// Pressed is recomputed from the keys held right now, so an action whose
// held key was unbound is released instead of staying down.
func (am *ActionMap) SetBindings(table map[string][]Key) {
	am.bindings = make(map[string][]Key, len(table))
	for action, keys := range table {
		am.bindings[action] = append([]Key(nil), keys...)
	}

	for action, st := range am.states {
		down := am.anyHeld(am.bindings[action])
		if st.Pressed && !down {
			st.Released = true
		}
		st.Pressed = down
	}
	for action, keys := range am.bindings {
		if _, ok := am.states[action]; !ok && am.anyHeld(keys) {
			am.state(action).Pressed = true
		}
	}
}

func (am *ActionMap) anyHeld(keys []Key) bool {
	for _, key := range keys {
		if am.held[key] {
			return true
		}
	}
	return false
}

// Bindings returns a copy of the binding table
func (am *ActionMap) Bindings() map[string][]Key {
	out := make(map[string][]Key, len(am.bindings))
	for action, keys := range am.bindings {
		out[action] = append([]Key(nil), keys...)
	}
	return out
}

// HandleKeyEvent applies one physical key transition to every action bound to key
func (am *ActionMap) HandleKeyEvent(key Key, t Transition) {
	if t == Pressed {
		am.held[key] = true
	} else {
		delete(am.held, key)
	}

	for action, keys := range am.bindings {
		for _, bound := range keys {
			if bound != key {
				continue
			}
			st := am.state(action)
			switch t {
			case Pressed:
				if !st.Pressed {
					st.JustPressed = true
				}
				st.Pressed = true
			case Released:
				if st.Pressed {
					st.Released = true
				}
				st.Pressed = false
			}
		}
	}
}

// EndOfFrame clears edge flags for all actions.
// Call once per frame after game logic has consumed them.
func (am *ActionMap) EndOfFrame() {
	for _, st := range am.states {
		st.JustPressed = false
		st.Released = false
	}
}

// IsPressed returns true while the action is held down
func (am *ActionMap) IsPressed(action string) bool {
	return am.state(action).Pressed
}

// IsJustPressed returns true only on the frame the action was pressed
func (am *ActionMap) IsJustPressed(action string) bool {
	return am.state(action).JustPressed
}

// IsReleased returns true only on the frame the action was released
func (am *ActionMap) IsReleased(action string) bool {
	return am.state(action).Released
}

// State returns a copy of the action's current state
func (am *ActionMap) State(action string) ActionState {
	return *am.state(action)
}

func (am *ActionMap) state(action string) *ActionState {
	st, ok := am.states[action]
	if !ok {
		st = &ActionState{}
		am.states[action] = st
	}
	return st
}
