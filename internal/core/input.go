package core

// Action represents a semantic input action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, k - move selection up
	ActionDown           // Down arrow, j - move selection down
	ActionLeft           // Left arrow, h - decrease a value
	ActionRight          // Right arrow, l - increase a value
	ActionConfirm        // Enter - confirm selection
	ActionBack           // Escape - go back
	ActionRestart        // R key - new round after game over
	ActionQuit           // Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
