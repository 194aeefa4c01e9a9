package core

// Action represents a semantic input, abstracted from physical key presses.
// Platform code maps keys to actions; the game maps actions to moves.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, W, K - hop to the previous ice row
	ActionDown           // Down arrow, S, J - hop to the next ice row
	ActionLeft           // Left arrow, A, H
	ActionRight          // Right arrow, D, L
	ActionConfirm        // Enter
	ActionYes            // Y in yes/no prompts
	ActionNo             // N in yes/no prompts
	ActionBack           // Esc
	ActionQuit           // Q, Ctrl+C
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
	case ActionYes:
		return "Yes"
	case ActionNo:
		return "No"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
