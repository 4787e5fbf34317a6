package input

// Action is a viewer command bound to a key or window event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResetCamera
	ActionFitCamera
	ActionToggleWireframe
	ActionScreenshot
)

// ActionFor maps a single event to a command. Mouse input drives the
// camera directly and never maps to an action.
func ActionFor(ev Event) Action {
	switch ev.Type {
	case EventQuit:
		return ActionQuit
	case EventKeyDown:
		switch ev.Key {
		case KeyEscape:
			return ActionQuit
		case KeyR:
			return ActionResetCamera
		case KeyF:
			return ActionFitCamera
		case KeyW:
			return ActionToggleWireframe
		case KeyP:
			return ActionScreenshot
		}
	}
	return ActionNone
}
