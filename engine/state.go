package engine

import "strconv"

type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StateMinimap
	StatePaused
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateMinimap:
		return "minimap"
	case StatePaused:
		return "paused"
	case StateExit:
		return "exit"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// next is the state a freshly pressed key leads to.
func (s State) next(k Key) State {
	switch s {
	case StateMenu:
		switch k {
		case KeyEnter:
			return StatePlaying
		case KeyBackspace:
			return StateExit
		}
	case StatePlaying:
		switch k {
		case KeyM:
			return StateMinimap
		case KeyEscape:
			return StatePaused
		}
	case StateMinimap:
		switch k {
		case KeyM:
			return StatePlaying
		case KeyEscape:
			return StatePaused
		}
	case StatePaused:
		return StatePlaying
	case StateExit:
	}
	return s
}
