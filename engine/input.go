package engine

import "strconv"

// Key is a key the engine reacts to. Every other key arrives as KeyOther.
type Key uint8

const (
	KeyOther Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyM
	KeyEscape
)

var keyNames = map[Key]string{
	KeyOther:     "other",
	KeyW:         "w",
	KeyA:         "a",
	KeyS:         "s",
	KeyD:         "d",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyM:         "m",
	KeyEscape:    "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// Input is polled once per tick.
type Input interface {
	// JustPressed returns the keys that went down this tick.
	JustPressed() []Key
	// Held returns every key that is down.
	Held() []Key
}
