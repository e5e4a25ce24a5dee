package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"yaw/engine"
)

var keymap = map[ebiten.Key]engine.Key{
	ebiten.KeyW:          engine.KeyW,
	ebiten.KeyA:          engine.KeyA,
	ebiten.KeyS:          engine.KeyS,
	ebiten.KeyD:          engine.KeyD,
	ebiten.KeyArrowLeft:  engine.KeyLeft,
	ebiten.KeyArrowRight: engine.KeyRight,
	ebiten.KeyEnter:      engine.KeyEnter,
	ebiten.KeyBackspace:  engine.KeyBackspace,
	ebiten.KeyM:          engine.KeyM,
	ebiten.KeyEscape:     engine.KeyEscape,
}

// keyboard implements engine.Input on top of ebiten's key state.
type keyboard struct {
	raw  []ebiten.Key
	just []engine.Key
	held []engine.Key
}

func translate(dst []engine.Key, keys []ebiten.Key) []engine.Key {
	for _, k := range keys {
		if key, ok := keymap[k]; ok {
			dst = append(dst, key)
		} else {
			dst = append(dst, engine.KeyOther)
		}
	}
	return dst
}

// poll snapshots the keys for the current tick.
func (k *keyboard) poll() {
	k.raw = inpututil.AppendJustPressedKeys(k.raw[:0])
	k.just = translate(k.just[:0], k.raw)

	k.raw = inpututil.AppendPressedKeys(k.raw[:0])
	k.held = translate(k.held[:0], k.raw)
}

func (k *keyboard) JustPressed() []engine.Key { return k.just }
func (k *keyboard) Held() []engine.Key        { return k.held }
