// Package engine runs the game state machine: it owns the player, turns input
// into state changes and movement, and draws each state onto a Canvas.
package engine

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/sirupsen/logrus"

	"yaw/camera"
	"yaw/level"
	"yaw/logger"
	"yaw/model"
)

const (
	menuMessage  = "Press enter to play, press backspace to exit"
	pauseMessage = "Paused - press any key to resume"
)

var (
	black     = color.RGBA{A: 0xff}
	green     = color.RGBA{G: 0xff, A: 0xff}
	pauseVeil = color.RGBA{A: 0xdd}

	panelStyle = TextStyle{Size: 24, Italic: true, Color: green}
	hudStyle   = TextStyle{Size: 16, Color: green, Background: black, Padding: image.Pt(8, 4)}
)

type Options struct {
	Width   int
	FOV     float64
	DOF     int
	Workers int

	Speed    float64
	TurnRate float64
	Health   uint8

	Ceiling color.RGBA
	Floor   color.RGBA
}

type Engine struct {
	state  State
	level  *level.Map
	player *model.Player
	camera *camera.Camera
	fog    *level.Fog

	ceiling color.RGBA
	floor   color.RGBA

	dirty bool
	log   *logrus.Entry
}

// New places a player in the middle of the map's spawn cell, facing +x, and
// starts in the menu.
func New(m *level.Map, opts Options) (*Engine, error) {
	spawn, ok := m.Spawn()
	if !ok {
		return nil, errors.New("map has no spawn")
	}

	cam := camera.New(opts.Width, opts.FOV, opts.DOF)
	cam.SetWorkers(opts.Workers)

	e := &Engine{
		state: StateMenu,
		level: m,
		player: model.NewPlayer(
			spawn.X+level.TileSize/2, spawn.Y+level.TileSize/2, 0,
			opts.Speed, opts.TurnRate, opts.Health,
		),
		camera:  cam,
		ceiling: opts.Ceiling,
		floor:   opts.Floor,
		dirty:   true,
		log:     logger.Component("engine"),
	}
	if fog, ok := m.Fog(); ok {
		e.fog = &fog
	}

	return e, nil
}

func (e *Engine) State() State          { return e.state }
func (e *Engine) Player() *model.Player { return e.player }

// Done reports whether the player asked to quit.
func (e *Engine) Done() bool { return e.state == StateExit }

// Dirty reports whether anything changed since the last Draw.
func (e *Engine) Dirty() bool { return e.dirty }

// HandleInput applies one tick of input: freshly pressed keys first, then
// held keys.
func (e *Engine) HandleInput(in Input) {
	for _, k := range in.JustPressed() {
		e.press(k)
	}

	held := in.Held()
	if len(held) == 0 {
		return
	}

	switch e.state {
	case StatePlaying, StateMinimap:
		e.move(held)
		e.dirty = true
	case StateMenu:
		e.dirty = true
	case StatePaused, StateExit:
	}
}

func (e *Engine) press(k Key) {
	e.dirty = true

	next := e.state.next(k)
	if next == e.state {
		return
	}

	e.log.WithFields(logrus.Fields{
		"from": e.state,
		"to":   next,
		"key":  k,
	}).Debug("state transition")
	e.state = next
}

func (e *Engine) move(held []Key) {
	p := e.player
	blocked := func(pos geom.Vector2) bool {
		_, hit := e.level.Colliding(pos, true)
		return hit
	}

	for _, k := range held {
		switch k {
		case KeyW:
			p.Slide(p.Step(), blocked)
		case KeyS:
			step := p.Step()
			p.Slide(geom.Vector2{X: -step.X, Y: -step.Y}, blocked)
		case KeyD:
			p.Slide(p.Strafe(), blocked)
		case KeyA:
			strafe := p.Strafe()
			p.Slide(geom.Vector2{X: -strafe.X, Y: -strafe.Y}, blocked)
		case KeyLeft:
			p.Turn(-p.TurnRate)
		case KeyRight:
			p.Turn(p.TurnRate)
		}
	}
	p.Direction = model.NormalizeAngle(p.Direction)
}

// Preload resolves the texture of every legend symbol, in symbol order, so a
// missing or broken asset is reported before the first frame.
func (e *Engine) Preload(tex TextureSource) error {
	defs, err := e.level.Defs()
	if err != nil {
		return err
	}

	symbols := make([]rune, 0, len(defs))
	for symbol := range defs {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	for _, symbol := range symbols {
		if _, err := tex.Texture(symbol); err != nil {
			return assetError(symbol, err)
		}
	}

	e.log.WithField("textures", len(symbols)).Debug("textures preloaded")
	return nil
}

func assetError(symbol rune, err error) error {
	var aerr *AssetError
	if errors.As(err, &aerr) {
		return err
	}
	return &AssetError{Symbol: symbol, Err: err}
}

// Draw renders the current state. Texture failures abort the frame with an
// *AssetError.
func (e *Engine) Draw(c Canvas, tex TextureSource) error {
	e.dirty = false
	w, h := c.Size()

	switch e.state {
	case StateMenu:
		c.FillRect(image.Rect(0, 0, w, h), black)
		c.DrawPanel(Panel{Message: menuMessage, Style: panelStyle, At: image.Pt(16, 16)})
	case StatePlaying, StateMinimap:
		rays := e.camera.Cast(e.level, e.player.Position, e.player.Direction)
		if err := e.drawScene(c, tex, rays); err != nil {
			return err
		}
		if e.state == StateMinimap {
			e.drawMinimap(c, rays)
		}
		c.DrawText(fmt.Sprintf("HEALTH: %d", e.player.Health), hudStyle, image.Pt(16, 16))
	case StatePaused:
		c.DrawPanel(Panel{Veil: pauseVeil, Message: pauseMessage, Style: panelStyle, At: image.Pt(16, 16)})
	case StateExit:
	}

	return nil
}

func (e *Engine) drawScene(c Canvas, tex TextureSource, rays []camera.RayCast) error {
	w, h := c.Size()
	c.FillRect(image.Rect(0, 0, w, h/2), e.ceiling)
	c.FillRect(image.Rect(0, h/2, w, h), e.floor)

	for i, ray := range rays {
		strip, ok := camera.Project(ray, e.player.Direction, h, e.fog)
		if !ok {
			continue
		}

		t, err := tex.Texture(strip.Tile)
		if err != nil {
			return assetError(strip.Tile, err)
		}

		tw, th := t.Size()
		dst := image.Rect(i, strip.Top, i+1, strip.Top+strip.Height)
		c.DrawStrip(t, strip.SampleRect(tw, th), dst, strip.Tint)
	}

	return nil
}
