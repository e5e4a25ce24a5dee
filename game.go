package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"yaw/config"
	"yaw/engine"
	"yaw/level"
	"yaw/logger"
)

// Game adapts the engine to ebiten's update/draw loop.
type Game struct {
	width, height int

	engine   *engine.Engine
	keyboard *keyboard
	textures *TextureManager
	ui       *uiKit

	// err is set when a frame fails to draw and stops the loop on the next Update
	err error
	log *logrus.Entry
}

func NewGame(cfg *config.Config, m *level.Map) (*Game, error) {
	e, err := engine.New(m, engine.Options{
		Width:    cfg.Screen.Width,
		FOV:      cfg.Render.FOV,
		DOF:      cfg.Render.DOF,
		Workers:  cfg.Render.Workers,
		Speed:    cfg.Player.Speed,
		TurnRate: cfg.Player.TurnRate,
		Health:   uint8(cfg.Player.Health),
		Ceiling:  cfg.CeilingColor(),
		Floor:    cfg.FloorColor(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	ui, err := newUIKit()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	textures := NewTextureManager(m)
	if err := e.Preload(textures); err != nil {
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}

	return &Game{
		width:    cfg.Screen.Width,
		height:   cfg.Screen.Height,
		engine:   e,
		keyboard: &keyboard{},
		textures: textures,
		ui:       ui,
		log:      logger.Component("game"),
	}, nil
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}

	g.keyboard.poll()
	g.engine.HandleInput(g.keyboard)

	if g.engine.Done() {
		g.log.Info("exit requested")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil || !g.engine.Dirty() {
		return
	}

	c := &screenCanvas{screen: screen, ui: g.ui}
	if err := g.engine.Draw(c, g.textures); err != nil {
		g.log.WithError(err).WithField("state", g.engine.State()).Error("error while drawing")
		g.err = err
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
