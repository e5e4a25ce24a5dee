package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"yaw/config"
	"yaw/level"
	"yaw/logger"
)

func main() {
	flags := pflag.NewFlagSet("yaw", pflag.ExitOnError)
	cfgPath := flags.StringP("config", "c", "", "config file (default: ./yaw.{yaml,toml,json} if present)")
	config.RegisterFlags(flags)
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, flags)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Component("main")

	m, err := level.Load(cfg.Game.Map)
	if err != nil {
		log.WithError(err).Fatal("failed to load map")
	}
	log.WithFields(logrus.Fields{
		"width":  m.Width(),
		"height": m.Height(),
	}).Info("map loaded")

	g, err := NewGame(cfg, m)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize game")
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(cfg.Game.TPS)
	// frames are only redrawn when something changed
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("game stopped")
	}
	log.Info("bye")
}
