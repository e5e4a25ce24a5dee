package main

import (
	"errors"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"yaw/engine"
	"yaw/level"
	"yaw/logger"
)

// wallTexture is a loaded wall image. Its width holds the four face bands.
type wallTexture struct {
	image *ebiten.Image
}

func (t *wallTexture) Size() (int, int) {
	b := t.image.Bounds()
	return b.Dx(), b.Dy()
}

// TextureManager loads wall textures on first use and keeps them for the
// rest of the run.
type TextureManager struct {
	level    *level.Map
	textures map[rune]*wallTexture
	log      *logrus.Entry
}

func NewTextureManager(m *level.Map) *TextureManager {
	return &TextureManager{
		level:    m,
		textures: make(map[rune]*wallTexture),
		log:      logger.Component("textures"),
	}
}

func (t *TextureManager) Texture(symbol rune) (engine.Texture, error) {
	if tex, ok := t.textures[symbol]; ok {
		return tex, nil
	}

	path, ok := t.level.TexturePath(symbol)
	if !ok {
		return nil, &engine.AssetError{Symbol: symbol, Err: errors.New("symbol not in legend")}
	}

	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, &engine.AssetError{Symbol: symbol, Path: path, Err: err}
	}

	tex := &wallTexture{image: img}
	t.textures[symbol] = tex

	w, h := tex.Size()
	t.log.WithFields(logrus.Fields{
		"symbol": string(symbol),
		"path":   path,
		"width":  w,
		"height": h,
	}).Debug("texture loaded")

	return tex, nil
}
