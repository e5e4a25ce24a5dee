package camera

import (
	"image"
	"image/color"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"yaw/level"
)

// maxStripHeight caps projected heights for rays that end almost on the viewer.
const maxStripHeight = 1 << 16

// sideShade darkens east and west faces so corners read.
const sideShade = 0x22

// Strip is one projected wall column.
type Strip struct {
	Top      int
	Height   int
	Face     Cardinal
	HitWhere float64
	Tile     rune
	// Tint is drawn over the textured strip.
	Tint color.RGBA
}

// Project turns a ray into a wall strip for a screen screenHeight pixels tall.
// It reports false for rays that hit nothing.
func Project(ray RayCast, playerDir float64, screenHeight int, fog *level.Fog) (Strip, bool) {
	if !ray.Hit {
		return Strip{}, false
	}

	length := ray.Length()
	// project onto the view direction to undo fisheye
	dist := length * math.Cos(playerDir-ray.Angle)

	height := float64(maxStripHeight)
	if dist > 0 {
		height = math.Min(level.TileSize*float64(screenHeight)/dist, maxStripHeight)
	}
	h := int(height)

	return Strip{
		Top:      (screenHeight - h) / 2,
		Height:   h,
		Face:     ray.Face,
		HitWhere: ray.HitWhere,
		Tile:     ray.Tile,
		Tint:     tint(length, ray.Face, fog),
	}, true
}

func tint(length float64, face Cardinal, fog *level.Fog) color.RGBA {
	var c color.RGBA
	if fog != nil {
		alpha := 255.0
		if depth := float64(fog.Depth) * level.TileSize; depth > 0 {
			alpha = geom.Clamp(255*length/depth, 0, 255)
		}
		c = color.RGBA{R: fog.Color.R, G: fog.Color.G, B: fog.Color.B, A: uint8(alpha)}
	}

	switch face {
	case East, West:
		if c.A > 0xff-sideShade {
			c.A = 0xff
		} else {
			c.A += sideShade
		}
	case North, South:
	}

	return c
}

// SampleRect is the source rectangle of a texture for this strip. Textures
// hold four bands side by side, one per face in Cardinal order.
func (s Strip) SampleRect(texW, texH int) image.Rectangle {
	band := texW / 4
	x := int(s.Face)*band + int(s.HitWhere/level.TileSize*float64(band))
	w := int(float64(band) / level.TileSize)
	if w < 1 {
		w = 1
	}
	// HitWhere == TileSize lands on the next band
	if last := (int(s.Face)+1)*band - w; x > last && last >= 0 {
		x = last
	}
	return image.Rect(x, 0, x+w, texH)
}
