package engine

import (
	"image"
	"image/color"

	"github.com/harbdog/raycaster-go/geom"

	"yaw/camera"
	"yaw/level"
)

var (
	minimapVeil = color.RGBA{A: 0x77}
	minimapWall = color.RGBA{G: 0xdd, A: 0xff}
)

// drawMinimap overlays the map centred on the canvas with the rays of the
// current frame fanning out from the player.
func (e *Engine) drawMinimap(c Canvas, rays []camera.RayCast) {
	w, h := c.Size()
	c.FillRect(image.Rect(0, 0, w, h), minimapVeil)

	offset := geom.Vector2{
		X: float64(w)/2 - float64(e.level.Width())*level.TileSize/2,
		Y: float64(h)/2 - float64(e.level.Height())*level.TileSize/2,
	}

	from := geom.Vector2{X: e.player.Position.X + offset.X, Y: e.player.Position.Y + offset.Y}
	for _, ray := range rays {
		if !ray.Hit {
			continue
		}
		c.DrawLine(from, geom.Vector2{X: from.X + ray.Vec.X, Y: from.Y + ray.Vec.Y}, green)
	}

	for i := 0; i < e.level.Len(); i++ {
		tile := e.level.TileAt(i)
		switch tile.Kind {
		case level.TileCustom:
			if def, ok := e.level.Def(tile.Symbol); !ok || !def.Collidable {
				continue
			}
			corner := e.level.CellIndexToWorld(i)
			x, y := int(corner.X+offset.X), int(corner.Y+offset.Y)
			c.FillRect(image.Rect(x, y, x+int(level.TileSize), y+int(level.TileSize)), minimapWall)
		case level.TileEmpty, level.TileSpawn:
		}
	}
}
