package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/harbdog/raycaster-go/geom"

	"yaw/engine"
)

// screenCanvas draws engine commands onto the ebiten screen.
type screenCanvas struct {
	screen *ebiten.Image
	ui     *uiKit
}

func (c *screenCanvas) Size() (int, int) {
	b := c.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (c *screenCanvas) FillRect(r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(c.screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), straight(clr), false)
}

func (c *screenCanvas) DrawLine(from, to geom.Vector2, clr color.Color) {
	vector.StrokeLine(c.screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1, straight(clr), false)
}

func (c *screenCanvas) DrawStrip(tex engine.Texture, src, dst image.Rectangle, tint color.RGBA) {
	wall, ok := tex.(*wallTexture)
	if !ok || src.Empty() || dst.Empty() {
		return
	}

	sub := wall.image.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	c.screen.DrawImage(sub, op)

	if tint.A > 0 {
		c.FillRect(dst, tint)
	}
}

func (c *screenCanvas) DrawText(msg string, style engine.TextStyle, at image.Point) {
	face := c.ui.textFace(style.Size, style.Italic)

	if style.Background != nil {
		w, h := text.Measure(msg, face, style.Size)
		bg := image.Rect(at.X, at.Y, at.X+int(w)+2*style.Padding.X, at.Y+int(h)+2*style.Padding.Y)
		c.FillRect(bg, style.Background)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(at.X+style.Padding.X), float64(at.Y+style.Padding.Y))
	if style.Color != nil {
		op.ColorScale.ScaleWithColor(style.Color)
	}
	text.Draw(c.screen, msg, face, op)
}

func (c *screenCanvas) DrawPanel(p engine.Panel) {
	ui := c.ui.panel(p)
	ui.Update()
	ui.Draw(c.screen)
}

// straight reinterprets an RGBA color as non-premultiplied. Engine tints
// carry straight alpha.
func straight(clr color.Color) color.Color {
	if c, ok := clr.(color.RGBA); ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return clr
}
