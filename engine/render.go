package engine

import (
	"fmt"
	"image"
	"image/color"

	"github.com/harbdog/raycaster-go/geom"
)

// Canvas is the drawing surface the engine renders into.
type Canvas interface {
	Size() (width, height int)
	FillRect(r image.Rectangle, c color.Color)
	DrawLine(from, to geom.Vector2, c color.Color)
	// DrawStrip scales src of tex into dst and then draws tint over dst.
	DrawStrip(tex Texture, src, dst image.Rectangle, tint color.RGBA)
	DrawText(msg string, style TextStyle, at image.Point)
	DrawPanel(p Panel)
}

type Texture interface {
	Size() (width, height int)
}

// TextureSource resolves a legend symbol to its wall texture.
type TextureSource interface {
	Texture(symbol rune) (Texture, error)
}

type TextStyle struct {
	Size   float64
	Italic bool
	Color  color.Color
	// Background, when set, is filled behind the text grown by Padding on each side.
	Background color.Color
	Padding    image.Point
}

// Panel is a full-screen overlay: a veil over the whole canvas and a message.
type Panel struct {
	Veil    color.RGBA
	Message string
	Style   TextStyle
	At      image.Point
}

// AssetError reports a wall texture that could not be loaded.
type AssetError struct {
	Symbol rune
	Path   string
	Err    error
}

func (e *AssetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("texture for tile %q: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("texture for tile %q (%s): %v", e.Symbol, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
