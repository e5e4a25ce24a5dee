package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonoitalic"

	"yaw/engine"
)

type faceKey struct {
	size   float64
	italic bool
}

type panelKey struct {
	message string
	veil    color.RGBA
}

// uiKit owns the fonts and the overlay panels.
type uiKit struct {
	regular *truetype.Font
	italic  *truetype.Font

	faces  map[faceKey]font.Face
	xfaces map[faceKey]*text.GoXFace
	panels map[panelKey]*ebitenui.UI
}

func newUIKit() (*uiKit, error) {
	regular, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	italic, err := truetype.Parse(gomonoitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse italic font: %w", err)
	}

	return &uiKit{
		regular: regular,
		italic:  italic,
		faces:   make(map[faceKey]font.Face),
		xfaces:  make(map[faceKey]*text.GoXFace),
		panels:  make(map[panelKey]*ebitenui.UI),
	}, nil
}

func (u *uiKit) face(size float64, italic bool) font.Face {
	key := faceKey{size, italic}
	if f, ok := u.faces[key]; ok {
		return f
	}

	ttf := u.regular
	if italic {
		ttf = u.italic
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	u.faces[key] = f
	return f
}

func (u *uiKit) textFace(size float64, italic bool) *text.GoXFace {
	key := faceKey{size, italic}
	if f, ok := u.xfaces[key]; ok {
		return f
	}
	f := text.NewGoXFace(u.face(size, italic))
	u.xfaces[key] = f
	return f
}

// panel builds (once per message and veil) a full-screen container with the
// message anchored to its top-left corner.
func (u *uiKit) panel(p engine.Panel) *ebitenui.UI {
	key := panelKey{p.Message, p.Veil}
	if ui, ok := u.panels[key]; ok {
		return ui
	}

	veil := color.NRGBA{R: p.Veil.R, G: p.Veil.G, B: p.Veil.B, A: p.Veil.A}
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(veil)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.Insets{Top: p.At.Y, Left: p.At.X}),
		)),
	)

	var fg color.Color = color.White
	if p.Style.Color != nil {
		fg = p.Style.Color
	}
	root.AddChild(widget.NewText(
		widget.TextOpts.Text(p.Message, u.face(p.Style.Size, p.Style.Italic), fg),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	))

	ui := &ebitenui.UI{Container: root}
	u.panels[key] = ui
	return ui
}
