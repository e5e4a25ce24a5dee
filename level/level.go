// Package level holds the tile-grid map: cells, the per-symbol tile legend and
// scene-wide attributes. A Map is built once by Parse/Load and never changes
// afterwards, so it can be shared by the camera and the engine without locking.
package level

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"
)

// TileSize is the edge length of one cell in world units.
const TileSize = 32.0

type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileSpawn
	TileCustom
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileSpawn:
		return "spawn"
	case TileCustom:
		return "custom"
	}
	return "TileKind(" + strconv.Itoa(int(k)) + ")"
}

// Tile is one grid cell. Symbol is only meaningful for TileCustom.
type Tile struct {
	Kind   TileKind
	Symbol rune
}

// TileDef describes a legend symbol.
type TileDef struct {
	// Collidable tiles stop the player. Rays stop on every custom tile.
	Collidable bool
	// Texture is relative to the directory the map was loaded from.
	Texture string
	// HalfWidth tiles lie along the y axis and are only struck by vertical-line crossings.
	HalfWidth bool
	// HalfHeight tiles lie along the x axis and are only struck by horizontal-line crossings.
	HalfHeight bool
}

// Attribute is a scene-wide setting. Fog is the only implementation.
type Attribute interface {
	attribute()
}

// Fog fades walls toward Color; a wall Depth tiles away is fully fogged.
type Fog struct {
	Depth uint8
	Color color.RGBA
}

func (Fog) attribute() {}

type Map struct {
	width  int
	height int
	cells  []Tile
	defs   map[rune]TileDef
	attrs  []Attribute
	dir    string
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// Len is the number of cells, Width*Height.
func (m *Map) Len() int { return len(m.cells) }

// TileAt returns the tile at a cell index. Indexes outside the grid are empty.
func (m *Map) TileAt(index int) Tile {
	if index < 0 || index >= len(m.cells) {
		return Tile{Kind: TileEmpty}
	}
	return m.cells[index]
}

// Def returns the legend entry for a symbol.
func (m *Map) Def(symbol rune) (TileDef, bool) {
	def, ok := m.defs[symbol]
	return def, ok
}

// Defs returns a copy of the whole legend.
func (m *Map) Defs() (map[rune]TileDef, error) {
	defs := make(map[rune]TileDef, len(m.defs))
	if err := copier.CopyWithOption(&defs, m.defs, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy tile legend: %w", err)
	}
	return defs, nil
}

// Attributes returns the scene attributes in declaration order.
func (m *Map) Attributes() []Attribute {
	return append([]Attribute(nil), m.attrs...)
}

// Fog returns the fog attribute, if the map declares one. When several are
// declared the last one wins.
func (m *Map) Fog() (Fog, bool) {
	var (
		fog Fog
		ok  bool
	)
	for _, attr := range m.Attributes() {
		switch a := attr.(type) {
		case Fog:
			fog, ok = a, true
		}
	}
	return fog, ok
}

// TexturePath resolves the texture reference of a symbol against the map directory.
func (m *Map) TexturePath(symbol rune) (string, bool) {
	def, ok := m.defs[symbol]
	if !ok {
		return "", false
	}
	return filepath.Join(m.dir, def.Texture), true
}

// WorldToCellIndex truncates a world position to its cell and returns the
// row-major cell index, or -1 when the position is outside the grid.
func (m *Map) WorldToCellIndex(pos geom.Vector2) int {
	cx, cy := pos.X/TileSize, pos.Y/TileSize
	// negated form also rejects NaN
	if !(cx >= 0 && cy >= 0 && cx < float64(m.width) && cy < float64(m.height)) {
		return -1
	}
	return int(cy)*m.width + int(cx)
}

// CellIndexToWorld returns the top-left corner of a cell in world units.
func (m *Map) CellIndexToWorld(index int) geom.Vector2 {
	x := index % m.width
	y := index / m.width
	return geom.Vector2{X: float64(x) * TileSize, Y: float64(y) * TileSize}
}

// Spawn returns the corner of the first spawn cell.
func (m *Map) Spawn() (geom.Vector2, bool) {
	for i, tile := range m.cells {
		if tile.Kind == TileSpawn {
			return m.CellIndexToWorld(i), true
		}
	}
	return geom.Vector2{}, false
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("not a hex color: %q", hex)
	}

	var c [3]uint8
	for i := range c {
		v, err := strconv.ParseUint(hex[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("not a hex color: %q", hex)
		}
		c[i] = uint8(v)
	}

	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
}
