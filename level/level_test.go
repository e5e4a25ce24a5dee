package level

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

const testMap = `!!!!META
fog,dof=8,color=#102030

!!!!MAIN
Awall.png,collide
Bbars.png,half_width
Cfence.png,collide,half_height

AAAAA
A*  A
A B A
A C A
AAAAA
`

func mustParse(t *testing.T, src string) *Map {
	t.Helper()
	m, err := Parse(strings.NewReader(src), "maps")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestParse(t *testing.T) {
	m := mustParse(t, testMap)

	if m.Width() != 5 || m.Height() != 5 {
		t.Fatalf("expected 5x5 map, got %dx%d", m.Width(), m.Height())
	}
	if m.Len() != m.Width()*m.Height() {
		t.Errorf("expected %d cells, got %d", m.Width()*m.Height(), m.Len())
	}

	if got := m.TileAt(6); got.Kind != TileSpawn {
		t.Errorf("expected spawn at index 6, got %v", got.Kind)
	}
	if got := m.TileAt(12); got != (Tile{Kind: TileCustom, Symbol: 'B'}) {
		t.Errorf("expected custom B at index 12, got %+v", got)
	}
	if got := m.TileAt(7); got.Kind != TileEmpty {
		t.Errorf("expected empty at index 7, got %v", got.Kind)
	}

	wantDefs := map[rune]TileDef{
		'A': {Collidable: true, Texture: "wall.png"},
		'B': {Texture: "bars.png", HalfWidth: true},
		'C': {Collidable: true, Texture: "fence.png", HalfHeight: true},
	}
	defs, err := m.Defs()
	if err != nil {
		t.Fatalf("Defs: %v", err)
	}
	if !reflect.DeepEqual(defs, wantDefs) {
		t.Errorf("unexpected legend:\n got %+v\nwant %+v", defs, wantDefs)
	}

	fog, ok := m.Fog()
	if !ok {
		t.Fatal("expected fog attribute")
	}
	if fog.Depth != 8 || fog.Color != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Errorf("unexpected fog %+v", fog)
	}

	path, ok := m.TexturePath('A')
	if !ok || path != "maps/wall.png" {
		t.Errorf("expected maps/wall.png, got %q (%v)", path, ok)
	}
}

func TestDefsIsACopy(t *testing.T) {
	m := mustParse(t, testMap)

	defs, err := m.Defs()
	if err != nil {
		t.Fatalf("Defs: %v", err)
	}
	defs['A'] = TileDef{Texture: "changed.png"}
	delete(defs, 'B')

	if def, _ := m.Def('A'); def.Texture != "wall.png" {
		t.Errorf("legend was mutated through Defs(): %+v", def)
	}
	if _, ok := m.Def('B'); !ok {
		t.Error("legend entry removed through Defs()")
	}
}

func TestFogDefaults(t *testing.T) {
	m := mustParse(t, "!!!!META\nfog\n\n!!!!MAIN\nAa.png\n\n*A\n")

	fog, ok := m.Fog()
	if !ok {
		t.Fatal("expected fog attribute")
	}
	if fog.Depth != 4 || fog.Color != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("unexpected default fog %+v", fog)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown directive", "!!!!BOGUS\n", 1},
		{"unknown meta directive", "!!!!META\nrain,dof=2\n", 2},
		{"malformed meta", "!!!!META\nfog,dof\n", 2},
		{"bad dof", "!!!!META\nfog,dof=300\n", 2},
		{"bad color", "!!!!META\nfog,color=red\n", 2},
		{"unknown grid symbol", "!!!!MAIN\nAa.png\n\n*A\nAZ\n", 5},
		{"empty grid", "!!!!MAIN\nAa.png\n\n", 0},
		{"ragged grid", "!!!!MAIN\nAa.png\n\n*AA\nA\n", 5},
		{"reserved symbol", "!!!!MAIN\n*a.png\n\n*\n", 2},
		{"missing spawn", "!!!!MAIN\nAa.png\n\nAA\n", 0},
		{"missing main", "!!!!META\nfog\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "")
			if err == nil {
				t.Fatal("expected an error")
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if tt.line > 0 && perr.Line != tt.line {
				t.Errorf("expected error on line %d, got %d (%v)", tt.line, perr.Line, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaw"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := mustParse(t, testMap)

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	again := mustParse(t, buf.String())

	if again.Width() != m.Width() || again.Height() != m.Height() {
		t.Fatalf("size changed: %dx%d -> %dx%d", m.Width(), m.Height(), again.Width(), again.Height())
	}
	if !reflect.DeepEqual(again.cells, m.cells) {
		t.Error("cells changed in round trip")
	}
	if !reflect.DeepEqual(again.defs, m.defs) {
		t.Errorf("legend changed in round trip:\n got %+v\nwant %+v", again.defs, m.defs)
	}
	if !reflect.DeepEqual(again.Attributes(), m.Attributes()) {
		t.Errorf("attributes changed in round trip: %+v -> %+v", m.Attributes(), again.Attributes())
	}
}

func TestIndexRoundTrip(t *testing.T) {
	m := mustParse(t, testMap)

	positions := []geom.Vector2{
		{X: 0, Y: 0},
		{X: 31.99, Y: 0.5},
		{X: 32, Y: 32},
		{X: 70.25, Y: 100.75},
		{X: 159.9, Y: 159.9},
	}

	for _, p := range positions {
		idx := m.WorldToCellIndex(p)
		if idx < 0 {
			t.Fatalf("position %+v reported outside the grid", p)
		}

		corner := m.CellIndexToWorld(idx)
		want := geom.Vector2{
			X: math.Floor(p.X/TileSize) * TileSize,
			Y: math.Floor(p.Y/TileSize) * TileSize,
		}
		if corner != want {
			t.Errorf("position %+v: expected corner %+v, got %+v", p, want, corner)
		}

		if again := m.CellIndexToWorld(m.WorldToCellIndex(corner)); again != corner {
			t.Errorf("position %+v: round trip not idempotent, %+v -> %+v", p, corner, again)
		}
	}
}

func TestWorldToCellIndexOutside(t *testing.T) {
	m := mustParse(t, testMap)

	outside := []geom.Vector2{
		{X: -0.5, Y: 10},
		{X: 10, Y: -0.0001},
		{X: 5 * TileSize, Y: 10},
		{X: 10, Y: 5 * TileSize},
		{X: math.Inf(1), Y: 0},
		{X: math.NaN(), Y: 0},
	}

	for _, p := range outside {
		idx := m.WorldToCellIndex(p)
		if idx != -1 {
			t.Errorf("position %+v: expected -1, got %d", p, idx)
		}
		if tile := m.TileAt(idx); tile.Kind != TileEmpty {
			t.Errorf("position %+v: expected empty tile, got %v", p, tile.Kind)
		}
	}
}

func TestSpawn(t *testing.T) {
	m := mustParse(t, testMap)

	pos, ok := m.Spawn()
	if !ok {
		t.Fatal("expected a spawn")
	}
	if pos != (geom.Vector2{X: TileSize, Y: TileSize}) {
		t.Errorf("expected spawn at (32,32), got %+v", pos)
	}
}

func TestColliding(t *testing.T) {
	m := mustParse(t, testMap)

	center := func(x, y int) geom.Vector2 {
		return geom.Vector2{X: float64(x)*TileSize + TileSize/2, Y: float64(y)*TileSize + TileSize/2}
	}

	tests := []struct {
		name   string
		pos    geom.Vector2
		player bool
		want   rune
		hit    bool
	}{
		{"wall blocks player", center(0, 0), true, 'A', true},
		{"wall blocks ray", center(0, 0), false, 'A', true},
		{"non-collidable passes player", center(2, 2), true, 0, false},
		{"non-collidable stops ray", center(2, 2), false, 'B', true},
		{"empty cell", center(2, 1), false, 0, false},
		{"spawn cell", center(1, 1), true, 0, false},
		{"outside grid", geom.Vector2{X: -10, Y: -10}, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := m.Colliding(tt.pos, tt.player)
			if got != tt.want || hit != tt.hit {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.hit, got, hit)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#a1b2c3")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if c != (color.RGBA{0xa1, 0xb2, 0xc3, 0xff}) {
		t.Errorf("unexpected color %+v", c)
	}

	for _, bad := range []string{"", "a1b2c3", "#a1b2c", "#a1b2cg", "#a1b2c3d"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestLoadShippedMap(t *testing.T) {
	m, err := Load("../map/map.yaw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Width() != 16 || m.Height() != 9 {
		t.Errorf("expected 16x9, got %dx%d", m.Width(), m.Height())
	}
	if _, ok := m.Spawn(); !ok {
		t.Error("expected a spawn")
	}
	if path, _ := m.TexturePath('B'); path != "../map/brick.png" {
		t.Errorf("expected ../map/brick.png, got %q", path)
	}
	if fog, ok := m.Fog(); !ok || fog.Depth != 8 {
		t.Errorf("expected fog with depth 8, got %+v (%v)", fog, ok)
	}
}

func TestFogLastWins(t *testing.T) {
	m := mustParse(t, "!!!!META\nfog,dof=2\nfog,dof=6,color=#ff0000\n\n!!!!MAIN\nAa.png\n\n*A\n")

	if got := len(m.Attributes()); got != 2 {
		t.Fatalf("expected 2 attributes, got %d", got)
	}
	fog, ok := m.Fog()
	if !ok {
		t.Fatal("expected fog attribute")
	}
	if fog.Depth != 6 || fog.Color != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("expected the last fog to win, got %+v", fog)
	}
}
