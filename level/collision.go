package level

import "github.com/harbdog/raycaster-go/geom"

// Colliding reports the custom tile at pos. In player mode only collidable
// tiles count; rays (player == false) stop on every custom tile because all of
// them are drawn as opaque walls.
func (m *Map) Colliding(pos geom.Vector2, player bool) (rune, bool) {
	tile := m.TileAt(m.WorldToCellIndex(pos))

	switch tile.Kind {
	case TileCustom:
		def, ok := m.defs[tile.Symbol]
		if ok && (!player || def.Collidable) {
			return tile.Symbol, true
		}
	case TileEmpty, TileSpawn:
	}

	return 0, false
}
