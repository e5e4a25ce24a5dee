package level

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Encode writes the map back in the source format Parse reads.
func (m *Map) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if len(m.attrs) > 0 {
		fmt.Fprintln(bw, metaSection)
		for _, attr := range m.attrs {
			switch a := attr.(type) {
			case Fog:
				fmt.Fprintf(bw, "fog,dof=%d,color=#%02x%02x%02x\n", a.Depth, a.Color.R, a.Color.G, a.Color.B)
			}
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, mainSection)

	symbols := make([]rune, 0, len(m.defs))
	for symbol := range m.defs {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	for _, symbol := range symbols {
		def := m.defs[symbol]
		line := string(symbol) + def.Texture
		if def.Collidable {
			line += ",collide"
		}
		if def.HalfWidth {
			line += ",half_width"
		}
		if def.HalfHeight {
			line += ",half_height"
		}
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintln(bw)

	row := make([]rune, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			tile := m.cells[y*m.width+x]
			switch tile.Kind {
			case TileEmpty:
				row[x] = symbolEmpty
			case TileSpawn:
				row[x] = symbolSpawn
			case TileCustom:
				row[x] = tile.Symbol
			}
		}
		fmt.Fprintln(bw, string(row))
	}

	return bw.Flush()
}
