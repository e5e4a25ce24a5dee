package level

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"yaw/logger"
)

const (
	metaSection = "!!!!META"
	mainSection = "!!!!MAIN"
)

const (
	symbolEmpty = ' '
	symbolSpawn = '*'
)

// ParseError is returned for malformed map sources.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return "map: " + e.Msg
	}
	return fmt.Sprintf("map line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

// Load reads and parses the map file at path. Texture references are resolved
// relative to the file's directory.
func Load(path string) (*Map, error) {
	logger.Component("level").WithField("path", path).Info("loading map")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}

	return m, nil
}

// Parse reads a map source. dir is the prefix for texture references.
func Parse(r io.Reader, dir string) (*Map, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	m := &Map{dir: dir, defs: map[rune]TileDef{}}
	seenMain := false

	for {
		line, ok := lr.next()
		if !ok {
			break
		}

		var err error
		switch line {
		case metaSection:
			err = m.parseMeta(lr)
		case mainSection:
			seenMain = true
			err = m.parseMain(lr)
		case "":
			// blank lines between sections
		default:
			err = parseErrorf(lr.line, "unrecognized directive: %q", line)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}

	if !seenMain {
		return nil, parseErrorf(0, "missing %s section", mainSection)
	}
	if _, ok := m.Spawn(); !ok {
		return nil, parseErrorf(0, "no spawn in map")
	}

	return m, nil
}

func (m *Map) parseMeta(lr *lineReader) error {
	for {
		line, ok := lr.next()
		if !ok || line == "" {
			return nil
		}

		chunks := strings.Split(line, ",")
		directive := chunks[0]
		params := make(map[string]string, len(chunks)-1)
		for _, chunk := range chunks[1:] {
			key, value, found := strings.Cut(chunk, "=")
			if !found {
				return parseErrorf(lr.line, "incorrectly formatted meta: %q", chunk)
			}
			params[key] = value
		}

		switch directive {
		case "fog":
			fog, err := parseFog(params)
			if err != nil {
				return parseErrorf(lr.line, "fog: %v", err)
			}
			m.attrs = append(m.attrs, fog)
		default:
			return parseErrorf(lr.line, "unrecognized meta directive: %q", directive)
		}
	}
}

func parseFog(params map[string]string) (Fog, error) {
	dof, ok := params["dof"]
	if !ok {
		dof = "4"
	}
	depth, err := strconv.ParseUint(dof, 10, 8)
	if err != nil {
		return Fog{}, fmt.Errorf("invalid dof %q", dof)
	}

	hex, ok := params["color"]
	if !ok {
		hex = "#000000"
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return Fog{}, err
	}

	return Fog{Depth: uint8(depth), Color: c}, nil
}

func (m *Map) parseMain(lr *lineReader) error {
	log := logger.Component("level")
	defs := map[rune]TileDef{}

	// legend
	for {
		line, ok := lr.next()
		if !ok || line == "" {
			break
		}

		symbol, size := utf8.DecodeRuneInString(line)
		if symbol == symbolEmpty || symbol == symbolSpawn {
			return parseErrorf(lr.line, "reserved legend symbol: %q", symbol)
		}

		fields := strings.Split(line[size:], ",")
		def := TileDef{Texture: fields[0]}
		for _, flag := range fields[1:] {
			switch flag {
			case "collide":
				def.Collidable = true
			case "half_width":
				def.HalfWidth = true
			case "half_height":
				def.HalfHeight = true
			default:
				log.WithField("line", lr.line).Warnf("ignoring unknown tile flag %q", flag)
			}
		}
		defs[symbol] = def
	}

	// grid
	var (
		cells []Tile
		width int
		rows  int
	)
	for {
		line, ok := lr.next()
		if !ok || line == "" {
			break
		}

		n := 0
		for _, ch := range line {
			switch {
			case ch == symbolEmpty:
				cells = append(cells, Tile{Kind: TileEmpty})
			case ch == symbolSpawn:
				cells = append(cells, Tile{Kind: TileSpawn})
			default:
				if _, ok := defs[ch]; !ok {
					return parseErrorf(lr.line, "invalid tile in map: %q", ch)
				}
				cells = append(cells, Tile{Kind: TileCustom, Symbol: ch})
			}
			n++
		}

		if rows == 0 {
			width = n
		} else if n != width {
			return parseErrorf(lr.line, "grid row has %d cells, expected %d", n, width)
		}
		rows++
	}

	if rows == 0 || width == 0 {
		return parseErrorf(lr.line, "empty grid")
	}

	m.width = width
	m.height = rows
	m.cells = cells
	m.defs = defs

	return nil
}
