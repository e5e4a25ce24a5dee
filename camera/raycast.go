package camera

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"yaw/level"
)

// nudge pushes the first crossing of a ray heading toward negative
// coordinates just past the grid line, into the cell on the far side.
const nudge = 0.0001

// search walks one family of grid lines (horizontal or vertical) outward from
// the origin.
type search struct {
	active bool
	ray    geom.Vector2
	step   geom.Vector2
	face   Cardinal
	hit    RayCast
}

// horizontalSearch crosses the lines y = k*TileSize. It is idle for rays
// running parallel to them.
func horizontalSearch(pos geom.Vector2, angle float64) search {
	var s search
	if angle == 0 || angle == math.Pi {
		return s
	}

	cot := math.Cos(angle) / math.Sin(angle)
	var first, dy float64
	if angle < math.Pi {
		// looking down, onto the north face of the next row
		first = level.TileSize - math.Mod(pos.Y, level.TileSize)
		dy = level.TileSize
		s.face = North
	} else {
		first = -math.Mod(pos.Y, level.TileSize) - nudge
		dy = -level.TileSize
		s.face = South
	}

	s.active = true
	s.ray = geom.Vector2{X: cot * first, Y: first}
	s.step = geom.Vector2{X: cot * dy, Y: dy}
	return s
}

// verticalSearch crosses the lines x = k*TileSize.
func verticalSearch(pos geom.Vector2, angle float64) search {
	var s search
	if angle == math.Pi/2 || angle == 3*math.Pi/2 {
		return s
	}

	tan := math.Sin(angle) / math.Cos(angle)
	var first, dx float64
	if angle > math.Pi/2 && angle < 3*math.Pi/2 {
		// looking left, onto the east face of the previous column
		first = -math.Mod(pos.X, level.TileSize) - nudge
		dx = -level.TileSize
		s.face = East
	} else {
		first = level.TileSize - math.Mod(pos.X, level.TileSize)
		dx = level.TileSize
		s.face = West
	}

	s.active = true
	s.ray = geom.Vector2{X: first, Y: tan * first}
	s.step = geom.Vector2{X: dx, Y: tan * dx}
	return s
}

// advance checks the current crossing and moves the search to the next one.
// skip rejects tiles that sit on the other family of lines; nudged tiles are
// drawn a quarter cell behind the crossing.
func (s *search) advance(m Grid, pos geom.Vector2, angle float64, skip, nudged func(level.TileDef) bool) {
	at := geom.Vector2{X: pos.X + s.ray.X, Y: pos.Y + s.ray.Y}
	if symbol, ok := m.Colliding(at, false); ok {
		def, _ := m.Def(symbol)
		if !skip(def) {
			vec := s.ray
			if nudged(def) {
				vec.X += 0.25 * s.step.X
				vec.Y += 0.25 * s.step.Y
			}
			s.hit = RayCast{
				Vec:      vec,
				Angle:    angle,
				Face:     s.face,
				HitWhere: hitWhere(s.face, pos, vec),
				Tile:     symbol,
				Hit:      true,
			}
			s.active = false
		}
	}

	s.ray.X += s.step.X
	s.ray.Y += s.step.Y
}

func isHalfWidth(def level.TileDef) bool  { return def.HalfWidth }
func isHalfHeight(def level.TileDef) bool { return def.HalfHeight }

// castRay runs both searches in lockstep for at most dof crossings each and
// keeps the nearer hit.
func castRay(m Grid, pos geom.Vector2, angle float64, dof int) RayCast {
	h := horizontalSearch(pos, angle)
	v := verticalSearch(pos, angle)

	for i := 0; i < dof && (h.active || v.active); i++ {
		if h.active {
			h.advance(m, pos, angle, isHalfWidth, isHalfHeight)
		}
		if v.active {
			v.advance(m, pos, angle, isHalfHeight, isHalfWidth)
		}
	}

	r := closer(h.hit, v.hit)
	if !r.Hit {
		return RayCast{Angle: angle, Face: North}
	}
	return r
}

// closer picks the nearer of a horizontal and a vertical hit. The horizontal
// hit wins a tie.
func closer(h, v RayCast) RayCast {
	switch {
	case h.Hit && v.Hit:
		if h.lengthSquared() <= v.lengthSquared() {
			return h
		}
		return v
	case h.Hit:
		return h
	default:
		return v
	}
}

// hitWhere is the offset of the hit along the struck face, measured so that
// textures read left to right when facing the wall.
func hitWhere(face Cardinal, pos, vec geom.Vector2) float64 {
	x := math.Mod(pos.X+vec.X, level.TileSize)
	y := math.Mod(pos.Y+vec.Y, level.TileSize)

	switch face {
	case North:
		return level.TileSize - x
	case East:
		return level.TileSize - y
	case South:
		return x
	case West:
		return y
	}
	return 0
}
