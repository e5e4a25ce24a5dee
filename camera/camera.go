// Package camera casts one ray per screen column through a level.Map and turns
// the hits into wall strips.
package camera

import (
	"math"
	"strconv"
	"sync"

	"github.com/harbdog/raycaster-go/geom"

	"yaw/level"
	"yaw/model"
)

// Cardinal is the face of a tile a ray struck. The values double as the index
// of the texture band for that face.
type Cardinal uint8

const (
	North Cardinal = iota
	East
	South
	West
)

func (c Cardinal) String() string {
	switch c {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "Cardinal(" + strconv.Itoa(int(c)) + ")"
}

// Grid is the part of a level.Map the caster needs.
type Grid interface {
	Colliding(pos geom.Vector2, player bool) (rune, bool)
	Def(symbol rune) (level.TileDef, bool)
}

// RayCast is the result for one column. Vec runs from the cast origin to the
// hit point. A ray that found nothing within the depth limit has Hit == false.
type RayCast struct {
	Vec      geom.Vector2
	Angle    float64
	Face     Cardinal
	HitWhere float64
	Tile     rune
	Hit      bool
}

// Length is the distance to the hit, +Inf for a miss.
func (r RayCast) Length() float64 {
	if !r.Hit {
		return math.Inf(1)
	}
	return math.Hypot(r.Vec.X, r.Vec.Y)
}

func (r RayCast) lengthSquared() float64 {
	if !r.Hit {
		return math.Inf(1)
	}
	return r.Vec.X*r.Vec.X + r.Vec.Y*r.Vec.Y
}

type Camera struct {
	width   int
	fov     float64
	dof     int
	workers int
	rays    []RayCast
}

// New returns a camera casting width rays over fovDegrees, each giving up
// after dof grid lines per axis.
func New(width int, fovDegrees float64, dof int) *Camera {
	return &Camera{
		width:   width,
		fov:     fovDegrees * math.Pi / 180,
		dof:     dof,
		workers: 1,
		rays:    make([]RayCast, width),
	}
}

// SetWorkers splits casting across n goroutines. Values below 1 mean 1.
func (c *Camera) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.workers = n
}

func (c *Camera) Width() int { return c.width }
func (c *Camera) DOF() int   { return c.dof }

// FOV is the field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// Cast fills the camera's ray buffer for a viewer at pos facing dir and
// returns it. The slice is reused by the next call.
func (c *Camera) Cast(m Grid, pos geom.Vector2, dir float64) []RayCast {
	step := c.fov / float64(c.width)
	half := c.width / 2

	castRange := func(from, to int) {
		for i := from; i < to; i++ {
			n := i - half
			angle := model.NormalizeAngle(dir + float64(n)*step)
			c.rays[i] = castRay(m, pos, angle, c.dof)
		}
	}

	workers := c.workers
	if workers > c.width {
		workers = c.width
	}
	if workers <= 1 {
		castRange(0, c.width)
		return c.rays
	}

	chunk := (c.width + workers - 1) / workers
	var wg sync.WaitGroup
	for from := 0; from < c.width; from += chunk {
		to := from + chunk
		if to > c.width {
			to = c.width
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			castRange(from, to)
		}(from, to)
	}
	wg.Wait()

	return c.rays
}
