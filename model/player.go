package model

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const twoPi = 2 * math.Pi

type Player struct {
	Position geom.Vector2
	// Direction is the heading in radians, kept in [0, 2π). 0 faces +x and
	// angles grow clockwise on screen since world y points down.
	Direction float64
	Speed     float64
	TurnRate  float64
	Health    uint8
}

func NewPlayer(x, y, direction, speed, turnRate float64, health uint8) *Player {
	return &Player{
		Position:  geom.Vector2{X: x, Y: y},
		Direction: NormalizeAngle(direction),
		Speed:     speed,
		TurnRate:  turnRate,
		Health:    health,
	}
}

// Step is one forward stride along the current heading.
func (p *Player) Step() geom.Vector2 {
	return geom.Vector2{
		X: math.Cos(p.Direction) * p.Speed,
		Y: math.Sin(p.Direction) * p.Speed,
	}
}

// Strafe is one stride to the right of the heading.
func (p *Player) Strafe() geom.Vector2 {
	step := p.Step()
	return geom.Vector2{X: -step.Y, Y: step.X}
}

// Turn rotates the heading by delta radians and renormalizes it.
func (p *Player) Turn(delta float64) {
	p.Direction = NormalizeAngle(p.Direction + delta)
}

// Slide applies step one axis at a time, x first, skipping an axis whose
// destination is blocked.
func (p *Player) Slide(step geom.Vector2, blocked func(pos geom.Vector2) bool) {
	if !blocked(geom.Vector2{X: p.Position.X + step.X, Y: p.Position.Y}) {
		p.Position.X += step.X
	}
	if !blocked(geom.Vector2{X: p.Position.X, Y: p.Position.Y + step.Y}) {
		p.Position.Y += step.Y
	}
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	if angle < 0 || angle >= twoPi {
		angle = math.Mod(angle, twoPi)
		if angle < 0 {
			angle += twoPi
		}
	}
	// adding 2π to a tiny negative remainder can round up to exactly 2π
	if angle >= twoPi {
		angle -= twoPi
	}
	return angle
}
