package main

// Player dimensions in px
const (
	PlayerWidth  = 60.0
	PlayerHeight = 24.0
)

// Player is the single controllable entity. It sits near the bottom of the
// play area and only moves horizontally; vertical position is fixed at
// session start.
type Player struct {
	X, Y float64
	W, H float64
	Dir  int // -1 left, 0 idle, 1 right; sampled once per tick
}

// NewPlayer places the player centered at the bottom of the play area
func NewPlayer(areaW, areaH float64) *Player {
	return &Player{
		X: areaW/2 - PlayerWidth/2,
		Y: areaH - PlayerHeight - 10,
		W: PlayerWidth,
		H: PlayerHeight,
	}
}

// Move advances the player by one tick step and clamps to the course
func (p *Player) Move(step, areaW float64) {
	p.X += float64(p.Dir) * step
	p.X = Clamp(p.X, 0, areaW-p.W)
}

// Rect returns the player's bounding box
func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// MuzzleX returns the x where fired projectiles appear
func (p *Player) MuzzleX() float64 {
	return p.X + p.W/2 - ProjectileWidth/2
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		X: round1(p.X),
		Y: round1(p.Y),
		W: p.W,
		H: p.H,
	}
}
