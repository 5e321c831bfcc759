package main

// Projectile dimensions in px
const (
	ProjectileWidth  = 6.0
	ProjectileHeight = 14.0
)

// Projectile flies straight up from the player and is destroyed on its
// first collision or when it leaves the top of the play area.
type Projectile struct {
	id   EntityID
	X, Y float64
	W, H float64
}

// NewProjectile creates a projectile at the player's muzzle
func NewProjectile(id EntityID, p *Player) *Projectile {
	return &Projectile{
		id: id,
		X:  p.MuzzleX(),
		Y:  p.Y - ProjectileHeight,
		W:  ProjectileWidth,
		H:  ProjectileHeight,
	}
}

// ID returns the session-unique entity ID
func (p *Projectile) ID() EntityID { return p.id }

// Rect returns the bounding box
func (p *Projectile) Rect() Rect { return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H} }

// Update moves the projectile one tick step toward the top
func (p *Projectile) Update(step float64) {
	p.Y -= step
}

// Offscreen reports whether the projectile has fully left the top boundary
func (p *Projectile) Offscreen() bool {
	return p.Y+p.H < 0
}

// ToState converts to protocol state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID: p.id,
		X:  round1(p.X),
		Y:  round1(p.Y),
	}
}
