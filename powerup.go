package main

// Power-up dimensions in px
const (
	PowerUpWidth  = 32.0
	PowerUpHeight = 32.0
)

// PowerUp is a falling collectible. Shooting it collects it: the score is
// bumped, the pipeline status updated, and every live bug of the mapped type
// eliminated. One that falls past the bottom boundary is silently removed.
type PowerUp struct {
	id   EntityID
	Type PowerUpType
	X, Y float64
	W, H float64
}

// NewPowerUp creates a power-up of the given type at horizontal offset x,
// just above the top boundary.
func NewPowerUp(id EntityID, t PowerUpType, x float64) *PowerUp {
	return &PowerUp{
		id:   id,
		Type: t,
		X:    x,
		Y:    -PowerUpHeight,
		W:    PowerUpWidth,
		H:    PowerUpHeight,
	}
}

// ID returns the session-unique entity ID
func (u *PowerUp) ID() EntityID { return u.id }

// Rect returns the bounding box
func (u *PowerUp) Rect() Rect { return Rect{X: u.X, Y: u.Y, W: u.W, H: u.H} }

// Update moves the power-up one tick step toward the bottom
func (u *PowerUp) Update(step float64) {
	u.Y += step
}

// Missed reports whether the power-up fell past the bottom boundary
func (u *PowerUp) Missed(areaH float64) bool {
	return u.Y >= areaH
}

// ToState converts to protocol state
func (u *PowerUp) ToState() PowerUpState {
	return PowerUpState{
		ID:   u.id,
		Type: u.Type.String(),
		X:    round1(u.X),
		Y:    round1(u.Y),
	}
}
