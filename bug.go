package main

// Bug dimensions in px
const (
	BugWidth  = 40.0
	BugHeight = 40.0
)

// EscapePenalty is the score cost of a bug reaching the bottom boundary
// under the survival-scoring rules.
const EscapePenalty = 25

// Bug is a falling enemy. It enters at the top boundary and is destroyed by
// a projectile hit, by reaching the bottom boundary, or en masse when the
// matching power-up is collected.
type Bug struct {
	id   EntityID
	Type BugType
	X, Y float64
	W, H float64
}

// NewBug creates a bug of the given type at horizontal offset x, just above
// the top boundary so it slides into view.
func NewBug(id EntityID, t BugType, x float64) *Bug {
	return &Bug{
		id:   id,
		Type: t,
		X:    x,
		Y:    -BugHeight,
		W:    BugWidth,
		H:    BugHeight,
	}
}

// ID returns the session-unique entity ID
func (b *Bug) ID() EntityID { return b.id }

// Rect returns the bounding box
func (b *Bug) Rect() Rect { return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H} }

// Update moves the bug one tick step toward the bottom
func (b *Bug) Update(step float64) {
	b.Y += step
}

// Escaped reports whether the bug's bottom edge reached the bottom boundary
func (b *Bug) Escaped(areaH float64) bool {
	return b.Y+b.H >= areaH
}

// ToState converts to protocol state
func (b *Bug) ToState() BugState {
	return BugState{
		ID:   b.id,
		Type: b.Type.String(),
		X:    round1(b.X),
		Y:    round1(b.Y),
	}
}
