package main

// EntityID identifies a bug, power-up or projectile within one session.
// IDs are allocated from a per-session monotonic counter starting at 1 and
// are never reused until the session is reinitialized.
type EntityID int64

// idSource hands out session-scoped entity IDs
type idSource struct {
	last EntityID
}

// Next returns the next unused ID
func (s *idSource) Next() EntityID {
	s.last++
	return s.last
}

// Reset restarts ID allocation (new session only)
func (s *idSource) Reset() {
	s.last = 0
}

// Rect is an axis-aligned bounding box. Y grows downward: y=0 is the top of
// the play area, y=areaHeight the bottom.
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether two rectangles overlap
func (a Rect) Intersects(b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// CenterX returns the horizontal center of the rect
func (a Rect) CenterX() float64 { return a.X + a.W/2 }

// CenterY returns the vertical center of the rect
func (a Rect) CenterY() float64 { return a.Y + a.H/2 }

// BugType is the closed set of falling enemy kinds
type BugType int

const (
	BugFunctionalError BugType = iota
	BugSecurity
	BugQuality
	BugEmbeddedSecret

	NumBugTypes = 4
)

// String returns the wire name of the bug type
func (t BugType) String() string {
	switch t {
	case BugFunctionalError:
		return "FunctionalError"
	case BugSecurity:
		return "SecurityBug"
	case BugQuality:
		return "QualityBug"
	case BugEmbeddedSecret:
		return "EmbeddedSecret"
	default:
		return "Unknown"
	}
}

// PowerUpType is the closed set of falling collectibles. Each type maps
// one-to-one to the bug type it eliminates when collected.
type PowerUpType int

const (
	PowerUpTest PowerUpType = iota
	PowerUpCSM
	PowerUpSec
	PowerUpQual

	NumPowerUpTypes = 4
)

// String returns the wire name of the power-up type
func (t PowerUpType) String() string {
	switch t {
	case PowerUpTest:
		return "TEST"
	case PowerUpCSM:
		return "CSM"
	case PowerUpSec:
		return "SEC"
	case PowerUpQual:
		return "QUAL"
	default:
		return "Unknown"
	}
}

// Eliminates returns the bug type this power-up wipes from the course
func (t PowerUpType) Eliminates() BugType {
	switch t {
	case PowerUpTest:
		return BugFunctionalError
	case PowerUpCSM:
		return BugEmbeddedSecret
	case PowerUpSec:
		return BugSecurity
	case PowerUpQual:
		return BugQuality
	default:
		return BugFunctionalError
	}
}

// CounteredBy returns the power-up type that eliminates this bug type
func (t BugType) CounteredBy() PowerUpType {
	switch t {
	case BugFunctionalError:
		return PowerUpTest
	case BugEmbeddedSecret:
		return PowerUpCSM
	case BugSecurity:
		return PowerUpSec
	case BugQuality:
		return PowerUpQual
	default:
		return PowerUpTest
	}
}

// Entity kind names used in spawn/despawn notifications
const (
	KindPlayer     = "player"
	KindProjectile = "projectile"
	KindBug        = "bug"
	KindPowerUp    = "powerup"
)
