package main

import "testing"

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X: 20, Y: 20, W: 20, H: 20}, true},
		{"contained", Rect{X: 15, Y: 15, W: 5, H: 5}, true},
		{"touching right edge", Rect{X: 30, Y: 10, W: 10, H: 10}, false},
		{"touching bottom edge", Rect{X: 10, Y: 30, W: 10, H: 10}, false},
		{"disjoint", Rect{X: 100, Y: 100, W: 5, H: 5}, false},
		{"one pixel overlap", Rect{X: 29, Y: 29, W: 10, H: 10}, true},
	}
	for _, tc := range cases {
		if got := base.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		// Symmetry
		if got := tc.b.Intersects(base); got != tc.want {
			t.Errorf("%s (reversed): got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPowerUpBugMapping(t *testing.T) {
	want := map[PowerUpType]BugType{
		PowerUpTest: BugFunctionalError,
		PowerUpCSM:  BugEmbeddedSecret,
		PowerUpSec:  BugSecurity,
		PowerUpQual: BugQuality,
	}
	for pt, bt := range want {
		if got := pt.Eliminates(); got != bt {
			t.Errorf("%s eliminates %s, want %s", pt, got, bt)
		}
		// Round trip back through the inverse
		if got := bt.CounteredBy(); got != pt {
			t.Errorf("%s countered by %s, want %s", bt, got, pt)
		}
	}
}

func TestWireNames(t *testing.T) {
	bugNames := []string{"FunctionalError", "SecurityBug", "QualityBug", "EmbeddedSecret"}
	for bt := BugType(0); bt < NumBugTypes; bt++ {
		if bt.String() != bugNames[bt] {
			t.Errorf("bug type %d: got %s, want %s", bt, bt.String(), bugNames[bt])
		}
	}
	puNames := []string{"TEST", "CSM", "SEC", "QUAL"}
	for pt := PowerUpType(0); pt < NumPowerUpTypes; pt++ {
		if pt.String() != puNames[pt] {
			t.Errorf("power-up type %d: got %s, want %s", pt, pt.String(), puNames[pt])
		}
	}
}

func TestPlayerClampBothEdges(t *testing.T) {
	p := NewPlayer(400, 300)
	p.Dir = -1
	for i := 0; i < 200; i++ {
		p.Move(10, 400)
	}
	if p.X != 0 {
		t.Errorf("expected clamp at 0, got %.1f", p.X)
	}
	p.Dir = 1
	for i := 0; i < 200; i++ {
		p.Move(10, 400)
	}
	if want := 400 - PlayerWidth; p.X != want {
		t.Errorf("expected clamp at %.1f, got %.1f", want, p.X)
	}
}

func TestProjectileOffscreen(t *testing.T) {
	p := NewPlayer(900, 600)
	pr := NewProjectile(1, p)
	if pr.Offscreen() {
		t.Fatal("fresh projectile should be on screen")
	}
	pr.Y = -ProjectileHeight + 0.5
	if pr.Offscreen() {
		t.Error("partially visible projectile should stay")
	}
	pr.Y = -ProjectileHeight - 0.5
	if !pr.Offscreen() {
		t.Error("fully departed projectile should despawn")
	}
}

func TestBugEscapeBoundary(t *testing.T) {
	b := NewBug(1, BugSecurity, 100)
	b.Y = 600 - BugHeight - 1
	if b.Escaped(600) {
		t.Error("bug above the boundary has not escaped")
	}
	b.Y = 600 - BugHeight
	if !b.Escaped(600) {
		t.Error("bug whose bottom edge reaches the boundary has escaped")
	}
}

func TestPowerUpMissedBoundary(t *testing.T) {
	u := NewPowerUp(1, PowerUpCSM, 100)
	u.Y = 599
	if u.Missed(600) {
		t.Error("power-up still in the area is not missed")
	}
	u.Y = 600
	if !u.Missed(600) {
		t.Error("power-up past the bottom boundary is missed")
	}
}
