package main

// resolveCollisionsLocked runs the per-tick collision pass against post-move
// positions. Projectiles are scanned in reverse so in-place swap-removal is
// safe. Each projectile is tested against all live bugs first, and only if
// it hit nothing against all live power-ups; the first overlap wins and
// a projectile destroys at most one target per tick. Boundary events for
// bugs are resolved last.
func (g *Game) resolveCollisionsLocked() {
	for i := g.projectiles.Len() - 1; i >= 0; i-- {
		pr := g.projectiles.At(i)
		if g.projectileHitsBugLocked(i, pr) {
			continue
		}
		g.projectileHitsPowerUpLocked(i, pr)
	}

	g.resolveBugEscapesLocked()
}

// projectileHitsBugLocked tests one projectile against all bugs.
// On the first overlap both entities are removed and the kill is scored.
func (g *Game) projectileHitsBugLocked(pi int, pr *Projectile) bool {
	for j := g.bugs.Len() - 1; j >= 0; j-- {
		b := g.bugs.At(j)
		if !pr.Rect().Intersects(b.Rect()) {
			continue
		}

		g.projectiles.RemoveAt(pi)
		g.bugs.RemoveAt(j)
		g.notifier.EntityRemoved(KindProjectile, pr.ID())
		g.notifier.EntityRemoved(KindBug, b.ID())

		g.tracker.AddKill(b.Type)
		g.notifier.ScoreChanged(g.tracker.Score())
		g.notifier.ExplosionAt(b.Rect().CenterX(), b.Rect().CenterY())
		g.notifier.ScorePopup(b.Rect().CenterX(), b.Rect().CenterY(), KillScore, false)
		return true
	}
	return false
}

// projectileHitsPowerUpLocked tests one projectile against all power-ups.
// The first overlap removes both and collects the power-up.
func (g *Game) projectileHitsPowerUpLocked(pi int, pr *Projectile) bool {
	for j := g.powerUps.Len() - 1; j >= 0; j-- {
		u := g.powerUps.At(j)
		if !pr.Rect().Intersects(u.Rect()) {
			continue
		}

		g.projectiles.RemoveAt(pi)
		g.powerUps.RemoveAt(j)
		g.notifier.EntityRemoved(KindProjectile, pr.ID())
		g.notifier.EntityRemoved(KindPowerUp, u.ID())

		g.collectPowerUpLocked(u)
		return true
	}
	return false
}

// collectPowerUpLocked applies a collection: score, pipeline status, and
// mass elimination of every live bug of the mapped type, one destruction
// notification per removed bug.
func (g *Game) collectPowerUpLocked(u *PowerUp) {
	g.tracker.Collect(u.Type)
	g.notifier.ScoreChanged(g.tracker.Score())
	g.notifier.ScorePopup(u.Rect().CenterX(), u.Rect().CenterY(), PowerUpScore, true)

	doomed := u.Type.Eliminates()
	for j := g.bugs.Len() - 1; j >= 0; j-- {
		b := g.bugs.At(j)
		if b.Type != doomed {
			continue
		}
		g.bugs.RemoveAt(j)
		g.notifier.EntityRemoved(KindBug, b.ID())
		g.notifier.ExplosionAt(b.Rect().CenterX(), b.Rect().CenterY())
	}

	g.notifier.PipelineChanged(g.tracker.CollectedTypes())
}

// resolveBugEscapesLocked handles bugs whose bottom edge reached the bottom
// boundary: immediate loss under strict rules, otherwise removal plus a
// bounded score penalty and an escape count.
func (g *Game) resolveBugEscapesLocked() {
	for i := g.bugs.Len() - 1; i >= 0; i-- {
		b := g.bugs.At(i)
		if !b.Escaped(g.cfg.BossAreaHeight) {
			continue
		}
		if g.cfg.LossOnBugEscape {
			g.endSessionLocked(false, "a "+b.Type.String()+" reached production")
			return
		}
		g.bugs.RemoveAt(i)
		g.notifier.EntityRemoved(KindBug, b.ID())
		g.tracker.Escape()
		g.notifier.ScoreChanged(g.tracker.Score())
	}
}
