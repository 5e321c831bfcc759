package main

import "math/rand"

// Spawner decides when new bugs and power-ups enter the course. The
// probabilistic policy is polled once per simulation tick; the interval
// policy is polled once per countdown second. The random source is injected
// so tests can force or forbid spawns.
type Spawner struct {
	rand func() float64

	bugPolicy     SpawnPolicy
	powerUpPolicy SpawnPolicy
	rate          float64 // per-tick probability
	interval      float64 // seconds between interval spawns

	bugCycle     int
	powerUpCycle int
	bugClock     float64
	powerUpClock float64
}

// NewSpawner builds a spawner for a sanitized config. A nil random source
// defaults to math/rand, which is safe across concurrent sessions.
func NewSpawner(cfg GameConfig, random func() float64) *Spawner {
	if random == nil {
		random = rand.Float64
	}
	return &Spawner{
		rand:          random,
		bugPolicy:     cfg.BugSpawnPolicy,
		powerUpPolicy: cfg.PowerUpSpawnPolicy,
		rate:          cfg.SpawnRate,
		interval:      cfg.SpawnInterval,
	}
}

// BugOnTick rolls the probabilistic bug spawn for one simulation tick.
// The returned type is uniform over the allowed set.
func (s *Spawner) BugOnTick(allowed []BugType) (BugType, bool) {
	if s.bugPolicy != PolicyProbabilistic || len(allowed) == 0 {
		return 0, false
	}
	if s.rand() >= s.rate {
		return 0, false
	}
	return allowed[s.pick(len(allowed))], true
}

// PowerUpOnTick rolls the probabilistic power-up spawn for one tick
func (s *Spawner) PowerUpOnTick(allowed []PowerUpType) (PowerUpType, bool) {
	if s.powerUpPolicy != PolicyProbabilistic || len(allowed) == 0 {
		return 0, false
	}
	if s.rand() >= s.rate {
		return 0, false
	}
	return allowed[s.pick(len(allowed))], true
}

// BugOnSecond advances the interval clock by one second and reports whether
// an interval-cycled bug is due. The cycle wraps over all types and ignores
// collection state.
func (s *Spawner) BugOnSecond() (BugType, bool) {
	if s.bugPolicy != PolicyInterval {
		return 0, false
	}
	s.bugClock++
	if s.bugClock < s.interval {
		return 0, false
	}
	s.bugClock = 0
	t := BugType(s.bugCycle % NumBugTypes)
	s.bugCycle++
	return t, true
}

// PowerUpOnSecond advances the interval clock by one second and reports
// whether an interval-cycled power-up is due.
func (s *Spawner) PowerUpOnSecond() (PowerUpType, bool) {
	if s.powerUpPolicy != PolicyInterval {
		return 0, false
	}
	s.powerUpClock++
	if s.powerUpClock < s.interval {
		return 0, false
	}
	s.powerUpClock = 0
	t := PowerUpType(s.powerUpCycle % NumPowerUpTypes)
	s.powerUpCycle++
	return t, true
}

// SpawnX picks a random horizontal offset keeping the entity inside the course
func (s *Spawner) SpawnX(areaW, entityW float64) float64 {
	return s.rand() * (areaW - entityW)
}

// pick returns a uniform index in [0, n)
func (s *Spawner) pick(n int) int {
	i := int(s.rand() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
