package main

// Score constants
const (
	KillScore    = 10   // per bug squashed
	PowerUpScore = 1000 // per power-up collected
)

// Tracker maintains score, kill counters and pipeline progress for one
// session. Score never goes negative; the unique-collected set only grows.
type Tracker struct {
	score       int
	killsByType [NumBugTypes]int
	escaped     int
	collected   [NumPowerUpTypes]bool
	history     []PowerUpType
}

// Reset clears all counters (session restart)
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Score returns the current score
func (t *Tracker) Score() int { return t.score }

// AddKill awards a bug kill and bumps the per-type counter
func (t *Tracker) AddKill(bt BugType) {
	t.score += KillScore
	t.killsByType[bt]++
}

// Kills returns the kill counter for one bug type
func (t *Tracker) Kills(bt BugType) int { return t.killsByType[bt] }

// TotalKills returns the kill count across all bug types
func (t *Tracker) TotalKills() int {
	total := 0
	for _, n := range t.killsByType {
		total += n
	}
	return total
}

// Collect records a power-up collection: score, history, unique set.
// Re-collecting an already-done type still scores and is appended to the
// history, it just cannot change pipeline status any further.
func (t *Tracker) Collect(pt PowerUpType) {
	t.score += PowerUpScore
	t.history = append(t.history, pt)
	t.collected[pt] = true
}

// Collected reports whether the type has been collected at least once
func (t *Tracker) Collected(pt PowerUpType) bool { return t.collected[pt] }

// CollectedCount returns the total number of collections (history length)
func (t *Tracker) CollectedCount() int { return len(t.history) }

// CollectedTypes returns the unique-collected set in type order
func (t *Tracker) CollectedTypes() []string {
	var out []string
	for pt := PowerUpType(0); pt < NumPowerUpTypes; pt++ {
		if t.collected[pt] {
			out = append(out, pt.String())
		}
	}
	return out
}

// PipelineComplete reports whether all four power-up types are collected
func (t *Tracker) PipelineComplete() bool {
	for _, done := range t.collected {
		if !done {
			return false
		}
	}
	return true
}

// Escape counts a bug that reached the bottom boundary and applies the
// bounded score penalty, clamped so the score never goes negative.
func (t *Tracker) Escape() {
	t.escaped++
	t.score -= EscapePenalty
	if t.score < 0 {
		t.score = 0
	}
}

// Escaped returns the escaped-bug counter
func (t *Tracker) Escaped() int { return t.escaped }

// killsMap returns per-type kills keyed by wire name, for result summaries
func (t *Tracker) killsMap() map[string]int {
	m := make(map[string]int, NumBugTypes)
	for bt := BugType(0); bt < NumBugTypes; bt++ {
		m[bt.String()] = t.killsByType[bt]
	}
	return m
}
