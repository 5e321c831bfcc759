package main

import "log"

// SpawnPolicy selects how a spawner decides when to introduce entities
type SpawnPolicy int

const (
	// PolicyProbabilistic rolls a fixed per-tick probability and picks a
	// type uniformly from the currently-allowed set.
	PolicyProbabilistic SpawnPolicy = iota
	// PolicyInterval spawns exactly one entity every SpawnInterval seconds,
	// cycling round-robin over all types regardless of collection state.
	PolicyInterval
)

// Profile names for the two shipped rule sets
const (
	ProfileStrictPipeline  = "strict"
	ProfileSurvivalScoring = "survival"
)

// Minimum fallbacks applied when a session is started with missing or
// nonsense values. Configuration problems are never fatal.
const (
	minAreaWidth   = 320.0
	minAreaHeight  = 240.0
	minSpeed       = 1.0
	minGameSeconds = 10
	minInterval    = 1.0
)

// GameConfig holds the per-session rules and tuning. Zero or negative
// fields are replaced by documented minimums at session start.
type GameConfig struct {
	Profile         string  `json:"profile,omitempty"`
	GameTimeSeconds int     `json:"gameTimeSeconds"`
	PlayerSpeed     float64 `json:"playerSpeed"`     // px/s
	ProjectileSpeed float64 `json:"projectileSpeed"` // px/s
	BugSpeed        float64 `json:"bugSpeed"`        // px/s
	PowerUpSpeed    float64 `json:"powerUpSpeed"`    // px/s
	SpawnRate       float64 `json:"spawnRate"`       // per-tick probability (probabilistic policy)
	SpawnInterval   float64 `json:"spawnInterval"`   // seconds (interval policy)
	BossAreaWidth   float64 `json:"bossAreaWidth"`   // play area width, px
	BossAreaHeight  float64 `json:"bossAreaHeight"`  // play area height, px

	BugSpawnPolicy     SpawnPolicy `json:"bugSpawnPolicy"`
	PowerUpSpawnPolicy SpawnPolicy `json:"powerUpSpawnPolicy"`

	// LossOnBugEscape ends the session in failure the moment any bug
	// reaches the bottom boundary. When false an escaped bug costs
	// EscapePenalty points and is counted instead.
	LossOnBugEscape bool `json:"lossOnBugEscape"`
	// WinOnPipelineComplete ends the session in success once all four
	// power-up types have been collected. When false the only win is
	// surviving the countdown.
	WinOnPipelineComplete bool `json:"winOnPipelineComplete"`
	// PowerUpOnlyUncollected restricts power-up spawns to types not yet
	// collected this session.
	PowerUpOnlyUncollected bool `json:"powerUpOnlyUncollected"`
	// StopCollectedBugTypes stops spawning bugs whose counter power-up
	// has already been collected.
	StopCollectedBugTypes bool `json:"stopCollectedBugTypes"`
}

// StrictPipelineConfig is the default rule set: lose on any bug escape, win
// only by collecting all four power-up types, and both spawners roll per-tick
// probabilities restricted to still-relevant types.
func StrictPipelineConfig() GameConfig {
	return GameConfig{
		Profile:                ProfileStrictPipeline,
		GameTimeSeconds:        60,
		PlayerSpeed:            300,
		ProjectileSpeed:        480,
		BugSpeed:               90,
		PowerUpSpeed:           60,
		SpawnRate:              0.02,
		SpawnInterval:          8,
		BossAreaWidth:          900,
		BossAreaHeight:         600,
		BugSpawnPolicy:         PolicyProbabilistic,
		PowerUpSpawnPolicy:     PolicyProbabilistic,
		LossOnBugEscape:        true,
		WinOnPipelineComplete:  true,
		PowerUpOnlyUncollected: true,
		StopCollectedBugTypes:  true,
	}
}

// SurvivalScoringConfig is the alternate rule set: escaped bugs cost a small
// score penalty, winning means outlasting the timer, power-ups cycle on a
// fixed interval and bugs never stop spawning.
func SurvivalScoringConfig() GameConfig {
	cfg := StrictPipelineConfig()
	cfg.Profile = ProfileSurvivalScoring
	cfg.GameTimeSeconds = 120
	cfg.PowerUpSpawnPolicy = PolicyInterval
	cfg.LossOnBugEscape = false
	cfg.WinOnPipelineComplete = false
	cfg.PowerUpOnlyUncollected = false
	cfg.StopCollectedBugTypes = false
	return cfg
}

// ConfigForProfile returns the base config for a named profile,
// defaulting to strict pipeline.
func ConfigForProfile(profile string) GameConfig {
	if profile == ProfileSurvivalScoring {
		return SurvivalScoringConfig()
	}
	return StrictPipelineConfig()
}

// sanitized returns a copy with minimum fallbacks substituted for invalid
// fields. Substitutions are logged, never reported as errors.
func (c GameConfig) sanitized() GameConfig {
	fixed := false
	fix := func() { fixed = true }

	if c.BossAreaWidth < minAreaWidth {
		c.BossAreaWidth = minAreaWidth
		fix()
	}
	if c.BossAreaHeight < minAreaHeight {
		c.BossAreaHeight = minAreaHeight
		fix()
	}
	if c.GameTimeSeconds < minGameSeconds {
		c.GameTimeSeconds = minGameSeconds
		fix()
	}
	for _, spd := range []*float64{&c.PlayerSpeed, &c.ProjectileSpeed, &c.BugSpeed, &c.PowerUpSpeed} {
		if *spd < minSpeed {
			*spd = minSpeed
			fix()
		}
	}
	if c.SpawnRate < 0 {
		c.SpawnRate = 0
		fix()
	}
	if c.SpawnRate > 1 {
		c.SpawnRate = 1
		fix()
	}
	if c.SpawnInterval < minInterval {
		c.SpawnInterval = minInterval
		fix()
	}
	if fixed {
		log.Printf("config: invalid values replaced with minimums (profile=%s)", c.Profile)
	}
	return c
}
