package main

import (
	"sync"
	"testing"
)

// seq returns a random source replaying the given values, then repeating the last
func seq(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func TestProbabilisticSpawnRoll(t *testing.T) {
	cfg := StrictPipelineConfig()
	cfg.SpawnRate = 0.5
	allowed := []BugType{BugFunctionalError, BugSecurity, BugQuality, BugEmbeddedSecret}

	// Roll below the rate spawns; the next value picks the type
	s := NewSpawner(cfg, seq(0.4, 0.0))
	bt, ok := s.BugOnTick(allowed)
	if !ok {
		t.Fatal("roll below the rate should spawn")
	}
	if bt != BugFunctionalError {
		t.Errorf("pick 0.0 should select the first allowed type, got %s", bt)
	}

	// Roll at or above the rate does not
	s = NewSpawner(cfg, seq(0.5))
	if _, ok := s.BugOnTick(allowed); ok {
		t.Error("roll at the rate should not spawn")
	}
}

func TestProbabilisticPickRespectsAllowedSet(t *testing.T) {
	cfg := StrictPipelineConfig()
	cfg.SpawnRate = 1

	// Only two types allowed; a high pick value must select the last of
	// them, never a disallowed type.
	allowed := []BugType{BugSecurity, BugEmbeddedSecret}
	s := NewSpawner(cfg, seq(0.0, 0.99))
	bt, ok := s.BugOnTick(allowed)
	if !ok {
		t.Fatal("rate 1 should always spawn")
	}
	if bt != BugEmbeddedSecret {
		t.Errorf("expected EmbeddedSecret from restricted set, got %s", bt)
	}

	if _, ok := s.BugOnTick(nil); ok {
		t.Error("empty allowed set must suppress spawning")
	}
}

func TestPolicyGating(t *testing.T) {
	cfg := StrictPipelineConfig()
	cfg.BugSpawnPolicy = PolicyInterval
	cfg.PowerUpSpawnPolicy = PolicyInterval
	s := NewSpawner(cfg, seq(0.0))

	if _, ok := s.BugOnTick([]BugType{BugQuality}); ok {
		t.Error("interval-policy spawner must ignore per-tick rolls")
	}
	if _, ok := s.PowerUpOnTick([]PowerUpType{PowerUpQual}); ok {
		t.Error("interval-policy spawner must ignore per-tick rolls")
	}

	cfg.BugSpawnPolicy = PolicyProbabilistic
	s = NewSpawner(cfg, seq(0.0))
	if _, ok := s.BugOnSecond(); ok {
		t.Error("probabilistic spawner must ignore interval seconds")
	}
}

func TestIntervalCycleRoundRobin(t *testing.T) {
	cfg := SurvivalScoringConfig()
	cfg.BugSpawnPolicy = PolicyInterval
	cfg.SpawnInterval = 2
	s := NewSpawner(cfg, seq(0.5))

	var got []BugType
	for sec := 0; sec < 20; sec++ {
		if bt, ok := s.BugOnSecond(); ok {
			got = append(got, bt)
		}
	}
	// Every 2 seconds, cycling over all four types in order
	want := []BugType{
		BugFunctionalError, BugSecurity, BugQuality, BugEmbeddedSecret,
		BugFunctionalError, BugSecurity, BugQuality, BugEmbeddedSecret,
		BugFunctionalError, BugSecurity,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d interval spawns in 20s, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spawn %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestIntervalPowerUpCycleIgnoresCollection(t *testing.T) {
	cfg := SurvivalScoringConfig()
	cfg.SpawnInterval = 1
	s := NewSpawner(cfg, seq(0.5))

	var got []PowerUpType
	for sec := 0; sec < 8; sec++ {
		if pt, ok := s.PowerUpOnSecond(); ok {
			got = append(got, pt)
		}
	}
	// The cycle repeats all four types; collection state never filters it
	want := []PowerUpType{
		PowerUpTest, PowerUpCSM, PowerUpSec, PowerUpQual,
		PowerUpTest, PowerUpCSM, PowerUpSec, PowerUpQual,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spawn %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSpawnXStaysInside(t *testing.T) {
	cfg := StrictPipelineConfig()
	for _, roll := range []float64{0, 0.25, 0.5, 0.999} {
		s := NewSpawner(cfg, seq(roll))
		x := s.SpawnX(900, BugWidth)
		if x < 0 || x+BugWidth > 900 {
			t.Errorf("roll %.3f: spawn x %.1f leaves the course", roll, x)
		}
	}
}

func TestDefaultRandomSourceConcurrent(t *testing.T) {
	// Spawners in concurrent sessions share the default source; hammering it
	// from two goroutines keeps the race detector honest about it.
	cfg := StrictPipelineConfig()
	cfg.SpawnRate = 0.5
	allowed := []BugType{BugFunctionalError, BugSecurity}

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := NewSpawner(cfg, nil)
			for i := 0; i < 10000; i++ {
				s.BugOnTick(allowed)
				if x := s.SpawnX(900, BugWidth); x < 0 || x+BugWidth > 900 {
					t.Errorf("spawn x %.1f leaves the course", x)
					return
				}
			}
		}()
	}
	wg.Wait()
}
