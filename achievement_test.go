package main

import "testing"

func unlockedIDs(defs []AchievementDef) map[string]bool {
	m := make(map[string]bool, len(defs))
	for _, d := range defs {
		m[d.ID] = true
	}
	return m
}

func TestFirstSquashUnlocksOnce(t *testing.T) {
	db := testDB(t)
	id, _ := db.CreatePlayer("pilot", "hash")

	run := sampleResult(10, 1, false)
	db.UpdateStatsAfterRun(id, run)

	got := unlockedIDs(CheckAchievements(db, id, run, ProfileStrictPipeline))
	if !got["first_squash"] {
		t.Error("first kill should unlock first_squash")
	}
	if got["exterminator"] {
		t.Error("one kill is not 100")
	}

	// Same run checked again: nothing new
	again := CheckAchievements(db, id, run, ProfileStrictPipeline)
	if len(again) != 0 {
		t.Errorf("repeat check should unlock nothing, got %v", again)
	}
}

func TestKillMilestones(t *testing.T) {
	db := testDB(t)
	id, _ := db.CreatePlayer("pilot", "hash")

	run := sampleResult(100, 60, false)
	db.UpdateStatsAfterRun(id, run)

	got := unlockedIDs(CheckAchievements(db, id, run, ProfileStrictPipeline))
	if !got["first_squash"] || !got["sharpshooter"] {
		t.Errorf("60-kill run should unlock first_squash and sharpshooter, got %v", got)
	}

	// Push lifetime kills past 100 with a second run
	run2 := sampleResult(100, 60, false)
	db.UpdateStatsAfterRun(id, run2)
	got = unlockedIDs(CheckAchievements(db, id, run2, ProfileStrictPipeline))
	if !got["exterminator"] {
		t.Errorf("120 lifetime kills should unlock exterminator, got %v", got)
	}
}

func TestWinConditionAchievements(t *testing.T) {
	db := testDB(t)
	id, _ := db.CreatePlayer("pilot", "hash")

	run := GameResult{
		Success:          true,
		Score:            4000,
		TimeTaken:        30,
		BugsKilled:       5,
		KillsByType:      map[string]int{"FunctionalError": 5},
		PipelineComplete: true,
		BugsEscaped:      0,
	}
	db.UpdateStatsAfterRun(id, run)

	got := unlockedIDs(CheckAchievements(db, id, run, ProfileStrictPipeline))
	if !got["clean_sweep"] {
		t.Error("pipeline completion should unlock clean_sweep")
	}
	if !got["green_build"] {
		t.Error("win with zero escapes should unlock green_build")
	}
	if got["night_shift"] {
		t.Error("night_shift is survival-only")
	}

	survival := GameResult{Success: true, BugsKilled: 1, KillsByType: map[string]int{}, BugsEscaped: 3}
	db.UpdateStatsAfterRun(id, survival)
	got = unlockedIDs(CheckAchievements(db, id, survival, ProfileSurvivalScoring))
	if !got["night_shift"] {
		t.Error("survival win should unlock night_shift")
	}
	if got["green_build"] {
		t.Error("a win with escapes is not a green build")
	}
}

func TestCheckAchievementsNilSafe(t *testing.T) {
	if got := CheckAchievements(nil, 1, GameResult{}, ProfileStrictPipeline); got != nil {
		t.Errorf("nil db should return nil, got %v", got)
	}
	db := testDB(t)
	if got := CheckAchievements(db, 0, GameResult{}, ProfileStrictPipeline); got != nil {
		t.Errorf("anonymous player should return nil, got %v", got)
	}
}
