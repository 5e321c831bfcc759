package main

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_squash", "First Squash", "Squash your first bug"},
	{"exterminator", "Exterminator", "Squash 100 bugs in total"},
	{"myriad", "Myriad", "Squash 1000 bugs in total"},
	{"sharpshooter", "Sharpshooter", "Squash 50 bugs in a single run"},
	{"clean_sweep", "Clean Sweep", "Complete the pipeline for the first time"},
	{"green_build", "Green Build", "Win a run without letting a single bug escape"},
	{"night_shift", "Night Shift", "Win a survival run"},
	{"marathon", "Marathon", "Play for 1 hour in total"},
}

// CheckAchievements checks if any new achievements should be unlocked after
// a run. Returns the newly unlocked definitions.
func CheckAchievements(db *DB, playerID int64, run GameResult, profile string) []AchievementDef {
	if db == nil || playerID == 0 {
		return nil
	}

	stats, err := db.GetStats(playerID)
	if err != nil || stats == nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, id := range existing {
		has[id] = true
	}

	earned := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "first_squash":
			return stats.Kills >= 1
		case "exterminator":
			return stats.Kills >= 100
		case "myriad":
			return stats.Kills >= 1000
		case "sharpshooter":
			return run.BugsKilled >= 50
		case "clean_sweep":
			return run.PipelineComplete
		case "green_build":
			return run.Success && run.BugsEscaped == 0
		case "night_shift":
			return run.Success && profile == ProfileSurvivalScoring
		case "marathon":
			return stats.Playtime >= 3600
		}
		return false
	}

	var unlocked []AchievementDef
	for _, def := range Achievements {
		if earned(def.ID) {
			if newly, err := db.UnlockAchievement(playerID, def.ID); err == nil && newly {
				unlocked = append(unlocked, def)
			}
		}
	}
	return unlocked
}
