package main

// GameResult summarizes a finished session for the presentation layer
type GameResult struct {
	Success           bool           `json:"success"`
	Score             int            `json:"score"`
	TimeTaken         float64        `json:"timeTaken"` // seconds of play, pauses excluded
	BugsKilled        int            `json:"bugsKilled"`
	KillsByType       map[string]int `json:"killsByType"`
	PowerUpsCollected int            `json:"powerupsCollected"`
	PipelineComplete  bool           `json:"pipelineComplete"`
	BugsEscaped       int            `json:"bugsEscaped"`
	Message           string         `json:"message"`
}

// Notifier receives fire-and-forget callbacks from a running session.
// Calls are synchronous, made from the game loop goroutine with the session
// lock held: implementations must not block and must not call back into the
// session. Return values are never consumed.
type Notifier interface {
	// EntityCreated fires once when an entity enters its collection.
	// subtype is the bug/power-up type wire name, empty for projectiles.
	EntityCreated(kind string, id EntityID, r Rect, subtype string)
	// EntityMoved fires for every live entity after the motion step
	EntityMoved(kind string, id EntityID, x, y float64)
	// EntityRemoved fires exactly once when an entity leaves its collection
	EntityRemoved(kind string, id EntityID)
	ScoreChanged(score int)
	TimerChanged(secondsLeft int)
	// PipelineChanged reports the unique-collected set after a collection
	PipelineChanged(collected []string)
	ExplosionAt(x, y float64)
	ScorePopup(x, y float64, amount int, big bool)
	SessionEnded(result GameResult)
	// State carries the periodic full snapshot for rendering
	State(snapshot GameState)
}

// NopNotifier discards all notifications. Useful for headless sessions and
// as an embed for partial test doubles.
type NopNotifier struct{}

func (NopNotifier) EntityCreated(string, EntityID, Rect, string) {}
func (NopNotifier) EntityMoved(string, EntityID, float64, float64) {}
func (NopNotifier) EntityRemoved(string, EntityID)             {}
func (NopNotifier) ScoreChanged(int)                           {}
func (NopNotifier) TimerChanged(int)                           {}
func (NopNotifier) PipelineChanged([]string)                   {}
func (NopNotifier) ExplosionAt(float64, float64)               {}
func (NopNotifier) ScorePopup(float64, float64, int, bool)     {}
func (NopNotifier) SessionEnded(GameResult)                    {}
func (NopNotifier) State(GameState)                            {}
