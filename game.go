package main

import (
	"log"
	"sync"
	"time"
)

const (
	TickRate       = 60 // simulation ticks per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = 2 // full state snapshot every N ticks (30 Hz)
)

// Phase is the session state machine position
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the wire name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Game is one single-player session: the phase state machine, the countdown
// and the per-tick pipeline (motion, spawning, collision, scoring). All
// collaborators are injected; the game never reaches for globals.
//
// Two tickers drive it from a single goroutine, so a simulation tick and a
// countdown second can never interleave. External calls (input, pause,
// start, abort) synchronize on the same mutex as the tick.
type Game struct {
	mu       sync.Mutex
	notifier Notifier
	cfg      GameConfig

	phase       Phase
	ids         idSource
	player      *Player
	projectiles store[*Projectile]
	bugs        store[*Bug]
	powerUps    store[*PowerUp]
	spawner     *Spawner
	tracker     Tracker

	tick       uint64
	timeLeft   int
	elapsed    float64 // seconds of play, pauses excluded
	fireQueued bool

	random  func() float64 // nil = math/rand; injectable for tests
	running bool
	stop    chan struct{}
}

// NewGame creates a session in the menu phase
func NewGame(notifier Notifier) *Game {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Game{notifier: notifier, phase: PhaseMenu}
}

// Start (re)initializes all session state from scratch (entities, score,
// id counters, countdown) and begins playing. Invalid config fields are
// replaced by minimum fallbacks. A no-op while a session is in progress.
func (g *Game) Start(cfg GameConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhasePlaying || g.phase == PhasePaused {
		return
	}

	g.beginLocked(cfg)

	if !g.running {
		g.running = true
		g.stop = make(chan struct{})
		go g.run(g.stop)
	}
}

// beginLocked resets every piece of session state and enters the playing
// phase. Separate from Start so tests can drive ticks by hand.
func (g *Game) beginLocked(cfg GameConfig) {
	g.cfg = cfg.sanitized()
	g.ids.Reset()
	g.projectiles.Clear()
	g.bugs.Clear()
	g.powerUps.Clear()
	g.tracker.Reset()
	g.spawner = NewSpawner(g.cfg, g.random)
	g.player = NewPlayer(g.cfg.BossAreaWidth, g.cfg.BossAreaHeight)
	g.tick = 0
	g.elapsed = 0
	g.fireQueued = false
	g.timeLeft = g.cfg.GameTimeSeconds
	g.phase = PhasePlaying

	g.notifier.ScoreChanged(0)
	g.notifier.TimerChanged(g.timeLeft)
	g.notifier.PipelineChanged(nil)
}

// run drives both tick rates from one goroutine until stopped
func (g *Game) run(stop chan struct{}) {
	sim := time.NewTicker(TickDuration)
	countdown := time.NewTicker(time.Second)
	defer sim.Stop()
	defer countdown.Stop()

	for {
		select {
		case <-sim.C:
			g.update()
		case <-countdown.C:
			g.second()
		case <-stop:
			return
		}
	}
}

// Pause suspends motion, spawning, collisions and the countdown. State is
// kept exactly as-is; nothing catches up on resume.
func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhasePlaying {
		g.phase = PhasePaused
	}
}

// Resume continues a paused session
func (g *Game) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhasePaused {
		g.phase = PhasePlaying
	}
}

// Abort ends the session immediately with a failure result
func (g *Game) Abort() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endSessionLocked(false, "session aborted")
}

// Shutdown stops the tick driver without emitting a result. Used when the
// client goes away mid-session.
func (g *Game) Shutdown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		close(g.stop)
		g.running = false
	}
	g.phase = PhaseMenu
}

// SetDirection records the movement signal sampled by the next tick
func (g *Game) SetDirection(dir int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if dir < -1 {
		dir = -1
	} else if dir > 1 {
		dir = 1
	}
	if g.player != nil {
		g.player.Dir = dir
	}
}

// Fire queues one projectile for the next tick. Rate limiting is the
// caller's responsibility.
func (g *Game) Fire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhasePlaying {
		g.fireQueued = true
	}
}

// Config returns the effective (sanitized) session config
func (g *Game) Config() GameConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// Phase returns the current state machine position
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Score returns the current score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tracker.Score()
}

// TimeLeft returns the remaining countdown seconds
func (g *Game) TimeLeft() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timeLeft
}

// Snapshot returns the current full state
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// update runs one simulation tick: motion, spawning, collision resolution,
// win check, broadcast. A panic anywhere in the tick ends the session with
// a failure result instead of propagating.
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("tick panic: %v", r)
			g.endSessionLocked(false, "internal error ended the session")
		}
	}()

	g.tick++
	g.elapsed += 1.0 / TickRate

	g.integrateLocked()
	g.spawnOnTickLocked()
	g.resolveCollisionsLocked()
	if g.phase != PhasePlaying {
		return // a boundary event ended the session mid-resolution
	}

	if g.cfg.WinOnPipelineComplete && g.tracker.PipelineComplete() {
		g.endSessionLocked(true, "pipeline complete")
		return
	}

	if g.tick%BroadcastEvery == 0 {
		g.notifier.State(g.snapshotLocked())
	}
}

// second runs one countdown tick: interval spawns and the timer. It shares
// the loop goroutine and mutex with update, so the two never interleave.
func (g *Game) second() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return
	}

	if t, ok := g.spawner.BugOnSecond(); ok {
		g.spawnBugLocked(t)
	}
	if t, ok := g.spawner.PowerUpOnSecond(); ok {
		g.spawnPowerUpLocked(t)
	}

	g.timeLeft--
	g.notifier.TimerChanged(g.timeLeft)
	if g.timeLeft <= 0 {
		if g.cfg.WinOnPipelineComplete {
			g.endSessionLocked(false, "time ran out before the pipeline was complete")
		} else {
			g.endSessionLocked(true, "you survived the shift")
		}
	}
}

// integrateLocked advances every entity by its fixed per-tick step. All
// moves happen before any collision is resolved.
func (g *Game) integrateLocked() {
	step := func(pxPerSec float64) float64 { return pxPerSec / TickRate }

	g.player.Move(step(g.cfg.PlayerSpeed), g.cfg.BossAreaWidth)
	g.notifier.EntityMoved(KindPlayer, 0, g.player.X, g.player.Y)

	if g.fireQueued {
		g.fireQueued = false
		pr := NewProjectile(g.ids.Next(), g.player)
		g.projectiles.Add(pr)
		g.notifier.EntityCreated(KindProjectile, pr.ID(), pr.Rect(), "")
	}

	for i := g.projectiles.Len() - 1; i >= 0; i-- {
		pr := g.projectiles.At(i)
		pr.Update(step(g.cfg.ProjectileSpeed))
		if pr.Offscreen() {
			g.projectiles.RemoveAt(i)
			g.notifier.EntityRemoved(KindProjectile, pr.ID())
			continue
		}
		g.notifier.EntityMoved(KindProjectile, pr.ID(), pr.X, pr.Y)
	}

	for _, b := range g.bugs.All() {
		b.Update(step(g.cfg.BugSpeed))
		g.notifier.EntityMoved(KindBug, b.ID(), b.X, b.Y)
	}

	for i := g.powerUps.Len() - 1; i >= 0; i-- {
		u := g.powerUps.At(i)
		u.Update(step(g.cfg.PowerUpSpeed))
		if u.Missed(g.cfg.BossAreaHeight) {
			// Fell past the bottom uncollected, no score effect
			g.powerUps.RemoveAt(i)
			g.notifier.EntityRemoved(KindPowerUp, u.ID())
			continue
		}
		g.notifier.EntityMoved(KindPowerUp, u.ID(), u.X, u.Y)
	}
}

// spawnOnTickLocked polls the probabilistic spawn policies
func (g *Game) spawnOnTickLocked() {
	if t, ok := g.spawner.BugOnTick(g.allowedBugTypesLocked()); ok {
		g.spawnBugLocked(t)
	}
	if t, ok := g.spawner.PowerUpOnTick(g.allowedPowerUpTypesLocked()); ok {
		g.spawnPowerUpLocked(t)
	}
}

func (g *Game) spawnBugLocked(t BugType) {
	b := NewBug(g.ids.Next(), t, g.spawner.SpawnX(g.cfg.BossAreaWidth, BugWidth))
	g.bugs.Add(b)
	g.notifier.EntityCreated(KindBug, b.ID(), b.Rect(), b.Type.String())
}

func (g *Game) spawnPowerUpLocked(t PowerUpType) {
	u := NewPowerUp(g.ids.Next(), t, g.spawner.SpawnX(g.cfg.BossAreaWidth, PowerUpWidth))
	g.powerUps.Add(u)
	g.notifier.EntityCreated(KindPowerUp, u.ID(), u.Rect(), u.Type.String())
}

// allowedBugTypesLocked returns the bug types the spawner may pick from
func (g *Game) allowedBugTypesLocked() []BugType {
	allowed := make([]BugType, 0, NumBugTypes)
	for bt := BugType(0); bt < NumBugTypes; bt++ {
		if g.cfg.StopCollectedBugTypes && g.tracker.Collected(bt.CounteredBy()) {
			continue
		}
		allowed = append(allowed, bt)
	}
	return allowed
}

// allowedPowerUpTypesLocked returns the power-up types the spawner may pick from
func (g *Game) allowedPowerUpTypesLocked() []PowerUpType {
	allowed := make([]PowerUpType, 0, NumPowerUpTypes)
	for pt := PowerUpType(0); pt < NumPowerUpTypes; pt++ {
		if g.cfg.PowerUpOnlyUncollected && g.tracker.Collected(pt) {
			continue
		}
		allowed = append(allowed, pt)
	}
	return allowed
}

// endSessionLocked freezes the session, stops the tick driver and emits the
// result summary. Safe to call from any phase; only playing/paused sessions
// actually end, so a late tick after gameover is a no-op.
func (g *Game) endSessionLocked(success bool, message string) {
	if g.phase != PhasePlaying && g.phase != PhasePaused {
		return
	}
	g.phase = PhaseGameOver
	if g.running {
		close(g.stop)
		g.running = false
	}

	g.notifier.SessionEnded(GameResult{
		Success:           success,
		Score:             g.tracker.Score(),
		TimeTaken:         round1(g.elapsed),
		BugsKilled:        g.tracker.TotalKills(),
		KillsByType:       g.tracker.killsMap(),
		PowerUpsCollected: g.tracker.CollectedCount(),
		PipelineComplete:  g.tracker.PipelineComplete(),
		BugsEscaped:       g.tracker.Escaped(),
		Message:           message,
	})
}

// snapshotLocked builds the full state for broadcast
func (g *Game) snapshotLocked() GameState {
	gs := GameState{
		Tick:     g.tick,
		Phase:    g.phase.String(),
		Score:    g.tracker.Score(),
		TimeLeft: g.timeLeft,
		Pipeline: g.tracker.CollectedTypes(),
	}
	if g.player != nil {
		gs.Player = g.player.ToState()
	}
	gs.Projectiles = make([]ProjectileState, 0, g.projectiles.Len())
	for _, pr := range g.projectiles.All() {
		gs.Projectiles = append(gs.Projectiles, pr.ToState())
	}
	gs.Bugs = make([]BugState, 0, g.bugs.Len())
	for _, b := range g.bugs.All() {
		gs.Bugs = append(gs.Bugs, b.ToState())
	}
	gs.PowerUps = make([]PowerUpState, 0, g.powerUps.Len())
	for _, u := range g.powerUps.All() {
		gs.PowerUps = append(gs.PowerUps, u.ToState())
	}
	return gs
}
