package main

import "encoding/json"

// Client -> Server message types
const (
	MsgStart       = "start"
	MsgInput       = "input"
	MsgFire        = "fire"
	MsgPause       = "pause"
	MsgResume      = "resume"
	MsgAbort       = "abort"
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgGuest       = "guest" // play under a generated throwaway account
	MsgAuth        = "auth" // resume with a stored token
	MsgProfile     = "profile"
	MsgLeaderboard = "leaderboard"
)

// Server -> Client message types
const (
	MsgWelcome         = "welcome"
	MsgState           = "state" // binary msgpack, not JSON
	MsgSpawn           = "spawn"
	MsgDespawn         = "despawn"
	MsgScore           = "score"
	MsgTimer           = "timer"
	MsgPipeline        = "pipeline"
	MsgBoom            = "boom"
	MsgPopup           = "popup"
	MsgEnded           = "ended"
	MsgAuthOK          = "auth_ok"
	MsgProfileData     = "profile_data"
	MsgLeaderboardData = "leaderboard_data"
	MsgAchievement     = "achievement"
	MsgError           = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// StartMsg requests a new session. Config overrides the profile defaults
// when present; invalid fields fall back to documented minimums.
type StartMsg struct {
	Profile string      `json:"profile,omitempty"`
	Config  *GameConfig `json:"config,omitempty"`
}

// InputMsg carries the movement direction signal (-1, 0, 1)
type InputMsg struct {
	Dir int `json:"dir"`
}

// WelcomeMsg echoes the effective session config on start
type WelcomeMsg struct {
	Profile    string  `json:"profile"`
	AreaWidth  float64 `json:"aw"`
	AreaHeight float64 `json:"ah"`
	GameTime   int     `json:"time"`
}

// PlayerState is part of each state broadcast
type PlayerState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ProjectileState is broadcast per live projectile
type ProjectileState struct {
	ID EntityID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// BugState is broadcast per live bug
type BugState struct {
	ID   EntityID `json:"id"`
	Type string   `json:"bt"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
}

// PowerUpState is broadcast per live power-up
type PowerUpState struct {
	ID   EntityID `json:"id"`
	Type string   `json:"pt"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
}

// GameState is the full snapshot, msgpack-encoded on the wire
type GameState struct {
	Tick        uint64            `json:"tick"`
	Phase       string            `json:"ph"`
	Score       int               `json:"sc"`
	TimeLeft    int               `json:"tl"`
	Pipeline    []string          `json:"pl"`
	Player      PlayerState       `json:"p"`
	Projectiles []ProjectileState `json:"pr"`
	Bugs        []BugState        `json:"b"`
	PowerUps    []PowerUpState    `json:"pu"`
}

// SpawnMsg announces an entity entering its collection
type SpawnMsg struct {
	Kind    string   `json:"k"`
	ID      EntityID `json:"id"`
	Subtype string   `json:"st,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	W       float64  `json:"w"`
	H       float64  `json:"h"`
}

// DespawnMsg announces an entity leaving its collection
type DespawnMsg struct {
	Kind string   `json:"k"`
	ID   EntityID `json:"id"`
}

// ScoreMsg carries the new score
type ScoreMsg struct {
	Score int `json:"s"`
}

// TimerMsg carries the remaining countdown seconds
type TimerMsg struct {
	SecondsLeft int `json:"s"`
}

// PipelineMsg carries the unique-collected power-up set
type PipelineMsg struct {
	Collected []string `json:"c"`
}

// BoomMsg places an explosion effect
type BoomMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PopupMsg places a floating score popup
type PopupMsg struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Amount int     `json:"a"`
	Big    bool    `json:"big,omitempty"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates with credentials
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg authenticates with a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg carries aggregate stats for the authenticated player
type ProfileDataMsg struct {
	Username  string  `json:"username"`
	BestScore int     `json:"bestScore"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	Kills     int     `json:"kills"`
	Pipelines int     `json:"pipelines"`
	Escaped   int     `json:"escaped"`
	Playtime  float64 `json:"playtime"`
}

// LeaderboardMsg requests the leaderboard sorted by the given column
type LeaderboardMsg struct {
	By string `json:"by"`
}

// AchievementMsg announces a newly unlocked achievement
type AchievementMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
