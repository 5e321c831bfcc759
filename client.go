package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120 // movement + fire at 60 Hz both fit
)

// Client represents one WebSocket connection and owns the single-player
// session behind it. It implements Notifier: the game pushes events into it
// and it forwards them to the browser.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string

	game      *Game
	sessionID string // analytics correlation id, new per started session
	profile   string

	msgCount   int
	msgResetAt time.Time

	// Auth state
	authPlayerID int64  // 0 = unauthenticated
	authUsername string // "" = unauthenticated
}

// NewClient creates a Client with a fresh session in the menu phase
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	c := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
	c.game = NewGame(c)
	return c
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		// Binary input frames: 3 bytes [0x01, dir(int8), flags]
		if msgType == websocket.BinaryMessage && len(message) == 3 && message[0] == 0x01 {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 0xFF prefix marks binary frames queued by SendBinary
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// ---------- Notifier implementation ----------
// Called synchronously from the game loop; every method only queues onto the
// buffered send channel and never blocks.

func (c *Client) EntityCreated(kind string, id EntityID, r Rect, subtype string) {
	c.SendJSON(Envelope{T: MsgSpawn, Data: SpawnMsg{
		Kind: kind, ID: id, Subtype: subtype,
		X: round1(r.X), Y: round1(r.Y), W: r.W, H: r.H,
	}})
}

// EntityMoved is intentionally not forwarded per entity: positions reach the
// client batched in the 30 Hz binary snapshot instead.
func (c *Client) EntityMoved(string, EntityID, float64, float64) {}

func (c *Client) EntityRemoved(kind string, id EntityID) {
	c.SendJSON(Envelope{T: MsgDespawn, Data: DespawnMsg{Kind: kind, ID: id}})
}

func (c *Client) ScoreChanged(score int) {
	c.SendJSON(Envelope{T: MsgScore, Data: ScoreMsg{Score: score}})
}

func (c *Client) TimerChanged(secondsLeft int) {
	c.SendJSON(Envelope{T: MsgTimer, Data: TimerMsg{SecondsLeft: secondsLeft}})
}

func (c *Client) PipelineChanged(collected []string) {
	c.SendJSON(Envelope{T: MsgPipeline, Data: PipelineMsg{Collected: collected}})
	if c.hub.analytics != nil && len(collected) > 0 {
		c.hub.analytics.Track(EvtPowerUpCollect, c.authPlayerID, c.sessionID,
			fmt.Sprintf(`{"collected":%d}`, len(collected)))
	}
}

func (c *Client) ExplosionAt(x, y float64) {
	c.SendJSON(Envelope{T: MsgBoom, Data: BoomMsg{X: round1(x), Y: round1(y)}})
}

func (c *Client) ScorePopup(x, y float64, amount int, big bool) {
	c.SendJSON(Envelope{T: MsgPopup, Data: PopupMsg{X: round1(x), Y: round1(y), Amount: amount, Big: big}})
}

func (c *Client) SessionEnded(result GameResult) {
	c.SendJSON(Envelope{T: MsgEnded, Data: result})
	// Persistence and achievements happen off the game loop goroutine
	go c.recordResult(result)
}

func (c *Client) State(snapshot GameState) {
	data, err := msgpack.Marshal(snapshot)
	if err != nil {
		log.Printf("msgpack marshal error: %v", err)
		return
	}
	c.SendBinary(data)
}

// recordResult persists a finished run and reports new achievements
func (c *Client) recordResult(result GameResult) {
	if c.hub.analytics != nil {
		c.hub.analytics.Track(EvtSessionEnd, c.authPlayerID, c.sessionID,
			fmt.Sprintf(`{"score":%d,"success":%t,"duration":%.1f}`, result.Score, result.Success, result.TimeTaken))
	}
	if c.hub.db == nil {
		return
	}
	if _, err := c.hub.db.RecordRun(c.authPlayerID, c.profile, result); err != nil {
		log.Printf("record run error: %v", err)
	}
	if c.authPlayerID == 0 {
		return
	}
	if err := c.hub.db.UpdateStatsAfterRun(c.authPlayerID, result); err != nil {
		log.Printf("update stats error: %v", err)
		return
	}
	for _, def := range CheckAchievements(c.hub.db, c.authPlayerID, result, c.profile) {
		c.SendJSON(Envelope{T: MsgAchievement, Data: AchievementMsg{
			ID: def.ID, Name: def.Name, Desc: def.Description,
		}})
		if c.hub.analytics != nil {
			c.hub.analytics.Track(EvtAchievement, c.authPlayerID, c.sessionID, `{"id":"`+def.ID+`"}`)
		}
	}
}

// ---------- inbound message handling ----------

// handleBinaryInput decodes the compact 3-byte input frame
func (c *Client) handleBinaryInput(msg []byte) {
	dir := int(int8(msg[1]))
	flags := msg[2]
	c.game.SetDirection(dir)
	if flags&0x01 != 0 {
		c.game.Fire()
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgFire:
		c.game.Fire()
	case MsgPause:
		c.game.Pause()
	case MsgResume:
		c.game.Resume()
	case MsgAbort:
		c.game.Abort()
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgGuest:
		c.handleGuest()
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgProfile:
		c.handleProfile()
	case MsgLeaderboard:
		c.handleLeaderboard(env.D)
	}
}

func (c *Client) handleStart(data json.RawMessage) {
	// Starting over a live session is a game no-op; minting a fresh session
	// identity for it would drift analytics from the real session.
	if ph := c.game.Phase(); ph == PhasePlaying || ph == PhasePaused {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "session already running"}})
		return
	}

	var msg StartMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "bad start message"}})
			return
		}
	}

	cfg := ConfigForProfile(msg.Profile)
	if msg.Config != nil {
		cfg = *msg.Config
		if cfg.Profile == "" {
			cfg.Profile = msg.Profile
		}
	}

	c.sessionID = GenerateID(8)
	c.profile = cfg.Profile
	if c.profile == "" {
		c.profile = ProfileStrictPipeline
	}

	c.game.Start(cfg)

	eff := c.game.Config()
	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		Profile:    c.profile,
		AreaWidth:  eff.BossAreaWidth,
		AreaHeight: eff.BossAreaHeight,
		GameTime:   eff.GameTimeSeconds,
	}})

	if c.hub.analytics != nil {
		c.hub.analytics.Track(EvtSessionStart, c.authPlayerID, c.sessionID, `{"profile":"`+c.profile+`"}`)
	}
}

func (c *Client) handleInput(data json.RawMessage) {
	var input InputMsg
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.game.SetDirection(input.Dir)
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPlayerID = id
	c.authUsername = strings.TrimSpace(msg.Username)
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: c.authUsername, PlayerID: id}})
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPlayerID = id
	c.authUsername = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id}})
}

func (c *Client) handleGuest() {
	if c.hub.auth == nil {
		return
	}
	if c.authPlayerID != 0 {
		// Already authenticated, keep the current identity
		c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Username: c.authUsername, PlayerID: c.authPlayerID}})
		return
	}
	id, name, token, err := c.hub.auth.Guest()
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.authPlayerID = id
	c.authUsername = name
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: name, PlayerID: id}})
}

func (c *Client) handleAuth(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "invalid token"}})
		return
	}
	c.authPlayerID = id
	c.authUsername = username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: msg.Token, Username: username, PlayerID: id}})
}

func (c *Client) handleProfile() {
	if c.hub.db == nil || c.authPlayerID == 0 {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "not authenticated"}})
		return
	}
	stats, err := c.hub.db.GetStats(c.authPlayerID)
	if err != nil || stats == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "profile not found"}})
		return
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username:  c.authUsername,
		BestScore: stats.BestScore,
		Games:     stats.Games,
		Wins:      stats.Wins,
		Kills:     stats.Kills,
		Pipelines: stats.Pipelines,
		Escaped:   stats.Escaped,
		Playtime:  stats.Playtime,
	}})
}

func (c *Client) handleLeaderboard(data json.RawMessage) {
	if c.hub.db == nil {
		c.SendJSON(Envelope{T: MsgLeaderboardData, Data: []LeaderboardEntry{}})
		return
	}
	var msg LeaderboardMsg
	if len(data) > 0 {
		json.Unmarshal(data, &msg)
	}
	entries, err := c.hub.db.GetLeaderboard(msg.By, 20)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "leaderboard unavailable"}})
		return
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	c.SendJSON(Envelope{T: MsgLeaderboardData, Data: entries})
}
