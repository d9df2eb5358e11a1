package internal

import (
	"encoding/json"
	"sync"
	"time"
)

// CurrencyDivisor converts awarded points into ink: one ink per ten points,
// floored. Ink is cosmetic and survives lobby resets.
const CurrencyDivisor = 10

type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhaseStarting GamePhase = "starting"
	PhasePicking  GamePhase = "picking"
	PhaseDrawing  GamePhase = "drawing"
	PhaseResults  GamePhase = "results"
	PhaseGameOver GamePhase = "game_over"
)

// Config holds the per-room tuning knobs. All durations are whole seconds
// because the countdown service ticks once per second.
type Config struct {
	MaxPlayersPerRoom int
	MinPlayersToStart int
	TotalRounds       int

	StartDelaySeconds int // grace period between game_starting and the first turn
	PickSeconds       int // word selection countdown
	DrawSeconds       int // main drawing countdown
	ResultSeconds     int // round results display
	PodiumSeconds     int // game_over display before lobby reset

	BasePoints  int // flat award for a correct guess
	BonusPoints int // max time bonus, scaled by remaining/draw seconds
	DrawerBonus int // drawer award per correct guesser

	WordChoices int // words offered to the drawer each turn

	// CanvasReplay makes rooms retain the current turn's draw ops so they
	// can be shipped to late joiners.
	CanvasReplay bool
}

func DefaultConfig() Config {
	return Config{
		MaxPlayersPerRoom: 8,
		MinPlayersToStart: 2,
		TotalRounds:       5,
		StartDelaySeconds: 3,
		PickSeconds:       15,
		DrawSeconds:       60,
		ResultSeconds:     8,
		PodiumSeconds:     10,
		BasePoints:        100,
		BonusPoints:       500,
		DrawerBonus:       50,
		WordChoices:       3,
	}
}

type Profile struct {
	Avatar    string `json:"avatar"`
	Accessory string `json:"accessory"`
}

// RoundWinner records one correct guess within the current round.
type RoundWinner struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type Room struct {
	Id string

	// Players in join order; join order is turn order.
	Players []*Player

	Phase        GamePhase
	CurrentRound int // 1-based, 0 while waiting
	TotalRounds  int
	DrawerIndex  int // index into Players, -1 while waiting
	Word         string
	WordChoices  []string
	Winners      []RoundWinner

	// Countdown state. TimerGen is bumped on every timer start/stop so a
	// stale tick or expiry can recognize itself and bail out. StopTimer is
	// the cancel handle of the single live countdown, nil when none.
	TimerSeconds int
	TimerGen     uint64
	StopTimer    func()

	// Draw ops retained for late joiners when Config.CanvasReplay is set.
	CanvasOps []json.RawMessage

	// Closed marks a room that has been evicted from the registry; joins
	// that raced the eviction must pick another room.
	Closed bool

	Mu sync.RWMutex
}

// Drawer returns the current drawer, or nil when DrawerIndex does not point
// at a live player. Caller must hold the room lock.
func (r *Room) Drawer() *Player {
	if r.DrawerIndex < 0 || r.DrawerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.DrawerIndex]
}

// IndexOf returns the position of the player with the given id in join
// order, or -1. Caller must hold the room lock.
func (r *Room) IndexOf(playerID string) int {
	for i, p := range r.Players {
		if p.Id == playerID {
			return i
		}
	}
	return -1
}

// EveryoneGuessed reports whether every non-drawer has guessed correctly
// this round. Caller must hold the room lock.
func (r *Room) EveryoneGuessed() bool {
	for i, p := range r.Players {
		if i == r.DrawerIndex {
			continue
		}
		if !p.HasGuessed {
			return false
		}
	}
	return true
}

// Snapshots returns public copies of all players in join order. Caller must
// hold the room lock.
func (r *Room) Snapshots() []PlayerSnapshot {
	out := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.Snapshot())
	}
	return out
}

type Player struct {
	Id       string    `json:"id"`
	Username string    `json:"username"`
	Profile  Profile   `json:"profile"`
	JoinedAt time.Time `json:"joined_at"`

	Score      int  `json:"score"`
	InkEarned  int  `json:"ink_earned"`
	HasGuessed bool `json:"has_guessed"`

	Room *Room `json:"-"` // owning room, set on join

	conn sendCloser
	send chan []byte
	once sync.Once
}

// PlayerSnapshot is the broadcast-safe view of a player.
type PlayerSnapshot struct {
	Id         string  `json:"id"`
	Username   string  `json:"username"`
	Profile    Profile `json:"profile"`
	Score      int     `json:"score"`
	InkEarned  int     `json:"ink_earned"`
	HasGuessed bool    `json:"has_guessed"`
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Id:         p.Id,
		Username:   p.Username,
		Profile:    p.Profile,
		Score:      p.Score,
		InkEarned:  p.InkEarned,
		HasGuessed: p.HasGuessed,
	}
}

// AwardPoints adds points to the cumulative score and converts them to ink.
// Caller must hold the room lock.
func (p *Player) AwardPoints(points int) {
	p.Score += points
	p.InkEarned += points / CurrencyDivisor
}

func (p *Player) ResetRoundState() {
	p.HasGuessed = false
}
