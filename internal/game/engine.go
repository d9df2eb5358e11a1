// Package game implements the room engine: matchmaking, the per-room phase
// machine, scoring, and broadcast fan-out. Every mutation of a room happens
// under that room's lock, so the sequence {join, guess, disconnect,
// timer-fire} is applied in arrival order while unrelated rooms progress in
// parallel.
package game

import (
	"sync"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
	"github.com/haydensixseven-jpg/sketchdash-server/internal/words"
)

// Engine owns the room registry and drives every room's state machine. The
// registry map and its insertion-order index are the only state shared
// across rooms, guarded by their own mutex.
type Engine struct {
	cfg   internal.Config
	words *words.Provider
	gw    Gateway
	sched Scheduler

	mu    sync.RWMutex
	rooms map[string]*internal.Room
	order []string // room ids in creation order, for deterministic first-fit
}

func NewEngine(cfg internal.Config, provider *words.Provider, gw Gateway, sched Scheduler) *Engine {
	return &Engine{
		cfg:   cfg,
		words: provider,
		gw:    gw,
		sched: sched,
		rooms: make(map[string]*internal.Room),
	}
}

// RoomCount reports the number of live rooms.
func (e *Engine) RoomCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rooms)
}

// Room looks a room up by id.
func (e *Engine) Room(id string) (*internal.Room, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	room, ok := e.rooms[id]
	return room, ok
}

// RoomStat is the public view of one room for the HTTP listing endpoint.
type RoomStat struct {
	RoomID  string             `json:"room_id"`
	Players int                `json:"players"`
	Phase   internal.GamePhase `json:"phase"`
	Round   int                `json:"round"`
}

// Stats snapshots every room in creation order.
func (e *Engine) Stats() []RoomStat {
	e.mu.RLock()
	ids := append([]string(nil), e.order...)
	roomsByID := make(map[string]*internal.Room, len(e.rooms))
	for id, r := range e.rooms {
		roomsByID[id] = r
	}
	e.mu.RUnlock()

	out := make([]RoomStat, 0, len(ids))
	for _, id := range ids {
		room, ok := roomsByID[id]
		if !ok {
			continue
		}
		room.Mu.RLock()
		out = append(out, RoomStat{
			RoomID:  room.Id,
			Players: len(room.Players),
			Phase:   room.Phase,
			Round:   room.CurrentRound,
		})
		room.Mu.RUnlock()
	}
	return out
}
