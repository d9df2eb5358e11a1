package game

import (
	"log"
	"slices"

	"github.com/google/uuid"
	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// =============================================================================
// ROOM REGISTRY / MATCHMAKING
// =============================================================================

func newRoomID() string {
	return "ROOM_" + uuid.NewString()[:8]
}

// Join assigns a player to a room and returns its id. Matchmaking is
// first-fit over rooms in creation order: the first room still waiting for
// a game with a free seat wins, otherwise a fresh room is registered. If
// the room reaches the start threshold the game begins immediately.
func (e *Engine) Join(player *internal.Player) string {
	for {
		room := e.pickRoom()

		room.Mu.Lock()
		// The candidate was chosen without its lock held; a racing join
		// may have filled it, a racing start may have moved it out of the
		// waiting phase, and a racing leave may have evicted it entirely.
		if room.Closed || room.Phase != internal.PhaseWaiting || len(room.Players) >= e.cfg.MaxPlayersPerRoom {
			room.Mu.Unlock()
			continue
		}

		player.Room = room
		room.Players = append(room.Players, player)

		joined := internal.JoinedRoomData{
			RoomID:  room.Id,
			Players: room.Snapshots(),
			Phase:   room.Phase,
		}
		if e.cfg.CanvasReplay {
			joined.Canvas = slices.Clone(room.CanvasOps)
		}
		e.toPlayer(player, internal.EventJoinedRoom, joined)
		e.toOthersLocked(room, player, internal.EventPlayerJoined, player.Snapshot())

		log.Printf("[Join] room=%s player=%s (%s) count=%d", room.Id, player.Id, player.Username, len(room.Players))

		if len(room.Players) >= e.cfg.MinPlayersToStart {
			e.startGameLocked(room)
		}
		roomID := room.Id
		room.Mu.Unlock()
		return roomID
	}
}

// pickRoom scans existing rooms in creation order and returns the first
// plausible candidate, creating and registering a new room when none
// qualifies. The candidate is re-validated under its own lock by Join.
func (e *Engine) pickRoom() *internal.Room {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range e.order {
		room := e.rooms[id]
		room.Mu.RLock()
		ok := room.Phase == internal.PhaseWaiting && len(room.Players) < e.cfg.MaxPlayersPerRoom
		room.Mu.RUnlock()
		if ok {
			return room
		}
	}

	room := &internal.Room{
		Id:          newRoomID(),
		Phase:       internal.PhaseWaiting,
		TotalRounds: e.cfg.TotalRounds,
		DrawerIndex: -1,
	}
	e.rooms[room.Id] = room
	e.order = append(e.order, room.Id)
	log.Printf("[pickRoom] created room %s", room.Id)
	return room
}

// Leave removes a player from its room and recovers the game state: a room
// below the start threshold mid-game resets to the lobby, a departing
// drawer mid-drawing forfeits the round, and an empty room is evicted.
func (e *Engine) Leave(player *internal.Player) {
	room := player.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	idx := room.IndexOf(player.Id)
	if idx == -1 {
		room.Mu.Unlock()
		return
	}

	wasDrawer := idx == room.DrawerIndex
	room.Players = slices.Delete(room.Players, idx, idx+1)
	if idx < room.DrawerIndex {
		room.DrawerIndex--
	}
	player.Room = nil
	remaining := len(room.Players)

	log.Printf("[Leave] room=%s player=%s (%s) remaining=%d", room.Id, player.Id, player.Username, remaining)

	if remaining == 0 {
		e.stopTimerLocked(room)
		room.Closed = true
		room.Mu.Unlock()
		e.evict(room.Id)
		return
	}

	e.toRoomLocked(room, internal.EventPlayerLeft, internal.PlayerLeftData{
		PlayerID: player.Id,
		Username: player.Username,
	})

	switch {
	case remaining < e.cfg.MinPlayersToStart && room.Phase != internal.PhaseWaiting:
		e.resetToLobbyLocked(room, "Not enough players left.")
	case wasDrawer && room.Phase == internal.PhaseDrawing:
		// Forfeit the abandoned round: no scoring, no word reveal.
		e.nextTurnLocked(room)
	}
	room.Mu.Unlock()
}

func (e *Engine) evict(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.rooms[roomID]; !ok {
		return
	}
	delete(e.rooms, roomID)
	e.order = slices.DeleteFunc(e.order, func(id string) bool { return id == roomID })
	log.Printf("[evict] removed empty room %s", roomID)
}
