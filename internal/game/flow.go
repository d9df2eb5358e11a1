package game

import (
	"log"
	"strings"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// =============================================================================
// GAME FLOW - PHASE TRANSITIONS
// =============================================================================
//
// All *Locked functions run with the room lock held; timer expiries re-enter
// them through startTimerLocked's generation-checked callback, so every
// transition for a room is strictly ordered.

// startGameLocked moves a waiting room into the starting grace period.
func (e *Engine) startGameLocked(room *internal.Room) {
	room.Phase = internal.PhaseStarting
	room.CurrentRound = 1

	log.Printf("[startGame] room=%s players=%d rounds=%d", room.Id, len(room.Players), room.TotalRounds)
	e.toRoomLocked(room, internal.EventGameStarting, internal.GameStartingData{Rounds: room.TotalRounds})

	e.startTimerLocked(room, e.cfg.StartDelaySeconds, false, e.nextTurnLocked)
}

// nextTurnLocked rotates the drawer, clears per-round state, and opens word
// selection.
func (e *Engine) nextTurnLocked(room *internal.Room) {
	if len(room.Players) == 0 {
		return
	}

	room.Winners = nil
	for _, p := range room.Players {
		p.ResetRoundState()
	}
	room.Word = ""
	room.DrawerIndex = (room.DrawerIndex + 1) % len(room.Players)
	room.Phase = internal.PhasePicking

	room.CanvasOps = nil
	e.toRoomLocked(room, internal.EventClearCanvas, struct{}{})

	drawer := room.Players[room.DrawerIndex]
	room.WordChoices = e.words.Pick(e.cfg.WordChoices)

	log.Printf("[nextTurn] room=%s round=%d drawer=%s (%s)", room.Id, room.CurrentRound, drawer.Id, drawer.Username)

	e.toRoomLocked(room, internal.EventNewTurn, internal.NewTurnData{
		DrawerID:   drawer.Id,
		DrawerName: drawer.Username,
		Round:      room.CurrentRound,
	})
	e.toPlayer(drawer, internal.EventPickWord, internal.PickWordData{Choices: room.WordChoices})

	e.startTimerLocked(room, e.cfg.PickSeconds, true, func(room *internal.Room) {
		// Drawer never chose; fall back to the first offered word so the
		// outcome is reproducible.
		if room.Phase == internal.PhasePicking && len(room.WordChoices) > 0 {
			log.Printf("[nextTurn] room=%s selection timed out, auto-picking %q", room.Id, room.WordChoices[0])
			e.beginDrawingLocked(room, room.WordChoices[0])
		}
	})
}

// HandleWordSelection processes the drawer's choice. Selections from anyone
// else, outside the picking phase, or naming a word that was never offered
// are silently dropped.
func (e *Engine) HandleWordSelection(player *internal.Player, word string) {
	room := player.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Phase != internal.PhasePicking {
		return
	}
	drawer := room.Drawer()
	if drawer == nil || drawer.Id != player.Id {
		log.Printf("[HandleWordSelection] room=%s player=%s is not the drawer, ignoring", room.Id, player.Id)
		return
	}
	choice := -1
	for i, w := range room.WordChoices {
		if strings.EqualFold(w, strings.TrimSpace(word)) {
			choice = i
			break
		}
	}
	if choice == -1 {
		log.Printf("[HandleWordSelection] room=%s player=%s chose unoffered word %q, ignoring", room.Id, player.Id, word)
		return
	}

	e.beginDrawingLocked(room, room.WordChoices[choice])
}

// beginDrawingLocked records the chosen word and starts the main countdown.
func (e *Engine) beginDrawingLocked(room *internal.Room, word string) {
	room.Word = strings.ToUpper(word)
	room.WordChoices = nil
	room.Phase = internal.PhaseDrawing

	log.Printf("[beginDrawing] room=%s word_len=%d", room.Id, len(room.Word))

	e.toRoomLocked(room, internal.EventDrawingStarted, internal.DrawingStartedData{
		WordLength: len(room.Word),
		Hint:       "Starting soon...",
	})

	e.startTimerLocked(room, e.cfg.DrawSeconds, true, e.endRoundLocked)
}

// endRoundLocked finalizes scoring for the round and shows the results.
// Reached from the drawing countdown expiring or from the last non-drawer
// guessing correctly.
func (e *Engine) endRoundLocked(room *internal.Room) {
	e.stopTimerLocked(room)
	room.Phase = internal.PhaseResults

	if len(room.Winners) > 0 {
		if drawer := room.Drawer(); drawer != nil {
			drawer.AwardPoints(len(room.Winners) * e.cfg.DrawerBonus)
		}
	}

	scores := make([]internal.ScoreEntry, 0, len(room.Players))
	for _, p := range room.Players {
		scores = append(scores, internal.ScoreEntry{PlayerID: p.Id, Username: p.Username, Score: p.Score})
	}

	log.Printf("[endRound] room=%s round=%d word=%q winners=%d", room.Id, room.CurrentRound, room.Word, len(room.Winners))

	e.toRoomLocked(room, internal.EventRoundResults, internal.RoundResultsData{
		Word:    room.Word,
		Winners: append([]internal.RoundWinner(nil), room.Winners...),
		Scores:  scores,
	})

	e.startTimerLocked(room, e.cfg.ResultSeconds, false, func(room *internal.Room) {
		if room.CurrentRound >= room.TotalRounds {
			e.endGameLocked(room)
			return
		}
		room.CurrentRound++
		e.nextTurnLocked(room)
	})
}

// endGameLocked broadcasts the podium, then resets to the lobby after the
// display delay.
func (e *Engine) endGameLocked(room *internal.Room) {
	room.Phase = internal.PhaseGameOver

	podium := buildPodium(room.Players, 3)
	log.Printf("[endGame] room=%s podium=%d", room.Id, len(podium))
	e.toRoomLocked(room, internal.EventGameOver, internal.GameOverData{Podium: podium})

	e.startTimerLocked(room, e.cfg.PodiumSeconds, false, func(room *internal.Room) {
		e.resetToLobbyLocked(room, "Game over. Back to the lobby.")
	})
}

// resetToLobbyLocked is the forced-reset transition: any phase back to
// WAITING, scores zeroed, round and drawer state cleared, timer cancelled.
// It preempts whatever was in flight.
func (e *Engine) resetToLobbyLocked(room *internal.Room, reason string) {
	e.stopTimerLocked(room)

	room.Phase = internal.PhaseWaiting
	room.CurrentRound = 0
	room.DrawerIndex = -1
	room.Word = ""
	room.WordChoices = nil
	room.Winners = nil
	room.CanvasOps = nil
	for _, p := range room.Players {
		p.Score = 0
		p.ResetRoundState()
	}

	log.Printf("[resetToLobby] room=%s reason=%q", room.Id, reason)
	e.toRoomLocked(room, internal.EventLobbyReturn, internal.LobbyReturnData{Message: reason})
}
