package game

import (
	"log"
	"strings"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// =============================================================================
// GUESS HANDLING
// =============================================================================

// HandleGuess processes chat text during the drawing phase. An exact,
// case-normalized match scores the guesser and may end the round early;
// anything else is relayed verbatim as chat. Text arriving outside the
// drawing phase, from the drawer, or from a player who already guessed this
// round is silently dropped.
func (e *Engine) HandleGuess(player *internal.Player, text string) {
	room := player.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Phase != internal.PhaseDrawing {
		return
	}
	drawer := room.Drawer()
	if drawer != nil && drawer.Id == player.Id {
		return
	}
	if player.HasGuessed {
		return
	}

	guess := strings.ToUpper(strings.TrimSpace(text))
	if guess != room.Word {
		e.toRoomLocked(room, internal.EventChatMsg, internal.ChatMsgData{
			User: player.Username,
			Text: text,
			Kind: "user",
		})
		return
	}

	player.HasGuessed = true
	points := guessPoints(e.cfg, room.TimerSeconds)
	player.AwardPoints(points)
	room.Winners = append(room.Winners, internal.RoundWinner{
		PlayerID: player.Id,
		Username: player.Username,
		Points:   points,
	})

	log.Printf("[HandleGuess] room=%s player=%s guessed correctly (+%d, remaining=%ds)",
		room.Id, player.Id, points, room.TimerSeconds)

	// The word stays hidden from the rest of the room until the reveal.
	e.toRoomLocked(room, internal.EventCorrectGuess, internal.CorrectGuessData{
		PlayerID: player.Id,
		Username: player.Username,
	})

	// Evaluated eagerly so the room never waits out a countdown nobody
	// needs.
	if room.EveryoneGuessed() {
		e.endRoundLocked(room)
	}
}
