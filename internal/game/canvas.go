package game

import (
	"encoding/json"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// =============================================================================
// CANVAS RELAY
// =============================================================================
//
// Stroke payloads are opaque to the engine; it only enforces that drawing
// comes from the current drawer during the drawing phase and relays the op
// to everyone else.

func (e *Engine) HandleDrawOp(player *internal.Player, raw json.RawMessage) {
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
	if drawer == nil || drawer.Id != player.Id {
		return
	}

	if e.cfg.CanvasReplay {
		room.CanvasOps = append(room.CanvasOps, raw)
	}
	e.toOthersLocked(room, player, internal.EventDrawOp, raw)
}

// HandleClearCanvas lets the drawer wipe the canvas mid-turn.
func (e *Engine) HandleClearCanvas(player *internal.Player) {
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
	if drawer == nil || drawer.Id != player.Id {
		return
	}

	room.CanvasOps = nil
	e.toOthersLocked(room, player, internal.EventClearCanvas, struct{}{})
}
