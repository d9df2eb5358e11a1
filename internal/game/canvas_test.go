package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// drawingRoom fast-forwards a two player room into the drawing phase and
// returns it with the drawer and the guesser.
func drawingRoom(t *testing.T, e *Engine, sched *fakeScheduler, gw *recordGateway) (*internal.Room, *internal.Player, *internal.Player) {
	t.Helper()
	a := newTestPlayer("A")
	b := newTestPlayer("B")
	roomID := e.Join(a)
	e.Join(b)
	room, ok := e.Room(roomID)
	require.True(t, ok)

	sched.advance(3)
	e.HandleWordSelection(a, pickChoices(t, gw, a.Id)[0])
	require.Equal(t, internal.PhaseDrawing, roomPhase(room))
	return room, a, b
}

func TestDrawOpRelayedToOthers(t *testing.T) {
	e, sched, gw := newTestEngine(internal.DefaultConfig())
	_, a, _ := drawingRoom(t, e, sched, gw)

	stroke := json.RawMessage(`{"x0":1,"y0":2,"x1":3,"y1":4,"color":"#000"}`)
	e.HandleDrawOp(a, stroke)

	ev, ok := gw.lastOfType(internal.EventDrawOp)
	require.True(t, ok)
	assert.Equal(t, stroke, ev.msg.Data)
}

func TestDrawOpFromGuesserDropped(t *testing.T) {
	e, sched, gw := newTestEngine(internal.DefaultConfig())
	_, _, b := drawingRoom(t, e, sched, gw)

	e.HandleDrawOp(b, json.RawMessage(`{}`))
	assert.Empty(t, gw.ofType(internal.EventDrawOp))
}

func TestDrawOpOutsideDrawingPhaseDropped(t *testing.T) {
	e, _, gw := newTestEngine(internal.DefaultConfig())
	a := newTestPlayer("A")
	e.Join(a)

	e.HandleDrawOp(a, json.RawMessage(`{}`))
	assert.Empty(t, gw.ofType(internal.EventDrawOp))
}

func TestCanvasReplayRetainsOps(t *testing.T) {
	cfg := internal.DefaultConfig()
	cfg.CanvasReplay = true

	e, sched, gw := newTestEngine(cfg)
	room, a, _ := drawingRoom(t, e, sched, gw)

	e.HandleDrawOp(a, json.RawMessage(`{"x0":1}`))
	e.HandleDrawOp(a, json.RawMessage(`{"x0":2}`))

	room.Mu.RLock()
	assert.Len(t, room.CanvasOps, 2)
	room.Mu.RUnlock()

	// The drawer wipes the canvas; retained ops go with it.
	e.HandleClearCanvas(a)
	room.Mu.RLock()
	assert.Empty(t, room.CanvasOps)
	room.Mu.RUnlock()
}

func TestCanvasClearedBetweenTurns(t *testing.T) {
	cfg := internal.DefaultConfig()
	cfg.CanvasReplay = true

	e, sched, gw := newTestEngine(cfg)
	room, a, _ := drawingRoom(t, e, sched, gw)

	e.HandleDrawOp(a, json.RawMessage(`{"x0":1}`))

	clearsBefore := len(gw.ofType(internal.EventClearCanvas))
	sched.advance(60) // round out the clock
	sched.advance(8)  // results display, then the next turn
	require.Equal(t, internal.PhasePicking, roomPhase(room))

	room.Mu.RLock()
	assert.Empty(t, room.CanvasOps)
	room.Mu.RUnlock()
	assert.Greater(t, len(gw.ofType(internal.EventClearCanvas)), clearsBefore)
}

func TestClearCanvasFromGuesserDropped(t *testing.T) {
	e, sched, gw := newTestEngine(internal.DefaultConfig())
	_, a, b := drawingRoom(t, e, sched, gw)

	before := len(gw.ofType(internal.EventClearCanvas))
	e.HandleClearCanvas(b)
	assert.Len(t, gw.ofType(internal.EventClearCanvas), before)
	e.HandleClearCanvas(a)
	assert.Len(t, gw.ofType(internal.EventClearCanvas), before+1)
}
