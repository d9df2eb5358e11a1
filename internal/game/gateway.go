package game

import (
	"encoding/json"
	"log"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// Gateway is the transport collaborator the state machine emits through:
// room-scoped multicast plus direct delivery to one participant. The engine
// only calls it while a room is serialized, so an implementation that
// enqueues in call order gives strict FIFO per room. Delivery failure to
// one participant must not block the rest; there are no retries.
type Gateway interface {
	ToRoom(players []*internal.Player, msg internal.Message[any])
	ToPlayer(p *internal.Player, msg internal.Message[any])
}

// WSGateway fans messages out to the players' buffered send queues. Writes
// to the sockets themselves happen on each player's write pump, so a dead
// or slow connection only drops its own messages.
type WSGateway struct{}

func NewWSGateway() WSGateway {
	return WSGateway{}
}

func (WSGateway) ToRoom(players []*internal.Player, msg internal.Message[any]) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSGateway] marshal %s: %v", msg.Type, err)
		return
	}
	for _, p := range players {
		if !p.Enqueue(data) {
			log.Printf("[WSGateway] dropped %s for player %s (queue full)", msg.Type, p.Id)
		}
	}
}

func (WSGateway) ToPlayer(p *internal.Player, msg internal.Message[any]) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSGateway] marshal %s: %v", msg.Type, err)
		return
	}
	if !p.Enqueue(data) {
		log.Printf("[WSGateway] dropped %s for player %s (queue full)", msg.Type, p.Id)
	}
}

// toRoomLocked broadcasts an event to every player in the room. Caller must
// hold the room lock; the gateway only enqueues, so this never blocks.
func (e *Engine) toRoomLocked(room *internal.Room, event string, data any) {
	e.gw.ToRoom(room.Players, internal.Message[any]{Type: event, Data: data})
}

// toOthersLocked broadcasts to everyone in the room except one player.
func (e *Engine) toOthersLocked(room *internal.Room, except *internal.Player, event string, data any) {
	others := make([]*internal.Player, 0, len(room.Players))
	for _, p := range room.Players {
		if p != except {
			others = append(others, p)
		}
	}
	e.gw.ToRoom(others, internal.Message[any]{Type: event, Data: data})
}

// toPlayer delivers a private event to a single participant.
func (e *Engine) toPlayer(p *internal.Player, event string, data any) {
	e.gw.ToPlayer(p, internal.Message[any]{Type: event, Data: data})
}
