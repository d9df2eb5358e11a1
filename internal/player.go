package internal

import (
	"time"

	"github.com/gorilla/websocket"
)

// outboundBuffer is the per-player send queue depth. A player that cannot
// drain this many messages is considered dead slow and starts losing them.
const outboundBuffer = 256

// sendCloser is the slice of *websocket.Conn the write pump needs; tests
// substitute an in-memory implementation.
type sendCloser interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

func NewPlayer(id, username string, profile Profile, conn sendCloser) *Player {
	return &Player{
		Id:       id,
		Username: username,
		Profile:  profile,
		JoinedAt: time.Now(),
		conn:     conn,
		send:     make(chan []byte, outboundBuffer),
	}
}

// Enqueue queues an already-marshaled message for delivery. It never
// blocks: when the buffer is full the message is dropped and false is
// returned, so one slow participant cannot stall a room broadcast.
func (p *Player) Enqueue(data []byte) bool {
	select {
	case p.send <- data:
		return true
	default:
		return false
	}
}

// WritePump drains the send queue onto the connection in FIFO order. It
// exits on the first write error or when CloseSend is called.
func (p *Player) WritePump() {
	defer func() {
		if p.conn != nil {
			p.conn.Close()
		}
	}()
	for data := range p.send {
		if p.conn == nil {
			continue
		}
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// CloseSend shuts the send queue down. Safe to call more than once.
func (p *Player) CloseSend() {
	p.once.Do(func() {
		close(p.send)
	})
}
