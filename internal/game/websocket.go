package game

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection, builds the player from the query
// parameters, and hands it to the matchmaker.
func (e *Engine) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] upgrade failed: %v", err)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		username = fmt.Sprintf("Artist_%d", 1000+rand.Intn(9000))
	}
	profile := internal.Profile{
		Avatar:    r.URL.Query().Get("avatar"),
		Accessory: r.URL.Query().Get("accessory"),
	}
	if profile.Avatar == "" {
		profile.Avatar = "🐱"
	}
	if profile.Accessory == "" {
		profile.Accessory = "👑"
	}

	player := internal.NewPlayer(uuid.NewString(), username, profile, conn)
	go player.WritePump()

	roomID := e.Join(player)
	log.Printf("[HandleWebSocket] player %s (%s) connected, room=%s", player.Id, player.Username, roomID)

	go e.readLoop(player, conn)
}

// readLoop routes incoming messages for one player until the connection
// drops, then removes the player from its room.
func (e *Engine) readLoop(player *internal.Player, conn *websocket.Conn) {
	defer func() {
		player.CloseSend()
		conn.Close()
		e.Leave(player)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop] player %s read error: %v", player.Id, err)
			return
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[readLoop] player %s sent malformed message: %v", player.Id, err)
			continue
		}

		switch msg.Type {
		case internal.EventChatMsg:
			var text string
			if err := json.Unmarshal(msg.Data, &text); err != nil {
				continue
			}
			e.HandleGuess(player, text)
		case internal.EventWordSelected:
			var sel internal.WordSelectedData
			if err := json.Unmarshal(msg.Data, &sel); err != nil {
				continue
			}
			e.HandleWordSelection(player, sel.Word)
		case internal.EventDrawOp:
			e.HandleDrawOp(player, msg.Data)
		case internal.EventClearCanvas:
			e.HandleClearCanvas(player)
		default:
			log.Printf("[readLoop] player %s sent unknown message type %q", player.Id, msg.Type)
		}
	}
}
