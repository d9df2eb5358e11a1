package internal

import "encoding/json"

// Message is the JSON envelope for every event in either direction.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Event types emitted by the engine.
const (
	EventJoinedRoom     = "joined_room"
	EventPlayerJoined   = "player_joined"
	EventPlayerLeft     = "player_left"
	EventGameStarting   = "game_starting"
	EventNewTurn        = "new_turn"
	EventPickWord       = "pick_word"
	EventDrawingStarted = "drawing_started"
	EventTimerSync      = "timer_sync"
	EventCorrectGuess   = "correct_guess"
	EventChatMsg        = "chat_msg"
	EventRoundResults   = "round_results"
	EventGameOver       = "game_over"
	EventLobbyReturn    = "lobby_return"
	EventClearCanvas    = "clear_canvas"
	EventDrawOp         = "draw_op"
)

// Event types accepted from participants. Chat and draw relays reuse the
// outbound names.
const (
	EventWordSelected = "word_selected"
)

type JoinedRoomData struct {
	RoomID  string            `json:"room_id"`
	Players []PlayerSnapshot  `json:"players"`
	Phase   GamePhase         `json:"phase"`
	Canvas  []json.RawMessage `json:"canvas,omitempty"`
}

type PlayerLeftData struct {
	PlayerID string `json:"id"`
	Username string `json:"username"`
}

type GameStartingData struct {
	Rounds int `json:"rounds"`
}

type NewTurnData struct {
	DrawerID   string `json:"drawer_id"`
	DrawerName string `json:"drawer_name"`
	Round      int    `json:"round"`
}

type PickWordData struct {
	Choices []string `json:"choices"`
}

type WordSelectedData struct {
	Word string `json:"word"`
}

type DrawingStartedData struct {
	WordLength int    `json:"word_length"`
	Hint       string `json:"hint"`
}

type TimerSyncData struct {
	Seconds int `json:"seconds"`
}

type CorrectGuessData struct {
	PlayerID string `json:"id"`
	Username string `json:"username"`
}

type ChatMsgData struct {
	User string `json:"user"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type ScoreEntry struct {
	PlayerID string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type RoundResultsData struct {
	Word    string        `json:"word"`
	Winners []RoundWinner `json:"winners"`
	Scores  []ScoreEntry  `json:"scores"`
}

type GameOverData struct {
	Podium []PlayerSnapshot `json:"podium"`
}

type LobbyReturnData struct {
	Message string `json:"message"`
}
