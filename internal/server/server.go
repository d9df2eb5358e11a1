package server

import (
	"fmt"
	"net/http"

	"github.com/haydensixseven-jpg/sketchdash-server/internal/game"
)

type Server struct {
	engine *game.Engine
}

// New builds the HTTP server hosting the websocket endpoint and the small
// JSON surface around it. No read timeouts: connections are hijacked for
// long-lived websockets.
func New(bind string, port int, engine *game.Engine) *http.Server {
	s := &Server{engine: engine}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: s.RegisterRoutes(),
	}
}
