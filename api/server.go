// Package api serves the snake over HTTP. The engine calls /start, /move and
// /end with a snapshot of the game; the games recorded along the way can be
// read back over /games and streamed over /socket.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/battlesnakeio/gridsnake/config"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/move"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Server is the snake's http server.
type Server struct {
	hs       *http.Server
	store    history.Store
	decider  move.Decider
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
}

// New creates a server listening on addr. Games are recorded to store and
// moves are chosen by decider.
func New(addr string, store history.Store, decider move.Decider) *Server {
	s := &Server{
		store:   store,
		decider: decider,
		limiter: rate.NewLimiter(config.MoveRate, config.MoveBurst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	router := httprouter.New()
	router.GET("/", instrument("index", s.handleIndex))
	router.POST("/start", instrument("start", s.handleStart))
	router.POST("/move", instrument("move", s.handleMove))
	router.POST("/end", instrument("end", s.handleEnd))
	router.POST("/ping", instrument("ping", s.handlePing))
	router.GET("/games/:id", instrument("game", s.handleGame))
	router.GET("/games/:id/frames", instrument("frames", s.handleFrames))
	router.GET("/socket/:id", s.handleSocket)

	s.hs = &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.hs.Handler }

// WaitForExit serves until the server fails or is shut down.
func (s *Server) WaitForExit() error {
	log.WithField("listen", s.hs.Addr).Info("snake listening")
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}
