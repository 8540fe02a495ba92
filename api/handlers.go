package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/config"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/version"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	apiVersion   = "1"
	maxBodyBytes = 1 << 20

	defaultFrameLimit = 100
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeRequest(r *http.Request) (*SnakeRequest, error) {
	req := &SnakeRequest{}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(req); err != nil {
		return nil, errors.Wrap(err, "invalid request body")
	}
	return req, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func requestFields(req *SnakeRequest) log.Fields {
	return log.Fields{
		"game": req.Game.ID,
		"turn": req.Turn,
		"you":  req.You.ID,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, InfoResponse{
		APIVersion: apiVersion,
		Author:     config.Author,
		Color:      config.Color,
		Head:       config.Head,
		Tail:       config.Tail,
		Version:    version.Version,
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.CreateGame(r.Context(), req.game(history.GameStatusRunning)); err != nil {
		log.WithError(err).WithFields(requestFields(req)).Warn("unable to record game")
	}
	log.WithFields(requestFields(req)).Info("game started")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, errors.New("too many requests"))
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Board.Width > config.MaxBoardSize || req.Board.Height > config.MaxBoardSize {
		boardErrorsMetric.WithLabelValues("too_large").Inc()
		writeError(w, http.StatusBadRequest, errors.Errorf(
			"board %dx%d is larger than %d", req.Board.Width, req.Board.Height, config.MaxBoardSize))
		return
	}

	snapshot := req.Snapshot()
	start := time.Now()
	b, err := board.New(&snapshot)
	boardBuildHistogramMetric.Observe(time.Since(start).Seconds())
	if err != nil {
		boardErrorsMetric.WithLabelValues(boardErrorReason(err)).Inc()
		log.WithError(err).WithFields(requestFields(req)).Warn("unable to build board")
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if log.GetLevel() >= log.DebugLevel {
		log.WithFields(requestFields(req)).Debug("board\n" + b.String())
	}

	decision := s.decider.Decide(b, req.You.ID)

	frame := &history.Frame{Turn: req.Turn, Board: snapshot, Move: decision.Move}
	if err := s.recordFrame(r.Context(), req, frame); err != nil {
		log.WithError(err).WithFields(requestFields(req)).Warn("unable to record frame")
	}

	writeJSON(w, http.StatusOK, MoveResponse{Move: decision.Move, Shout: decision.Shout})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	frame := &history.Frame{Turn: req.Turn, Board: req.Snapshot()}
	// The last move usually already recorded this turn.
	if err := s.recordFrame(ctx, req, frame); err != nil && err != history.ErrInvalidSequence {
		log.WithError(err).WithFields(requestFields(req)).Warn("unable to record frame")
	}
	if err := s.store.SetGameStatus(ctx, req.Game.ID, history.GameStatusComplete); err != nil {
		log.WithError(err).WithFields(requestFields(req)).Warn("unable to complete game")
	}
	log.WithFields(requestFields(req)).Info("game ended")
	w.WriteHeader(http.StatusOK)
}

// recordFrame pushes a frame, creating the game first when /start was never
// seen for it.
func (s *Server) recordFrame(ctx context.Context, req *SnakeRequest, f *history.Frame) error {
	err := s.store.PushFrame(ctx, req.Game.ID, f)
	if err != history.ErrNotFound {
		return err
	}
	if err := s.store.CreateGame(ctx, req.game(history.GameStatusRunning)); err != nil {
		return err
	}
	return s.store.PushFrame(ctx, req.Game.ID, f)
}

func boardErrorReason(err error) string {
	switch {
	case board.IsCapacity(err):
		return "capacity"
	case board.IsOutOfBounds(err):
		return "out_of_bounds"
	}
	return "other"
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.store.GetGame(r.Context(), ps.ByName("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, err := queryInt(r, "limit", defaultFrameLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	frames, err := s.store.ListFrames(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if frames == nil {
		frames = []*history.Frame{}
	}
	writeJSON(w, http.StatusOK, FramesResponse{Frames: frames})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if err == history.ErrNotFound {
		writeError(w, http.StatusNotFound, err)
		return
	}
	log.WithError(err).Error("history store failure")
	writeError(w, http.StatusInternalServerError, err)
}
