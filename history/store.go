// Package history records the games and turns the snake has played so they
// can be replayed and inspected later.
package history

import (
	"context"
	"errors"
	"sync"

	"github.com/battlesnakeio/gridsnake/board"
)

var (
	// ErrNotFound is returned when a game is not found.
	ErrNotFound = errors.New("history: game not found")
	// ErrInvalidSequence is returned when a frame's turn is not after the
	// last recorded turn.
	ErrInvalidSequence = errors.New("history: frame out of sequence")
)

// GameStatus is the state of a recorded game.
type GameStatus string

const (
	// GameStatusRunning represents a game that has started and not ended.
	GameStatusRunning GameStatus = "running"
	// GameStatusComplete represents a game that is done.
	GameStatusComplete GameStatus = "complete"
)

// Game describes a game as seen by this snake.
type Game struct {
	ID      string     `json:"id"`
	Ruleset string     `json:"ruleset"`
	Map     string     `json:"map"`
	Source  string     `json:"source"`
	Timeout int        `json:"timeout"`
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	You     string     `json:"you"`
	Status  GameStatus `json:"status"`
}

// Frame is the board as received on one turn and the move sent back.
type Frame struct {
	Turn  int            `json:"turn"`
	Board board.Snapshot `json:"board"`
	Move  string         `json:"move,omitempty"`
}

// Store is the interface to the backend store.
type Store interface {
	CreateGame(ctx context.Context, g *Game) error
	SetGameStatus(ctx context.Context, id string, status GameStatus) error
	PushFrame(ctx context.Context, id string, f *Frame) error
	ListFrames(ctx context.Context, id string, limit, offset int) ([]*Frame, error)
	GetGame(ctx context.Context, id string) (*Game, error)
}

// Page applies limit/offset to a list of n items and returns the [start, end)
// range to read. A negative offset counts back from the end.
func Page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = n + offset
		if offset < 0 {
			offset = 0
		}
	}
	if n == 0 || offset >= n || limit <= 0 {
		return 0, 0
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return offset, end
}

// Clone returns a deep copy of a frame, decoupling it from the caller.
func (f *Frame) Clone() *Frame {
	return &Frame{Turn: f.Turn, Board: f.Board.Clone(), Move: f.Move}
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games:  map[string]*Game{},
		frames: map[string][]*Frame{},
	}
}

type inmem struct {
	games  map[string]*Game
	frames map[string][]*Frame
	lock   sync.Mutex
}

func (in *inmem) CreateGame(ctx context.Context, g *Game) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	clone := *g
	in.games[g.ID] = &clone
	if _, ok := in.frames[g.ID]; !ok {
		in.frames[g.ID] = nil
	}
	return nil
}

func (in *inmem) SetGameStatus(ctx context.Context, id string, status GameStatus) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	g, ok := in.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = status
	return nil
}

func (in *inmem) PushFrame(ctx context.Context, id string, f *Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	frames := in.frames[id]
	if len(frames) > 0 && f.Turn <= frames[len(frames)-1].Turn {
		return ErrInvalidSequence
	}
	in.frames[id] = append(frames, f.Clone())
	return nil
}

func (in *inmem) ListFrames(ctx context.Context, id string, limit, offset int) ([]*Frame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return nil, ErrNotFound
	}
	frames := in.frames[id]
	start, end := Page(len(frames), limit, offset)
	out := make([]*Frame, 0, end-start)
	for _, f := range frames[start:end] {
		out = append(out, f.Clone())
	}
	return out, nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*Game, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if g, ok := in.games[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, ErrNotFound
}
