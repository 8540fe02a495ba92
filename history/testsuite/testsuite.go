// Package testsuite runs the same behaviour checks against every history
// store backend.
package testsuite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/history"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func newGame(id string) *history.Game {
	return &history.Game{
		ID:      id,
		Ruleset: "standard",
		Map:     "standard",
		Source:  "custom",
		Timeout: 500,
		Width:   3,
		Height:  3,
		You:     "you",
		Status:  history.GameStatusRunning,
	}
}

func newFrame(turn int) *history.Frame {
	return &history.Frame{
		Turn: turn,
		Board: board.Snapshot{
			Width:  3,
			Height: 3,
			Food:   []board.Coord{{X: 1, Y: 1}},
			Snakes: []board.Snake{
				{
					ID:     "you",
					Name:   "you",
					Health: 100 - turn,
					Body:   []board.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}},
					Head:   board.Coord{X: 0, Y: 0},
					Length: 2,
				},
			},
		},
		Move: "up",
	}
}

func testStoreGames(t *testing.T, s history.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, newGame(key))
	require.Nil(t, err)
	g, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, newGame(key), g)

	// NotFound error thrown.
	_, err = s.GetGame(ctx, key+"-missing")
	require.Equal(t, history.ErrNotFound, err)

	// Create again replaces the game.
	updated := newGame(key)
	updated.Timeout = 100
	err = s.CreateGame(ctx, updated)
	require.Nil(t, err)
	g, err = s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, 100, g.Timeout)
}

func testStoreGameStatus(t *testing.T, s history.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, newGame(key))
	require.Nil(t, err)

	err = s.SetGameStatus(ctx, key, history.GameStatusComplete)
	require.Nil(t, err)

	g, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, history.GameStatusComplete, g.Status)

	err = s.SetGameStatus(ctx, key+"-missing", history.GameStatusComplete)
	require.Equal(t, history.ErrNotFound, err)
}

func testStoreFrames(t *testing.T, s history.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, newGame(key))
	require.Nil(t, err)

	// Read frames, too high offset.
	frames, err := s.ListFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read frames, 0 offset.
	frames, err = s.ListFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Push frames.
	for turn := 0; turn < 5; turn++ {
		err = s.PushFrame(ctx, key, newFrame(turn))
		require.Nil(t, err)
	}

	// Read the frames back.
	frames, err = s.ListFrames(ctx, key, 2, 0)
	require.Nil(t, err)
	require.Equal(t, []*history.Frame{newFrame(0), newFrame(1)}, frames)

	frames, err = s.ListFrames(ctx, key, 10, 3)
	require.Nil(t, err)
	require.Equal(t, []*history.Frame{newFrame(3), newFrame(4)}, frames)

	// Negative offset reads from the end.
	frames, err = s.ListFrames(ctx, key, 1, -1)
	require.Nil(t, err)
	require.Equal(t, []*history.Frame{newFrame(4)}, frames)

	// Read frames for a game that doesn't exist.
	frames, err = s.ListFrames(ctx, key+"-missing", 1, 0)
	require.Equal(t, history.ErrNotFound, err)
	require.Equal(t, 0, len(frames))

	// Read the frames, too high offset.
	frames, err = s.ListFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))
}

func testStoreFrameSequence(t *testing.T, s history.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Pushing to an unknown game fails.
	err := s.PushFrame(ctx, key, newFrame(0))
	require.Equal(t, history.ErrNotFound, err)

	err = s.CreateGame(ctx, newGame(key))
	require.Nil(t, err)

	// Turns may skip but never repeat or go backwards.
	require.Nil(t, s.PushFrame(ctx, key, newFrame(2)))
	require.Equal(t, history.ErrInvalidSequence, s.PushFrame(ctx, key, newFrame(2)))
	require.Equal(t, history.ErrInvalidSequence, s.PushFrame(ctx, key, newFrame(1)))
	require.Nil(t, s.PushFrame(ctx, key, newFrame(5)))

	frames, err := s.ListFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, 2, frames[0].Turn)
	require.Equal(t, 5, frames[1].Turn)
}

func testStoreConcurrentWriters(t *testing.T, s history.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, newGame(key))
	require.Nil(t, err)

	var ok uint32 // How many frames were accepted.
	var wg sync.WaitGroup
	wg.Add(20)

	for i := 0; i < 20; i++ {
		go func() {
			// Every writer pushes the same turn, only one may win.
			if errp := s.PushFrame(ctx, key, newFrame(1)); errp == nil {
				atomic.AddUint32(&ok, 1)
			}
			wg.Done()
		}()
	}

	wg.Wait()

	require.Equal(t, uint32(1), ok)
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s history.Store, pretest func()) {
	s = history.InstrumentStore(s)
	t.Run("Games", func(t *testing.T) { pretest(); testStoreGames(t, s) })
	t.Run("GameStatus", func(t *testing.T) { pretest(); testStoreGameStatus(t, s) })
	t.Run("Frames", func(t *testing.T) { pretest(); testStoreFrames(t, s) })
	t.Run("FrameSequence", func(t *testing.T) { pretest(); testStoreFrameSequence(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
