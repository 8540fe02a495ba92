package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battlesnakeio/gridsnake/api"
	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/move"
	"github.com/stretchr/testify/require"
)

const inspectRequest = `{
	"game": {"id": "g1"},
	"turn": 3,
	"board": {
		"width": 3,
		"height": 3,
		"food": [{"x": 2, "y": 2}],
		"hazards": [],
		"snakes": [{"id": "s1", "name": "snek", "health": 90, "body": [{"x": 1, "y": 1}, {"x": 0, "y": 1}], "head": {"x": 1, "y": 1}}]
	},
	"you": {"id": "s1"}
}`

func TestInspect(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, inspect(strings.NewReader(inspectRequest), out, false))

	require.Equal(t, "game g1 turn 3 (3x3)\n"+
		"..f\n"+
		"sH.\n"+
		"...\n"+
		"food: 1\n"+
		"hazard: 0\n"+
		"snake-body: 1\n"+
		"snake-head: 1\n"+
		"move: right\n", out.String())
}

func TestInspect_Dump(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, inspect(strings.NewReader(inspectRequest), out, true))
	require.Contains(t, out.String(), "board.Snapshot")
}

func TestInspect_Errors(t *testing.T) {
	require.Error(t, inspect(strings.NewReader("{"), &bytes.Buffer{}, false))

	err := inspect(strings.NewReader(`{"board": {"width": 1, "height": 1, "food": [{"x": 4, "y": 0}]}}`), &bytes.Buffer{}, false)
	require.True(t, board.IsOutOfBounds(err))
}

func TestFrameHolder(t *testing.T) {
	fh := newFrameHolder()
	require.Equal(t, 0, fh.count())
	require.Nil(t, fh.get(0))

	fh.append(&history.Frame{Turn: 0})
	fh.append(&history.Frame{Turn: 1})
	require.Equal(t, 2, fh.count())
	require.Equal(t, 1, fh.get(1).Turn)
	require.Nil(t, fh.get(-1))

	first, err := getInitialFrame(fh)
	require.NoError(t, err)
	require.Equal(t, 0, first.Turn)

	i, f, done := moveFrameForwards(0, fh)
	require.Equal(t, 1, i)
	require.Equal(t, 1, f.Turn)
	require.False(t, done)

	_, _, done = moveFrameForwards(i, fh)
	require.True(t, done)

	i, f = moveFrameBackwards(0, fh)
	require.Equal(t, 0, i)
	require.Equal(t, 0, f.Turn)
}

func TestSocketURL(t *testing.T) {
	require.Equal(t, "ws://localhost:8080/socket/g", socketURL("http://localhost:8080", "g"))
	require.Equal(t, "wss://snake.example.com/socket/g", socketURL("https://snake.example.com", "g"))
	require.Equal(t, "ws://localhost:8080/socket/g", socketURL("localhost:8080", "g"))
}

func TestScreenPos(t *testing.T) {
	x, y := screenPos(10, 2, 3, board.Coord{X: 0, Y: 2})
	require.Equal(t, 10, x)
	require.Equal(t, 3, y)

	x, y = screenPos(10, 2, 3, board.Coord{X: 2, Y: 0})
	require.Equal(t, 12, x)
	require.Equal(t, 5, y)
}

func newAPIServer(t *testing.T) (*httptest.Server, history.Store) {
	store := history.InMemStore()
	ts := httptest.NewServer(api.New(":0", store, move.Heading{}).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func TestGetStatus(t *testing.T) {
	ts, store := newAPIServer(t)
	require.NoError(t, store.CreateGame(context.Background(), &history.Game{ID: "g1", Status: history.GameStatusComplete}))

	g, err := getStatus(ts.URL, "g1")
	require.NoError(t, err)
	require.Equal(t, history.GameStatusComplete, g.Status)

	_, err = getStatus(ts.URL, "missing")
	require.Error(t, err)
}

func TestLoadGame(t *testing.T) {
	ts, store := newAPIServer(t)
	ctx := context.Background()
	require.NoError(t, store.CreateGame(ctx, &history.Game{ID: "g1", Status: history.GameStatusRunning}))
	for i := 0; i < 3; i++ {
		require.NoError(t, store.PushFrame(ctx, "g1", &history.Frame{Turn: i, Board: board.Snapshot{Width: 2, Height: 2}}))
	}

	g, frames, err := loadGame(ts.URL, "g1")
	require.NoError(t, err)
	require.Equal(t, "g1", g.ID)

	first, err := getInitialFrame(frames)
	require.NoError(t, err)
	require.Equal(t, 0, first.Turn)
	deadline := time.Now().Add(time.Second)
	for frames.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 3, frames.count())
}
