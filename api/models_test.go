package api

import (
	"encoding/json"
	"testing"

	"github.com/battlesnakeio/gridsnake/board"
	"github.com/stretchr/testify/require"
)

const moveRequestJSON = `{
	"game": {"id": "game_123", "ruleset": {"name": "standard", "version": "v1.2.3"}, "map": "standard", "timeout": 500, "source": "league"},
	"turn": 14,
	"board": {
		"height": 3,
		"width": 3,
		"food": [{"x": 1, "y": 1}],
		"hazards": [{"x": 2, "y": 0}],
		"snakes": [
			{
				"id": "s1",
				"name": "snek",
				"health": 54,
				"body": [{"x": 0, "y": 0}, {"x": 0, "y": 1}],
				"latency": "111",
				"head": {"x": 0, "y": 0},
				"length": 2,
				"shout": "why are we shouting??",
				"squad": "",
				"customizations": {"color": "#FF0000", "head": "pixel", "tail": "pixel"}
			}
		]
	},
	"you": {"id": "s1", "name": "snek", "health": 54, "body": [{"x": 0, "y": 0}, {"x": 0, "y": 1}], "head": {"x": 0, "y": 0}, "length": 2}
}`

func TestSnakeRequest_Snapshot(t *testing.T) {
	req := &SnakeRequest{}
	require.NoError(t, json.Unmarshal([]byte(moveRequestJSON), req))

	s := req.Snapshot()
	require.Equal(t, 3, s.Width)
	require.Equal(t, 3, s.Height)
	require.Equal(t, []board.Coord{{X: 1, Y: 1}}, s.Food)
	require.Equal(t, []board.Coord{{X: 2, Y: 0}}, s.Hazards)
	require.Equal(t, []board.Snake{
		{
			ID:      "s1",
			Name:    "snek",
			Health:  54,
			Body:    []board.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}},
			Head:    board.Coord{X: 0, Y: 0},
			Length:  2,
			Latency: "111",
			Shout:   "why are we shouting??",
		},
	}, s.Snakes)
}

func TestSnakeRequest_SnapshotWithoutHead(t *testing.T) {
	req := &SnakeRequest{
		Board: Board{
			Width:  5,
			Height: 5,
			Snakes: []Snake{
				{ID: "old", Body: []Coords{{X: 3, Y: 3}, {X: 3, Y: 2}}},
				{ID: "ghost"},
			},
		},
	}

	s := req.Snapshot()
	require.Len(t, s.Snakes, 1)
	require.Equal(t, board.Coord{X: 3, Y: 3}, s.Snakes[0].Head)
	require.Equal(t, 2, s.Snakes[0].Length)
	require.Equal(t, []board.Coord{}, s.Food)
}
