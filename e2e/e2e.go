// Package e2e drives a running snake server the way a game engine would.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/gridsnake/api"
	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/move"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) post(path string, req *api.SnakeRequest, out interface{}) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.apiURL+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// game is a single snake game simulated on the engine side. The snake moves
// where the server tells it to until it leaves the board.
type game struct {
	req *api.SnakeRequest
}

func newGame(id string, width, height int, start api.Coords) *game {
	you := api.Snake{
		ID:     "you",
		Name:   "gridsnake",
		Health: 100,
		Body:   []api.Coords{start, start, start},
		Head:   &api.Coords{X: start.X, Y: start.Y},
		Length: 3,
	}
	return &game{req: &api.SnakeRequest{
		Game:  api.Game{ID: id, Ruleset: api.Ruleset{Name: "solo"}, Timeout: 500},
		Board: api.Board{Width: width, Height: height, Snakes: []api.Snake{you}},
		You:   you,
	}}
}

// step applies a move to the snake. It returns false once the snake has left
// the board.
func (g *game) step(dir string) bool {
	s := g.req.You
	head := move.Offset(board.Coord{X: s.Head.X, Y: s.Head.Y}, dir)
	if head.X < 0 || head.Y < 0 || head.X >= g.req.Board.Width || head.Y >= g.req.Board.Height {
		return false
	}

	body := append([]api.Coords{{X: head.X, Y: head.Y}}, s.Body[:len(s.Body)-1]...)
	s.Body = body
	s.Head = &api.Coords{X: head.X, Y: head.Y}
	s.Health--

	g.req.You = s
	g.req.Board.Snakes = []api.Snake{s}
	g.req.Turn++
	return true
}

// play runs the game to completion and returns the number of turns played.
func (c *client) play(g *game) (int, error) {
	if err := c.post("/start", g.req, nil); err != nil {
		return 0, err
	}
	for {
		resp := &api.MoveResponse{}
		if err := c.post("/move", g.req, resp); err != nil {
			return 0, err
		}
		if !g.step(resp.Move) {
			break
		}
	}
	g.req.Turn++
	if err := c.post("/end", g.req, nil); err != nil {
		return 0, err
	}
	return g.req.Turn, nil
}

func (c *client) gameStatus(id string) (*history.Game, *api.FramesResponse, error) {
	g := &history.Game{}
	if err := c.get(fmt.Sprintf("/games/%s", id), g); err != nil {
		return nil, nil, err
	}
	frames := &api.FramesResponse{}
	if err := c.get(fmt.Sprintf("/games/%s/frames?limit=1000", id), frames); err != nil {
		return nil, nil, err
	}
	return g, frames, nil
}
