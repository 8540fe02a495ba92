package api

import (
	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/history"
)

// InfoResponse is returned from the index endpoint and tells the engine how
// to display the snake.
type InfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author,omitempty"`
	Color      string `json:"color,omitempty"`
	Head       string `json:"head,omitempty"`
	Tail       string `json:"tail,omitempty"`
	Version    string `json:"version,omitempty"`
}

// MoveResponse the message format of the move response to the engine
type MoveResponse struct {
	Move  string `json:"move"`
	Shout string `json:"shout,omitempty"`
}

// SnakeRequest the message sent by the engine for start, move and end.
type SnakeRequest struct {
	Game  Game  `json:"game"`
	Turn  int   `json:"turn"`
	Board Board `json:"board"`
	You   Snake `json:"you"`
}

// Game represents the current game
type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Timeout int     `json:"timeout"`
	Source  string  `json:"source"`
}

// Ruleset names the rules the game is played with.
type Ruleset struct {
	Name     string                 `json:"name"`
	Version  string                 `json:"version"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// Board provides information about the game board
type Board struct {
	Height  int      `json:"height"`
	Width   int      `json:"width"`
	Food    []Coords `json:"food"`
	Hazards []Coords `json:"hazards"`
	Snakes  []Snake  `json:"snakes"`
}

// Snake represents information about a snake in the game
type Snake struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Health         int            `json:"health"`
	Body           []Coords       `json:"body"`
	Latency        string         `json:"latency"`
	Head           *Coords        `json:"head,omitempty"`
	Length         int            `json:"length"`
	Shout          string         `json:"shout"`
	Squad          string         `json:"squad"`
	Customizations Customizations `json:"customizations"`
}

// Customizations control how a snake is displayed.
type Customizations struct {
	Color string `json:"color"`
	Head  string `json:"head"`
	Tail  string `json:"tail"`
}

// Coords represents a point on the board
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snapshot converts the request board into the form the board package builds
// from.
func (r *SnakeRequest) Snapshot() board.Snapshot {
	return board.Snapshot{
		Width:   r.Board.Width,
		Height:  r.Board.Height,
		Food:    convertPoints(r.Board.Food),
		Hazards: convertPoints(r.Board.Hazards),
		Snakes:  convertSnakes(r.Board.Snakes),
	}
}

func (r *SnakeRequest) game(status history.GameStatus) *history.Game {
	return &history.Game{
		ID:      r.Game.ID,
		Ruleset: r.Game.Ruleset.Name,
		Map:     r.Game.Map,
		Source:  r.Game.Source,
		Timeout: r.Game.Timeout,
		Width:   r.Board.Width,
		Height:  r.Board.Height,
		You:     r.You.ID,
		Status:  status,
	}
}

func convertPoints(points []Coords) []board.Coord {
	coords := []board.Coord{}

	for _, p := range points {
		coords = append(coords, board.Coord{X: p.X, Y: p.Y})
	}

	return coords
}

func convertSnakes(wireSnakes []Snake) []board.Snake {
	snakes := []board.Snake{}

	for _, s := range wireSnakes {
		// A snake with neither a head nor a body has nothing to place.
		if s.Head == nil && len(s.Body) == 0 {
			continue
		}
		snakes = append(snakes, convertSnake(s))
	}

	return snakes
}

func convertSnake(snake Snake) board.Snake {
	body := convertPoints(snake.Body)

	// Older engines leave out head, it is always the first body segment.
	var head board.Coord
	if snake.Head != nil {
		head = board.Coord{X: snake.Head.X, Y: snake.Head.Y}
	} else {
		head = body[0]
	}

	length := snake.Length
	if length == 0 {
		length = len(body)
	}

	return board.Snake{
		ID:      snake.ID,
		Name:    snake.Name,
		Health:  snake.Health,
		Body:    body,
		Head:    head,
		Length:  length,
		Latency: snake.Latency,
		Shout:   snake.Shout,
		Squad:   snake.Squad,
	}
}

// FramesResponse lists recorded frames of a game.
type FramesResponse struct {
	Frames []*history.Frame `json:"frames"`
}
