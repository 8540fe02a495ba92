// Package move picks the direction a snake should travel on a turn.
package move

import "github.com/battlesnakeio/gridsnake/board"

// Directions understood by the game engine.
const (
	Up    = "up"
	Down  = "down"
	Left  = "left"
	Right = "right"
)

// Decision is the answer for a turn.
type Decision struct {
	Move  string
	Shout string
}

// Decider chooses a move for the snake you on the given board.
type Decider interface {
	Decide(b *board.BoardState, you string) Decision
}

// DeciderFunc adapts a plain function to the Decider interface.
type DeciderFunc func(b *board.BoardState, you string) Decision

// Decide calls f.
func (f DeciderFunc) Decide(b *board.BoardState, you string) Decision { return f(b, you) }

// Heading keeps the snake moving in the direction it was already heading.
type Heading struct{}

// Decide implements Decider.
func (Heading) Decide(b *board.BoardState, you string) Decision {
	s, ok := b.Snake(you)
	if !ok {
		return Decision{Move: Up}
	}
	return Decision{Move: heading(s)}
}

func heading(s *board.Snake) string {
	head := s.Head
	neck, ok := s.Neck()
	if !ok {
		return Up
	}

	switch {
	case head.Equals(neck):
		// start of the game, all segments are stacked on one point
		return Up
	case head.X == neck.X && head.Y > neck.Y:
		return Up
	case head.X == neck.X:
		return Down
	case head.Y == neck.Y && head.X > neck.X:
		return Right
	case head.Y == neck.Y:
		return Left
	}
	return Up
}

// Offset returns the coordinate one step from c in direction dir.
func Offset(c board.Coord, dir string) board.Coord {
	switch dir {
	case Up:
		return board.Coord{X: c.X, Y: c.Y + 1}
	case Down:
		return board.Coord{X: c.X, Y: c.Y - 1}
	case Left:
		return board.Coord{X: c.X - 1, Y: c.Y}
	case Right:
		return board.Coord{X: c.X + 1, Y: c.Y}
	}
	return c
}
