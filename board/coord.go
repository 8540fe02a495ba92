package board

import "fmt"

// Coord is a point on the board. X is the column, Y is the row; (0,0) is the
// bottom left corner.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equals checks if 2 coords are the same x,y position.
func (c Coord) Equals(other Coord) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
