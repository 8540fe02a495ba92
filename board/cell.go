package board

// Kind is the occupancy of a single cell.
type Kind uint8

// Cell kinds. A coordinate holds exactly one of these.
const (
	Empty Kind = iota
	Food
	Hazard
	SnakeBody
	SnakeHead
)

var kindNames = [...]string{
	Empty:     "empty",
	Food:      "food",
	Hazard:    "hazard",
	SnakeBody: "snake-body",
	SnakeHead: "snake-head",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Cell is the state of one coordinate. Owner is a handle into the
// BoardState's snake table and is only meaningful for SnakeBody and
// SnakeHead cells; use BoardState.Owner to resolve it.
type Cell struct {
	Kind  Kind
	Owner int
}

// IsSnake returns true for body and head cells.
func (c Cell) IsSnake() bool {
	return c.Kind == SnakeBody || c.Kind == SnakeHead
}
