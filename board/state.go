// Package board turns a turn snapshot into a dense grid of typed cells.
//
// A BoardState is built once per turn with New and thrown away once the move
// has been decided. Cells are stored row major and addressed grid[y][x]; every
// coordinate inside the board holds exactly one Cell. Snake cells refer to
// their owner by a handle into the state's snake table, so many cells can
// share one snake record without copying it.
package board

import (
	"math"

	"github.com/pkg/errors"
)

// BoardState is the grid for a single turn.
type BoardState struct {
	width  int
	height int
	grid   [][]Cell
	snakes []Snake
}

// New builds the grid for a snapshot. Writes happen in a fixed order: food,
// then hazards, then each snake's body followed by its head. A later write to
// the same coordinate replaces the earlier one.
func New(s *Snapshot) (*BoardState, error) {
	if err := checkCapacity("width", s.Width); err != nil {
		return nil, err
	}
	if err := checkCapacity("height", s.Height); err != nil {
		return nil, err
	}
	if uint64(s.Width)*uint64(s.Height) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrCapacity, "%dx%d board has too many cells", s.Width, s.Height)
	}

	b := &BoardState{
		width:  s.Width,
		height: s.Height,
		grid:   make([][]Cell, s.Height),
		snakes: make([]Snake, len(s.Snakes)),
	}
	cells := make([]Cell, s.Width*s.Height)
	for y := range b.grid {
		b.grid[y] = cells[y*s.Width : (y+1)*s.Width : (y+1)*s.Width]
	}
	copy(b.snakes, s.Snakes)

	for _, c := range s.Food {
		if err := b.put(c, Cell{Kind: Food}); err != nil {
			return nil, errors.Wrap(err, "food")
		}
	}

	for _, c := range s.Hazards {
		if err := b.put(c, Cell{Kind: Hazard}); err != nil {
			return nil, errors.Wrap(err, "hazard")
		}
	}

	for i := range b.snakes {
		snake := &b.snakes[i]
		for _, c := range snake.Body {
			if err := b.put(c, Cell{Kind: SnakeBody, Owner: i}); err != nil {
				return nil, errors.Wrapf(err, "snake %s body", snake.ID)
			}
		}
		if err := b.put(snake.Head, Cell{Kind: SnakeHead, Owner: i}); err != nil {
			return nil, errors.Wrapf(err, "snake %s head", snake.ID)
		}
	}

	return b, nil
}

func checkCapacity(name string, v int) error {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return errors.Wrapf(ErrCapacity, "%s %d", name, v)
	}
	return nil
}

func (b *BoardState) put(c Coord, cell Cell) error {
	if err := checkCapacity("x", c.X); err != nil {
		return err
	}
	if err := checkCapacity("y", c.Y); err != nil {
		return err
	}
	ref, err := b.Ref(c)
	if err != nil {
		return err
	}
	*ref = cell
	return nil
}

// Width is the number of columns.
func (b *BoardState) Width() int { return b.width }

// Height is the number of rows.
func (b *BoardState) Height() int { return b.height }

// Contains reports whether c addresses a cell of the grid.
func (b *BoardState) Contains(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Get returns the cell at c. Coordinates outside the board return
// ErrOutOfBounds, they are never clamped or treated as empty.
func (b *BoardState) Get(c Coord) (Cell, error) {
	ref, err := b.Ref(c)
	if err != nil {
		return Cell{}, err
	}
	return *ref, nil
}

// Ref returns a pointer to the cell at c so it can be rewritten in place.
func (b *BoardState) Ref(c Coord) (*Cell, error) {
	if !b.Contains(c) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%v on %dx%d board", c, b.width, b.height)
	}
	return &b.grid[c.Y][c.X], nil
}

// Snakes returns the snake table in snapshot order. Cell owner handles index
// into it. The records must not be modified.
func (b *BoardState) Snakes() []Snake { return b.snakes }

// Owner resolves the snake occupying a body or head cell.
func (b *BoardState) Owner(c Cell) (*Snake, bool) {
	if !c.IsSnake() || c.Owner < 0 || c.Owner >= len(b.snakes) {
		return nil, false
	}
	return &b.snakes[c.Owner], true
}

// Snake finds a snake by id.
func (b *BoardState) Snake(id string) (*Snake, bool) {
	for i := range b.snakes {
		if b.snakes[i].ID == id {
			return &b.snakes[i], true
		}
	}
	return nil, false
}

// Each calls fn for every cell in row major order, starting at (0,0).
func (b *BoardState) Each(fn func(Coord, Cell)) {
	for y, row := range b.grid {
		for x, cell := range row {
			fn(Coord{X: x, Y: y}, cell)
		}
	}
}

// Count returns how many cells hold each kind.
func (b *BoardState) Count() map[Kind]int {
	counts := map[Kind]int{}
	b.Each(func(_ Coord, c Cell) { counts[c.Kind]++ })
	return counts
}
