package board

import "strings"

var glyphs = map[Kind]byte{
	Empty:     '.',
	Food:      'f',
	Hazard:    'x',
	SnakeBody: 's',
	SnakeHead: 'H',
}

// String draws the board with the highest row first so it reads the same way
// the game is displayed.
func (b *BoardState) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := b.height - 1; y >= 0; y-- {
		for _, cell := range b.grid[y] {
			sb.WriteByte(glyphs[cell.Kind])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
