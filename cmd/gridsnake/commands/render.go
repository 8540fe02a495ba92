package commands

import (
	"errors"
	"fmt"

	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	youColor     = termbox.ColorCyan
	headColor    = termbox.ColorYellow
	hazardColor  = termbox.ColorMagenta
	foodColor    = termbox.ColorRed

	foodRune = '●'
)

func render(game *history.Game, frame *history.Frame) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	b, err := board.New(&frame.Board)
	if err != nil {
		return err
	}

	err = termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	var (
		left = 10
		top  = 2
	)

	renderTitle(left, top, game.ID, frame.Turn, frame.Move)
	renderBoard(b.Width(), b.Height(), top, left)
	b.Each(func(c board.Coord, cell board.Cell) {
		renderCell(b, game.You, left, top, c, cell)
	})
	renderSnakes(b.Snakes(), game.You, left+b.Width()+5, top+1)

	return termbox.Flush()
}

// screenPos maps a board coordinate to the terminal. Board rows grow upwards,
// terminal rows grow downwards.
func screenPos(left, top, height int, c board.Coord) (int, int) {
	return left + c.X, top + 1 + (height - 1 - c.Y)
}

func renderCell(b *board.BoardState, you string, left, top int, c board.Coord, cell board.Cell) {
	x, y := screenPos(left, top, b.Height(), c)
	switch cell.Kind {
	case board.Food:
		termbox.SetCell(x, y, foodRune, foodColor, bgColor)
	case board.Hazard:
		termbox.SetCell(x, y, ' ', hazardColor, hazardColor)
	case board.SnakeBody, board.SnakeHead:
		color := snakeColor
		ch := ' '
		if s, ok := b.Owner(cell); ok {
			if s.ID == you {
				color = youColor
			}
			if tail, ok := s.Tail(); ok && tail.Equals(c) {
				ch = '·'
			}
		}
		if cell.Kind == board.SnakeHead {
			termbox.SetCell(x, y, '@', headColor, color)
			return
		}
		termbox.SetCell(x, y, ch, defaultColor, color)
	}
}

func renderSnakes(snakes []board.Snake, you string, left, top int) {
	pos := 0
	for _, s := range snakes {
		text := fmt.Sprintf("%s %d/100", s.Name, s.Health)
		if s.ID == you {
			text += " (you)"
		}
		if s.Shout != "" {
			text = fmt.Sprintf("%s - %q", text, s.Shout)
		}
		tbprint(left, top+pos, defaultColor, defaultColor, text)
		pos++
		healthColor := termbox.ColorGreen
		for i := 0; i < 10; i++ {
			if s.Health <= ((i * 10) + 1) {
				healthColor = termbox.ColorRed
			}
			termbox.SetCell(left+i, top+pos, ' ', healthColor, healthColor)
		}
		pos += 2
	}
}

func renderBoard(width, height, top, left int) {
	bottom := top + height + 1
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+width, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+width, top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+width, bottom, '┘', defaultColor, bgColor)

	fill(left, top, width, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, width, 1, termbox.Cell{Ch: '─'})
}

func renderTitle(left, top int, id string, turn int, move string) {
	title := fmt.Sprintf("Battlesnake %s - Turn %d", id, turn)
	if move != "" {
		title = fmt.Sprintf("%s - %s", title, move)
	}
	tbprint(left, top-1, defaultColor, defaultColor, title)
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
