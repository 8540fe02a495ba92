package board

// Snapshot is the decoded state of the board on a single turn.
type Snapshot struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Food    []Coord `json:"food"`
	Hazards []Coord `json:"hazards"`
	Snakes  []Snake `json:"snakes"`
}

// Snake is the per turn record of a single snake. Body is ordered from head
// to tail.
type Snake struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Health  int     `json:"health"`
	Body    []Coord `json:"body"`
	Head    Coord   `json:"head"`
	Length  int     `json:"length"`
	Latency string  `json:"latency"`
	Shout   string  `json:"shout"`
	Squad   string  `json:"squad"`
}

// Neck returns the segment directly behind the head, if the snake has one.
func (s *Snake) Neck() (Coord, bool) {
	if len(s.Body) < 2 {
		return Coord{}, false
	}
	return s.Body[1], true
}

// Tail returns the last body segment.
func (s *Snake) Tail() (Coord, bool) {
	if len(s.Body) == 0 {
		return Coord{}, false
	}
	return s.Body[len(s.Body)-1], true
}

// Clone performs a deep copy of the snapshot.
func (s *Snapshot) Clone() Snapshot {
	out := Snapshot{
		Width:   s.Width,
		Height:  s.Height,
		Food:    cloneCoords(s.Food),
		Hazards: cloneCoords(s.Hazards),
	}
	if s.Snakes != nil {
		out.Snakes = make([]Snake, len(s.Snakes))
		for i, snake := range s.Snakes {
			out.Snakes[i] = snake
			out.Snakes[i].Body = cloneCoords(snake.Body)
		}
	}
	return out
}

func cloneCoords(coords []Coord) []Coord {
	if coords == nil {
		return nil
	}
	out := make([]Coord, len(coords))
	copy(out, coords)
	return out
}
