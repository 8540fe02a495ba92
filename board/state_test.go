package board

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func threeByThree() *Snapshot {
	return &Snapshot{
		Width:  3,
		Height: 3,
		Food:   []Coord{{X: 1, Y: 1}},
		Snakes: []Snake{
			{
				ID:   "s1",
				Body: []Coord{{X: 0, Y: 0}, {X: 0, Y: 1}},
				Head: Coord{X: 0, Y: 0},
			},
		},
	}
}

func mustGet(t *testing.T, b *BoardState, x, y int) Cell {
	cell, err := b.Get(Coord{X: x, Y: y})
	require.NoError(t, err)
	return cell
}

func ownerID(t *testing.T, b *BoardState, cell Cell) string {
	s, ok := b.Owner(cell)
	require.True(t, ok, "cell %v has no owner", cell)
	return s.ID
}

func TestNew_Scenario(t *testing.T) {
	b, err := New(threeByThree())
	require.NoError(t, err)

	head := mustGet(t, b, 0, 0)
	require.Equal(t, SnakeHead, head.Kind)
	require.Equal(t, "s1", ownerID(t, b, head))

	body := mustGet(t, b, 0, 1)
	require.Equal(t, SnakeBody, body.Kind)
	require.Equal(t, "s1", ownerID(t, b, body))

	require.Equal(t, Food, mustGet(t, b, 1, 1).Kind)

	empty := 0
	b.Each(func(c Coord, cell Cell) {
		if cell.Kind == Empty {
			empty++
		}
	})
	require.Equal(t, 6, empty)
}

func TestNew_Dimensions(t *testing.T) {
	tests := []struct {
		Width, Height int
	}{
		{Width: 1, Height: 1},
		{Width: 7, Height: 11},
		{Width: 11, Height: 7},
		{Width: 19, Height: 19},
	}

	for _, test := range tests {
		b, err := New(&Snapshot{Width: test.Width, Height: test.Height})
		require.NoError(t, err)
		require.Equal(t, test.Width, b.Width())
		require.Equal(t, test.Height, b.Height())
		require.Len(t, b.grid, test.Height)
		for _, row := range b.grid {
			require.Len(t, row, test.Width)
		}

		visited := 0
		b.Each(func(c Coord, cell Cell) {
			visited++
			require.Equal(t, Empty, cell.Kind)
		})
		require.Equal(t, test.Width*test.Height, visited)

		for y := 0; y < test.Height; y++ {
			for x := 0; x < test.Width; x++ {
				_, err := b.Get(Coord{X: x, Y: y})
				require.NoError(t, err)
			}
		}
	}
}

func TestNew_ZeroDimensions(t *testing.T) {
	for _, s := range []*Snapshot{
		{Width: 0, Height: 0},
		{Width: 0, Height: 5},
		{Width: 5, Height: 0},
	} {
		b, err := New(s)
		require.NoError(t, err)

		visited := 0
		b.Each(func(Coord, Cell) { visited++ })
		require.Zero(t, visited)

		_, err = b.Get(Coord{X: 0, Y: 0})
		require.True(t, IsOutOfBounds(err), "%v", err)
	}
}

func TestNew_HazardOverwritesFood(t *testing.T) {
	b, err := New(&Snapshot{
		Width:   2,
		Height:  2,
		Food:    []Coord{{X: 1, Y: 0}, {X: 0, Y: 1}},
		Hazards: []Coord{{X: 1, Y: 0}},
	})
	require.NoError(t, err)
	require.Equal(t, Hazard, mustGet(t, b, 1, 0).Kind)
	require.Equal(t, Food, mustGet(t, b, 0, 1).Kind)
}

func TestNew_SnakeOverwritesHazard(t *testing.T) {
	b, err := New(&Snapshot{
		Width:   3,
		Height:  1,
		Hazards: []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		Snakes: []Snake{
			{ID: "a", Body: []Coord{{X: 1, Y: 0}, {X: 2, Y: 0}}, Head: Coord{X: 1, Y: 0}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, Hazard, mustGet(t, b, 0, 0).Kind)
	require.Equal(t, SnakeHead, mustGet(t, b, 1, 0).Kind)
	require.Equal(t, SnakeBody, mustGet(t, b, 2, 0).Kind)
}

func TestNew_HeadReclassifiesFirstBodySegment(t *testing.T) {
	b, err := New(&Snapshot{
		Width:  5,
		Height: 5,
		Snakes: []Snake{
			{
				ID:   "you",
				Body: []Coord{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}},
				Head: Coord{X: 2, Y: 2},
			},
		},
	})
	require.NoError(t, err)

	counts := b.Count()
	require.Equal(t, 1, counts[SnakeHead])
	require.Equal(t, 2, counts[SnakeBody])
	require.Equal(t, 22, counts[Empty])
}

func TestNew_StackedStartSegments(t *testing.T) {
	b, err := New(&Snapshot{
		Width:  3,
		Height: 3,
		Snakes: []Snake{
			{
				ID:   "you",
				Body: []Coord{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
				Head: Coord{X: 1, Y: 1},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, SnakeHead, mustGet(t, b, 1, 1).Kind)
	require.Equal(t, 8, b.Count()[Empty])
}

func TestNew_LastSnakeWins(t *testing.T) {
	b, err := New(&Snapshot{
		Width:  3,
		Height: 3,
		Snakes: []Snake{
			{ID: "a", Body: []Coord{{X: 2, Y: 1}, {X: 2, Y: 2}}, Head: Coord{X: 2, Y: 1}},
			{ID: "b", Body: []Coord{{X: 1, Y: 2}, {X: 2, Y: 2}}, Head: Coord{X: 1, Y: 2}},
		},
	})
	require.NoError(t, err)

	shared := mustGet(t, b, 2, 2)
	require.Equal(t, SnakeBody, shared.Kind)
	require.Equal(t, "b", ownerID(t, b, shared))

	require.Equal(t, "a", ownerID(t, b, mustGet(t, b, 2, 1)))
}

func TestNew_LaterBodyOverwritesEarlierHead(t *testing.T) {
	b, err := New(&Snapshot{
		Width:  3,
		Height: 1,
		Snakes: []Snake{
			{ID: "a", Body: []Coord{{X: 1, Y: 0}, {X: 0, Y: 0}}, Head: Coord{X: 1, Y: 0}},
			{ID: "b", Body: []Coord{{X: 2, Y: 0}, {X: 1, Y: 0}}, Head: Coord{X: 2, Y: 0}},
		},
	})
	require.NoError(t, err)

	cell := mustGet(t, b, 1, 0)
	require.Equal(t, SnakeBody, cell.Kind)
	require.Equal(t, "b", ownerID(t, b, cell))
}

func TestNew_OwnerCarriesFullRecord(t *testing.T) {
	s := threeByThree()
	s.Snakes[0].Name = "bob"
	s.Snakes[0].Health = 42
	s.Snakes[0].Length = 2

	b, err := New(s)
	require.NoError(t, err)

	owner, ok := b.Owner(mustGet(t, b, 0, 1))
	require.True(t, ok)
	require.Equal(t, "bob", owner.Name)
	require.Equal(t, 42, owner.Health)
	require.Equal(t, 2, owner.Length)

	same, ok := b.Owner(mustGet(t, b, 0, 0))
	require.True(t, ok)
	require.True(t, owner == same, "cells of one snake share a record")

	_, ok = b.Owner(mustGet(t, b, 1, 1))
	require.False(t, ok)
}

func TestNew_OutOfBounds(t *testing.T) {
	tests := []struct {
		Name     string
		Snapshot *Snapshot
	}{
		{
			Name:     "food past width",
			Snapshot: &Snapshot{Width: 3, Height: 3, Food: []Coord{{X: 3, Y: 0}}},
		},
		{
			Name:     "hazard past height",
			Snapshot: &Snapshot{Width: 3, Height: 3, Hazards: []Coord{{X: 0, Y: 3}}},
		},
		{
			Name: "body past width",
			Snapshot: &Snapshot{Width: 3, Height: 3, Snakes: []Snake{
				{ID: "a", Body: []Coord{{X: 2, Y: 2}, {X: 3, Y: 2}}, Head: Coord{X: 2, Y: 2}},
			}},
		},
		{
			Name: "head past height",
			Snapshot: &Snapshot{Width: 3, Height: 3, Snakes: []Snake{
				{ID: "a", Body: []Coord{{X: 0, Y: 0}}, Head: Coord{X: 0, Y: 5}},
			}},
		},
		{
			Name:     "food on empty board",
			Snapshot: &Snapshot{Food: []Coord{{X: 0, Y: 0}}},
		},
	}

	for _, test := range tests {
		b, err := New(test.Snapshot)
		require.Nil(t, b, test.Name)
		require.True(t, IsOutOfBounds(err), "%s: %v", test.Name, err)
	}
}

func TestNew_Capacity(t *testing.T) {
	tests := []struct {
		Name     string
		Snapshot *Snapshot
	}{
		{Name: "negative width", Snapshot: &Snapshot{Width: -1, Height: 3}},
		{Name: "negative height", Snapshot: &Snapshot{Width: 3, Height: -1}},
		{Name: "width past uint32", Snapshot: &Snapshot{Width: math.MaxUint32 + 1, Height: 1}},
		{Name: "too many cells", Snapshot: &Snapshot{Width: math.MaxUint32, Height: 2}},
		{Name: "negative food", Snapshot: &Snapshot{Width: 3, Height: 3, Food: []Coord{{X: -1, Y: 0}}}},
		{
			Name: "negative head",
			Snapshot: &Snapshot{Width: 3, Height: 3, Snakes: []Snake{
				{ID: "a", Body: []Coord{{X: 0, Y: 0}}, Head: Coord{X: 0, Y: -2}},
			}},
		},
	}

	for _, test := range tests {
		b, err := New(test.Snapshot)
		require.Nil(t, b, test.Name)
		require.True(t, IsCapacity(err), "%s: %v", test.Name, err)
	}
}

func TestGet_OutOfBounds(t *testing.T) {
	b, err := New(threeByThree())
	require.NoError(t, err)

	for _, c := range []Coord{
		{X: 3, Y: 0},
		{X: 0, Y: 3},
		{X: 3, Y: 3},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
	} {
		_, err := b.Get(c)
		require.True(t, IsOutOfBounds(err), "%v: %v", c, err)

		ref, err := b.Ref(c)
		require.Nil(t, ref)
		require.True(t, IsOutOfBounds(err), "%v: %v", c, err)
	}
}

func TestRef_WritesThrough(t *testing.T) {
	b, err := New(threeByThree())
	require.NoError(t, err)

	ref, err := b.Ref(Coord{X: 2, Y: 2})
	require.NoError(t, err)
	*ref = Cell{Kind: Hazard}

	require.Equal(t, Hazard, mustGet(t, b, 2, 2).Kind)
}

func TestNew_IndependentStates(t *testing.T) {
	s := threeByThree()
	first, err := New(s)
	require.NoError(t, err)

	s.Food = []Coord{{X: 2, Y: 2}}
	second, err := New(s)
	require.NoError(t, err)

	require.Equal(t, Food, mustGet(t, first, 1, 1).Kind)
	require.Equal(t, Empty, mustGet(t, first, 2, 2).Kind)
	require.Equal(t, Empty, mustGet(t, second, 1, 1).Kind)
	require.Equal(t, Food, mustGet(t, second, 2, 2).Kind)
}

func TestSnake(t *testing.T) {
	b, err := New(threeByThree())
	require.NoError(t, err)

	s, ok := b.Snake("s1")
	require.True(t, ok)
	require.Equal(t, Coord{X: 0, Y: 0}, s.Head)

	_, ok = b.Snake("missing")
	require.False(t, ok)
}

func TestString(t *testing.T) {
	b, err := New(threeByThree())
	require.NoError(t, err)
	require.Equal(t, "...\nsf.\nH..\n", b.String())
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "snake-head", SnakeHead.String())
	require.Equal(t, "unknown", Kind(42).String())
}

func TestSnapshot_Clone(t *testing.T) {
	s := threeByThree()
	clone := s.Clone()
	require.Equal(t, *s, clone)

	clone.Snakes[0].Body[0] = Coord{X: 2, Y: 2}
	clone.Food[0] = Coord{X: 0, Y: 2}
	require.Equal(t, Coord{X: 0, Y: 0}, s.Snakes[0].Body[0])
	require.Equal(t, Coord{X: 1, Y: 1}, s.Food[0])
}

func TestSnake_NeckTail(t *testing.T) {
	s := Snake{Body: []Coord{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}}
	neck, ok := s.Neck()
	require.True(t, ok)
	require.Equal(t, Coord{X: 1, Y: 0}, neck)
	tail, ok := s.Tail()
	require.True(t, ok)
	require.Equal(t, Coord{X: 0, Y: 0}, tail)

	empty := Snake{}
	_, ok = empty.Neck()
	require.False(t, ok)
	_, ok = empty.Tail()
	require.False(t, ok)
}
