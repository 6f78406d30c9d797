package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

// Cell is the content of one board position.
type Cell uint8

const (
	Empty Cell = iota
	PlayerX
	PlayerO
)

const BoardSize = 9

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid player mark")
	ErrInvalidBoard = errors.New("invalid board")
)

// winCombos lists every line of the grid. The order is fixed: Won reports the first match.
var winCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinCombos returns a copy of the line table.
func WinCombos() [8][3]int {
	return winCombos
}

// Board is a row-major 3x3 grid:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The zero value is an empty board.
type Board [BoardSize]Cell

// String returns the mark as shown on screen, a blank space for an empty cell.
func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	switch that {
	case Empty:
		return []byte{}, nil
	case PlayerX, PlayerO:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMark, that)
	}
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMark, text)
	}

	return nil
}

// Opponent returns the other player's mark.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// UnmarshalJSON accepts exactly BoardSize marks.
func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: %d cells", ErrInvalidBoard, len(cells))
	}

	copy(that[:], cells)

	return nil
}

// TurnCount - number of occupied cells.
func (that Board) TurnCount() int {
	count := 0
	for _, cell := range that {
		if cell != Empty {
			count++
		}
	}

	return count
}

// CurrentPlayer derives whose move is next from the occupancy count. X always moves first.
func (that Board) CurrentPlayer() Cell {
	if that.TurnCount()%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

// Consistent reports whether the board can be reached by alternating play from an empty board:
// only known marks, and X leads O by at most one.
func (that Board) Consistent() bool {
	var xCount, oCount int

	for _, cell := range that {
		switch cell {
		case Empty:
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		default:
			return false
		}
	}

	return xCount == oCount || xCount == oCount+1
}

// PositionTaken panics for an index outside the board, use ValidMove for unchecked input.
func (that Board) PositionTaken(index int) bool {
	return that[index] != Empty
}

func (that Board) ValidMove(index int) bool {
	if index < 0 || index >= BoardSize {
		return false
	}

	return !that.PositionTaken(index)
}

// ApplyMove places player's mark at index. The move must already be validated:
// an occupied or out-of-range cell, or an Empty player, is a programming error and panics.
func (that *Board) ApplyMove(index int, player Cell) {
	if player != PlayerX && player != PlayerO {
		panic(fmt.Errorf("%w: %d", ErrInvalidMark, player))
	}

	if index < 0 || index >= BoardSize {
		panic(fmt.Errorf("%w: cell %d", ErrInvalidCell, index))
	}

	if that[index] != Empty {
		panic(fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index))
	}

	that[index] = player
}

// Won returns the first completed line in table order.
func (that Board) Won() ([3]int, bool) {
	for _, combo := range winCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that Board) Full() bool {
	return that.TurnCount() == BoardSize
}

func (that Board) Draw() bool {
	_, won := that.Won()

	return !won && that.Full()
}

func (that Board) Over() bool {
	_, won := that.Won()

	return won || that.Full()
}

// Winner returns the mark on the winning line, Empty while in progress or for a draw.
func (that Board) Winner() Cell {
	combo, won := that.Won()
	if !won {
		return Empty
	}

	return that[combo[0]]
}
