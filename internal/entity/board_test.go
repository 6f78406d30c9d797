package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = Empty
)

var (
	drawnBoard = Board{
		x, o, x,
		o, x, x,
		o, x, o,
	}

	diagonalWonBoard = Board{
		x, o, x,
		o, x, o,
		o, x, x,
	}

	inProgressBoard = Board{
		x, e, x,
		e, x, e,
		o, o, e,
	}
)

func TestBoard_TurnCount(t *testing.T) {
	t.Run("Counts occupied positions", func(t *testing.T) {
		// Given: a board with three marks
		board := Board{o, e, e, e, x, e, e, e, x}

		// When: counting turns
		count := board.TurnCount()

		// Then: every non-empty cell is counted
		assert.Equal(t, 3, count)
	})

	t.Run("Follows every move of a full game", func(t *testing.T) {
		// Given: an empty board and a sequence covering all nine cells
		var board Board
		order := []int{4, 0, 8, 2, 6, 3, 5, 1, 7}

		require.Equal(t, 0, board.TurnCount())
		require.Equal(t, PlayerX, board.CurrentPlayer())

		for k, index := range order {
			player := board.CurrentPlayer()

			// When: the current player moves
			board.ApplyMove(index, player)

			// Then: the count grows by one and the turn passes to the opponent
			assert.Equal(t, k+1, board.TurnCount())
			assert.Equal(t, player.Opponent(), board.CurrentPlayer())
		}

		assert.True(t, board.Full())
	})
}

func TestBoard_CurrentPlayer(t *testing.T) {
	t.Run("Returns X for the third move", func(t *testing.T) {
		// Given: two marks on the board
		board := Board{o, e, e, e, x, e, e, e, e}

		// Then: X moves next
		assert.Equal(t, PlayerX, board.CurrentPlayer())
	})

	t.Run("Returns O for the fourth move", func(t *testing.T) {
		// Given: three marks on the board
		board := Board{o, e, e, e, x, e, e, e, x}

		// Then: O moves next
		assert.Equal(t, PlayerO, board.CurrentPlayer())
	})
}

func TestBoard_PositionTaken(t *testing.T) {
	// Given: a board with marks in the corners 0 and 8
	board := Board{x, e, e, e, e, e, e, e, o}

	// Then: only those positions are taken
	assert.True(t, board.PositionTaken(0))
	assert.True(t, board.PositionTaken(8))
	assert.False(t, board.PositionTaken(1))
	assert.False(t, board.PositionTaken(7))
}

func TestBoard_ValidMove(t *testing.T) {
	// Given: a board with the center taken
	board := Board{e, e, e, e, x, e, e, e, e}

	tests := []struct {
		name  string
		index int
		want  bool
	}{
		{name: "free corner", index: 0, want: true},
		{name: "free last cell", index: 8, want: true},
		{name: "occupied center", index: 4, want: false},
		{name: "negative index", index: -1, want: false},
		{name: "index past the board", index: 9, want: false},
		{name: "far out of range", index: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, board.ValidMove(tt.index))
		})
	}
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Places marks where requested", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: X takes the top left and O the bottom right
		board.ApplyMove(0, PlayerX)
		board.ApplyMove(8, PlayerO)

		// Then: only those cells change and X is next
		assert.Equal(t, Board{x, e, e, e, e, e, e, e, o}, board)
		assert.Equal(t, PlayerX, board.CurrentPlayer())
	})

	t.Run("Uses the given player regardless of turn order", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: O is placed first
		board.ApplyMove(0, PlayerO)
		board.ApplyMove(8, PlayerX)

		// Then: the marks are exactly the ones passed in
		assert.Equal(t, Board{o, e, e, e, e, e, e, e, x}, board)
	})

	t.Run("Panics on an occupied cell", func(t *testing.T) {
		board := Board{x, e, e, e, e, e, e, e, e}

		assert.PanicsWithError(t, "cell is already occupied: cell 0", func() {
			board.ApplyMove(0, PlayerO)
		})
		assert.Equal(t, x, board[0])
	})

	t.Run("Panics on an out of range index", func(t *testing.T) {
		var board Board

		assert.PanicsWithError(t, "invalid cell index: cell 9", func() {
			board.ApplyMove(9, PlayerX)
		})
		assert.PanicsWithError(t, "invalid cell index: cell -1", func() {
			board.ApplyMove(-1, PlayerX)
		})
	})

	t.Run("Panics on an empty mark", func(t *testing.T) {
		var board Board

		assert.Panics(t, func() {
			board.ApplyMove(0, Empty)
		})
		assert.Equal(t, Board{}, board)
	})
}

func TestBoard_Won(t *testing.T) {
	t.Run("Returns the winning combination", func(t *testing.T) {
		// When: checking a board won on the main diagonal
		combo, won := diagonalWonBoard.Won()

		// Then: the diagonal is reported
		require.True(t, won)
		assert.Equal(t, [3]int{0, 4, 8}, combo)
		assert.Equal(t, PlayerX, diagonalWonBoard.Winner())
	})

	t.Run("Returns false for a draw", func(t *testing.T) {
		_, won := drawnBoard.Won()

		assert.False(t, won)
	})

	t.Run("Returns false for an empty board", func(t *testing.T) {
		_, won := Board{}.Won()

		assert.False(t, won)
	})

	t.Run("Reports the first listed line when several are complete", func(t *testing.T) {
		// Given: a board completing the top row and the left column
		board := Board{
			x, x, x,
			x, o, o,
			x, o, o,
		}

		// When: checking for a win
		combo, won := board.Won()

		// Then: the top row comes first in the line table
		require.True(t, won)
		assert.Equal(t, [3]int{0, 1, 2}, combo)
	})

	t.Run("Detects every line", func(t *testing.T) {
		for _, line := range WinCombos() {
			var board Board
			for _, index := range line {
				board[index] = PlayerO
			}

			combo, won := board.Won()
			require.True(t, won)
			assert.Equal(t, line, combo)
			assert.Equal(t, PlayerO, board.Winner())
		}
	})
}

func TestBoard_Full(t *testing.T) {
	assert.True(t, drawnBoard.Full())
	assert.False(t, inProgressBoard.Full())
	assert.False(t, Board{}.Full())
}

func TestBoard_Draw(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{name: "draw", board: drawnBoard, want: true},
		{name: "won game", board: Board{x, o, x, o, x, x, o, o, x}, want: false},
		{name: "in progress", board: Board{x, e, x, e, x, e, o, o, x}, want: false},
		{name: "empty board", board: Board{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Draw())
		})
	}
}

func TestBoard_Over(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{name: "draw", board: drawnBoard, want: true},
		{name: "won game", board: Board{x, o, x, o, x, x, o, o, x}, want: true},
		{name: "won before the board is full", board: Board{x, o, e, x, o, e, x, e, e}, want: true},
		{name: "in progress", board: inProgressBoard, want: false},
		{name: "empty board", board: Board{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Over())
		})
	}
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Cell
	}{
		{name: "X won", board: Board{x, e, e, e, x, e, e, e, x}, want: PlayerX},
		{name: "O won", board: Board{x, o, e, e, o, e, e, o, x}, want: PlayerO},
		{name: "no winner yet", board: Board{x, o, e, e, e, e, e, o, x}, want: Empty},
		{name: "draw", board: drawnBoard, want: Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Winner())
		})
	}
}

func TestBoard_QueriesDoNotMutate(t *testing.T) {
	// Given: a won board and a copy of it
	board := diagonalWonBoard
	snapshot := board

	// When: the queries run repeatedly
	for range 3 {
		combo, won := board.Won()
		assert.True(t, won)
		assert.Equal(t, [3]int{0, 4, 8}, combo)
		assert.True(t, board.Full())
		assert.False(t, board.Draw())
		assert.True(t, board.Over())
		assert.Equal(t, PlayerX, board.Winner())
	}

	// Then: the board is untouched
	assert.Equal(t, snapshot, board)
}

func TestWinCombos(t *testing.T) {
	// Given: a copy of the table altered by the caller
	combos := WinCombos()
	combos[0] = [3]int{6, 7, 8}

	// Then: the shared table keeps its order
	expected := [8][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
	assert.Equal(t, expected, WinCombos())
}

func TestCell_Text(t *testing.T) {
	t.Run("Board encodes marks as strings", func(t *testing.T) {
		// Given: a board with both marks
		board := Board{x, o, e, e, e, e, e, e, e}

		// When: encoding it to JSON
		data, err := json.Marshal(board)
		require.NoError(t, err)

		// Then: marks are readable strings and the board decodes back
		assert.JSONEq(t, `["X","O","","","","","","",""]`, string(data))

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, board, decoded)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`["Z","","","","","","","",""]`), &board)

		require.ErrorIs(t, err, ErrInvalidMark)
	})

	t.Run("Rejects a board with missing or extra cells", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`["X","O"]`), &board)
		require.ErrorIs(t, err, ErrInvalidBoard)
		assert.Equal(t, Board{}, board)

		err = json.Unmarshal([]byte(`["X","O","","","","","","","",""]`), &board)
		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Renders empty cells as a blank", func(t *testing.T) {
		assert.Equal(t, " ", Empty.String())
		assert.Equal(t, "X", PlayerX.String())
		assert.Equal(t, "O", PlayerO.String())
	})
}

func TestBoard_Consistent(t *testing.T) {
	tests := []struct {
		name     string
		board    Board
		expected bool
	}{
		{name: "empty board", board: Board{}, expected: true},
		{name: "X to move", board: Board{x, o}, expected: true},
		{name: "O to move", board: inProgressBoard, expected: true},
		{name: "full board", board: drawnBoard, expected: true},
		{name: "O moved first", board: Board{o}, expected: false},
		{name: "O ahead of X", board: Board{o, o, x}, expected: false},
		{name: "X two moves ahead", board: Board{x, x, e, e, o, e, x}, expected: false},
		{name: "unknown mark", board: Board{Cell(7)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.board.Consistent())
		})
	}
}
