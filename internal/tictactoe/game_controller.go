package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// MakeTurn - places the mark of the player whose turn it is and returns that mark.
// The game is left untouched when the move is rejected.
func MakeTurn(gameInstance *entity.Game, cell int) (entity.Cell, error) {
	if gameInstance.IsFinished() {
		return entity.Empty, apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance.Board, cell); err != nil {
		return entity.Empty, fmt.Errorf("invalid turn: %w", err)
	}

	player := gameInstance.Board.CurrentPlayer()
	gameInstance.Board.ApplyMove(cell, player)

	return player, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", entity.ErrInvalidCell, cell)
	}

	if board.PositionTaken(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}
