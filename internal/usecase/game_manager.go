package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager keeps the game of the current session in the repository while it is unfinished.
// Finished games are deleted, no history is kept.
type GameManager struct {
	logger *slog.Logger
	tracer trace.Tracer

	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, tracer trace.Tracer, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		tracer: tracer,

		gameRepo: gameRepo,
	}
}

// StartGame - creates an empty game, X to move.
func (that *GameManager) StartGame(ctx context.Context) (*entity.Game, error) {
	newGame := entity.NewGame(uuid.NewString())

	if err := that.updateGame(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", newGame.ID)

	return newGame, nil
}

// ResumeGame - loads an unfinished game. A finished or corrupted game found in storage is removed.
func (that *GameManager) ResumeGame(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.getGameByID(ctx, id)
	if errors.Is(err, entity.ErrInvalidBoard) {
		that.deleteGame(ctx, id)

		return nil, err
	}

	if err != nil {
		return nil, err
	}

	if existingGame.IsFinished() {
		that.deleteGame(ctx, existingGame.ID)

		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameFinished, id)
	}

	that.logger.Info("game resumed", "gameID", id, "turn", existingGame.Board.TurnCount())

	return existingGame, nil
}

// MakeTurn - plays cell for the player whose turn it is and saves the result.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	ctx, span := that.tracer.Start(ctx, "game.turn", trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("game.cell", cell),
	))
	defer span.End()

	game, err := that.makeTurn(ctx, span, gameID, cell)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return game, err
}

func (that *GameManager) makeTurn(ctx context.Context, span trace.Span, gameID string, cell int) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player, err := tictactoe.MakeTurn(game, cell)
	if err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			that.deleteGame(ctx, game.ID)
		}

		return game, fmt.Errorf("failed make turn: %w", err)
	}

	span.SetAttributes(attribute.String("game.player", player.String()))

	if game.IsFinished() {
		span.SetAttributes(attribute.String("game.status", game.Status()))
		that.logger.Info("game finished", "gameID", game.ID, "status", game.Status(), "winner", game.Winner().String())
		that.deleteGame(ctx, game.ID)

		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// AbandonGame - drops a game that will not be played to the end.
func (that *GameManager) AbandonGame(ctx context.Context, game *entity.Game) {
	that.deleteGame(ctx, game.ID)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if !existingGame.Board.Consistent() {
		return nil, fmt.Errorf("%w: game id %s has a board no play can produce", entity.ErrInvalidBoard, id)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, id string) {
	log := that.logger.With("method", "deleteGame", "gameID", id)

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Debug("game deleted")
}
