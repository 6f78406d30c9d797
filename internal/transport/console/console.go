package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	msgWelcome = "Welcome to Tic Tac Toe!"
	msgPrompt  = "Please enter 1-9:"
	msgInvalid = "invalid"
	msgDraw    = "Cat's Game!"

	maxLineLength = 1024
)

var ErrInputClosed = errors.New("input closed before the game ended")

type uGame interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	ResumeGame(ctx context.Context, id string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
}

// Console plays one game over a line-oriented reader and writer.
type Console struct {
	logger *slog.Logger
	uGame  uGame

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		in:     in,
		out:    out,
	}
}

// Run - plays a game until it is won or drawn. A non-empty gameID resumes a stored game.
func (that *Console) Run(ctx context.Context, gameID string) error {
	game, err := that.openGame(ctx, gameID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := that.readLines(ctx)

	that.println(msgWelcome)
	DisplayBoard(that.out, game.Board)

	for !game.IsFinished() {
		game, err = that.turn(ctx, game, lines)
		if err != nil {
			return fmt.Errorf("game %s interrupted: %w", game.ID, err)
		}
	}

	if winner := game.Winner(); winner != entity.Empty {
		that.println(fmt.Sprintf("Congratulations %s!", winner))
	} else {
		that.println(msgDraw)
	}

	return nil
}

func (that *Console) openGame(ctx context.Context, gameID string) (*entity.Game, error) {
	if gameID != "" {
		game, err := that.uGame.ResumeGame(ctx, gameID)
		if err == nil {
			return game, nil
		}

		if !canStartOver(err) {
			return nil, fmt.Errorf("failed to resume game: %w", err)
		}

		that.logger.Warn("game cannot be resumed, starting a new one", "gameID", gameID, "error", err)
	}

	game, err := that.uGame.StartGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return game, nil
}

// canStartOver - the requested game cannot be played, but a fresh one can replace it.
func canStartOver(err error) bool {
	return errors.Is(err, apperror.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, entity.ErrInvalidBoard)
}

// turn - asks for a position until a valid one is given, then plays it for the current player.
func (that *Console) turn(ctx context.Context, game *entity.Game, lines <-chan string) (*entity.Game, error) {
	log := that.logger.With("method", "turn", "gameID", game.ID)

	for {
		that.println(msgPrompt)

		var (
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			return game, ctx.Err()
		case line, ok = <-lines:
			if !ok {
				return game, ErrInputClosed
			}
		}

		index := InputToIndex(line)
		if !game.Board.ValidMove(index) {
			log.Debug("rejected input", "input", line, "index", index)
			that.println(msgInvalid)

			continue
		}

		updated, err := that.uGame.MakeTurn(ctx, game.ID, index)
		if errors.Is(err, entity.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied) {
			log.Warn("stored board rejected the move", "index", index, "error", err)
			that.println(msgInvalid)

			continue
		}

		if err != nil {
			return game, fmt.Errorf("failed to make turn: %w", err)
		}

		DisplayBoard(that.out, updated.Board)

		return updated, nil
	}
}

// readLines - feeds input lines to the game loop so a blocked read does not hold up cancellation.
func (that *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		reader := bufio.NewReaderSize(that.in, maxLineLength)
		for {
			line, ok, err := readLine(reader)
			if ok {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					that.logger.Error("failed to read input", "error", err)
				}

				return
			}
		}
	}()

	return lines
}

// readLine - returns the next line without its terminator. A line longer than the reader
// buffer is consumed up to its newline and returned empty, so it is rejected like any bad entry.
func readLine(reader *bufio.Reader) (string, bool, error) {
	chunk, err := reader.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return strings.TrimRight(string(chunk), "\r\n"), len(chunk) > 0, err
	}

	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = reader.ReadSlice('\n')
	}

	return "", true, err
}

func (that *Console) println(message string) {
	if _, err := fmt.Fprintln(that.out, message); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
