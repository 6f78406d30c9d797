package entity

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDrawn   = "drawn"
)

type Game struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
}

func NewGame(id string) *Game {
	return &Game{
		ID: id,
	}
}

// Status is derived from the board, nothing about the game state is stored besides the cells.
func (that *Game) Status() string {
	switch {
	case that.Board.Draw():
		return StatusDrawn
	case that.Board.Over():
		return StatusWon
	default:
		return StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Board.Over()
}

func (that *Game) IsOngoing() bool {
	return !that.Board.Over()
}

func (that *Game) Winner() Cell {
	return that.Board.Winner()
}
