package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// InvalidIndex is what InputToIndex returns for anything that is not a position 1-9.
const InvalidIndex = -1

const rowSeparator = "-----------"

// InputToIndex maps the positions "1".."9" a player types to board indices 0..8.
func InputToIndex(input string) int {
	position, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || position < 1 || position > entity.BoardSize {
		return InvalidIndex
	}

	return position - 1
}

// DisplayBoard writes the board as three rows separated by a dashed line.
func DisplayBoard(w io.Writer, board entity.Board) {
	var sb strings.Builder

	for row := range 3 {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := board[row*3 : row*3+3]
		fmt.Fprintf(&sb, " %s | %s | %s \n", cells[0], cells[1], cells[2])
	}

	_, _ = io.WriteString(w, sb.String())
}
