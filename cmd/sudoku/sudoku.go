package sudoku

import (
	"fmt"
	"io"
	"strings"

	"github.com/operator-framework/brancher/pkg/fd"
)

// Sudoku is a 9x9 board; unknown cells hold 0.
type Sudoku struct {
	cells [81]int
}

// GetID returns the index of the cell at row, col.
func GetID(row int, col int) int {
	return row*9 + col
}

// NewSudoku parses a board given as 81 characters in row order. Digits
// are givens; '.' and '0' are blanks. Whitespace is ignored.
func NewSudoku(puzzle string) (*Sudoku, error) {
	s := &Sudoku{}
	puzzle = strings.Join(strings.Fields(puzzle), "")
	if puzzle == "" {
		return s, nil
	}
	if len(puzzle) != 81 {
		return nil, fmt.Errorf("invalid puzzle: expected 81 cells, found %d", len(puzzle))
	}
	for i, c := range puzzle {
		switch {
		case c == '.' || c == '0':
		case c >= '1' && c <= '9':
			s.cells[i] = int(c - '0')
		default:
			return nil, fmt.Errorf("invalid puzzle: unexpected %q at cell %d", c, i)
		}
	}
	return s, nil
}

// Space posts the rules of the game and the givens. The returned views
// are the cells in row order.
func (s *Sudoku) Space() (*fd.Space, []fd.IntView) {
	home := fd.New()
	x := home.IntVars(81, 1, 9)
	for i, n := range s.cells {
		if n != 0 {
			home.Post(fd.RelConst(x[i], fd.EQ, n))
		}
	}

	// every row and column has unique numbers
	for i := 0; i < 9; i++ {
		row := make([]fd.IntView, 9)
		col := make([]fd.IntView, 9)
		for j := 0; j < 9; j++ {
			row[j] = x[GetID(i, j)]
			col[j] = x[GetID(j, i)]
		}
		home.Post(fd.Distinct(row))
		home.Post(fd.Distinct(col))
	}

	// every box rooted at r, c has unique numbers
	for r := 0; r < 9; r += 3 {
		for c := 0; c < 9; c += 3 {
			box := make([]fd.IntView, 0, 9)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					box = append(box, x[GetID(r+i, c+j)])
				}
			}
			home.Post(fd.Distinct(box))
		}
	}
	return home, x
}

// Print writes the board of a solved space.
func Print(w io.Writer, home *fd.Space, x []fd.IntView) {
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			fmt.Fprintf(w, "%d", x[GetID(row, col)].Val(home))
			if col != 8 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
