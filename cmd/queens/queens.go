package queens

import (
	"fmt"
	"io"
	"strings"

	"github.com/operator-framework/brancher/pkg/fd"
)

// Queens models the n-queens problem: q[i] is the column of the queen in
// row i.
func Queens(n int) (*fd.Space, []fd.IntView, error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("invalid board size %d", n)
	}
	home := fd.New()
	q := home.IntVars(n, 0, n-1)
	home.Post(fd.Distinct(q))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// q[i] - q[j] != j - i and q[i] - q[j] != i - j
			for _, c := range []int{j - i, i - j} {
				p, err := fd.Linear([]int{1, -1}, []fd.IntView{q[i], q[j]}, fd.NQ, c)
				if err != nil {
					return nil, nil, err
				}
				home.Post(p)
			}
		}
	}
	return home, q, nil
}

// Print draws the board of a solved space.
func Print(w io.Writer, home *fd.Space, q []fd.IntView) {
	for _, col := range home.Vals(q) {
		fmt.Fprintln(w, strings.Repeat(". ", col)+"Q"+strings.Repeat(" .", len(q)-col-1))
	}
}
