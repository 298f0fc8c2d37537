package sudoku

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/operator-framework/brancher/internal/cli"
	"github.com/operator-framework/brancher/internal/strategy"
	"github.com/operator-framework/brancher/pkg/fd"
	"github.com/operator-framework/brancher/pkg/search"
)

func NewSudokuCommand(env *cli.Env) *cobra.Command {
	var puzzle, view, value string
	var seed uint32
	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "Returns a solved sudoku board",
		Long: `Returns a solved sudoku board. Without --puzzle an empty board is
filled in; use --view rnd with different seeds to get different boards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Solve(cmd.Context(), cmd.OutOrStdout(), puzzle, view, value, seed, env.SearchOptions()...)
		},
	}
	cmd.Flags().StringVar(&puzzle, "puzzle", "", "81 cells in row order, '.' or '0' for blanks")
	cmd.Flags().StringVar(&view, "view", "size-min", "cell selection, one of "+fmt.Sprint(strategy.ViewSelNames()))
	cmd.Flags().StringVar(&value, "value", "min", "value selection, one of "+fmt.Sprint(strategy.ValSelNames()))
	cmd.Flags().Uint32Var(&seed, "seed", 0, "seed of the random cell selection")
	return cmd
}

func Solve(ctx context.Context, out io.Writer, puzzle, view, value string, seed uint32, opts ...search.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sudoku, err := NewSudoku(puzzle)
	if err != nil {
		return err
	}
	home, x := sudoku.Space()
	b, err := strategy.Branching[*fd.Space, fd.IntView](x, view, value, seed)
	if err != nil {
		return err
	}
	home.AddBranching(b)

	solution, err := search.Solve(ctx, home, opts...)
	if errors.Is(err, search.ErrNoSolution) {
		fmt.Fprintln(out, "no solution found")
		return nil
	}
	if err != nil {
		return err
	}
	Print(out, solution, x)
	return nil
}
