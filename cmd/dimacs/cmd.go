package dimacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/brancher/internal/cli"
	"github.com/operator-framework/brancher/internal/strategy"
	"github.com/operator-framework/brancher/pkg/sat"
	"github.com/operator-framework/brancher/pkg/search"
)

func NewDimacsCommand(env *cli.Env) *cobra.Command {
	var view, value string
	var seed uint32
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dimacsFile, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening dimacs file (%s): %w", args[0], err)
			}
			defer dimacsFile.Close()
			return Solve(cmd.Context(), dimacsFile, cmd.OutOrStdout(), view, value, seed, env.SearchOptions()...)
		},
	}
	cmd.Flags().StringVar(&view, "view", "none", "variable selection, one of "+fmt.Sprint(strategy.BoolViewSelNames()))
	cmd.Flags().StringVar(&value, "value", "max", "value selection, one of "+fmt.Sprint(strategy.BoolValSelNames()))
	cmd.Flags().Uint32Var(&seed, "seed", 0, "seed of the random variable selection")
	return cmd
}

// Solve reads a DIMACS problem from in and writes either an assignment of
// every variable or the reason no solution exists to out.
func Solve(ctx context.Context, in io.Reader, out io.Writer, view, value string, seed uint32, opts ...search.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dimacs, err := NewDimacs(in)
	if err != nil {
		return fmt.Errorf("error parsing dimacs data: %w", err)
	}

	space, err := sat.NewSpace(GenerateVariables(dimacs))
	var unsat sat.NotSatisfiable
	if errors.As(err, &unsat) {
		fmt.Fprintf(out, "no solution found: %s\n", unsat)
		return nil
	}
	if err != nil {
		return err
	}
	b, err := strategy.BoolBranching(space.Views(), view, value, seed)
	if err != nil {
		return err
	}
	space.AddBranching(b)

	solution, err := search.Solve(ctx, space, opts...)
	if errors.Is(err, search.ErrNoSolution) {
		fmt.Fprintln(out, "no solution found")
		return nil
	}
	if err != nil {
		return err
	}

	selected := make(map[sat.Identifier]bool)
	for _, v := range solution.Selection() {
		selected[v.Identifier()] = true
	}
	fmt.Fprintln(out, "solution found:")
	for _, id := range dimacs.Variables() {
		fmt.Fprintf(out, "%s = %t\n", id, selected[sat.Identifier(id)])
	}
	return nil
}
