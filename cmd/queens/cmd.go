package queens

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

type Options struct {
	N       int
	All     bool
	Limit   int
	Workers int
	View    string
	Value   string
	Seed    uint32
}

func NewQueensCommand(env *cli.Env) *cobra.Command {
	o := Options{N: 8, Workers: 1, View: "size-min", Value: "min"}
	cmd := &cobra.Command{
		Use:   "queens",
		Short: "Places n queens on an n by n board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cmd.OutOrStdout(), o, env.SearchOptions()...)
		},
	}
	cmd.Flags().IntVarP(&o.N, "n", "n", o.N, "board size")
	cmd.Flags().BoolVar(&o.All, "all", false, "count every solution instead of printing the first one")
	cmd.Flags().IntVar(&o.Limit, "limit", 0, "stop after this many solutions, 0 for no limit")
	cmd.Flags().IntVar(&o.Workers, "workers", o.Workers, "number of subtrees searched concurrently with --all")
	cmd.Flags().StringVar(&o.View, "view", o.View, "row selection, one of "+fmt.Sprint(strategy.ViewSelNames()))
	cmd.Flags().StringVar(&o.Value, "value", o.Value, "value selection, one of "+fmt.Sprint(strategy.ValSelNames()))
	cmd.Flags().Uint32Var(&o.Seed, "seed", 0, "seed of the random row selection")
	return cmd
}

func Run(ctx context.Context, out io.Writer, o Options, opts ...search.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	home, q, err := Queens(o.N)
	if err != nil {
		return err
	}
	b, err := strategy.Branching[*fd.Space, fd.IntView](q, o.View, o.Value, o.Seed)
	if err != nil {
		return err
	}
	home.AddBranching(b)

	if !o.All {
		solution, err := search.Solve(ctx, home, opts...)
		if errors.Is(err, search.ErrNoSolution) {
			fmt.Fprintln(out, "no solution found")
			return nil
		}
		if err != nil {
			return err
		}
		Print(out, solution, q)
		return nil
	}

	opts = append(opts, search.WithLimit(o.Limit))
	var solutions []*fd.Space
	if o.Workers > 1 {
		solutions, err = search.Parallel(ctx, home, o.Workers, opts...)
	} else {
		solutions, err = search.All(ctx, home, opts...)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d solutions\n", len(solutions))
	return nil
}
