package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/brancher/internal/cli"
	"github.com/operator-framework/brancher/internal/model"
	"github.com/operator-framework/brancher/pkg/fd"
	"github.com/operator-framework/brancher/pkg/search"
)

func NewModelCommand(env *cli.Env) *cobra.Command {
	var all bool
	var limit int
	cmd := &cobra.Command{
		Use:   "model <path>",
		Short: "Solves a finite-domain model given in yaml",
		Long: `Solves a finite-domain model given in yaml. For instance:
variables:
  - {name: x, count: 3, min: 0, max: 2}
constraints:
  - distinct: [x]
  - rel: {x: "x[0]", op: lt, y: "x[2]"}
branch:
  - {vars: [x], view: size-min, value: max}
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening model (%s): %w", args[0], err)
			}
			defer f.Close()
			opts := env.SearchOptions()
			if all {
				opts = append(opts, search.WithLimit(limit))
			}
			return Solve(cmd.Context(), f, cmd.OutOrStdout(), all, opts...)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every solution")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many solutions with --all, 0 for no limit")
	return cmd
}

// Solve reads a model from in and writes its first solution, or every
// solution if all is set, to out.
func Solve(ctx context.Context, in io.Reader, out io.Writer, all bool, opts ...search.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := model.Parse(in)
	if err != nil {
		return err
	}
	instance, err := m.Build()
	if err != nil {
		return err
	}

	var solutions []*fd.Space
	if all {
		solutions, err = search.All(ctx, instance.Space, opts...)
	} else {
		var s *fd.Space
		s, err = search.Solve(ctx, instance.Space, opts...)
		solutions = append(solutions, s)
	}
	if errors.Is(err, search.ErrNoSolution) || err == nil && len(solutions) == 0 {
		fmt.Fprintln(out, "no solution found")
		return nil
	}
	if err != nil {
		return err
	}
	for i, s := range solutions {
		if all {
			fmt.Fprintf(out, "solution %d:\n", i+1)
		}
		for _, v := range instance.Assignment(s) {
			fmt.Fprintf(out, "%s = %d\n", v.Name, v.Val)
		}
	}
	return nil
}
