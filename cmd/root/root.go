package root

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/brancher/cmd/dimacs"
	"github.com/operator-framework/brancher/cmd/model"
	"github.com/operator-framework/brancher/cmd/queens"
	"github.com/operator-framework/brancher/cmd/sudoku"
	"github.com/operator-framework/brancher/internal/cli"
)

func NewRootCmd() *cobra.Command {
	env := cli.NewEnv()
	rootCmd := &cobra.Command{
		Use:   "brancher",
		Short: "Brancher solves constraint problems with pluggable branching strategies",
		Long: `Brancher solves finite-domain and boolean constraint problems by
propagation and depth-first search. Which variable is decided next and
how its domain is split are chosen per problem with --view and --value.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return env.WriteMetrics(cmd.OutOrStdout())
		},
	}
	rootCmd.PersistentFlags().StringVar(&env.LogLevel, "log-level", env.LogLevel, "log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().BoolVar(&env.Metrics, "metrics", false, "print search metrics after solving")

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewDimacsCommand(env))
	rootCmd.AddCommand(sudoku.NewSudokuCommand(env))
	rootCmd.AddCommand(queens.NewQueensCommand(env))
	rootCmd.AddCommand(model.NewModelCommand(env))

	return rootCmd
}
