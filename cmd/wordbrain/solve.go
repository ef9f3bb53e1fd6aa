package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crosswarped.com/wordbrain"
)

// parseSolveArgs splits the arguments into board rows and word lengths. The board
// is square, so the first row gives the number of rows that follow it.
func parseSolveArgs(args []string) (rows []string, sizes []int, err error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%w: no board given", wordbrain.ErrUsage)
	}
	size := len(args[0])
	if size > wordbrain.MaxSize {
		return nil, nil, fmt.Errorf("%w: board size %d, at most %d is supported", wordbrain.ErrBoardTooLarge, size, wordbrain.MaxSize)
	}
	if len(args) < size {
		return nil, nil, fmt.Errorf("%w: a board of size %d needs %d rows, got %d", wordbrain.ErrUsage, size, size, len(args))
	}
	if len(args) == size {
		return nil, nil, fmt.Errorf("%w: word lengths not specified", wordbrain.ErrUsage)
	}

	rows = args[:size]
	for _, arg := range args[size:] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: word length %q is not a number", wordbrain.ErrUsage, arg)
		}
		sizes = append(sizes, n)
	}
	return rows, sizes, nil
}

func newSolveCmd(a *app) *cobra.Command {
	var dictionary string
	var first bool

	cmd := &cobra.Command{
		Use:   "solve [-d words.tree] <row1> ... <rowN> <len1> ... <lenK>",
		Short: "Print every solution of a puzzle",
		Example: `  wordbrain solve geto atuc tegr uaoc 4 6 6
  wordbrain solve -d words.tree oeuf niis cmll alba 6 5 5`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, sizes, err := parseSolveArgs(args)
			if err != nil {
				return err
			}
			puzzle, err := wordbrain.NewPuzzle(rows, sizes)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("dictionary") {
				dictionary = a.cfg.Dictionary
			}
			d, err := a.loadDictionary(cmd.Context(), dictionary)
			if err != nil {
				return err
			}

			a.logger.Debug("solving",
				zap.Strings("rows", rows),
				zap.Ints("word_sizes", sizes))

			out := cmd.OutOrStdout()
			count := wordbrain.NewSolver(d, puzzle).Solve(func(sol wordbrain.Solution) bool {
				fmt.Fprintln(out, sol.Repr())
				return !first
			})
			fmt.Fprintf(out, "%d solutions\n", count)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dictionary, "dictionary", "d", "words.tree", "Compiled dictionary, a file or gs:// location")
	cmd.Flags().BoolVar(&first, "first", false, "Stop after the first solution")
	return cmd
}
