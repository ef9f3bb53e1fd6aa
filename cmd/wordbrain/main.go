package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crosswarped.com/wordbrain"
	"crosswarped.com/wordbrain/internal/config"
	"crosswarped.com/wordbrain/internal/dictstore"
	"crosswarped.com/wordbrain/pkg/dict"
	"crosswarped.com/wordbrain/pkg/trie"
)

// Exit codes, from sysexits.h.
const (
	exitUsage       = 64
	exitDataErr     = 65
	exitUnavailable = 69
	exitSoftware    = 70
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, wordbrain.ErrUsage):
		return exitUsage
	case errors.Is(err, dict.ErrFormat), errors.Is(err, dict.ErrUnsorted), errors.Is(err, dict.ErrInvalidWord):
		return exitDataErr
	case errors.Is(err, dictstore.ErrUnavailable):
		return exitUnavailable
	case errors.Is(err, trie.ErrCapacity), errors.Is(err, wordbrain.ErrBoardTooLarge):
		return exitSoftware
	default:
		return 1
	}
}

// app holds what the subcommands share once flags are parsed.
type app struct {
	configPath string
	verbose    bool
	maxNodes   int

	cfg    *config.Config
	logger *zap.Logger
	store  *dictstore.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wordbrain",
		Short: "Solve WordBrain puzzles",
		Long: `wordbrain finds every way to clear a WordBrain grid: each word is traced
through adjacent letters, diagonals included, and once it is taken off the board
the letters above it fall down before the next word is searched.

Compile a dictionary first. The word list must be sorted and free of duplicates:

  wordbrain compile word_list.txt words.tree

Then solve puzzles by giving the rows of the grid followed by the word lengths:

  wordbrain solve -d words.tree geto atuc tegr uaoc 4 6 6`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", wordbrain.ErrUsage, err)
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().IntVar(&a.maxNodes, "max-nodes", trie.DefaultMaxNodes, "Maximum number of nodes in the dictionary tree")

	root.AddCommand(newCompileCmd(a), newSolveCmd(a), newWordsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-nodes") {
		cfg.MaxNodes = a.maxNodes
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", wordbrain.ErrUsage, err)
		}
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if a.logger, err = zc.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.store = dictstore.New()
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing storage client", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// loadDictionary reads the compiled dictionary at loc into a trie.
func (a *app) loadDictionary(ctx context.Context, loc string) (*trie.Trie, error) {
	r, err := a.store.Open(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("compiled dictionary %s: %w", loc, err)
	}
	defer r.Close()

	t, err := dict.Load(r, a.cfg.MaxNodes, a.logger.With(zap.String("dictionary", loc)))
	if err != nil {
		return nil, fmt.Errorf("compiled dictionary %s: %w", loc, err)
	}
	return t, nil
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code := exitCode(err)
		if code == exitUsage {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "syntax: wordbrain solve [-d words.tree] {row1, ...} {len1, ...}")
			fmt.Fprintln(os.Stderr, "        wordbrain compile words.txt words.tree")
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Example: wordbrain solve oeuf niis cmll alba 6 5 5")
		}
		os.Exit(code)
	}
}
