package main

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crosswarped.com/wordbrain"
	"crosswarped.com/wordbrain/internal/wordlist"
	"crosswarped.com/wordbrain/pkg/dict"
)

func newCompileCmd(a *app) *cobra.Command {
	var fromBigQuery bool

	cmd := &cobra.Command{
		Use:   "compile <words.txt> <words.tree>",
		Short: "Compile a sorted word list into a dictionary",
		Long: `Compile a word list, one word per line, into the compact dictionary format
read by solve. The list must be sorted bytewise (LC_ALL=C sort -u).

Either path may be a gs://bucket/object location. With --bigquery the words are
read from the configured BigQuery table instead and only the output is given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			want := 2
			if fromBigQuery {
				want = 1
			}
			if len(args) != want {
				return fmt.Errorf("%w: compile expects %d arguments, got %d", wordbrain.ErrUsage, want, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var words []string
			var err error
			if fromBigQuery {
				words, err = wordlist.FromBigQuery(ctx, wordlist.BigQueryParams{
					Project:  a.cfg.BigQuery.Project,
					Table:    a.cfg.BigQuery.Table,
					Column:   a.cfg.BigQuery.Column,
					Location: a.cfg.BigQuery.Location,
				})
			} else {
				words, err = a.readWordList(ctx, args[0])
			}
			if err != nil {
				return err
			}

			out := args[len(args)-1]
			n, size, err := a.compile(ctx, words, out)
			if err != nil {
				return err
			}
			a.logger.Info("compiled dictionary",
				zap.String("output", out),
				zap.Int("words", n),
				zap.Int("bytes", size))
			fmt.Fprintf(cmd.OutOrStdout(), "%d words\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromBigQuery, "bigquery", false, "Read the words from the configured BigQuery table")
	return cmd
}

func (a *app) readWordList(ctx context.Context, loc string) ([]string, error) {
	r, err := a.store.Open(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", loc, err)
	}
	defer r.Close()

	words, err := wordlist.Read(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", loc, err)
	}
	a.logger.Debug("read word list", zap.String("input", loc), zap.Int("words", len(words)))
	return words, nil
}

// compile encodes words in memory first so a rejected list leaves no output behind.
func (a *app) compile(ctx context.Context, words []string, loc string) (n, size int, err error) {
	var buf bytes.Buffer
	n, err = dict.Encode(&buf, slices.Values(words))
	if err != nil {
		return 0, 0, err
	}

	w, err := a.store.Create(ctx, loc)
	if err != nil {
		return 0, 0, fmt.Errorf("compiled dictionary %s: %w", loc, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return 0, 0, fmt.Errorf("compiled dictionary %s: %w", loc, err)
	}
	if err := w.Close(); err != nil {
		return 0, 0, fmt.Errorf("compiled dictionary %s: %w", loc, err)
	}
	return n, buf.Len(), nil
}
