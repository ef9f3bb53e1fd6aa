package main

import (
	"bufio"

	"github.com/spf13/cobra"
)

func newWordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words [words.tree]",
		Short: "List the words of a compiled dictionary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := a.cfg.Dictionary
			if len(args) == 1 {
				loc = args[0]
			}
			d, err := a.loadDictionary(cmd.Context(), loc)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for word := range d.Words() {
				w.WriteString(word)
				w.WriteByte('\n')
			}
			return w.Flush()
		},
	}
}
