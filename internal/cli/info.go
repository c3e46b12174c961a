package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin/store"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <prefix>",
		Short: "Describe a binary store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, a, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, a *app, prefix string) error {
	m, err := store.OpenPrefix(prefix, a.mappedOptions()...)
	if err != nil {
		return err
	}
	defer m.Close()

	dictPath, vecPath := store.Paths(prefix)
	dictInfo, err := os.Stat(dictPath)
	if err != nil {
		return err
	}
	vecInfo, err := os.Stat(vecPath)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "dictionary:\t%s (%d bytes)\n", dictPath, dictInfo.Size())
	fmt.Fprintf(w, "vectors:\t%s (%d bytes)\n", vecPath, vecInfo.Size())
	fmt.Fprintf(w, "records:\t%d\n", m.Len())
	fmt.Fprintf(w, "duplicates:\t%d\n", m.Duplicates())
	fmt.Fprintf(w, "dimension:\t%d\n", m.Dim())
	fmt.Fprintf(w, "block size:\t%d\n", m.BlockSize())
	return w.Flush()
}

// mappedOptions maps the configuration onto store options for commands that
// work on the mapping directly.
func (a *app) mappedOptions() []store.Option {
	opts := []store.Option{
		store.WithLogger(a.logger.Logger),
		store.WithMetrics(a.observer),
	}
	if a.cfg.Store.Dimension > 0 {
		opts = append(opts, store.WithDimension(a.cfg.Store.Dimension))
	}
	return opts
}
