package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin"
	"github.com/hupe1980/glovebin/vector"
)

func newDistanceCommand(a *app) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "distance <prefix> <token> <token> [<token> <token>...]",
		Short: "Print the cosine distance between token pairs",
		Long: `Distance prints 1 - cos(a, b) for each token pair. A token missing from
the store yields 1.

Examples:
  glovebin distance glove.6B.50d king queen
  glovebin distance --cached glove.6B.50d cat dog cat car`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || (len(args)-1)%2 != 0 {
				return fmt.Errorf("expected a prefix followed by token pairs, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("cached") {
				a.cfg.Cache.Enabled = cached
			}
			return runDistance(cmd, a, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "serve repeated tokens from the read-through cache")

	return cmd
}

func runDistance(cmd *cobra.Command, a *app, prefix string, tokens []string) error {
	s, err := glovebin.Open(prefix, a.storeOptions()...)
	if err != nil {
		return err
	}

	var r glovebin.Reader[vector.Vector] = s
	var closer io.Closer = s
	if a.cfg.Cache.Enabled {
		c, err := glovebin.Cached[vector.Vector](s, a.storeOptions()...)
		if err != nil {
			_ = s.Close()
			return err
		}
		r, closer = c, c
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	for i := 0; i < len(tokens); i += 2 {
		d, err := glovebin.Distance(cmd.Context(), r, tokens[i], tokens[i+1])
		if err != nil {
			return fmt.Errorf("distance %s %s: %w", tokens[i], tokens[i+1], err)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", tokens[i], tokens[i+1], strconv.FormatFloat(d, 'f', 6, 64))
	}
	return nil
}
