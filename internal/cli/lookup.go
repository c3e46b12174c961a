package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin"
)

var errTokenNotFound = errors.New("token not found")

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <prefix> <token>...",
		Short: "Print the vectors of tokens in GloVe text format",
		Long: `Lookup prints "token v1 v2 ... vn" for every token found in the store.
Missing tokens are reported and make the command fail after all tokens have
been printed.

Examples:
  glovebin lookup glove.6B.50d king
  glovebin lookup glove.6B.50d king queen > pair.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, a, args[0], args[1:])
		},
	}
}

func runLookup(cmd *cobra.Command, a *app, prefix string, tokens []string) error {
	s, err := glovebin.OpenDense(prefix, a.storeOptions()...)
	if err != nil {
		return err
	}
	defer s.Close()

	values, err := s.LookupMany(cmd.Context(), tokens)
	if err != nil {
		return err
	}

	var missing []string
	out := cmd.OutOrStdout()
	for i, v := range values {
		a.logger.LogLookup(cmd.Context(), tokens[i], !v.IsEmpty(), nil)
		if v.IsEmpty() {
			missing = append(missing, tokens[i])
			continue
		}
		var sb strings.Builder
		sb.WriteString(tokens[i])
		for _, x := range v.Values() {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		fmt.Fprintln(out, sb.String())
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errTokenNotFound, strings.Join(missing, ", "))
	}
	return nil
}
