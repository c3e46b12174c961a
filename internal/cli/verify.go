package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glovebin/store"
	"github.com/hupe1980/glovebin/vector"
)

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <prefix>",
		Short: "Check a binary store end to end",
		Long: `Verify streams both files sequentially and checks that every record
decodes and matches what the memory-mapped store returns for its token.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, a, args[0])
		},
	}
}

func runVerify(cmd *cobra.Command, a *app, prefix string) error {
	m, err := store.OpenPrefix(prefix, a.mappedOptions()...)
	if err != nil {
		return err
	}
	defer m.Close()

	dictPath, vecPath := store.Paths(prefix)
	dict, err := os.Open(dictPath) // #nosec G304 -- path is operator supplied
	if err != nil {
		return err
	}
	defer dict.Close()
	vec, err := os.Open(vecPath) // #nosec G304 -- path is operator supplied
	if err != nil {
		return err
	}
	defer vec.Close()

	var opts []store.Option
	if a.cfg.Store.Dimension > 0 {
		opts = append(opts, store.WithDimension(a.cfg.Store.Dimension))
	}

	seen := make(map[string]struct{}, m.Len())
	var scanned int
	for e, err := range store.Scan(dict, vec, opts...) {
		if err != nil {
			return fmt.Errorf("verify: record %d: %w", scanned+1, err)
		}
		scanned++
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if _, dup := seen[e.Token]; dup {
			continue
		}
		seen[e.Token] = struct{}{}

		block, found, err := m.Block(e.Token)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("verify: token %q missing from mapped store", e.Token)
		}
		if !bytes.Equal(block, vector.AppendValues(nil, e.Vector.Values())) {
			return fmt.Errorf("verify: token %q differs between scan and mapping", e.Token)
		}
	}

	if len(seen) != m.Len() {
		return fmt.Errorf("verify: scanned %d distinct tokens, mapped store has %d", len(seen), m.Len())
	}

	a.logger.Info("store verified", "prefix", prefix, "records", scanned, "distinct", len(seen))
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d records (%d distinct), dimension %d\n", scanned, len(seen), m.Dim())
	return nil
}
