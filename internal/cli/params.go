package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nmanerikar/super-scraper/internal/catalog"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params [name]",
		Short: "List recognized query parameters or resolve one name",
		Long: "Without arguments, list every recognized query-parameter name, canonical and alias alike. " +
			"With a name, resolve it to its canonical parameter.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := catalog.NewIndex(catalog.Default())
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			if len(args) == 1 {
				return resolveParam(cmd.OutOrStdout(), ix, args[0])
			}
			listParams(cmd.OutOrStdout(), ix)
			return nil
		},
	}
	return cmd
}

func resolveParam(w io.Writer, ix *catalog.Index, name string) error {
	canonical, ok := ix.CanonicalNameFor(name)
	if !ok {
		return newUsageError(fmt.Sprintf("params: %q is not a recognized parameter", name))
	}
	if canonical == name {
		fmt.Fprintf(w, "%s (canonical)\n", canonical)
		return nil
	}
	fmt.Fprintf(w, "%s -> %s\n", name, canonical)
	return nil
}

func listParams(w io.Writer, ix *catalog.Index) {
	names := ix.AllRecognizedNames()
	sort.Strings(names)
	for _, n := range names {
		canonical, _ := ix.CanonicalNameFor(n)
		if canonical == n {
			fmt.Fprintln(w, n)
			continue
		}
		fmt.Fprintf(w, "%s (alias of %s)\n", n, canonical)
	}
}
