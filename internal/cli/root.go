package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the super-scraper CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "super-scraper",
		Short:         "Generate and inspect the scrape endpoint's OpenAPI contract",
		Long:          "super-scraper compiles the canonical scraping parameter catalog and response schemas into an OpenAPI 3.0 document, and resolves third-party compatibility parameter names.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	flagErr := func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	}
	cmd.SetFlagErrorFunc(flagErr)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	for _, sub := range []*cobra.Command{
		newGenerateCmd(),
		newCheckCmd(),
		newParamsCmd(),
		newInitCmd(),
	} {
		sub.SetFlagErrorFunc(flagErr)
		cmd.AddCommand(sub)
	}

	return cmd
}
