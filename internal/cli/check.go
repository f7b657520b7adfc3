package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmanerikar/super-scraper/internal/verify"
)

// CheckConfig captures the options for the check command.
type CheckConfig struct {
	Input   string
	Verbose bool
}

var checkRunner = runCheck

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a generated OpenAPI document",
		Long:  "Reload a generated document from disk, resolve every reference, and validate it against the OpenAPI 3.0 object model.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &CheckConfig{Input: strings.TrimSpace(input), Verbose: verbose}
			if cfg.Input == "" {
				return newUsageError("check: --input is required")
			}
			return checkRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("input", "", "Path to the document to validate (openapi.json or openapi.yaml)")

	return cmd
}

func runCheck(ctx context.Context, cfg *CheckConfig) error {
	doc, err := verify.File(ctx, cfg.Input)
	if err != nil {
		var de *verify.DocError
		if errors.As(err, &de) {
			msg := fmt.Sprintf("check: %s: %s", de.Code, de.Message)
			if de.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, de.Location)
			}
			if de.JSONPointer != "" {
				msg = fmt.Sprintf("%s\nPointer: %s", msg, de.JSONPointer)
			}
			return newUsageError(msg)
		}
		return err
	}

	schemas := 0
	if doc.Components != nil {
		schemas = len(doc.Components.Schemas)
	}
	params, responses := 0, 0
	for _, item := range doc.Paths {
		if item == nil || item.Get == nil {
			continue
		}
		params += len(item.Get.Parameters)
		responses += len(item.Get.Responses)
	}
	fmt.Fprintf(os.Stdout, "%s is valid: %d paths, %d parameters, %d responses, %d schemas\n",
		cfg.Input, len(doc.Paths), params, responses, schemas)
	return nil
}
