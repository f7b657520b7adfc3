package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nmanerikar/super-scraper/internal/assemble"
	"github.com/nmanerikar/super-scraper/internal/catalog"
	"github.com/nmanerikar/super-scraper/internal/emitter"
	"github.com/nmanerikar/super-scraper/internal/schema"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Out        string
	Formats    []string
	Title      string
	APIVersion string
	ServerURL  string
	ConfigPath string
	DryRun     bool
	Force      bool
	Verbose    bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Out: "."}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble the OpenAPI document and write it to disk",
		Long: "Assemble the scrape endpoint's OpenAPI document from the built-in parameter catalog " +
			"and response schemas, then write openapi.json and/or openapi.yaml.",
		Example: strings.TrimSpace(`  super-scraper generate --out ./dist
  super-scraper --config contract.yaml generate --format json --force`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("out", "", "Output directory (defaults to the working directory)")
	flags.StringSlice("format", nil, "Serialization formats to write (json,yaml); defaults to both")
	flags.String("title", "", "Override the document title")
	flags.String("api-version", "", "Override the document version")
	flags.String("server-url", "", "Override the server URL")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing output files when set")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("format") {
		value, err := flags.GetStringSlice("format")
		if err != nil {
			return err
		}
		cfg.Formats = sanitizeList(value)
	}
	if flags.Changed("title") {
		value, err := flags.GetString("title")
		if err != nil {
			return err
		}
		cfg.Title = strings.TrimSpace(value)
	}
	if flags.Changed("api-version") {
		value, err := flags.GetString("api-version")
		if err != nil {
			return err
		}
		cfg.APIVersion = strings.TrimSpace(value)
	}
	if flags.Changed("server-url") {
		value, err := flags.GetString("server-url")
		if err != nil {
			return err
		}
		cfg.ServerURL = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("force") {
		value, err := flags.GetBool("force")
		if err != nil {
			return err
		}
		cfg.Force = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Out = strings.TrimSpace(c.Out)
	if c.Out == "" {
		c.Out = "."
	}
	c.Formats = sanitizeList(c.Formats)
	c.Title = strings.TrimSpace(c.Title)
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.ServerURL = strings.TrimSpace(c.ServerURL)
}

func (c *GenerateConfig) validate() error {
	for _, f := range c.Formats {
		switch strings.ToLower(f) {
		case "json", "yaml":
		default:
			return newUsageError(fmt.Sprintf("generate: unsupported --format %q (allowed: json, yaml)", f))
		}
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	doc, err := assemble.Assemble(catalog.Default(), schema.ScraperDefinitions(), assemble.Options{
		Title:     cfg.Title,
		Version:   cfg.APIVersion,
		ServerURL: cfg.ServerURL,
	})
	if err != nil {
		return fmt.Errorf("assemble document: %w", err)
	}

	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	res, err := emitter.Emit(ctx, doc, emitter.Options{
		OutDir:  cfg.Out,
		Formats: cfg.Formats,
		Force:   cfg.Force,
		DryRun:  cfg.DryRun,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return wrapOutputError(err, absOut)
	}

	if cfg.DryRun {
		printPlan(absOut, res.Planned)
		return nil
	}
	if cfg.Verbose {
		for _, p := range res.Planned {
			fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", filepath.Join(absOut, p.RelPath), p.Size)
		}
	}
	return nil
}

func printPlan(outDir string, planned []emitter.PlannedFile) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", outDir, len(planned))
	for _, p := range planned {
		fmt.Fprintf(os.Stdout, "- %s\n", p.RelPath)
	}
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "already exists") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg))
	}
	return err
}

func sanitizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "formats", "format":
			list, err := valueAsStringSlice(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Formats = sanitizeList(list)
		case "title":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Title = str
		case "apiversion":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.APIVersion = str
		case "serverurl":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.ServerURL = str
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "force":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Force = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
