// Package emitter writes an assembled document to disk in one or more
// serialized forms. Writing is the only side effect in the repository;
// everything upstream of this package is a pure transformation.
package emitter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Options controls where and how the document is written.
type Options struct {
	OutDir  string   // required; target directory
	Formats []string // subset of {json, yaml}; defaults to both
	Force   bool     // overwrite existing files
	DryRun  bool     // don't write, only plan
	Verbose bool
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files in deterministic order.
type Result struct {
	Planned []PlannedFile
}

// Emit serializes the document into the requested formats and writes
// openapi.json / openapi.yaml under OutDir.
func Emit(ctx context.Context, doc *openapi3.T, opts Options) (*Result, error) {
	_ = ctx
	if doc == nil {
		return nil, fmt.Errorf("emitter: nil document")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("emitter: OutDir is required")
	}
	formats, err := normalizeFormats(opts.Formats)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := encodeJSON(doc)
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{}
	for _, f := range formats {
		switch f {
		case "json":
			files["openapi.json"] = jsonBytes
		case "yaml":
			yamlBytes, err := jsonToYAML(jsonBytes)
			if err != nil {
				return nil, err
			}
			files["openapi.yaml"] = yamlBytes
		}
	}

	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, p)
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{Planned: planned}, nil
}

func normalizeFormats(formats []string) ([]string, error) {
	if len(formats) == 0 {
		return []string{"json", "yaml"}, nil
	}
	seen := make(map[string]struct{}, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if f != "json" && f != "yaml" {
			return nil, fmt.Errorf("emitter: unsupported format %q (allowed: json, yaml)", f)
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	if len(out) == 0 {
		return []string{"json", "yaml"}, nil
	}
	return out, nil
}

func encodeJSON(doc *openapi3.T) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("emitter: marshal document: %w", err)
	}
	return append(b, '\n'), nil
}

// jsonToYAML re-encodes the canonical JSON form as YAML. Going through
// the JSON bytes keeps both outputs derived from the same marshaling
// rules; yaml.v3 sorts map keys, so the output is deterministic.
func jsonToYAML(jsonBytes []byte) ([]byte, error) {
	var tree any
	if err := json.Unmarshal(jsonBytes, &tree); err != nil {
		return nil, fmt.Errorf("emitter: reparse document: %w", err)
	}
	b, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("emitter: encode yaml: %w", err)
	}
	return b, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// Pre-flight: refuse to clobber existing outputs unless forced.
	if !force {
		for rel := range files {
			p := filepath.Join(abs, rel)
			if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
				return fmt.Errorf("emitter: %q already exists (use --force to overwrite)", p)
			}
		}
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
