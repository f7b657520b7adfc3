package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nmanerikar/super-scraper/internal/assemble"
	"github.com/nmanerikar/super-scraper/internal/catalog"
	"github.com/nmanerikar/super-scraper/internal/emitter"
	"github.com/nmanerikar/super-scraper/internal/schema"
)

// The round trip assemble -> emit -> load -> validate is the strongest
// guarantee the repository offers: every reference in the generated
// document resolves and the output is standards-compliant.
func TestFile_AcceptsGeneratedDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	doc, err := assemble.Assemble(catalog.Default(), schema.ScraperDefinitions(), assemble.Options{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if _, err := emitter.Emit(context.Background(), doc, emitter.Options{OutDir: dir}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	for _, name := range []string{"openapi.json", "openapi.yaml"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			loaded, err := File(context.Background(), filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			item := loaded.Paths["/scrape"]
			if item == nil || item.Get == nil {
				t.Fatalf("reloaded document is missing GET /scrape")
			}
			if got := len(item.Get.Parameters); got != catalog.Default().Len() {
				t.Errorf("parameters survived the round trip: got %d, want %d", got, catalog.Default().Len())
			}
		})
	}
}

func TestFile_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	var de *DocError
	if !errors.As(err, &de) {
		t.Fatalf("expected DocError, got %T: %v", err, err)
	}
	if de.Code != InputError {
		t.Errorf("code: got %q, want %q", de.Code, InputError)
	}
}

func TestFile_EmptyPath(t *testing.T) {
	t.Parallel()
	_, err := File(context.Background(), "   ")
	var de *DocError
	if !errors.As(err, &de) || de.Code != InputError {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestFile_MalformedDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{\"openapi\": [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := File(context.Background(), path)
	var de *DocError
	if !errors.As(err, &de) {
		t.Fatalf("expected DocError, got %T: %v", err, err)
	}
	if de.Location == "" || de.Message == "" {
		t.Errorf("error should carry location and message: %+v", de)
	}
}

func TestFile_DanglingReference(t *testing.T) {
	t.Parallel()
	const doc = `{
  "openapi": "3.0.3",
  "info": {"title": "broken", "version": "0.0.1"},
  "paths": {
    "/x": {
      "get": {
        "responses": {
          "200": {
            "description": "ok",
            "content": {
              "application/json": {
                "schema": {"$ref": "#/components/schemas/Missing"}
              }
            }
          }
        }
      }
    }
  }
}
`
	path := filepath.Join(t.TempDir(), "dangling.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := File(context.Background(), path)
	var de *DocError
	if !errors.As(err, &de) {
		t.Fatalf("expected DocError, got %T: %v", err, err)
	}
	if de.Code == InputError {
		t.Errorf("dangling reference is not an input error: %+v", de)
	}
	if !strings.Contains(de.Message, "Missing") {
		t.Errorf("message should name the unresolved reference: %q", de.Message)
	}
}
