// Package verify reloads a generated document from disk and validates
// it with the OpenAPI toolchain, proving that every reference resolves
// and the serialized form is standards-compliant.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrorCode categorizes verification failures for clearer messaging.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// DocError is a structured verification error with optional location
// and JSON Pointer.
type DocError struct {
	Code        ErrorCode
	Message     string
	Location    string // file path
	JSONPointer string // e.g. "#/paths/~1scrape/get"
	Cause       error
}

func (e *DocError) Error() string { return e.Message }
func (e *DocError) Unwrap() error { return e.Cause }

// File loads the document at path and validates it. External refs are
// disabled: a generated document must be self-contained.
func File(ctx context.Context, path string) (*openapi3.T, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &DocError{Code: InputError, Message: "verify: path is empty"}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &DocError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: path, Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &DocError{Code: InputError, Message: fmt.Sprintf("stat %s: %v", abs, err), Location: abs, Cause: err}
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	doc, err := loader.LoadFromFile(abs)
	if err != nil {
		return nil, mapLoadErr(err, abs)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, mapLoadErr(err, abs)
	}
	return doc, nil
}

func mapLoadErr(err error, location string) error {
	pointer := extractJSONPointer(err)
	code := ValidationError
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "parse") || strings.Contains(lower, "invalid character") || strings.Contains(lower, "unmarshal") {
		code = ParseError
	}
	return &DocError{Code: code, Message: err.Error(), Location: location, JSONPointer: pointer, Cause: err}
}

var jsonPtrRe = regexp.MustCompile(`#/[^\s'"]+`)

func extractJSONPointer(err error) string {
	if err == nil {
		return ""
	}
	if me, ok := err.(openapi3.MultiError); ok {
		if len(me) > 0 {
			return extractJSONPointer(me[0])
		}
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
		if se.SchemaField != "" {
			return se.SchemaField
		}
	}
	if m := jsonPtrRe.FindString(err.Error()); m != "" {
		return m
	}
	return ""
}
