// Package assemble synthesizes the scrape endpoint's OpenAPI 3.0
// document from the canonical parameter catalog and the declared
// response schemas. Assembly is a pure transformation: the same inputs
// always produce the same document, and any integrity failure aborts
// with no partial output.
package assemble

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/nmanerikar/super-scraper/internal/catalog"
	"github.com/nmanerikar/super-scraper/internal/schema"
)

// Options overrides the document metadata. Zero fields fall back to the
// built-in values.
type Options struct {
	Title       string
	Version     string
	Description string
	ServerURL   string
}

const (
	defaultTitle       = "Super Scraper API"
	defaultVersion     = "1.0.0"
	defaultDescription = "Scraping endpoint compatible with ScrapingBee, ScraperAPI, and ScrapingAnt request formats."
	defaultServerURL   = "/"
)

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = defaultTitle
	}
	if o.Version == "" {
		o.Version = defaultVersion
	}
	if o.Description == "" {
		o.Description = defaultDescription
	}
	if o.ServerURL == "" {
		o.ServerURL = defaultServerURL
	}
	return o
}

// Assemble builds the complete document. The alias index is constructed
// first so a name collision fails the build before any document exists,
// and the registry is resolved in full before any schema is emitted.
func Assemble(cat *catalog.Catalog, defs []schema.Definition, opts Options) (*openapi3.T, error) {
	if cat == nil {
		return nil, fmt.Errorf("assemble: nil catalog")
	}
	if _, err := catalog.NewIndex(cat); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	reg, err := schema.NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	opts = opts.withDefaults()

	params := make(openapi3.Parameters, 0, cat.Len())
	for _, p := range cat.All() {
		params = append(params, &openapi3.ParameterRef{Value: queryParameter(p)})
	}

	components := &openapi3.Components{Schemas: make(openapi3.Schemas, len(reg.Names()))}
	for _, name := range reg.Names() {
		node, _ := reg.Lookup(name)
		components.Schemas[name] = nodeRef(node)
	}

	op := &openapi3.Operation{
		OperationID: "scrape",
		Summary:     "Scrape a web page",
		Description: "Fetches the target URL, optionally rendering it in a headless browser, and returns its content in the representation selected by the request parameters.",
		Tags:        []string{"scraping"},
		Parameters:  params,
		Responses:   scrapeResponses(),
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       opts.Title,
			Version:     opts.Version,
			Description: opts.Description,
		},
		Servers: openapi3.Servers{
			{URL: opts.ServerURL, Description: "Scraping service"},
		},
		Tags: openapi3.Tags{
			{Name: "scraping", Description: "Page fetching, rendering, and extraction"},
		},
		Paths: openapi3.Paths{
			"/scrape": &openapi3.PathItem{Get: op},
		},
		Components: components,
	}
	return doc, nil
}

// queryParameter converts one catalog entry into a query parameter
// object. Defaults equal to the kind's natural zero value are omitted:
// they restate what an absent parameter already means, so emitting them
// would only bloat the document.
func queryParameter(p catalog.ParameterSpec) *openapi3.Parameter {
	s := &openapi3.Schema{Type: oasType(p.Kind)}
	for _, e := range p.Enum {
		s.Enum = append(s.Enum, e)
	}
	if p.Range != nil {
		s.Min = openapi3.Float64Ptr(float64(p.Range.Min))
		s.Max = openapi3.Float64Ptr(float64(p.Range.Max))
	}
	if p.Default != nil && !p.Default.IsZero() {
		s.Default = p.Default.Interface()
	}
	if p.Example != nil {
		s.Example = p.Example.Interface()
	}
	return &openapi3.Parameter{
		Name:        p.Name,
		In:          openapi3.ParameterInQuery,
		Description: p.Description,
		Required:    p.Required,
		Schema:      &openapi3.SchemaRef{Value: s},
	}
}

func oasType(k catalog.Kind) string {
	switch k {
	case catalog.String:
		return "string"
	case catalog.Integer:
		return "integer"
	case catalog.Boolean:
		return "boolean"
	}
	return ""
}

// nodeRef converts a schema node into the kin-openapi representation.
// Reference nodes become $ref strings and are never inlined; that is
// what keeps the recursive extraction-rule shape finite.
func nodeRef(n *schema.Node) *openapi3.SchemaRef {
	if n.Ref != "" {
		return &openapi3.SchemaRef{Ref: "#/components/schemas/" + n.Ref}
	}

	s := &openapi3.Schema{
		Description: n.Description,
		Nullable:    n.Nullable,
		Format:      n.Format,
	}

	if len(n.OneOf) > 0 {
		for _, alt := range n.OneOf {
			s.OneOf = append(s.OneOf, nodeRef(alt))
		}
		return &openapi3.SchemaRef{Value: s}
	}

	s.Type = string(n.Type)
	for _, e := range n.Enum {
		s.Enum = append(s.Enum, e)
	}

	switch n.Type {
	case schema.TypeArray:
		s.Items = nodeRef(n.Items)
	case schema.TypeObject:
		if len(n.Fields) > 0 {
			s.Properties = make(openapi3.Schemas, len(n.Fields))
			for _, f := range n.Fields {
				s.Properties[f.Name] = nodeRef(f.Node)
			}
		}
		s.Required = append([]string(nil), n.Required...)
		switch {
		case n.Extra == nil:
			s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
		case n.Extra.Schema != nil:
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: nodeRef(n.Extra.Schema)}
		default:
			// Extra with no schema: fields of any shape are accepted,
			// which is OpenAPI's default, so nothing is emitted.
		}
	}
	return &openapi3.SchemaRef{Value: s}
}

// scrapeResponses wires the fixed status-code table of the scrape
// operation. The success body lists all four possible representations;
// choosing among them at runtime is the HTTP layer's job, the document
// only records that each is a possible outcome.
func scrapeResponses() openapi3.Responses {
	return openapi3.Responses{
		"200": &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: strPtr("Scraped content in the representation selected by the request parameters."),
			Content: openapi3.Content{
				"text/html": &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
					Type:        "string",
					Description: "Rendered page HTML.",
				}}},
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Ref: "#/components/schemas/ScrapeResult"},
				},
				"image/png": &openapi3.MediaType{Schema: binarySchema("PNG screenshot of the page.")},
				"application/octet-stream": &openapi3.MediaType{
					Schema: binarySchema("Raw bytes of a binary target."),
				},
			},
		}},
		"400": &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: strPtr("The request was rejected before scraping: unknown parameter, invalid value, or conflicting options."),
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Ref: "#/components/schemas/Error"},
				},
			},
		}},
		"408": &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: strPtr("Navigation, rendering, or extraction exceeded the timeout budget."),
			Content: openapi3.Content{
				"text/plain": &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
					Type:        "string",
					Description: "Plain-text timeout notice.",
				}}},
			},
		}},
		"500": &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: strPtr("The scrape failed inside the service."),
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Ref: "#/components/schemas/Error"},
				},
			},
		}},
		"502": &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: strPtr("The target answered with an error status; its body is passed through unchanged."),
			Content: openapi3.Content{
				"text/plain": &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
					Type:        "string",
					Description: "Upstream error body.",
				}}},
			},
		}},
	}
}

func binarySchema(desc string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:        "string",
		Format:      "binary",
		Description: desc,
	}}
}

func strPtr(s string) *string { return &s }
