package schema

// ScraperDefinitions returns the response-body schemas of the scrape
// endpoint. ExtractRules and ExtractRule are mutually recursive: a
// rule's output may itself be a nested rule mapping of arbitrary depth,
// expressed through registry references rather than embedding.
func ScraperDefinitions() []Definition {
	str := func(desc string) *Node { return &Node{Type: TypeString, Description: desc} }

	return []Definition{
		{
			Name: "ExtractRule",
			Node: &Node{
				Type:        TypeObject,
				Description: "A single extraction rule applied to the rendered page.",
				Fields: []Field{
					{Name: "selector", Node: str("CSS selector locating the element(s) to extract.")},
					{Name: "type", Node: &Node{
						Type:        TypeString,
						Description: "Extract the first match (item) or every match (list).",
						Enum:        []string{"item", "list"},
					}},
					{Name: "clean", Node: &Node{
						Type:        TypeBoolean,
						Description: "Trim and collapse whitespace in extracted text.",
					}},
					{Name: "output", Node: OneOf(
						str("Attribute to extract: text, html, or @<attribute-name>."),
						Ref("ExtractRules"),
					)},
				},
				Required: []string{"selector"},
			},
		},
		{
			Name: "ExtractRules",
			Node: &Node{
				Type:        TypeObject,
				Description: "Mapping from output field name to a selector string or a full extraction rule.",
				Extra: &Extra{Schema: OneOf(
					str("Shorthand: a bare CSS selector extracting the first match's text."),
					Ref("ExtractRule"),
				)},
			},
		},
		{
			Name: "Cookie",
			Node: &Node{
				Type:        TypeObject,
				Description: "A cookie observed in the browser session.",
				Fields: []Field{
					{Name: "name", Node: str("Cookie name.")},
					{Name: "value", Node: str("Cookie value.")},
					{Name: "domain", Node: str("Domain the cookie is scoped to.")},
					{Name: "path", Node: str("Path the cookie is scoped to.")},
					{Name: "secure", Node: &Node{Type: TypeBoolean, Description: "Sent over HTTPS only."}},
					{Name: "http_only", Node: &Node{Type: TypeBoolean, Description: "Hidden from page JavaScript."}},
				},
				Required: []string{"name", "value"},
			},
		},
		{
			Name: "Iframe",
			Node: &Node{
				Type:        TypeObject,
				Description: "Content of an iframe encountered while rendering.",
				Fields: []Field{
					{Name: "src", Node: str("Iframe source URL.")},
					{Name: "content", Node: str("Rendered HTML of the iframe.")},
				},
			},
		},
		{
			Name: "XhrCall",
			Node: &Node{
				Type:        TypeObject,
				Description: "An XHR or fetch request issued by the page while rendering.",
				Fields: []Field{
					{Name: "url", Node: str("Request URL.")},
					{Name: "method", Node: str("HTTP method.")},
					{Name: "status_code", Node: &Node{Type: TypeInteger, Description: "Response status code."}},
					{Name: "headers", Node: &Node{
						Type:        TypeObject,
						Description: "Response headers by name.",
						Extra:       &Extra{Schema: &Node{Type: TypeString}},
					}},
					{Name: "body", Node: str("Response body, truncated when large.")},
				},
				Required: []string{"url"},
			},
		},
		{
			Name: "JsScenarioReport",
			Node: &Node{
				Type:        TypeObject,
				Description: "Execution report of the js_scenario instruction list.",
				Fields: []Field{
					{Name: "task_executed", Node: &Node{Type: TypeInteger, Description: "Number of instructions executed."}},
					{Name: "task_success", Node: &Node{Type: TypeInteger, Description: "Number of instructions that succeeded."}},
					{Name: "task_failure", Node: &Node{Type: TypeInteger, Description: "Number of instructions that failed."}},
					{Name: "tasks", Node: ArrayOf(&Node{
						Type: TypeObject,
						Fields: []Field{
							{Name: "task", Node: str("Instruction name and arguments.")},
							{Name: "success", Node: &Node{Type: TypeBoolean}},
							{Name: "duration", Node: &Node{Type: TypeNumber, Description: "Execution time in seconds."}},
						},
					})},
				},
			},
		},
		{
			Name: "VerboseResult",
			Node: &Node{
				Type:        TypeObject,
				Description: "Verbose JSON envelope returned when json_response is enabled.",
				Fields: []Field{
					{Name: "body", Node: str("Page content: HTML, extracted JSON, or base64 when binary.")},
					{Name: "type", Node: &Node{
						Type:        TypeString,
						Description: "How body is encoded.",
						Enum:        []string{"html", "json", "b64_png", "b64_bytes"},
					}},
					{Name: "initial-status-code", Node: &Node{Type: TypeInteger, Description: "Status code of the first response from the target."}},
					{Name: "resolved-url", Node: str("Final URL after redirects.")},
					{Name: "headers", Node: &Node{
						Type:        TypeObject,
						Description: "Response headers from the target, by name.",
						Extra:       &Extra{Schema: &Node{Type: TypeString}},
					}},
					{Name: "cookies", Node: ArrayOf(Ref("Cookie"))},
					{Name: "iframes", Node: ArrayOf(Ref("Iframe"))},
					{Name: "xhr", Node: ArrayOf(Ref("XhrCall"))},
					{Name: "evaluate_results", Node: ArrayOf(str("Serialized result of an evaluate instruction."))},
					{Name: "js_scenario_report", Node: Ref("JsScenarioReport")},
					{Name: "screenshot", Node: &Node{
						Type:        TypeString,
						Description: "Base64-encoded PNG when a screenshot was requested.",
						Nullable:    true,
					}},
					{Name: "metadata", Node: &Node{
						Type: TypeObject,
						Fields: []Field{
							{Name: "title", Node: str("Page title.")},
							{Name: "description", Node: str("Meta description, when present.")},
						},
					}},
				},
				Required: []string{"body", "type"},
			},
		},
		{
			Name: "ExtractedData",
			Node: &Node{
				Type:        TypeObject,
				Description: "Arbitrary JSON produced by extract_rules or autoparse; its shape is author-defined.",
				Extra:       &Extra{},
			},
		},
		{
			Name: "ScrapeResult",
			Node: OneOf(
				Ref("VerboseResult"),
				Ref("ExtractedData"),
			),
		},
		{
			Name: "Error",
			Node: &Node{
				Type:        TypeObject,
				Description: "Error envelope returned for rejected or failed scrapes.",
				Fields: []Field{
					{Name: "error", Node: str("Human-readable reason for the failure.")},
					{Name: "url", Node: str("The requested target URL, when known.")},
					{Name: "status", Node: &Node{Type: TypeInteger, Description: "Upstream status code, when the target answered."}},
				},
				Required: []string{"error"},
			},
		},
	}
}
