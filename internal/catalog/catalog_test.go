package catalog

import (
	"errors"
	"strings"
	"testing"
)

func validSpec() ParameterSpec {
	return ParameterSpec{
		Name:        "render_js",
		Kind:        Boolean,
		Description: "Render the page in a headless browser.",
		Default:     vp(Bool(true)),
	}
}

func TestNew_Valid(t *testing.T) {
	t.Parallel()
	c, err := New([]ParameterSpec{validSpec()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("len: got %d", c.Len())
	}
	if c.All()[0].Name != "render_js" {
		t.Errorf("name: got %q", c.All()[0].Name)
	}
}

func TestNew_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*ParameterSpec)
		want   string
	}{
		{
			name:   "empty name",
			mutate: func(p *ParameterSpec) { p.Name = "" },
			want:   "name is empty",
		},
		{
			name:   "empty description",
			mutate: func(p *ParameterSpec) { p.Description = "" },
			want:   "description is empty",
		},
		{
			name:   "unknown kind",
			mutate: func(p *ParameterSpec) { p.Kind = "float"; p.Default = nil },
			want:   "unknown kind",
		},
		{
			name: "inverted range",
			mutate: func(p *ParameterSpec) {
				p.Kind = Integer
				p.Default = nil
				p.Range = &IntRange{Min: 10, Max: 5}
			},
			want: "minimum 10 exceeds maximum 5",
		},
		{
			name: "range on boolean",
			mutate: func(p *ParameterSpec) {
				p.Range = &IntRange{Min: 0, Max: 1}
			},
			want: "only valid for integer",
		},
		{
			name: "empty enum",
			mutate: func(p *ParameterSpec) {
				p.Kind = String
				p.Default = nil
				p.Enum = []string{}
			},
			want: "enum is present but empty",
		},
		{
			name: "enum on integer",
			mutate: func(p *ParameterSpec) {
				p.Kind = Integer
				p.Default = nil
				p.Enum = []string{"a"}
			},
			want: "only valid for string",
		},
		{
			name: "default kind mismatch",
			mutate: func(p *ParameterSpec) {
				p.Default = vp(Str("yes"))
			},
			want: "default is string, parameter is boolean",
		},
		{
			name: "default outside enum",
			mutate: func(p *ParameterSpec) {
				p.Kind = String
				p.Enum = []string{"desktop", "mobile"}
				p.Default = vp(Str("tablet"))
			},
			want: "not an enum member",
		},
		{
			name: "example kind mismatch",
			mutate: func(p *ParameterSpec) {
				p.Example = vp(Int(1))
			},
			want: "example is integer, parameter is boolean",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			spec := validSpec()
			tc.mutate(&spec)
			_, err := New([]ParameterSpec{spec})
			if err == nil {
				t.Fatalf("expected error")
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValue_IsZero(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    Value
		zero bool
	}{
		{Bool(false), true},
		{Bool(true), false},
		{Int(0), true},
		{Int(140000), false},
		{Str(""), true},
		{Str("desktop"), false},
	}
	for _, tc := range cases {
		if got := tc.v.IsZero(); got != tc.zero {
			t.Errorf("IsZero(%v): got %v, want %v", tc.v.Interface(), got, tc.zero)
		}
	}
}

func TestDefault_TableIsValid(t *testing.T) {
	t.Parallel()
	c := Default()
	if c.Len() == 0 {
		t.Fatalf("default catalog is empty")
	}
	// The table must also pass the global uniqueness check.
	if _, err := NewIndex(c); err != nil {
		t.Fatalf("default catalog has name collisions: %v", err)
	}
	// Spot-check ordering: url first, since it is the one required parameter.
	first := c.All()[0]
	if first.Name != "url" || !first.Required {
		t.Errorf("first parameter: got %q (required=%v)", first.Name, first.Required)
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	t.Parallel()
	a := Default().All()
	b := Default().All()
	a[0].Description = "mutated"
	if b[0].Description == "mutated" {
		t.Fatalf("catalogs share backing storage")
	}
}
