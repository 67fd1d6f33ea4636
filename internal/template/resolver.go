package template

import (
	"maps"
	"regexp"
	"slices"
)

// Bindings maps token names to their literal replacement text.
type Bindings map[string]string

// Delimiters wrap a token name in the template text.
type Delimiters struct {
	// Left opens a token.
	Left string `yaml:"left"`
	// Right closes a token.
	Right string `yaml:"right"`
}

// DefaultDelimiters produce "@NAME@" tokens.
//
//nolint:gochecknoglobals // Read-only default value.
var DefaultDelimiters = Delimiters{Left: "@", Right: "@"}

// identifierPattern is the accepted token name syntax.
const identifierPattern = `([A-Za-z_][A-Za-z0-9_]*)`

// Resolver finds and substitutes tokens for one delimiter style.
type Resolver struct {
	// delimiters is the style this resolver was built for.
	delimiters Delimiters
	// pattern matches a whole token and captures its name.
	pattern *regexp.Regexp
}

// Result is the outcome of a successful render.
type Result struct {
	// Text is the fully rendered template.
	Text string
	// Warning lists unused bindings, nil when every binding was used.
	Warning *UnusedBindingWarning
}

// RenderOption tweaks a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	optional map[string]struct{}
}

// WithOptional marks bindings that templates may omit without a warning.
func WithOptional(names ...string) RenderOption {
	return func(o *renderOptions) {
		for _, name := range names {
			o.optional[name] = struct{}{}
		}
	}
}

// NewResolver builds a resolver for the given delimiters.
func NewResolver(delimiters Delimiters) (*Resolver, error) {
	if delimiters.Left == "" || delimiters.Right == "" {
		return nil, ErrInvalidDelimiters
	}

	pattern := regexp.QuoteMeta(delimiters.Left) + identifierPattern + regexp.QuoteMeta(delimiters.Right)

	return &Resolver{
		delimiters: delimiters,
		pattern:    regexp.MustCompile(pattern),
	}, nil
}

// Delimiters returns the delimiter style of the resolver.
func (r *Resolver) Delimiters() Delimiters {
	return r.delimiters
}

// Tokens returns the sorted, de-duplicated token names used by tmpl.
func (r *Resolver) Tokens(tmpl string) []string {
	seen := make(map[string]struct{})
	for _, match := range r.pattern.FindAllStringSubmatch(tmpl, -1) {
		seen[match[1]] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Render substitutes every token in tmpl with its binding.
// Text outside tokens is copied untouched. If any token is unbound the
// render fails with *UnboundPlaceholderError and no text is returned.
func (r *Resolver) Render(tmpl string, bindings Bindings, options ...RenderOption) (*Result, error) {
	opts := renderOptions{optional: make(map[string]struct{})}
	for _, option := range options {
		option(&opts)
	}

	tokens := r.Tokens(tmpl)

	var unbound []string

	for _, name := range tokens {
		if _, ok := bindings[name]; !ok {
			unbound = append(unbound, name)
		}
	}

	if len(unbound) > 0 {
		return nil, &UnboundPlaceholderError{Names: unbound}
	}

	text := r.pattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		return bindings[r.pattern.FindStringSubmatch(token)[1]]
	})

	result := &Result{Text: text}

	var unused []string

	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		if _, optional := opts.optional[name]; optional {
			continue
		}

		if _, found := slices.BinarySearch(tokens, name); !found {
			unused = append(unused, name)
		}
	}

	if len(unused) > 0 {
		result.Warning = &UnusedBindingWarning{Names: unused}
	}

	return result, nil
}

// Render resolves tmpl with the default "@NAME@" delimiters.
func Render(tmpl string, bindings Bindings, options ...RenderOption) (*Result, error) {
	resolver, err := NewResolver(DefaultDelimiters)
	if err != nil {
		return nil, err
	}

	return resolver.Render(tmpl, bindings, options...)
}
