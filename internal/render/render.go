// Package render substitutes resolved tag values into template text.
package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/resolver"
)

// tokenPattern matches a delimited token whose name has no delimiter characters.
var tokenPattern = regexp.MustCompile(`<<([^<>]+)>>`)

// Result is a render with the tokens that were left in place.
type Result struct {
	Body       string   `json:"body"`
	Unresolved []string `json:"unresolved"`
}

// Renderer renders templates against records or pre-resolved values.
type Renderer struct {
	resolver *resolver.Resolver
}

// New creates a Renderer backed by res.
func New(res *resolver.Resolver) *Renderer {
	return &Renderer{resolver: res}
}

// Resolver returns the resolver used for record renders.
func (r *Renderer) Resolver() *resolver.Resolver {
	return r.resolver
}

// Render resolves data against tags and substitutes the result into template.
func (r *Renderer) Render(template string, data domain.RenderData, tags []domain.SmartTag) string {
	return Substitute(template, r.resolver.Resolve(data, tags))
}

// RenderStrict is Render plus the list of tokens that remained unresolved.
func (r *Renderer) RenderStrict(template string, data domain.RenderData, tags []domain.SmartTag) Result {
	body := r.Render(template, data, tags)
	return Result{Body: body, Unresolved: UnresolvedTokens(body)}
}

// RenderMap substitutes already resolved values into template.
func (r *Renderer) RenderMap(template string, values map[string]string) string {
	return Substitute(template, values)
}

// Substitute replaces every "<<key>>" occurrence for each key in values.
//
// Matching is literal and case-sensitive. The template is scanned once, so a
// replacement containing another token's text is not expanded again. Tokens with
// no entry in values are left as they are.
func Substitute(template string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(template, domain.TokenOpen) {
		return template
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// Names cannot contain the delimiters, so no token is a prefix of another
	// and the order only keeps the replacer deterministic.
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, domain.Token(k), values[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// UnresolvedTokens lists the distinct tokens in s, in order of first appearance.
func UnresolvedTokens(s string) []string {
	matches := tokenPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
