package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit caps results when the caller does not.
const DefaultLimit = 20

// Params configures a tag search.
type Params struct {
	Query    string
	Category string // exact category filter, empty for all
	Source   string // exact source filter, empty for all
	Limit    int
}

// Hit is one matching tag.
type Hit struct {
	ID       string  `json:"id"`
	Tag      string  `json:"tag"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Search returns tags matching the query, best first. A blank query matches
// nothing.
func (x *TagIndex) Search(ctx context.Context, p Params) ([]Hit, error) {
	text := strings.TrimSpace(p.Query)
	if text == "" {
		return []Hit{}, nil
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(text, p), limit, 0, false)
	req.Fields = []string{fieldTag, fieldCategory}

	x.mu.RLock()
	res, err := x.index.SearchInContext(ctx, req)
	x.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields[fieldTag].(string); ok {
			hit.Tag = v
		}
		if v, ok := h.Fields[fieldCategory].(string); ok {
			hit.Category = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// buildQuery matches display names most strongly, then name prefixes for
// typeahead, then the bound field and description.
func buildQuery(text string, p Params) query.Query {
	name := bleve.NewMatchQuery(text)
	name.SetField(fieldName)
	name.SetBoost(3)

	desc := bleve.NewMatchQuery(text)
	desc.SetField(fieldDescription)

	binding := bleve.NewMatchQuery(text)
	binding.SetField(fieldBinding)
	binding.SetBoost(1.5)

	should := []query.Query{name, desc, binding}
	for _, term := range strings.Fields(strings.ToLower(text)) {
		prefix := bleve.NewPrefixQuery(term)
		prefix.SetField(fieldNamePrefix)
		prefix.SetBoost(2)
		should = append(should, prefix)
	}
	matchText := bleve.NewDisjunctionQuery(should...)

	must := []query.Query{matchText}
	if p.Category != "" {
		cq := bleve.NewTermQuery(p.Category)
		cq.SetField(fieldCategory)
		must = append(must, cq)
	}
	if p.Source != "" {
		sq := bleve.NewTermQuery(p.Source)
		sq.SetField(fieldSource)
		must = append(must, sq)
	}
	if len(must) == 1 {
		return matchText
	}
	return bleve.NewConjunctionQuery(must...)
}
