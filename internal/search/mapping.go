package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Indexed field names.
const (
	fieldName        = "name"
	fieldNamePrefix  = "name_prefix"
	fieldTag         = "tag"
	fieldBinding     = "field"
	fieldSource      = "source"
	fieldCategory    = "category"
	fieldDescription = "description"
)

// buildIndexMapping maps one smart tag per document. Display names get English
// stemming for free text plus a lowercase copy for prefix typeahead; source and
// category are exact keywords for filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Analyzer = en.AnalyzerName
	name.Store = true
	doc.AddFieldMappingsAt(fieldName, name)

	namePrefix := bleve.NewTextFieldMapping()
	namePrefix.Analyzer = simple.Name
	doc.AddFieldMappingsAt(fieldNamePrefix, namePrefix)

	tag := bleve.NewTextFieldMapping()
	tag.Analyzer = keyword.Name
	tag.Store = true
	tag.Index = false
	doc.AddFieldMappingsAt(fieldTag, tag)

	binding := bleve.NewTextFieldMapping()
	binding.Analyzer = simple.Name
	doc.AddFieldMappingsAt(fieldBinding, binding)

	for _, f := range []string{fieldSource, fieldCategory} {
		kw := bleve.NewTextFieldMapping()
		kw.Analyzer = keyword.Name
		kw.Store = true
		doc.AddFieldMappingsAt(f, kw)
	}

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = en.AnalyzerName
	doc.AddFieldMappingsAt(fieldDescription, desc)

	indexMapping.DefaultMapping = doc
	return indexMapping
}
