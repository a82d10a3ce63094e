package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/domain"
)

func TestFieldsForSource_KnownSources(t *testing.T) {
	for _, source := range domain.Sources {
		t.Run(string(source), func(t *testing.T) {
			fields := FieldsForSource(source)
			assert.NotEmpty(t, fields)
			for _, f := range fields {
				assert.NotEmpty(t, f.Field)
				assert.NotEmpty(t, f.Label)
			}
		})
	}
}

func TestFieldsForSource_UnknownSourceIsEmpty(t *testing.T) {
	fields := FieldsForSource("payroll")
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}

func TestFieldsForSource_ReturnsCopy(t *testing.T) {
	fields := FieldsForSource(domain.SourceEmployee)
	fields[0].Label = "mutated"

	assert.Equal(t, "First Name", FieldsForSource(domain.SourceEmployee)[0].Label)
}

func TestFieldIdentifiersAreUniqueAcrossSources(t *testing.T) {
	seen := map[string]domain.Source{}
	for _, source := range domain.Sources {
		for _, f := range FieldsForSource(source) {
			prev, dup := seen[f.Field]
			assert.False(t, dup, "field %q in both %s and %s", f.Field, prev, source)
			seen[f.Field] = source
		}
	}
}

func TestBuiltin_TokensUniqueAndWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, tag := range Builtin() {
		assert.False(t, seen[tag.Tag], "duplicate token %s", tag.Tag)
		seen[tag.Tag] = true

		assert.True(t, strings.HasPrefix(tag.Tag, domain.TokenOpen), tag.Tag)
		assert.True(t, strings.HasSuffix(tag.Tag, domain.TokenClose), tag.Tag)
		assert.True(t, tag.IsSystem)
		assert.True(t, tag.IsActive)
		assert.True(t, HasField(tag.Source, tag.Field), "%s bound to %s.%s", tag.Tag, tag.Source, tag.Field)
		assert.Contains(t, Categories, tag.Category)
	}
}

func TestBuiltin_SystemIDsUnique(t *testing.T) {
	ids := map[string]bool{}
	for _, tag := range Builtin() {
		require.False(t, ids[tag.ID], "duplicate id %s", tag.ID)
		ids[tag.ID] = true
	}
}

func TestTagsByCategory(t *testing.T) {
	signature := TagsByCategory(CategorySignature)
	require.Len(t, signature, 2)
	assert.Equal(t, "<<Signatory Name>>", signature[0].Tag)
	assert.Equal(t, "<<Signatory Title>>", signature[1].Tag)

	total := 0
	for _, c := range Categories {
		total += len(TagsByCategory(c))
	}
	assert.Equal(t, len(Builtin()), total)

	assert.Empty(t, TagsByCategory("signature"), "category match is exact")
}

func TestSystemTagID(t *testing.T) {
	assert.Equal(t, "sys-first-name", SystemTagID(FieldFirstName))
	assert.Equal(t, "sys-offer-expiry-date", SystemTagID(FieldOfferExpiryDate))
}

func TestHasField(t *testing.T) {
	assert.True(t, HasField(domain.SourceDepartment, FieldDepartmentName))
	assert.False(t, HasField(domain.SourceEmployee, FieldDepartmentName))
	assert.False(t, HasField("unknown", FieldFirstName))
}
