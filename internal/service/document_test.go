package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/domain"
	domainerrors "github.com/peoplehub/hrdocs/internal/errors"
	"github.com/peoplehub/hrdocs/internal/store"
)

const offerBody = "Dear <<First Name>>, your role is <<Job Title>> in <<Department>> " +
	"starting <<Start Date>> at <<Salary>> <<Currency>>."

func TestDocumentService_RenderOfferLetter(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput: DataInput{EmployeeID: "emp-1"},
		Body:      offerBody,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Dear Amina, your role is Accountant in Finance starting March 1, 2026 at 1,500 BHD.",
		out.Body)
	assert.Equal(t, domain.FormatHTML, out.Format)
	assert.NotNil(t, out.Unresolved)
	assert.Empty(t, out.Unresolved)
	assert.Empty(t, out.DocumentID, "not archived unless asked")
}

func TestDocumentService_RenderInlineData(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput: DataInput{
			Data: &domain.RenderData{
				Employee: &domain.Employee{FirstName: "Amina", Salary: ptr(1500.0), Currency: "BHD"},
				Position: &domain.Position{Title: "Accountant"},
			},
		},
		Body: offerBody + " <<Badge Number>>",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Dear Amina, your role is Accountant in  starting TBD at 1,500 BHD. <<Badge Number>>",
		out.Body)
	assert.Equal(t, []string{"<<Badge Number>>"}, out.Unresolved)
}

func TestDocumentService_RenderStrict(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)
	ctx := context.Background()

	in := RenderInput{
		DataInput: DataInput{EmployeeID: "emp-1"},
		Body:      "<<Full Name>> <<Badge Number>> <<Badge Number>> <<Visa Expiry>>",
		Strict:    ptr(true),
	}

	_, err := env.docs.Render(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnresolved)

	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	details, ok := de.Details.(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"<<Badge Number>>", "<<Visa Expiry>>"}, details["unresolved"])

	// Once the catalog knows the token, the same strict render succeeds.
	_, err = env.catalog.CreateTag(ctx, badgeInput())
	require.NoError(t, err)
	in.Body = "<<Full Name>> <<Badge Number>>"

	out, err := env.docs.Render(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Amina Khalil E-1001", out.Body)
}

func TestDocumentService_RenderStrictDefault(t *testing.T) {
	env := setupTestEnv(t)
	env.docs.strictDefault = true

	data := DataInput{Data: &domain.RenderData{}}

	_, err := env.docs.Render(context.Background(), RenderInput{DataInput: data, Body: "<<Nope>>"})
	assert.ErrorIs(t, err, domainerrors.ErrUnresolved)

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput: data,
		Body:      "<<Nope>>",
		Strict:    ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "<<Nope>>", out.Body)
}

func TestDocumentService_RenderArchiveAll(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)
	env.docs.archiveAll = true

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput: DataInput{EmployeeID: "emp-1"},
		Body:      "Hello <<First Name>>",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.DocumentID)

	docs, err := env.docs.ListDocuments(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hello Amina", docs[0].Body)
}

func TestDocumentService_RenderLibraryTemplate(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)
	env.loadTemplate(t, "offer_letter.html", "<h1>Offer for <<Full Name>></h1><p>Welcome to <<Company Name>>.</p>")

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput:    DataInput{EmployeeID: "emp-1"},
		TemplateName: "offer_letter.html",
	})
	require.NoError(t, err)
	assert.Equal(t, "offer_letter.html", out.TemplateName)
	assert.Equal(t, "<h1>Offer for Amina Khalil</h1><p>Welcome to Gulf Ledger.</p>", out.Body)
}

func TestDocumentService_RenderMarkdown(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)
	env.loadTemplate(t, "offer_letter.html", "<h1>Offer for <<Full Name>></h1><p>Welcome to <strong><<Company Name>></strong>.</p>")
	env.loadTemplate(t, "certificate.txt", "To whom it may concern: <<Full Name>> works here.")

	out, err := env.docs.Render(context.Background(), RenderInput{
		DataInput:    DataInput{EmployeeID: "emp-1"},
		TemplateName: "offer_letter.html",
		Format:       domain.FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatMarkdown, out.Format)
	assert.Contains(t, out.Body, "# Offer for Amina Khalil")
	assert.Contains(t, out.Body, "**Gulf Ledger**")
	assert.NotContains(t, out.Body, "<h1>")

	out, err = env.docs.Render(context.Background(), RenderInput{
		DataInput:    DataInput{EmployeeID: "emp-1"},
		TemplateName: "certificate.txt",
		Format:       domain.FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Equal(t, "To whom it may concern: Amina Khalil works here.", out.Body, "text templates pass through")
}

func TestDocumentService_RenderValidation(t *testing.T) {
	env := setupTestEnv(t)
	data := DataInput{Data: &domain.RenderData{}}

	tests := []struct {
		name string
		in   RenderInput
	}{
		{"no records", RenderInput{Body: "x"}},
		{"no template", RenderInput{DataInput: data}},
		{"template and body", RenderInput{DataInput: data, Body: "x", TemplateName: "a.html"}},
		{"bad format", RenderInput{DataInput: data, Body: "x", Format: "pdf"}},
		{"bad expiry", RenderInput{DataInput: DataInput{Data: &domain.RenderData{}, ExpiryDays: ptr(0)}, Body: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.docs.Render(context.Background(), tt.in)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestDocumentService_RenderNotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.docs.Render(context.Background(), RenderInput{
		DataInput: DataInput{EmployeeID: "emp-missing"},
		Body:      "x",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = env.docs.Render(context.Background(), RenderInput{
		DataInput:    DataInput{Data: &domain.RenderData{}},
		TemplateName: "missing.html",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentService_Archive(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)
	ctx := context.Background()

	out, err := env.docs.Render(ctx, RenderInput{
		DataInput: DataInput{EmployeeID: "emp-1"},
		Body:      offerBody,
		Archive:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.DocumentID)

	doc, err := env.docs.GetDocument(ctx, out.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, out.Body, doc.Body)
	assert.Equal(t, "emp-1", doc.EmployeeID)

	docs, err := env.docs.ListDocuments(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, out.DocumentID, docs[0].ID)

	_, err = env.docs.ListDocuments(ctx, "emp-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = env.docs.GetDocument(ctx, "no-such-doc")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentService_Resolve(t *testing.T) {
	env := setupTestEnv(t)
	env.seedEmployee(t)

	values, err := env.docs.Resolve(context.Background(), DataInput{
		EmployeeID: "emp-1",
		EndDate:    ptr("2027-04-15"),
		ExpiryDays: ptr(14),
	})
	require.NoError(t, err)

	assert.Equal(t, "Amina", values[catalog.FieldFirstName])
	assert.Equal(t, "Amina", values["First Name"])
	assert.Equal(t, "April 15, 2027", values[catalog.FieldEndDate])
	assert.Equal(t, "February 24, 2026", values["Offer Expiry Date"])
	assert.Equal(t, "1,500", values["Salary"])
	assert.Equal(t, "0.00", values["Basic Salary"])
	assert.Equal(t, "Manama, Bahrain", values[catalog.FieldCompanyAddress])
}

func TestDocumentService_Templates(t *testing.T) {
	env := setupTestEnv(t)
	env.loadTemplate(t, "b.txt", "b")
	env.loadTemplate(t, "a.html", "a")

	list := env.docs.Templates()
	require.Len(t, list, 2)
	assert.Equal(t, "a.html", list[0].Name)
	assert.Equal(t, "b.txt", list[1].Name)
}
