package validate_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/signature"
	"github.com/rezonia/saft-validator/internal/validate"
)

// numberedInvoice builds a structurally valid FT with the given number and
// system entry time.
func numberedInvoice(number string, entry time.Time) model.Document {
	doc := validInvoice()
	doc.Number = number
	doc.Date = day(entry.Year(), entry.Month(), entry.Day())
	doc.SystemEntryDate = entry
	doc.Status.Date = entry
	return *doc
}

func testAuditFile(invoices model.DocumentCollection) *model.AuditFile {
	return &model.AuditFile{
		Header:      *testHeader(),
		MasterFiles: *testMasterFiles(),
		SourceDocuments: model.SourceDocuments{
			Invoices: invoices,
		},
	}
}

func TestValidator_ValidFile(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 3,
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.RequireFromString("300.00"),
		Documents: []model.Document{
			numberedInvoice("FT B/1", at(2019, 5, 12, 10, 0)),
			numberedInvoice("FT A/2", at(2019, 5, 11, 10, 0)),
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
		},
	})

	v := validate.NewValidator(noSignConfig())
	report := v.Validate(context.Background(), af)

	assert.True(t, report.Valid, "errors: %+v %+v", report.Documents, report.Tables)
	assert.Equal(t, 0, report.Errors)

	require.Len(t, report.Documents, 3)
	assert.Equal(t, "FT A/1", report.Documents[0].Number)
	assert.Equal(t, "FT A/2", report.Documents[1].Number)
	assert.Equal(t, "FT B/1", report.Documents[2].Number)

	require.Len(t, report.Tables, 2)
	assert.Equal(t, validate.TableInvoices, report.Tables[0].Table)
	assert.True(t, report.Tables[0].Valid)
	assert.Equal(t, validate.TableDocuments, report.Tables[1].Table)
	assert.True(t, report.Tables[1].Valid)
}

func TestValidator_EmptyFile(t *testing.T) {
	v := validate.NewValidator(noSignConfig())

	report := v.Validate(context.Background(), &model.AuditFile{
		Header:      *testHeader(),
		MasterFiles: *testMasterFiles(),
	})

	assert.True(t, report.Valid)
	assert.Empty(t, report.Documents)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, validate.TableDocuments, report.Tables[0].Table)
}

func TestValidator_NilFile(t *testing.T) {
	v := validate.NewValidator(noSignConfig())
	report := v.Validate(context.Background(), nil)
	assert.True(t, report.Valid)
}

func TestValidator_TableAggregates(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 5,
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.RequireFromString("999.00"),
		Documents: []model.Document{
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
		},
	})

	v := validate.NewValidator(noSignConfig())
	report := v.Validate(context.Background(), af)

	assert.False(t, report.Valid)
	require.Len(t, report.Documents, 1)
	assert.True(t, report.Documents[0].Valid)

	invoices := report.Tables[0]
	assert.Equal(t, validate.TableInvoices, invoices.Table)
	assert.False(t, invoices.Valid)
	assert.Contains(t, invoices.Errors, "number_of_entries")
	assert.Contains(t, invoices.Errors, "total_credit")
	assert.Equal(t, 2, report.Errors)
}

func TestValidator_MasterDataOverride(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 1,
		TotalCredit:     decimal.RequireFromString("100.00"),
		Documents: []model.Document{
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
		},
	})
	// File-level master tables would resolve everything; an override with
	// an empty store must take precedence.
	v := validate.NewValidator(noSignConfig(),
		validate.WithMasterData(masterdata.NewStore(nil)))
	report := v.Validate(context.Background(), af)

	assert.False(t, report.Valid)
	require.Len(t, report.Documents, 1)
	assert.Contains(t, report.Documents[0].Errors, "customer_id")
}

func TestValidator_SeriesTypeMapping(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 1,
		TotalCredit:     decimal.RequireFromString("100.00"),
		Documents: []model.Document{
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
		},
	})

	v := validate.NewValidator(noSignConfig(),
		validate.WithSeriesTypes(model.KindInvoice, []validate.SeriesType{
			{Series: "FT A", Type: "NC"},
		}))
	report := v.Validate(context.Background(), af)

	assert.False(t, report.Valid)
	assert.Contains(t, report.Tables[0].Errors, "documents[0].type")
}

func TestValidator_DuplicateNumbers(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 2,
		TotalCredit:     decimal.RequireFromString("200.00"),
		Documents: []model.Document{
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
			numberedInvoice("FT A/1", at(2019, 5, 10, 11, 0)),
		},
	})

	v := validate.NewValidator(noSignConfig())
	report := v.Validate(context.Background(), af)

	assert.False(t, report.Valid)
	docsTable := report.Tables[len(report.Tables)-1]
	assert.Equal(t, validate.TableDocuments, docsTable.Table)
	assert.Contains(t, docsTable.Errors, "documents[FT A/1]")
}

func TestValidator_VerifyChain(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signer := signature.NewSigner(key)

	first := numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0))
	second := numberedInvoice("FT A/2", at(2019, 5, 11, 10, 0))

	sign := func(doc *model.Document, previous string) {
		msg := signature.BuildMessage(doc.Date, doc.SystemEntryDate, doc.Number, doc.Totals.GrossTotal, previous)
		hash, err := signer.Sign(msg)
		require.NoError(t, err)
		doc.Hash = hash
	}
	sign(&first, "")
	sign(&second, first.Hash)

	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 2,
		TotalCredit:     decimal.RequireFromString("200.00"),
		Documents:       []model.Document{first, second},
	})

	// The verifier runs even though document validation has signatures off.
	v := validate.NewValidator(noSignConfig(),
		validate.WithVerifier(signature.NewVerifier(&key.PublicKey)))

	report := v.VerifyChain(context.Background(), af)
	assert.True(t, report.Valid, "errors: %+v", report.Documents)
	require.Len(t, report.Documents, 2)

	t.Run("broken chain detected", func(t *testing.T) {
		af.SourceDocuments.Invoices.Documents[1].Hash = af.SourceDocuments.Invoices.Documents[0].Hash

		report := v.VerifyChain(context.Background(), af)
		assert.False(t, report.Valid)
		assert.True(t, report.Documents[0].Valid)
		assert.False(t, report.Documents[1].Valid)
	})
}

func TestValidator_ContextCancelled(t *testing.T) {
	af := testAuditFile(model.DocumentCollection{
		NumberOfEntries: 1,
		TotalCredit:     decimal.RequireFromString("100.00"),
		Documents: []model.Document{
			numberedInvoice("FT A/1", at(2019, 5, 10, 10, 0)),
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := validate.NewValidator(noSignConfig()).Validate(ctx, af)
	assert.Empty(t, report.Documents)

	report = validate.NewValidator(noSignConfig()).VerifyChain(ctx, af)
	assert.Empty(t, report.Documents)
}
