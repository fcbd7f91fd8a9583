package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/saft-validator/internal/model"
)

func TestValidType(t *testing.T) {
	tests := []struct {
		name string
		kind model.DocumentKind
		code string
		want bool
	}{
		{"invoice FT", model.KindInvoice, "FT", true},
		{"invoice receipt FR", model.KindInvoice, "FR", true},
		{"credit note NC", model.KindInvoice, "NC", true},
		{"deprecated cash sale VD", model.KindInvoice, "VD", true},
		{"movement code on invoice", model.KindInvoice, "GT", false},
		{"transport guide GT", model.KindStockMovement, "GT", true},
		{"delivery note GR", model.KindStockMovement, "GR", true},
		{"invoice code on movement", model.KindStockMovement, "FT", false},
		{"budget OR", model.KindWorkDocument, "OR", true},
		{"proforma PF", model.KindWorkDocument, "PF", true},
		{"receipt RC", model.KindPayment, "RC", true},
		{"other receipt RG", model.KindPayment, "RG", true},
		{"unknown code", model.KindPayment, "XX", false},
		{"unknown kind", model.DocumentKind("other"), "FT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ValidType(tt.kind, tt.code))
		})
	}
}

func TestIsDeprecatedType(t *testing.T) {
	for _, code := range []string{"VD", "TV", "TD", "AA", "DA"} {
		assert.True(t, model.IsDeprecatedType(code), code)
	}
	for _, code := range []string{"FT", "FS", "FR", "NC", "ND"} {
		assert.False(t, model.IsDeprecatedType(code), code)
	}
}

func TestDeprecatedTypeCutoff(t *testing.T) {
	lastLegal := time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)
	firstIllegal := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, lastLegal.After(model.DeprecatedTypeCutoff))
	assert.True(t, firstIllegal.After(model.DeprecatedTypeCutoff))
}

func TestIsCreditDebitNote(t *testing.T) {
	nc := &model.Document{Kind: model.KindInvoice, Type: "NC"}
	nd := &model.Document{Kind: model.KindInvoice, Type: "ND"}
	ft := &model.Document{Kind: model.KindInvoice, Type: "FT"}
	work := &model.Document{Kind: model.KindWorkDocument, Type: "NC"}

	assert.True(t, nc.IsCreditDebitNote())
	assert.True(t, nd.IsCreditDebitNote())
	assert.False(t, ft.IsCreditDebitNote())
	assert.False(t, work.IsCreditDebitNote())
}

func TestAllowsShipment(t *testing.T) {
	tests := []struct {
		name string
		doc  model.Document
		want bool
	}{
		{"stock movement", model.Document{Kind: model.KindStockMovement, Type: "GT"}, true},
		{"goods invoice FT", model.Document{Kind: model.KindInvoice, Type: "FT"}, true},
		{"simplified invoice FS", model.Document{Kind: model.KindInvoice, Type: "FS"}, true},
		{"invoice receipt FR", model.Document{Kind: model.KindInvoice, Type: "FR"}, true},
		{"credit note NC", model.Document{Kind: model.KindInvoice, Type: "NC"}, false},
		{"work document", model.Document{Kind: model.KindWorkDocument, Type: "OR"}, false},
		{"payment", model.Document{Kind: model.KindPayment, Type: "RC"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.AllowsShipment())
		})
	}
}

func TestStatusCancelled(t *testing.T) {
	var nilStatus *model.Status
	assert.False(t, nilStatus.Cancelled())
	assert.False(t, (&model.Status{Value: model.StatusNormal}).Cancelled())
	assert.True(t, (&model.Status{Value: model.StatusCancelled}).Cancelled())
}

func TestLineDebitCredit(t *testing.T) {
	line := &model.Line{}
	assert.True(t, line.Debit().IsZero())
	assert.True(t, line.Credit().IsZero())
}
