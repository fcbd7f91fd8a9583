package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/validate"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func testHeader() *model.Header {
	return &model.Header{
		CompanyName: "Empresa Teste",
		FiscalYear:  2019,
		StartDate:   day(2019, 1, 1),
		EndDate:     day(2019, 12, 31),
	}
}

func testMasterFiles() *model.MasterFiles {
	normal := decimal.RequireFromString("23")
	exempt := decimal.Zero
	return &model.MasterFiles{
		Customers: []model.Customer{{ID: "C1", CompanyName: "Cliente Um"}},
		Suppliers: []model.Supplier{{ID: "S1", CompanyName: "Fornecedor Um"}},
		Products:  []model.Product{{Code: "P1", Description: "Produto Um"}},
		TaxTable: []model.TaxTableEntry{
			{Type: "IVA", CountryRegion: "PT", Code: "NOR", Percentage: &normal},
			{Type: "IVA", CountryRegion: "PT", Code: "ISE", Percentage: &exempt},
		},
	}
}

func testDeps() validate.Deps {
	store := masterdata.NewStore(testMasterFiles())
	return validate.Deps{TaxTable: store, Parties: store, Products: store}
}

// noSignConfig turns chain verification off so structural tests stay
// independent of key material.
func noSignConfig() validate.Config {
	cfg := validate.DefaultConfig()
	cfg.SignValidation = false
	return cfg
}

func newTestValidator(t *testing.T) *validate.DocumentValidator {
	t.Helper()
	return validate.NewDocumentValidator(noSignConfig(), testHeader(), testDeps())
}

func normalTax() *model.Tax {
	rate := decimal.RequireFromString("23")
	return &model.Tax{Type: "IVA", CountryRegion: "PT", Code: "NOR", Percentage: &rate}
}

// validInvoice builds an FT that passes every structural stage.
func validInvoice() *model.Document {
	return &model.Document{
		Kind:            model.KindInvoice,
		Number:          "FT FT/1",
		Type:            "FT",
		CustomerID:      "C1",
		Date:            day(2019, 5, 10),
		SystemEntryDate: at(2019, 5, 10, 14, 30),
		Status: &model.Status{
			Value:         model.StatusNormal,
			Date:          at(2019, 5, 10, 14, 30),
			SourceBilling: "P",
		},
		Lines: []model.Line{{
			Number:       1,
			ProductCode:  "P1",
			Quantity:     dptr("2"),
			UnitPrice:    dptr("50.00"),
			CreditAmount: dptr("100.00"),
			Tax:          normalTax(),
		}},
		Totals: &model.Totals{
			NetTotal:   decimal.RequireFromString("100.00"),
			TaxPayable: decimal.RequireFromString("23.00"),
			GrossTotal: decimal.RequireFromString("123.00"),
		},
	}
}

func TestValidate_ValidDocument(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	st, ok := v.Validate(validInvoice(), validate.ChainState{}, reg)

	assert.True(t, ok)
	assert.False(t, reg.HasErrors(), "errors: %v", reg.Errors())
	assert.Equal(t, 1, st.NumberOfEntries)
	assert.True(t, st.TotalCredit.Equal(decimal.RequireFromString("100.00")))
}

func TestValidate_BadNumberFormat(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Number = "FTFT3"
	_, ok := v.Validate(doc, validate.ChainState{}, reg)

	assert.False(t, ok)
	assert.NotEmpty(t, reg.Error("number"))
}

func TestValidate_UnknownType(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Type = "ZZ"
	_, ok := v.Validate(doc, validate.ChainState{}, reg)

	assert.False(t, ok)
	assert.NotEmpty(t, reg.Error("type"))
}

func TestDocumentStatus_Missing(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Status = nil
	assert.False(t, v.DocumentStatus(doc, reg))
	assert.NotEmpty(t, reg.Error("status"))
}

func TestDocumentStatus_CancelledNeedsReason(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Status.Value = model.StatusCancelled
	doc.Status.Reason = ""
	assert.False(t, v.DocumentStatus(doc, reg))
	assert.NotEmpty(t, reg.Error("status.reason"))

	reg = validate.NewRegister()
	doc.Status.Reason = "customer changed the order"
	assert.True(t, v.DocumentStatus(doc, reg))
}

func TestDocumentStatus_DateBeforeDocument(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Status.Date = at(2019, 5, 9, 10, 0)
	assert.False(t, v.DocumentStatus(doc, reg))
	assert.NotEmpty(t, reg.Error("status.date"))
}

func TestCustomerOrSupplierID(t *testing.T) {
	v := newTestValidator(t)

	t.Run("known customer", func(t *testing.T) {
		reg := validate.NewRegister()
		assert.True(t, v.CustomerOrSupplierID(validInvoice(), reg))
	})

	t.Run("unknown customer", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.CustomerID = "C999"
		assert.False(t, v.CustomerOrSupplierID(doc, reg))
		assert.NotEmpty(t, reg.Error("customer_id"))
	})

	t.Run("known supplier", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.CustomerID = ""
		doc.SupplierID = "S1"
		assert.True(t, v.CustomerOrSupplierID(doc, reg))
	})

	t.Run("neither present", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.CustomerID = ""
		assert.False(t, v.CustomerOrSupplierID(doc, reg))
		assert.NotEmpty(t, reg.Error("customer_id"))
	})
}

func TestOutOfDateType(t *testing.T) {
	v := newTestValidator(t)

	t.Run("cash sale on the cutoff day passes", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "VD"
		doc.Date = day(2012, 12, 31)
		assert.True(t, v.OutOfDateType(doc, reg))
	})

	t.Run("cash sale after the cutoff fails", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "VD"
		doc.Date = day(2013, 1, 1)
		assert.False(t, v.OutOfDateType(doc, reg))
		assert.NotEmpty(t, reg.Error("type"))
	})

	t.Run("current types unaffected", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Date = day(2019, 5, 10)
		assert.True(t, v.OutOfDateType(doc, reg))
	})
}

func TestDates_OutsideHeaderPeriod(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Date = day(2020, 1, 1)
	doc.SystemEntryDate = at(2020, 1, 1, 9, 0)
	assert.False(t, v.Dates(doc, validate.ChainState{}, reg))
	assert.NotEmpty(t, reg.Error("date"))
	assert.NotEmpty(t, reg.Error("system_entry_date"))
}

func TestDates_NotMonotonic(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	st := validate.ChainState{
		LastDocDate:         day(2019, 6, 1),
		LastSystemEntryDate: at(2019, 6, 1, 9, 0),
	}
	assert.False(t, v.Dates(doc, st, reg))
	assert.NotEmpty(t, reg.Error("date"))
	assert.NotEmpty(t, reg.Error("system_entry_date"))
}

func TestTotals_GrossMismatch(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Totals.GrossTotal = decimal.RequireFromString("130.00")
	assert.False(t, v.Totals(doc, reg))
	assert.NotEmpty(t, reg.Error("totals.gross_total"))
}

func TestTotals_WithinTolerance(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Totals.GrossTotal = decimal.RequireFromString("123.01")
	assert.True(t, v.Totals(doc, reg), "one cent inside the tolerance")
}

func TestTotals_NetAgainstLines(t *testing.T) {
	v := newTestValidator(t)
	reg := validate.NewRegister()

	doc := validInvoice()
	doc.Totals.NetTotal = decimal.RequireFromString("90.00")
	doc.Totals.GrossTotal = decimal.RequireFromString("113.00")
	assert.False(t, v.Totals(doc, reg))
	assert.NotEmpty(t, reg.Error("totals.net_total"))
}

func TestTotals_CurrencyConversion(t *testing.T) {
	v := newTestValidator(t)

	t.Run("matching conversion", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Currency = &model.Currency{
			Code:         "USD",
			Amount:       decimal.RequireFromString("136.66"),
			ExchangeRate: decimal.RequireFromString("0.9"),
		}
		assert.True(t, v.Totals(doc, reg), "errors: %v", reg.Errors())
	})

	t.Run("broken conversion", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Currency = &model.Currency{
			Code:         "USD",
			Amount:       decimal.RequireFromString("200.00"),
			ExchangeRate: decimal.RequireFromString("0.9"),
		}
		assert.False(t, v.Totals(doc, reg))
		assert.NotEmpty(t, reg.Error("totals.currency"))
	})
}

func TestWithholdingTax(t *testing.T) {
	v := newTestValidator(t)

	t.Run("missing amount", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Withholding = []model.WithholdingTax{{Type: "IRS"}}
		assert.False(t, v.WithholdingTax(doc, reg))
	})

	t.Run("exceeds gross", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Withholding = []model.WithholdingTax{{Type: "IRS", Amount: dptr("200.00")}}
		assert.False(t, v.WithholdingTax(doc, reg))
		assert.NotEmpty(t, reg.Error("totals.withholding"))
	})

	t.Run("above half gross warns", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Withholding = []model.WithholdingTax{{Type: "IRS", Amount: dptr("100.00")}}
		assert.True(t, v.WithholdingTax(doc, reg))
		assert.NotEmpty(t, reg.Warnings())
	})
}

func TestPayment_InvoiceReceipt(t *testing.T) {
	v := newTestValidator(t)

	t.Run("no payments warns", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "FR"
		assert.True(t, v.Payment(doc, reg))
		assert.NotEmpty(t, reg.Warnings())
	})

	t.Run("payments must cover gross", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "FR"
		doc.Totals.Payments = []model.PaymentMethod{{Mechanism: "NU", Amount: decimal.RequireFromString("100.00")}}
		assert.False(t, v.Payment(doc, reg))
		assert.NotEmpty(t, reg.Error("totals.payments"))
	})

	t.Run("withholding reduces the expected payment", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "FR"
		doc.Totals.Withholding = []model.WithholdingTax{{Type: "IRS", Amount: dptr("23.00")}}
		doc.Totals.Payments = []model.PaymentMethod{{Mechanism: "TB", Amount: decimal.RequireFromString("100.00")}}
		assert.True(t, v.Payment(doc, reg), "errors: %v", reg.Errors())
	})

	t.Run("plain invoices are not reconciled", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Totals.Payments = []model.PaymentMethod{{Mechanism: "NU", Amount: decimal.RequireFromString("1.00")}}
		assert.True(t, v.Payment(doc, reg))
	})
}

func completeShipPoint() *model.ShipPoint {
	d := day(2019, 5, 10)
	return &model.ShipPoint{
		DeliveryIDs:  []string{"GT GT/9"},
		DeliveryDate: &d,
		Address: &model.Address{
			AddressDetail: "Rua de Baixo 1",
			City:          "Porto",
			Country:       "PT",
		},
	}
}

func TestShipment(t *testing.T) {
	v := newTestValidator(t)

	t.Run("absent block passes", func(t *testing.T) {
		reg := validate.NewRegister()
		assert.True(t, v.Shipment(validInvoice(), reg))
	})

	t.Run("complete block on goods invoice passes", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		start := at(2019, 5, 10, 15, 0)
		doc.MovementStartTime = &start
		doc.ShipFrom = completeShipPoint()
		doc.ShipTo = completeShipPoint()
		assert.True(t, v.Shipment(doc, reg), "errors: %v", reg.Errors())
	})

	t.Run("credit note may not ship goods", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.Type = "NC"
		start := at(2019, 5, 10, 15, 0)
		doc.MovementStartTime = &start
		doc.ShipFrom = completeShipPoint()
		doc.ShipTo = completeShipPoint()
		assert.False(t, v.Shipment(doc, reg))
		assert.NotEmpty(t, reg.Error("shipment"))
	})

	t.Run("start time required", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		doc.ShipFrom = completeShipPoint()
		doc.ShipTo = completeShipPoint()
		assert.False(t, v.Shipment(doc, reg))
		assert.NotEmpty(t, reg.Error("shipment.movement_start_time"))
	})

	t.Run("start may not precede the document", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		start := at(2019, 5, 9, 15, 0)
		doc.MovementStartTime = &start
		doc.ShipFrom = completeShipPoint()
		doc.ShipTo = completeShipPoint()
		assert.False(t, v.Shipment(doc, reg))
	})

	t.Run("incomplete ship-to", func(t *testing.T) {
		reg := validate.NewRegister()
		doc := validInvoice()
		start := at(2019, 5, 10, 15, 0)
		doc.MovementStartTime = &start
		doc.ShipFrom = completeShipPoint()
		doc.ShipTo = &model.ShipPoint{}
		assert.False(t, v.Shipment(doc, reg))
		assert.NotEmpty(t, reg.Error("shipment.ship_to"))
	})
}
