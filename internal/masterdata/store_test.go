package masterdata_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
)

func TestStoreLookup(t *testing.T) {
	rate := decimal.RequireFromString("23")
	store := masterdata.NewStore(&model.MasterFiles{
		Customers: []model.Customer{{ID: "C1"}},
		Suppliers: []model.Supplier{{ID: "S1"}},
		Products:  []model.Product{{Code: "P1"}},
		TaxTable: []model.TaxTableEntry{
			{Type: "IVA", CountryRegion: "PT", Code: "NOR", Percentage: &rate},
		},
	})

	entry, ok := store.Lookup("IVA", "NOR", "PT")
	require.True(t, ok)
	assert.True(t, entry.Percentage.Equal(rate))

	_, ok = store.Lookup("IVA", "RED", "PT")
	assert.False(t, ok)
	_, ok = store.Lookup("IVA", "NOR", "PT-AC")
	assert.False(t, ok)

	assert.True(t, store.CustomerExists("C1"))
	assert.False(t, store.CustomerExists("C2"))
	assert.True(t, store.SupplierExists("S1"))
	assert.False(t, store.SupplierExists("C1"))
	assert.True(t, store.ProductExists("P1"))
	assert.False(t, store.ProductExists("P2"))
}

func TestStoreNilMasterFiles(t *testing.T) {
	store := masterdata.NewStore(nil)

	_, ok := store.Lookup("IVA", "NOR", "PT")
	assert.False(t, ok)
	assert.False(t, store.CustomerExists("C1"))
}
