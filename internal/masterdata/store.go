// Package masterdata exposes the read interfaces the validators use to
// resolve tax codes, parties and products, plus an in-memory store built
// from a parsed master files block.
package masterdata

import "github.com/rezonia/saft-validator/internal/model"

// TaxTable resolves a (type, code, region) tuple to a tax table entry.
type TaxTable interface {
	Lookup(taxType, code, region string) (*model.TaxTableEntry, bool)
}

// PartyDirectory answers existence queries for customers and suppliers.
type PartyDirectory interface {
	CustomerExists(id string) bool
	SupplierExists(id string) bool
}

// ProductCatalog answers existence queries for products.
type ProductCatalog interface {
	ProductExists(code string) bool
}

type taxKey struct {
	taxType string
	code    string
	region  string
}

// Store is an in-memory implementation of all master data interfaces,
// built once per validation run.
type Store struct {
	taxes     map[taxKey]*model.TaxTableEntry
	customers map[string]bool
	suppliers map[string]bool
	products  map[string]bool
}

// NewStore indexes the master files for lookup.
func NewStore(mf *model.MasterFiles) *Store {
	s := &Store{
		taxes:     make(map[taxKey]*model.TaxTableEntry),
		customers: make(map[string]bool),
		suppliers: make(map[string]bool),
		products:  make(map[string]bool),
	}
	if mf == nil {
		return s
	}
	for i := range mf.TaxTable {
		e := &mf.TaxTable[i]
		s.taxes[taxKey{e.Type, e.Code, e.CountryRegion}] = e
	}
	for _, c := range mf.Customers {
		s.customers[c.ID] = true
	}
	for _, sp := range mf.Suppliers {
		s.suppliers[sp.ID] = true
	}
	for _, p := range mf.Products {
		s.products[p.Code] = true
	}
	return s
}

// Lookup implements TaxTable.
func (s *Store) Lookup(taxType, code, region string) (*model.TaxTableEntry, bool) {
	e, ok := s.taxes[taxKey{taxType, code, region}]
	return e, ok
}

// CustomerExists implements PartyDirectory.
func (s *Store) CustomerExists(id string) bool {
	return s.customers[id]
}

// SupplierExists implements PartyDirectory.
func (s *Store) SupplierExists(id string) bool {
	return s.suppliers[id]
}

// ProductExists implements ProductCatalog.
func (s *Store) ProductExists(code string) bool {
	return s.products[code]
}
