package validate

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/signature"
)

// Table names used in reports.
const (
	TableInvoices       = "sales_invoices"
	TableStockMovements = "movement_of_goods"
	TableWorkDocuments  = "working_documents"
	TablePayments       = "payments"
	TableDocuments      = "documents"
)

// Option configures a Validator.
type Option func(*Validator)

// WithVerifier supplies the public key verifier for signature checking.
func WithVerifier(v *signature.Verifier) Option {
	return func(val *Validator) { val.verifier = v }
}

// WithTranslator overrides the message translator.
func WithTranslator(t Translator) Option {
	return func(val *Validator) { val.tr = t }
}

// WithSeriesTypes supplies the expected document type per numbering series
// for one document kind.
func WithSeriesTypes(kind model.DocumentKind, mapping []SeriesType) Option {
	return func(val *Validator) { val.seriesTypes[kind] = mapping }
}

// WithMasterData overrides the master data used for lookups instead of the
// tables the audit file itself carries.
func WithMasterData(s *masterdata.Store) Option {
	return func(val *Validator) { val.store = s }
}

// Validator runs a full audit file validation: every document of every
// source table, the table aggregates, and the cross-table checks. Each
// numbering series is validated in its own goroutine with its own chain
// state and register, and the results are merged in a fixed order so the
// report is deterministic.
type Validator struct {
	cfg         Config
	verifier    *signature.Verifier
	tr          Translator
	store       *masterdata.Store
	seriesTypes map[model.DocumentKind][]SeriesType
}

// NewValidator creates a validator with the supplied configuration.
func NewValidator(cfg Config, opts ...Option) *Validator {
	v := &Validator{
		cfg:         cfg,
		seriesTypes: make(map[model.DocumentKind][]SeriesType),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.tr == nil {
		v.tr = DefaultTranslator()
	}
	return v
}

// Report is the outcome of one validation run.
type Report struct {
	Valid     bool             `json:"valid"`
	Errors    int              `json:"errors"`
	Documents []DocumentReport `json:"documents,omitempty"`
	Tables    []TableReport    `json:"tables,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// DocumentReport carries the outcomes of one document.
type DocumentReport struct {
	Number   string            `json:"number"`
	Type     string            `json:"type"`
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// TableReport carries the table-level outcomes of one source table.
type TableReport struct {
	Table    string            `json:"table"`
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// seriesRun is the unit of work for one numbering series: its documents in
// sequence order and the outcomes produced while walking them.
type seriesRun struct {
	series string
	docs   []*model.Document
	state  ChainState
	report []DocumentReport
}

// Validate runs the whole audit file and returns the report. The context
// aborts between tables; a cancelled run returns what was finished.
func (v *Validator) Validate(ctx context.Context, af *model.AuditFile) *Report {
	report := &Report{Valid: true}
	if af == nil {
		return report
	}
	store := v.store
	if store == nil {
		store = masterdata.NewStore(&af.MasterFiles)
	}
	deps := Deps{
		TaxTable:   store,
		Parties:    store,
		Products:   store,
		Verifier:   v.verifier,
		Translator: v.tr,
	}
	dv := NewDocumentValidator(v.cfg, &af.Header, deps)
	tv := NewTableValidator(v.cfg, v.tr)

	type table struct {
		name string
		kind model.DocumentKind
		col  *model.DocumentCollection
	}
	tables := []table{
		{TableInvoices, model.KindInvoice, &af.SourceDocuments.Invoices},
		{TableStockMovements, model.KindStockMovement, &af.SourceDocuments.StockMovements},
		{TableWorkDocuments, model.KindWorkDocument, &af.SourceDocuments.WorkDocuments},
		{TablePayments, model.KindPayment, &af.SourceDocuments.Payments},
	}

	var all []*model.Document
	for _, t := range tables {
		if len(t.col.Documents) == 0 && t.col.NumberOfEntries == 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		runs := v.runSeries(dv, t.col)

		treg := NewRegister()
		tv.NumberOfEntries(t.col, treg)
		debit, credit := decimal.Zero, decimal.Zero
		for _, run := range runs {
			debit = debit.Add(run.state.TotalDebit)
			credit = credit.Add(run.state.TotalCredit)
		}
		tv.Totals(t.col, debit, credit, treg)
		tv.checkTypes(t.col, v.seriesTypes[t.kind], treg)

		for _, run := range runs {
			report.Documents = append(report.Documents, run.report...)
		}
		report.Tables = append(report.Tables, tableReport(t.name, treg))

		for i := range t.col.Documents {
			all = append(all, &t.col.Documents[i])
		}
	}

	dreg := NewRegister()
	tv.Duplicates(all, dreg)
	report.Tables = append(report.Tables, tableReport(TableDocuments, dreg))

	for _, d := range report.Documents {
		report.Errors += len(d.Errors)
		report.Warnings = append(report.Warnings, d.Warnings...)
	}
	for _, t := range report.Tables {
		report.Errors += len(t.Errors)
		report.Warnings = append(report.Warnings, t.Warnings...)
	}
	report.Valid = report.Errors == 0
	return report
}

// VerifyChain checks only the signature chain of every series, regardless
// of the SignValidation toggle. Used by the verify command and endpoint.
func (v *Validator) VerifyChain(ctx context.Context, af *model.AuditFile) *Report {
	chainOnly := *v
	chainOnly.cfg.SignValidation = true

	report := &Report{Valid: true}
	if af == nil {
		return report
	}
	dv := NewDocumentValidator(chainOnly.cfg, &af.Header, Deps{
		Verifier:   v.verifier,
		Translator: v.tr,
	})
	for _, col := range []*model.DocumentCollection{
		&af.SourceDocuments.Invoices,
		&af.SourceDocuments.StockMovements,
		&af.SourceDocuments.WorkDocuments,
		&af.SourceDocuments.Payments,
	} {
		if ctx.Err() != nil {
			break
		}
		if len(col.Documents) == 0 {
			continue
		}
		for _, run := range groupBySeries(col) {
			st := ChainState{}
			for _, doc := range run.docs {
				reg := NewRegister()
				ok := dv.Sign(doc, st, reg)
				st = st.Advance(doc)
				report.Documents = append(report.Documents, documentReport(doc, reg, ok && !reg.HasErrors()))
			}
		}
	}
	for _, d := range report.Documents {
		report.Errors += len(d.Errors)
		report.Warnings = append(report.Warnings, d.Warnings...)
	}
	report.Valid = report.Errors == 0
	return report
}

// runSeries validates every series of a collection concurrently and
// returns the finished runs ordered by series name.
func (v *Validator) runSeries(dv *DocumentValidator, col *model.DocumentCollection) []*seriesRun {
	runs := groupBySeries(col)

	var wg sync.WaitGroup
	for _, run := range runs {
		wg.Add(1)
		go func(run *seriesRun) {
			defer wg.Done()
			st := ChainState{}
			for _, doc := range run.docs {
				reg := NewRegister()
				var ok bool
				st, ok = dv.Validate(doc, st, reg)
				run.report = append(run.report, documentReport(doc, reg, ok))
			}
			run.state = st
		}(run)
	}
	wg.Wait()
	return runs
}

// groupBySeries splits a collection into one run per numbering series,
// each ordered by sequence number. Documents whose number does not parse
// keep their file order at the end of their series.
func groupBySeries(col *model.DocumentCollection) []*seriesRun {
	byName := make(map[string]*seriesRun)
	for i := range col.Documents {
		doc := &col.Documents[i]
		name := model.Series(doc.Number)
		run, ok := byName[name]
		if !ok {
			run = &seriesRun{series: name}
			byName[name] = run
		}
		run.docs = append(run.docs, doc)
	}
	runs := make([]*seriesRun, 0, len(byName))
	for _, run := range byName {
		sort.SliceStable(run.docs, func(a, b int) bool {
			sa, erra := model.SequenceNumber(run.docs[a].Number)
			sb, errb := model.SequenceNumber(run.docs[b].Number)
			if erra != nil || errb != nil {
				return false
			}
			return sa < sb
		})
		runs = append(runs, run)
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].series < runs[b].series })
	return runs
}

func documentReport(doc *model.Document, reg *Register, valid bool) DocumentReport {
	r := DocumentReport{
		Number:   doc.Number,
		Type:     doc.Type,
		Valid:    valid && !reg.HasErrors(),
		Warnings: reg.Warnings(),
	}
	if reg.HasErrors() {
		r.Errors = errorMap(reg)
	}
	return r
}

func tableReport(name string, reg *Register) TableReport {
	r := TableReport{
		Table:    name,
		Valid:    !reg.HasErrors(),
		Warnings: reg.Warnings(),
	}
	if reg.HasErrors() {
		r.Errors = errorMap(reg)
	}
	return r
}

func errorMap(reg *Register) map[string]string {
	m := make(map[string]string, len(reg.Fields()))
	for _, f := range reg.Fields() {
		m[f] = reg.Error(f)
	}
	return m
}

