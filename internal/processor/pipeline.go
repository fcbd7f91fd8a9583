// Package processor wires the parser and the validation engine into one
// pipeline: bytes in, audit file and validation report out.
package processor

import (
	"bytes"
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/parser/xml"
	"github.com/rezonia/saft-validator/internal/signature"
	"github.com/rezonia/saft-validator/internal/validate"
)

// Option configures a pipeline.
type Option func(*Pipeline)

// WithConfig overrides the validation configuration.
func WithConfig(cfg validate.Config) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithVerifier supplies the public key used for signature verification.
func WithVerifier(v *signature.Verifier) Option {
	return func(p *Pipeline) { p.verifier = v }
}

// WithTranslator overrides the report message translator.
func WithTranslator(t validate.Translator) Option {
	return func(p *Pipeline) { p.tr = t }
}

// WithSeriesTypes supplies the expected document type per series for one
// document kind.
func WithSeriesTypes(kind model.DocumentKind, mapping []validate.SeriesType) Option {
	return func(p *Pipeline) {
		p.seriesTypes = append(p.seriesTypes, kindMapping{kind: kind, mapping: mapping})
	}
}

// WithMasterData overrides the master data used for lookups instead of the
// tables carried by each audit file.
func WithMasterData(s *masterdata.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithLogger overrides the pipeline logger.
func WithLogger(log *logrus.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

type kindMapping struct {
	kind    model.DocumentKind
	mapping []validate.SeriesType
}

// Pipeline parses and validates audit files.
type Pipeline struct {
	cfg         validate.Config
	verifier    *signature.Verifier
	tr          validate.Translator
	store       *masterdata.Store
	seriesTypes []kindMapping
	parser      *xml.Parser
	log         *logrus.Logger
}

// NewPipeline creates a pipeline with default configuration.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    validate.DefaultConfig(),
		parser: xml.NewParser(),
		log:    logrus.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one pipeline run. Error is set when the input
// could not be parsed at all; validation findings live in Report.
type Result struct {
	AuditFile *model.AuditFile
	Report    *validate.Report
	Error     error
}

// Process parses and fully validates the audit file in data.
func (p *Pipeline) Process(ctx context.Context, data []byte) *Result {
	af, err := p.parse(ctx, data)
	if err != nil {
		return &Result{Error: err}
	}
	report := p.validator().Validate(ctx, af)
	p.log.WithFields(logrus.Fields{
		"company":   af.Header.CompanyName,
		"documents": len(report.Documents),
		"errors":    report.Errors,
		"valid":     report.Valid,
	}).Info("audit file validated")
	return &Result{AuditFile: af, Report: report}
}

// ProcessReader parses and validates the audit file read from r.
func (p *Pipeline) ProcessReader(ctx context.Context, r io.Reader) *Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{Error: model.NewParseError("AuditFile", "content", "failed to read content", err)}
	}
	return p.Process(ctx, data)
}

// Verify parses the audit file and checks only its signature chains.
func (p *Pipeline) Verify(ctx context.Context, data []byte) *Result {
	af, err := p.parse(ctx, data)
	if err != nil {
		return &Result{Error: err}
	}
	report := p.validator().VerifyChain(ctx, af)
	p.log.WithFields(logrus.Fields{
		"documents": len(report.Documents),
		"errors":    report.Errors,
		"valid":     report.Valid,
	}).Info("signature chain verified")
	return &Result{AuditFile: af, Report: report}
}

// Parse decodes the audit file without validating it.
func (p *Pipeline) Parse(ctx context.Context, data []byte) (*model.AuditFile, error) {
	return p.parse(ctx, data)
}

func (p *Pipeline) parse(ctx context.Context, data []byte) (*model.AuditFile, error) {
	if !p.parser.CanParse(data) {
		return nil, model.NewParseError("AuditFile", "root", "input is not a SAF-T audit file", nil)
	}
	af, err := p.parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		p.log.WithError(err).Warn("audit file parse failed")
		return nil, err
	}
	return af, nil
}

func (p *Pipeline) validator() *validate.Validator {
	opts := []validate.Option{
		validate.WithVerifier(p.verifier),
		validate.WithTranslator(p.tr),
	}
	if p.store != nil {
		opts = append(opts, validate.WithMasterData(p.store))
	}
	for _, m := range p.seriesTypes {
		opts = append(opts, validate.WithSeriesTypes(m.kind, m.mapping))
	}
	return validate.NewValidator(p.cfg, opts...)
}
