package saftlib

import (
	"context"
	"io"
	"os"

	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/processor"
	"github.com/rezonia/saft-validator/internal/signature"
	"github.com/rezonia/saft-validator/internal/validate"
)

// Options configures a Validator.
type Options struct {
	// Config holds tolerances and rule toggles; zero value means defaults.
	Config *Config
	// PublicKeyPEM enables signature chain verification.
	PublicKeyPEM []byte
	// SeriesTypes maps numbering series to their expected document type,
	// per document kind.
	SeriesTypes map[DocumentKind][]SeriesType
	// MasterFiles overrides the master tables carried by each audit file,
	// for callers that keep customers, products and tax codes elsewhere.
	MasterFiles *MasterFiles
}

// Result is the outcome of validating one audit file.
type Result struct {
	AuditFile *AuditFile
	Report    *Report
}

// Validator validates audit files end to end: parse, business rules,
// signature chain.
type Validator struct {
	pipeline *processor.Pipeline
}

// NewValidator creates a validator from options.
func NewValidator(opts Options) (*Validator, error) {
	cfg := validate.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	popts := []processor.Option{processor.WithConfig(cfg)}
	if len(opts.PublicKeyPEM) > 0 {
		key, err := signature.ParsePublicKey(opts.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		popts = append(popts, processor.WithVerifier(signature.NewVerifier(key)))
	}
	for kind, mapping := range opts.SeriesTypes {
		popts = append(popts, processor.WithSeriesTypes(kind, mapping))
	}
	if opts.MasterFiles != nil {
		popts = append(popts, processor.WithMasterData(masterdata.NewStore(opts.MasterFiles)))
	}

	return &Validator{pipeline: processor.NewPipeline(popts...)}, nil
}

// Validate parses and validates the audit file read from r.
func (v *Validator) Validate(ctx context.Context, r io.Reader) (*Result, error) {
	out := v.pipeline.ProcessReader(ctx, r)
	if out.Error != nil {
		return nil, out.Error
	}
	return &Result{AuditFile: out.AuditFile, Report: out.Report}, nil
}

// ValidateBytes parses and validates the audit file in data.
func (v *Validator) ValidateBytes(ctx context.Context, data []byte) (*Result, error) {
	out := v.pipeline.Process(ctx, data)
	if out.Error != nil {
		return nil, out.Error
	}
	return &Result{AuditFile: out.AuditFile, Report: out.Report}, nil
}

// ValidateFile parses and validates the audit file at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return v.ValidateBytes(ctx, data)
}

// VerifyChain parses the audit file and checks only its signature chains.
func (v *Validator) VerifyChain(ctx context.Context, data []byte) (*Result, error) {
	out := v.pipeline.Verify(ctx, data)
	if out.Error != nil {
		return nil, out.Error
	}
	return &Result{AuditFile: out.AuditFile, Report: out.Report}, nil
}

// Parse decodes an audit file without validating it.
func (v *Validator) Parse(ctx context.Context, data []byte) (*model.AuditFile, error) {
	return v.pipeline.Parse(ctx, data)
}
