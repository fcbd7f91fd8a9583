// Package validate implements the SAF-T business rule engine: per-line and
// per-document legal checks, cross-document table checks and the hash
// chain verification that links consecutive documents of a series.
package validate

// Register accumulates the outcome of validating one entity: at most one
// error message per field, plus an ordered list of warnings. Re-validating
// a field overwrites its previous message.
type Register struct {
	errors   map[string]string
	order    []string
	warnings []string
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{errors: make(map[string]string)}
}

// AddError records message for field, replacing any prior message.
func (r *Register) AddError(field, message string) {
	if _, seen := r.errors[field]; !seen {
		r.order = append(r.order, field)
	}
	r.errors[field] = message
}

// AddWarning appends a warning. Warnings never affect validity.
func (r *Register) AddWarning(message string) {
	r.warnings = append(r.warnings, message)
}

// HasErrors reports whether any error was recorded.
func (r *Register) HasErrors() bool {
	return len(r.errors) > 0
}

// Error returns the message recorded for field, or "" when none.
func (r *Register) Error(field string) string {
	return r.errors[field]
}

// Errors returns a copy of the field-to-message mapping.
func (r *Register) Errors() map[string]string {
	out := make(map[string]string, len(r.errors))
	for k, v := range r.errors {
		out[k] = v
	}
	return out
}

// Fields returns the error field names in first-recorded order.
func (r *Register) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Warnings returns the recorded warnings in order.
func (r *Register) Warnings() []string {
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}
