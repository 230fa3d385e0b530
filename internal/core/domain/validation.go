package domain

// FieldError is one validation failure scoped to a single submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationOutcome aggregates the field errors produced while validating one
// submitted form. Each validation step returns its own outcome and the caller
// merges them, so every rule is evaluated before any decision is made.
// A non-empty outcome means the associated write must not happen.
type ValidationOutcome struct {
	Errors []FieldError `json:"errors"`
}

// Reject records a field error on the outcome.
func (o *ValidationOutcome) Reject(field, code, message string) {
	o.Errors = append(o.Errors, FieldError{Field: field, Code: code, Message: message})
}

// Merge appends all errors from another outcome.
func (o *ValidationOutcome) Merge(other ValidationOutcome) {
	o.Errors = append(o.Errors, other.Errors...)
}

// HasErrors reports whether any validation step rejected the input.
func (o ValidationOutcome) HasErrors() bool {
	return len(o.Errors) > 0
}

// FieldErrors returns the errors recorded against one field.
func (o ValidationOutcome) FieldErrors(field string) []FieldError {
	var out []FieldError
	for _, e := range o.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}
