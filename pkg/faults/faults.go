// Package faults defines the error taxonomy surfaced through the GraphQL
// layer. Every fault carries a machine-readable code that ends up in the
// error's extensions, so clients can branch on it without parsing messages.
package faults

import "errors"

const (
	CodeValidation      = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Fault is an error with a stable code and optional field-level detail.
// It satisfies gqlerrors.ExtendedError, so the executor copies Extensions
// into the formatted error verbatim.
type Fault struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (f *Fault) Error() string { return f.Message }

func (f *Fault) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": f.Code}
	if len(f.Fields) > 0 {
		fields := make(map[string]interface{}, len(f.Fields))
		for k, v := range f.Fields {
			fields[k] = v
		}
		ext["fields"] = fields
	}
	return ext
}

// Validation wraps a field→message map produced by input validation.
func Validation(fields map[string]string) *Fault {
	return &Fault{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// Invalid reports a single offending field.
func Invalid(field, message string) *Fault {
	return &Fault{Code: CodeValidation, Message: "Validation failed", Fields: map[string]string{field: message}}
}

func Unauthenticated(message string) *Fault {
	return &Fault{Code: CodeUnauthenticated, Message: message}
}

func Forbidden(message string) *Fault {
	return &Fault{Code: CodeForbidden, Message: message}
}

func Conflict(message string) *Fault {
	return &Fault{Code: CodeConflict, Message: message}
}

// Internal hides the underlying cause from clients. Callers log the cause
// before returning this.
func Internal() *Fault {
	return &Fault{Code: CodeInternal, Message: "Internal server error"}
}

// Is reports whether err is a Fault carrying the given code.
func Is(err error, code string) bool {
	var f *Fault
	return errors.As(err, &f) && f.Code == code
}
