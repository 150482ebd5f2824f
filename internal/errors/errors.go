// Package errors provides the error taxonomy for easy-pybind.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrInvalidModuleName indicates the module name is unusable as a path
	// segment or as a source identifier. Nothing has been written.
	ErrInvalidModuleName = errors.New("invalid module name")

	// ErrUnknownRole indicates the catalog has no template for a role/variant pair.
	ErrUnknownRole = errors.New("unknown template role")

	// ErrMissingParameter indicates a template placeholder had no value.
	ErrMissingParameter = errors.New("missing template parameter")

	// ErrTargetConflict indicates a path needed as a directory (or file) is
	// occupied by an entry of the other kind.
	ErrTargetConflict = errors.New("target conflict")

	// ErrWriteFailure indicates a filesystem write failed for a planned file.
	ErrWriteFailure = errors.New("write failure")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Path is the filesystem path involved (optional).
	Path string

	// Role is the template role involved (optional).
	Role string

	// Key is the placeholder name for template errors (optional).
	Key string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the sentinel classifying the error.
	Cause error

	// Err is the underlying error, e.g. from the os package (optional).
	Err error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	var ctx []string
	if e.Role != "" {
		ctx = append(ctx, "role="+e.Role)
	}
	if e.Key != "" {
		ctx = append(ctx, "key="+e.Key)
	}
	if e.Path != "" {
		ctx = append(ctx, "path="+e.Path)
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, ", "))
		b.WriteString(")")
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

// Unwrap exposes both the sentinel and the underlying error to errors.Is/As.
func (e *DetailError) Unwrap() []error {
	var errs []error
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewInvalidModuleNameError reports a module name that failed validation.
func NewInvalidModuleNameError(name, reason string) error {
	return &DetailError{
		Type:    "invalid module name",
		Message: fmt.Sprintf("%q %s", name, reason),
		Hint:    "use letters, digits and underscores, starting with a letter or underscore (e.g. my_module)",
		Cause:   ErrInvalidModuleName,
	}
}

// NewUnknownRoleError reports a catalog lookup for an unregistered role/variant.
func NewUnknownRoleError(role, variant string) error {
	return &DetailError{
		Type:    "unknown template role",
		Message: fmt.Sprintf("no template registered for variant %q", variant),
		Role:    role,
		Cause:   ErrUnknownRole,
	}
}

// NewMissingParameterError reports a placeholder without a supplied value.
func NewMissingParameterError(template, key string) error {
	return &DetailError{
		Type:    "missing template parameter",
		Message: fmt.Sprintf("template %s requires %q", template, key),
		Role:    template,
		Key:     key,
		Cause:   ErrMissingParameter,
	}
}

// NewTargetConflictError reports a path occupied by the wrong kind of entry.
func NewTargetConflictError(path, message string) error {
	return &DetailError{
		Type:    "target conflict",
		Message: message,
		Path:    path,
		Hint:    "move or remove the conflicting entry and run again",
		Cause:   ErrTargetConflict,
	}
}

// NewWriteFailureError reports a failed write of a planned file.
func NewWriteFailureError(path, role string, err error) error {
	return &DetailError{
		Type:  "write failed",
		Path:  path,
		Role:  role,
		Hint:  "files written before the failure were kept; fix the cause and run again to overwrite them",
		Cause: ErrWriteFailure,
		Err:   err,
	}
}

// IsInternal reports whether err is a catalog/renderer defect rather than a user error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrUnknownRole) || errors.Is(err, ErrMissingParameter)
}
