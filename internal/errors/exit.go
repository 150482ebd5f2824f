package errors

import "errors"

// Exit codes returned by the easy-pybind binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidModuleName indicates the module name was rejected before planning.
	ExitInvalidModuleName = 2

	// ExitTargetConflict indicates a file or directory was in the way.
	ExitTargetConflict = 3

	// ExitWriteFailure indicates a planned file could not be written.
	ExitWriteFailure = 4

	// ExitInternalError indicates a template catalog or renderer defect.
	ExitInternalError = 5
)

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidModuleName):
		return ExitInvalidModuleName
	case errors.Is(err, ErrTargetConflict):
		return ExitTargetConflict
	case errors.Is(err, ErrWriteFailure):
		return ExitWriteFailure
	case IsInternal(err):
		return ExitInternalError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitInvalidModuleName:
		return "Invalid Module Name"
	case ExitTargetConflict:
		return "Target Conflict"
	case ExitWriteFailure:
		return "Write Failure"
	case ExitInternalError:
		return "Internal Error"
	default:
		return "Unknown"
	}
}
