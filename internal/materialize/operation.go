package materialize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
)

// Status describes what writing a file did (or would do) to the disk.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it. It must
// not mutate the filesystem.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create src/widget.cc (234 bytes)").
//
// Target returns the path the operation acts on.
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
	Target() string
}

// MkdirOp ensures a directory exists. An existing directory is not an error,
// but a symbolic link in its place is.
type MkdirOp struct {
	Path string

	exists bool
}

func (op *MkdirOp) Validate(ctx context.Context) error {
	info, err := os.Lstat(op.Path)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		return apperrors.NewTargetConflictError(op.Path, "is a symbolic link")
	case err == nil && info.IsDir():
		op.exists = true
		return nil
	case err == nil:
		return apperrors.NewTargetConflictError(op.Path, "exists and is not a directory")
	case errors.Is(err, fs.ErrNotExist):
		op.exists = false
		return nil
	case errors.Is(err, syscall.ENOTDIR):
		return apperrors.NewTargetConflictError(op.Path, "a parent path is a file")
	default:
		return apperrors.NewWriteFailureError(op.Path, "", err)
	}
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(op.Path, 0o755); err != nil {
		return apperrors.NewWriteFailureError(op.Path, "", err)
	}
	return nil
}

func (op *MkdirOp) Description() string {
	if op.exists {
		return fmt.Sprintf("Use existing directory %s", op.Path)
	}
	return fmt.Sprintf("Create directory %s", op.Path)
}

func (op *MkdirOp) Target() string {
	return op.Path
}

// WriteFileOp writes a file, overwriting whatever is there.
//
// Validation behavior:
//   - Rejects a path occupied by a directory or a symbolic link
//   - Reads any existing file to decide the Status and to feed diffs
//
// Execution behavior:
//   - Writes Content, then sets Mode exactly (os.WriteFile keeps the mode of an existing file)
//   - Skips files whose content and mode already match
type WriteFileOp struct {
	Path    string      // File path to write
	Role    string      // Template role, for error reporting
	Content []byte      // File content (can be empty)
	Mode    fs.FileMode // File permissions (0755 or 0644)

	status   Status
	existing []byte
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	info, err := os.Lstat(op.Path)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		return apperrors.NewTargetConflictError(op.Path, "is a symbolic link")
	case err == nil && info.IsDir():
		return apperrors.NewTargetConflictError(op.Path, "a directory occupies the file path")
	case err == nil:
		existing, err := os.ReadFile(op.Path)
		if err != nil {
			return apperrors.NewWriteFailureError(op.Path, op.Role, err)
		}
		op.existing = existing
		if bytes.Equal(existing, op.Content) && info.Mode().Perm() == op.Mode.Perm() {
			op.status = StatusUnchanged
		} else {
			op.status = StatusUpdated
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		op.existing = nil
		op.status = StatusCreated
		return nil
	case errors.Is(err, syscall.ENOTDIR):
		return apperrors.NewTargetConflictError(op.Path, "a parent path is a file")
	default:
		return apperrors.NewWriteFailureError(op.Path, op.Role, err)
	}
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if op.status == StatusUnchanged {
		return nil
	}
	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return apperrors.NewWriteFailureError(op.Path, op.Role, err)
	}
	if err := os.Chmod(op.Path, op.Mode); err != nil {
		return apperrors.NewWriteFailureError(op.Path, op.Role, err)
	}
	return nil
}

func (op *WriteFileOp) Description() string {
	switch op.status {
	case StatusUpdated:
		return fmt.Sprintf("Overwrite %s (%d bytes)", op.Path, len(op.Content))
	case StatusUnchanged:
		return fmt.Sprintf("Unchanged %s", op.Path)
	default:
		return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
	}
}

func (op *WriteFileOp) Target() string {
	return op.Path
}

// Status reports the outcome decided during Validate.
func (op *WriteFileOp) Status() Status {
	return op.status
}

// Diff renders the change from the existing file to Content, truncating
// lines to width.
func (op *WriteFileOp) Diff(width int) string {
	if op.status != StatusUpdated {
		return ""
	}
	return Diff(op.Path, op.existing, op.Content, width)
}
