package teams

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MsgTeamNotFound is the client-facing message for a missing team.
const MsgTeamNotFound = "Team not found."

// ErrNoDocument is returned by a store that has never been written.
var ErrNoDocument = errors.New("no document stored")

// ValidationError rejects a write with one message per offending field.
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	keys := e.Fields()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Errors[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the rejected field names in sorted order.
func (e *ValidationError) Fields() []string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NotFoundError reports an id that matches no team.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("team %q not found", e.ID.String())
}

// StorageError wraps a failure to read, decode or persist the document.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("storage: %v", e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage operation names used in StorageError.Op.
const (
	OpLoad = "load"
	OpSave = "save"
)

// NewStorageError wraps err unless it already is a StorageError.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// AsValidationError unwraps err into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
