package schema

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a SkillError.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindSourceResolution ErrorKind = "source_resolution"
	KindNetwork          ErrorKind = "network"
	KindArchive          ErrorKind = "archive"
	KindFilesystem       ErrorKind = "filesystem"
	KindGit              ErrorKind = "git"
	KindAvailability     ErrorKind = "availability"
	KindNotFound         ErrorKind = "not_found"
)

// SkillError is the error type returned by the skill hub and the runtime
// skill manager. Message is the human-readable text shown to the agent.
type SkillError struct {
	Kind    ErrorKind
	Message string
	// Path is the filesystem path involved, when there is one.
	Path string
	// StatusCode is set for network errors caused by a non-success response.
	StatusCode int
	Err        error
}

func (e *SkillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SkillError) Unwrap() error { return e.Err }

// NewSkillError builds a SkillError with a formatted message.
func NewSkillError(kind ErrorKind, format string, args ...any) *SkillError {
	return &SkillError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports rejected input.
func ValidationError(format string, args ...any) *SkillError {
	return NewSkillError(KindValidation, format, args...)
}

// SourceResolutionError reports a source that could not be resolved to content.
func SourceResolutionError(format string, args ...any) *SkillError {
	return NewSkillError(KindSourceResolution, format, args...)
}

// FilesystemError annotates a filesystem failure with the offending path.
func FilesystemError(op, path string, err error) *SkillError {
	return &SkillError{
		Kind:    KindFilesystem,
		Message: fmt.Sprintf("%s %s", op, path),
		Path:    path,
		Err:     err,
	}
}

// ArchiveError reports an unreadable archive.
func ArchiveError(msg string, err error) *SkillError {
	return &SkillError{Kind: KindArchive, Message: msg, Err: err}
}

// ErrorKindOf returns the kind of the first SkillError in err's chain, or ""
// when there is none.
func ErrorKindOf(err error) ErrorKind {
	var se *SkillError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsKind reports whether err carries a SkillError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return ErrorKindOf(err) == kind
}
