package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed    = errors.New("malformed taxonomy")
	ErrPathNotFound = errors.New("taxonomy path not found")
)

// MalformedError reports why a document was rejected and where.
type MalformedError struct {
	Path   []string
	Reason string
}

func (e *MalformedError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("malformed taxonomy: %s", e.Reason)
	}
	return fmt.Sprintf("malformed taxonomy at %s: %s", strings.Join(e.Path, "/"), e.Reason)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func malformed(path []string, format string, args ...any) error {
	return &MalformedError{Path: clonePath(path), Reason: fmt.Sprintf(format, args...)}
}

// PathNotFoundError names the first id along a path that did not match.
type PathNotFoundError struct {
	Path  []string
	Level Level
	ID    string
}

func (e *PathNotFoundError) Error() string {
	parent := e.Path
	if int(e.Level) <= len(parent) {
		parent = parent[:e.Level]
	}
	if len(parent) == 0 {
		return fmt.Sprintf("%s %q not found", e.Level, e.ID)
	}
	return fmt.Sprintf("%s %q not found under %s", e.Level, e.ID, strings.Join(parent, "/"))
}

func (e *PathNotFoundError) Is(target error) bool { return target == ErrPathNotFound }

func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	out := make([]string, len(path))
	copy(out, path)
	return out
}
