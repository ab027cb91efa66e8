package manifest

import "fmt"

// NotFoundError indicates that no manifest was found from the start directory up to the root.
type NotFoundError struct {
	Package string
	Dir     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s file not found", e.Package)
}

// UnreadableError indicates that a manifest exists but could not be read.
type UnreadableError struct {
	Package string
	Path    string
	Err     error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("Can't read %s file", e.Package)
}

// Unwrap returns the underlying error.
func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// ParseError indicates that a manifest is not a JSON object.
type ParseError struct {
	Package string
	Path    string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Can't read %s file", e.Package)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingConfigError indicates that the manifest has no extra.verup block.
type MissingConfigError struct {
	Package string
	Path    string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s doesn't have a `.extra.verup` property defined", e.Package)
}

// MissingVersionError indicates that neither the manifest nor its extra.verup
// block carries a version.
type MissingVersionError struct {
	Package string
	Path    string
}

func (e *MissingVersionError) Error() string {
	return fmt.Sprintf("There is no .version property in your %s", e.Package)
}
