package domain

import "fmt"

// Common domain errors
var (
	ErrNotFound     = NewError("not found", 404)
	ErrInvalidInput = NewError("invalid input", 400)
	ErrInternal     = NewError("internal server error", 500)
)

// Error represents a domain error with an associated code.
type Error struct {
	Message string
	Code    int
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// NewError creates a new domain error with the given message and code.
func NewError(message string, code int) *Error {
	return &Error{
		Message: message,
		Code:    code,
	}
}

// SessionNotFoundError indicates that a session id does not map to a live
// session, either because it was never issued or because the session closed.
type SessionNotFoundError struct {
	ID  string
	Err *Error
}

// Error returns the error message.
func (e *SessionNotFoundError) Error() string {
	return e.Err.Error()
}

// NewSessionNotFoundError creates a new SessionNotFoundError.
func NewSessionNotFoundError(id string) *SessionNotFoundError {
	return &SessionNotFoundError{
		ID: id,
		Err: NewError(
			fmt.Sprintf("session with ID %s not found", id),
			404,
		),
	}
}

// InvalidHandshakeError indicates that a session was requested with a message
// that is not a valid initialize request.
type InvalidHandshakeError struct {
	Reason string
	Err    *Error
}

// Error returns the error message.
func (e *InvalidHandshakeError) Error() string {
	return e.Err.Error()
}

// NewInvalidHandshakeError creates a new InvalidHandshakeError.
func NewInvalidHandshakeError(reason string) *InvalidHandshakeError {
	return &InvalidHandshakeError{
		Reason: reason,
		Err: NewError(
			fmt.Sprintf("invalid handshake: %s", reason),
			400,
		),
	}
}

// ToolNotFoundError indicates that a requested tool was not found.
type ToolNotFoundError struct {
	Name string
	Err  *Error
}

// Error returns the error message.
func (e *ToolNotFoundError) Error() string {
	return e.Err.Error()
}

// NewToolNotFoundError creates a new ToolNotFoundError.
func NewToolNotFoundError(name string) *ToolNotFoundError {
	return &ToolNotFoundError{
		Name: name,
		Err: NewError(
			fmt.Sprintf("tool with name %s not found", name),
			404,
		),
	}
}

// DuplicateToolError indicates that a tool name is already registered in a
// registry.
type DuplicateToolError struct {
	Name string
	Err  *Error
}

// Error returns the error message.
func (e *DuplicateToolError) Error() string {
	return e.Err.Error()
}

// NewDuplicateToolError creates a new DuplicateToolError.
func NewDuplicateToolError(name string) *DuplicateToolError {
	return &DuplicateToolError{
		Name: name,
		Err: NewError(
			fmt.Sprintf("tool with name %s already registered", name),
			409,
		),
	}
}

// InputValidationError indicates that tool input failed schema validation.
// It is a client error and is never retried by the server.
type InputValidationError struct {
	Tool    string
	Message string
	Err     *Error
}

// Error returns the error message.
func (e *InputValidationError) Error() string {
	return e.Err.Error()
}

// NewInputValidationError creates a new InputValidationError.
func NewInputValidationError(tool, message string) *InputValidationError {
	return &InputValidationError{
		Tool:    tool,
		Message: message,
		Err: NewError(
			fmt.Sprintf("invalid input for tool %s: %s", tool, message),
			400,
		),
	}
}

// OutputValidationError indicates that a tool's structured content failed
// validation against its declared output schema.
type OutputValidationError struct {
	Tool    string
	Message string
	Err     *Error
}

// Error returns the error message.
func (e *OutputValidationError) Error() string {
	return e.Err.Error()
}

// NewOutputValidationError creates a new OutputValidationError.
func NewOutputValidationError(tool, message string) *OutputValidationError {
	return &OutputValidationError{
		Tool:    tool,
		Message: message,
		Err: NewError(
			fmt.Sprintf("invalid output from tool %s: %s", tool, message),
			500,
		),
	}
}

// AssetLoadError indicates that a template or bundle asset could not be read.
// It is recoverable per request and must never crash the process.
type AssetLoadError struct {
	Path string
	Err  *Error
}

// Error returns the error message.
func (e *AssetLoadError) Error() string {
	return e.Err.Error()
}

// NewAssetLoadError creates a new AssetLoadError for the given asset path.
func NewAssetLoadError(path string) *AssetLoadError {
	return &AssetLoadError{
		Path: path,
		Err: NewError(
			fmt.Sprintf("asset %s could not be loaded", path),
			500,
		),
	}
}

// ComponentNameError indicates a component name that does not follow the
// namespace-component format.
type ComponentNameError struct {
	Name string
	Err  *Error
}

// Error returns the error message.
func (e *ComponentNameError) Error() string {
	return e.Err.Error()
}

// NewComponentNameError creates a new ComponentNameError.
func NewComponentNameError(name string) *ComponentNameError {
	return &ComponentNameError{
		Name: name,
		Err: NewError(
			fmt.Sprintf("component name %q is malformed; expected namespace-component format", name),
			400,
		),
	}
}

// ComponentNotFoundError indicates that a well-formed component name does not
// map to a known component.
type ComponentNotFoundError struct {
	Name string
	Err  *Error
}

// Error returns the error message.
func (e *ComponentNotFoundError) Error() string {
	return e.Err.Error()
}

// NewComponentNotFoundError creates a new ComponentNotFoundError.
func NewComponentNotFoundError(name string) *ComponentNotFoundError {
	return &ComponentNotFoundError{
		Name: name,
		Err: NewError(
			fmt.Sprintf("component %s not found", name),
			404,
		),
	}
}
