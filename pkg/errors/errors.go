package errors

import (
	"fmt"
)

// DuplicateTitleError reports an attempt to create or rename a node to a title
// that another node already carries.
type DuplicateTitleError struct {
	Title string
}

// NewDuplicateTitleError constructs a DuplicateTitleError.
func NewDuplicateTitleError(title string) error {
	return &DuplicateTitleError{Title: title}
}

func (e *DuplicateTitleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("duplicate node title %q", e.Title)
}

// CycleError reports that the edge set contains at least one dependency cycle.
type CycleError struct {
	Message string
}

// NewCycleError constructs a CycleError.
func NewCycleError(message string) error {
	if message == "" {
		message = "cycle detected in dependency graph"
	}
	return &CycleError{Message: message}
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NodeNotFoundError reports a node id that could not be resolved.
type NodeNotFoundError struct {
	NodeID int
}

// NewNodeNotFoundError constructs a NodeNotFoundError.
func NewNodeNotFoundError(id int) error {
	return &NodeNotFoundError{NodeID: id}
}

func (e *NodeNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("node %d not found", e.NodeID)
}

// InvalidRangeError reports a node range whose end precedes its start in the
// topological order.
type InvalidRangeError struct {
	StartID int
	EndID   int
}

// NewInvalidRangeError constructs an InvalidRangeError.
func NewInvalidRangeError(startID, endID int) error {
	return &InvalidRangeError{StartID: startID, EndID: endID}
}

func (e *InvalidRangeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid node range: end node %d precedes start node %d", e.EndID, e.StartID)
}

// ProjectPathError reports a node project path that is missing or lacks the
// CMakeLists.txt marker file.
type ProjectPathError struct {
	Title   string
	Path    string
	Message string
}

// NewProjectPathError constructs a ProjectPathError.
func NewProjectPathError(title, path, message string) error {
	return &ProjectPathError{Title: title, Path: path, Message: message}
}

func (e *ProjectPathError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid project path for node %q: %s: %s", e.Title, e.Path, e.Message)
}

// CommandError represents a native command that exited non-zero or terminated
// abnormally.
type CommandError struct {
	DisplayName string
	ExitCode    int
	Err         error
}

// NewCommandError constructs a CommandError.
func NewCommandError(displayName string, exitCode int, err error) error {
	return &CommandError{DisplayName: displayName, ExitCode: exitCode, Err: err}
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("command failed: %s: %v", e.DisplayName, e.Err)
	}
	return fmt.Sprintf("command failed: %s: exit code %d", e.DisplayName, e.ExitCode)
}

// Unwrap exposes the underlying error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ScriptError represents an embedded script run that raised an uncaught error.
type ScriptError struct {
	DisplayName string
	Err         error
}

// NewScriptError constructs a ScriptError.
func NewScriptError(displayName string, err error) error {
	return &ScriptError{DisplayName: displayName, Err: err}
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("script failed: %s: %v", e.DisplayName, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnknownStepKindError reports a step whose kind tag is not recognised,
// typically one that arrived through a deserialized plan.
type UnknownStepKindError struct {
	Kind string
}

// NewUnknownStepKindError constructs an UnknownStepKindError.
func NewUnknownStepKindError(kind string) error {
	return &UnknownStepKindError{Kind: kind}
}

func (e *UnknownStepKindError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown step kind %q", e.Kind)
}

// WorkerError represents a queue or process level failure of the worker
// execution context.
type WorkerError struct {
	Message string
	Err     error
}

// NewWorkerError constructs a WorkerError.
func NewWorkerError(message string, err error) error {
	return &WorkerError{Message: message, Err: err}
}

func (e *WorkerError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("worker unreachable: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("worker unreachable: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *WorkerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a project or settings file that could not be decoded.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a project or settings record that fails validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
