package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline construction and scheduling errors. These are all deterministic
// configuration faults: retrying without changing the configuration cannot
// change the outcome.
const (
	// ErrCodeConfiguration indicates invalid resource or component parameters.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeDuplicateName indicates a component name is already registered.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"
	// ErrCodeMissingDependency indicates a declared dependency does not resolve.
	ErrCodeMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	// ErrCodeCyclicDependency indicates the dependency graph contains a cycle.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	// ErrCodeShapeMismatch indicates a timing function's output length
	// disagrees with the component's agenda.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"
	// ErrCodeComponentExecution wraps a failure inside a timing function.
	ErrCodeComponentExecution ErrorCode = "COMPONENT_EXECUTION"
	// ErrCodeInvalidState indicates an operation was called in the wrong
	// pipeline lifecycle state.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Resource and input errors used by the loader and the HTTP surface.
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
