package logger

// Common field names used across the estimator so log output stays greppable.
const (
	FieldComponent = "component"
	FieldPipeline  = "pipeline"
	FieldResource  = "resource"
	FieldRunID     = "run_id"
	FieldGroups    = "groups"
	FieldLatency   = "latency_us"
	FieldDuration  = "duration_ms"
	FieldOperation = "operation"
	FieldState     = "state"
	FieldError     = "error"
	FieldPath      = "path"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
)

// F is a shorthand for building log field maps.
type F map[string]interface{}
