package pipeline

// State is the pipeline lifecycle state.
type State string

const (
	// StateUnbuilt means the dependency graph has not been resolved against
	// the current component registry.
	StateUnbuilt State = "UNBUILT"
	// StateResolved means the graph was validated and a topological order
	// exists, but no timing results are cached.
	StateResolved State = "RESOLVED"
	// StateExecuted means every component ran and results are cached.
	StateExecuted State = "EXECUTED"
)
