package pipeline

import (
	"github.com/pipelat/pipelat/resource"
)

// Span is the modeled execution window of one agenda group, in microseconds
// from pipeline start.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TimingResult holds one Span per agenda group. Start times are
// non-decreasing across groups and End >= Start within each group.
type TimingResult []Span

// End returns the end time of the final group, or 0 for an empty result.
func (tr TimingResult) End() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1].End
}

// Start returns the start time of the first group, or 0 for an empty result.
func (tr TimingResult) Start() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[0].Start
}

// Latency returns End minus Start.
func (tr TimingResult) Latency() float64 {
	return tr.End() - tr.Start()
}

// TimingFunction models the cost of one pipeline stage. Compute receives the
// stage's hardware, its agenda (one positive workload size per group), its
// parameter mapping, and the earliest permissible start time per group. It
// returns one Span per agenda group.
//
// Implementations must be deterministic and side-effect-free: the scheduler
// may invoke them repeatedly across runs and expects identical output for
// identical input.
type TimingFunction interface {
	Compute(res *resource.Compute, agenda []int, params Params, start []float64) (TimingResult, error)
}

// TimingFunc adapts a plain function to the TimingFunction interface.
type TimingFunc func(res *resource.Compute, agenda []int, params Params, start []float64) (TimingResult, error)

// Compute implements TimingFunction.
func (f TimingFunc) Compute(res *resource.Compute, agenda []int, params Params, start []float64) (TimingResult, error) {
	return f(res, agenda, params, start)
}

// UniformAgenda splits a total workload of size total into groups near-equal
// parts, spreading the remainder over the leading groups. Every entry is
// positive as long as total >= groups >= 1.
func UniformAgenda(groups, total int) []int {
	if groups <= 0 {
		return nil
	}
	agenda := make([]int, groups)
	base := total / groups
	rem := total % groups
	for i := range agenda {
		agenda[i] = base
		if i < rem {
			agenda[i]++
		}
	}
	return agenda
}
