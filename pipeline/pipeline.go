// Package pipeline implements the dependency-aware timing composition
// engine: a DAG of components, each bound to a compute resource and a timing
// function, scheduled by per-group dependency start-time propagation.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/logger"
	"github.com/pipelat/pipelat/observability"
)

// Pipeline owns a component registry and schedules it. It is not safe for
// concurrent use; independent what-if analyses need independent instances.
type Pipeline struct {
	name       string
	components map[string]*Component
	order      []string // insertion order
	topo       []string // valid while state >= RESOLVED
	state      State
	results    map[string]TimingResult
	// bindings[name][g] is the dependency whose end time bound group g of
	// component name during the last run. Used by CriticalPath.
	bindings map[string][]string
	log      *logger.Logger
}

// New creates an empty pipeline.
func New(name string) *Pipeline {
	return &Pipeline{
		name:       name,
		components: make(map[string]*Component),
		state:      StateUnbuilt,
		log:        logger.GetGlobalLogger().WithFields(map[string]interface{}{logger.FieldPipeline: name}),
	}
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Components returns the component names in insertion order.
func (p *Pipeline) Components() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Component returns the registered component with the given name.
func (p *Pipeline) Component(name string) (*Component, error) {
	c, ok := p.components[name]
	if !ok {
		return nil, errors.NotFound("component", name)
	}
	return c, nil
}

// AddComponent registers a component. Registering after a resolve or run
// invalidates the cached graph and results and reverts the pipeline to
// UNBUILT.
func (p *Pipeline) AddComponent(c *Component) error {
	if err := c.validate(); err != nil {
		return err
	}
	if _, exists := p.components[c.Name]; exists {
		return errors.DuplicateName(c.Name)
	}

	p.components[c.Name] = c
	p.order = append(p.order, c.Name)

	if p.state != StateUnbuilt {
		p.state = StateUnbuilt
		p.topo = nil
		p.results = nil
		p.bindings = nil
	}
	return nil
}

// Resolve validates dependencies, rejects cycles, and computes the
// topological order. Idempotent: an unchanged registry reproduces the same
// order.
func (p *Pipeline) Resolve() error {
	if err := checkDependencies(p.order, p.components); err != nil {
		return err
	}
	if cycle := detectCycle(p.order, p.components); cycle != nil {
		return errors.CyclicDependency(cycle)
	}

	p.topo = topoOrder(p.order, p.components)
	p.state = StateResolved

	p.log.Debug("pipeline resolved", logger.F{"components": len(p.topo)})
	return nil
}

// Run schedules every component in topological order and returns the
// component name to TimingResult mapping. It auto-resolves when the pipeline
// is UNBUILT. On failure no partial results are stored or returned and the
// pipeline stays in its pre-run state.
//
// Run is deterministic and idempotent: repeated calls on an unmodified
// pipeline produce identical results.
func (p *Pipeline) Run(ctx context.Context) (map[string]TimingResult, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
	defer span.End()
	span.SetAttributes(attribute.String(logger.FieldPipeline, p.name))

	if p.state == StateUnbuilt {
		if err := p.Resolve(); err != nil {
			observability.SetSpanError(ctx, err)
			return nil, err
		}
	}

	results := make(map[string]TimingResult, len(p.topo))
	bindings := make(map[string][]string, len(p.topo))

	for _, name := range p.topo {
		c := p.components[name]
		starts, binds := p.startTimes(c, results)

		spans, err := c.Timing.Compute(c.Resource, c.Agenda, c.Params, starts)
		if err != nil {
			execErr := errors.ComponentExecution(name, -1, err)
			observability.SetSpanError(ctx, execErr)
			return nil, execErr
		}
		if len(spans) != len(c.Agenda) {
			shapeErr := errors.ShapeMismatch(name, len(c.Agenda), len(spans))
			observability.SetSpanError(ctx, shapeErr)
			return nil, shapeErr
		}
		if err := validateSpans(name, spans); err != nil {
			observability.SetSpanError(ctx, err)
			return nil, err
		}

		results[name] = spans
		bindings[name] = binds
	}

	p.results = results
	p.bindings = bindings
	p.state = StateExecuted

	p.log.Debug("pipeline executed", logger.F{"components": len(p.topo)})
	return copyResults(results), nil
}

// startTimes applies the dependency-propagation rule for one component. For
// group g (0-indexed) of a component with n groups and a dependency d with m
// groups, the earliest permissible start is the end time of d's group
// ceil((g+1)*m/n)-1, maximized over all dependencies. The proportional
// mapping lets a consumer start once the producer groups covering its share
// of the data are done. Components without dependencies start at 0.
//
// The returned binds slice records, per group, the dependency that supplied
// the maximum; ties go to the earliest-inserted dependency.
func (p *Pipeline) startTimes(c *Component, results map[string]TimingResult) ([]float64, []string) {
	n := len(c.Agenda)
	starts := make([]float64, n)
	binds := make([]string, n)

	if len(c.DependsOn) == 0 {
		return starts, binds
	}

	deps := p.insertionOrdered(c.DependsOn)
	for g := 0; g < n; g++ {
		best := math.Inf(-1)
		bestDep := ""
		for _, dep := range deps {
			m := len(results[dep])
			idx := (m*(g+1)+n-1)/n - 1
			if end := results[dep][idx].End; end > best {
				best = end
				bestDep = dep
			}
		}
		starts[g] = best
		binds[g] = bestDep
	}
	return starts, binds
}

// insertionOrdered returns the dependency names sorted by component
// insertion order, which fixes the tie-break in startTimes.
func (p *Pipeline) insertionOrdered(deps []string) []string {
	idx := make(map[string]int, len(p.order))
	for i, name := range p.order {
		idx[name] = i
	}
	sorted := make([]string, len(deps))
	copy(sorted, deps)
	sort.Slice(sorted, func(i, j int) bool { return idx[sorted[i]] < idx[sorted[j]] })
	return sorted
}

// validateSpans enforces the TimingResult invariants: end >= start within
// each group and non-decreasing starts across groups.
func validateSpans(name string, spans TimingResult) error {
	for g, s := range spans {
		if s.End < s.Start {
			return errors.ComponentExecution(name, g,
				fmt.Errorf("group end %g precedes its start %g", s.End, s.Start))
		}
		if g > 0 && s.Start < spans[g-1].Start {
			return errors.ComponentExecution(name, g,
				fmt.Errorf("group start %g precedes previous group start %g", s.Start, spans[g-1].Start))
		}
	}
	return nil
}

// Results returns a copy of the component name to TimingResult mapping from
// the last successful run.
func (p *Pipeline) Results() (map[string]TimingResult, error) {
	if p.state != StateExecuted {
		return nil, errors.InvalidState("results", string(p.state))
	}
	return copyResults(p.results), nil
}

// Result returns the TimingResult of a single component.
func (p *Pipeline) Result(name string) (TimingResult, error) {
	if p.state != StateExecuted {
		return nil, errors.InvalidState("result", string(p.state))
	}
	tr, ok := p.results[name]
	if !ok {
		return nil, errors.NotFound("component", name)
	}
	out := make(TimingResult, len(tr))
	copy(out, tr)
	return out, nil
}

// Sinks returns the components no other component depends on, in insertion
// order.
func (p *Pipeline) Sinks() []string {
	hasDependent := make(map[string]bool, len(p.order))
	for _, name := range p.order {
		for _, dep := range p.components[name].DependsOn {
			hasDependent[dep] = true
		}
	}
	var sinks []string
	for _, name := range p.order {
		if !hasDependent[name] {
			sinks = append(sinks, name)
		}
	}
	return sinks
}

// TotalLatency returns the maximum final-group end time among all sinks.
func (p *Pipeline) TotalLatency() (float64, error) {
	if p.state != StateExecuted {
		return 0, errors.InvalidState("total latency", string(p.state))
	}
	var total float64
	for _, name := range p.Sinks() {
		if end := p.results[name].End(); end > total {
			total = end
		}
	}
	return total, nil
}

// CriticalPath returns the component chain whose timings bound the total
// latency, from a root to the latest-finishing sink. From that sink's final
// group it repeatedly follows the binding dependency recorded during the
// run, mapping group indices through the same proportional rule, until a
// root is reached.
func (p *Pipeline) CriticalPath() ([]string, error) {
	if p.state != StateExecuted {
		return nil, errors.InvalidState("critical path", string(p.state))
	}

	// Latest-finishing sink; ties go to the earliest-inserted one.
	var sink string
	best := math.Inf(-1)
	for _, name := range p.Sinks() {
		if end := p.results[name].End(); end > best {
			best = end
			sink = name
		}
	}
	if sink == "" {
		return nil, nil
	}

	cur := sink
	g := len(p.components[cur].Agenda) - 1
	path := []string{cur}

	for {
		bind := p.bindings[cur][g]
		if bind == "" {
			break
		}
		n := len(p.components[cur].Agenda)
		m := len(p.components[bind].Agenda)
		g = (m*(g+1)+n-1)/n - 1
		cur = bind
		path = append(path, cur)
	}

	// Walkback produced sink-to-root; flip it.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func copyResults(results map[string]TimingResult) map[string]TimingResult {
	out := make(map[string]TimingResult, len(results))
	for name, tr := range results {
		cp := make(TimingResult, len(tr))
		copy(cp, tr)
		out[name] = cp
	}
	return out
}
