package pipeline

import (
	"github.com/pipelat/pipelat/errors"
)

// checkDependencies verifies every declared dependency resolves to a
// registered component. Components are visited in insertion order so the
// first error reported is deterministic.
func checkDependencies(order []string, components map[string]*Component) error {
	for _, name := range order {
		for _, dep := range components[name].DependsOn {
			if _, ok := components[dep]; !ok {
				return errors.MissingDependency(name, dep)
			}
		}
	}
	return nil
}

// detectCycle runs a depth-first traversal with three-color marking and
// returns the first cycle found as an ordered name list (first name repeated
// at the end), or nil when the graph is acyclic.
func detectCycle(order []string, components map[string]*Component) []string {
	const (
		white = iota // unvisited
		grey         // on the current DFS path
		black        // fully explored
	)
	color := make(map[string]int, len(order))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		color[name] = grey
		stack = append(stack, name)

		for _, dep := range components[name].DependsOn {
			switch color[dep] {
			case grey:
				// Extract the cycle from the point dep entered the path.
				for i, n := range stack {
					if n == dep {
						cycle := make([]string, 0, len(stack)-i+1)
						cycle = append(cycle, stack[i:]...)
						cycle = append(cycle, dep)
						return cycle
					}
				}
			case white:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
		return nil
	}

	for _, name := range order {
		if color[name] == white {
			if cycle := visit(name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// topoOrder computes a topological order over an acyclic graph, breaking
// ties by insertion order: among the components whose dependencies are all
// placed, the earliest-inserted one goes next. Quadratic in the component
// count, which is negligible at pipeline sizes.
func topoOrder(order []string, components map[string]*Component) []string {
	placed := make(map[string]bool, len(order))
	result := make([]string, 0, len(order))

	for len(result) < len(order) {
		for _, name := range order {
			if placed[name] {
				continue
			}
			ready := true
			for _, dep := range components[name].DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}
