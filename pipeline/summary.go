package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Summary is a read-only projection over the stored timing results. It
// never triggers recomputation.
type Summary struct {
	RunID        string             `json:"run_id"`
	Pipeline     string             `json:"pipeline"`
	GeneratedAt  time.Time          `json:"generated_at"`
	TotalLatency float64            `json:"total_latency_us"`
	CriticalPath []string           `json:"critical_path"`
	Components   []ComponentSummary `json:"components"`
}

// ComponentSummary condenses one component's timing result.
type ComponentSummary struct {
	Name      string  `json:"name"`
	Type      Type    `json:"type"`
	Resource  string  `json:"resource"`
	Groups    int     `json:"groups"`
	StartUs   float64 `json:"start_us"`
	EndUs     float64 `json:"end_us"`
	LatencyUs float64 `json:"latency_us"`
	// OnCriticalPath marks components on the longest-latency chain.
	OnCriticalPath bool `json:"on_critical_path"`
}

// Summary builds a summary of the last successful run, with components in
// topological order.
func (p *Pipeline) Summary() (*Summary, error) {
	total, err := p.TotalLatency()
	if err != nil {
		return nil, err
	}
	critical, err := p.CriticalPath()
	if err != nil {
		return nil, err
	}

	onPath := make(map[string]bool, len(critical))
	for _, name := range critical {
		onPath[name] = true
	}

	s := &Summary{
		RunID:        uuid.NewString(),
		Pipeline:     p.name,
		GeneratedAt:  time.Now().UTC(),
		TotalLatency: total,
		CriticalPath: critical,
		Components:   make([]ComponentSummary, 0, len(p.topo)),
	}

	for _, name := range p.topo {
		c := p.components[name]
		tr := p.results[name]
		s.Components = append(s.Components, ComponentSummary{
			Name:           name,
			Type:           c.Type,
			Resource:       c.Resource.Name(),
			Groups:         len(tr),
			StartUs:        tr.Start(),
			EndUs:          tr.End(),
			LatencyUs:      tr.Latency(),
			OnCriticalPath: onPath[name],
		})
	}
	return s, nil
}
