package pipeline

import (
	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/resource"
)

// Type tags a component with its stage family. The scheduler treats it as
// informational only; it exists for reporting and declarative construction.
type Type string

const (
	TypeCamera         Type = "camera"
	TypeCalibration    Type = "calibration"
	TypeCentroider     Type = "centroider"
	TypeReconstruction Type = "reconstruction"
	TypeControl        Type = "control"
	TypeNetwork        Type = "network"
	TypeCustom         Type = "custom"
)

// Component is one stage of a pipeline: a named unit of work bound to a
// hardware descriptor and a timing function, packetized into agenda groups.
type Component struct {
	// Name uniquely identifies the component within its pipeline.
	Name string
	// Type is the stage family tag.
	Type Type
	// Resource is the hardware the stage runs on. Shared, never owned.
	Resource *resource.Compute
	// Timing models the stage's cost.
	Timing TimingFunction
	// Params is passed opaquely to the timing function.
	Params Params
	// DependsOn names the components whose output this stage consumes.
	DependsOn []string
	// Agenda is the per-group workload size. Its length is the group count
	// used by the dependency-propagation rule.
	Agenda []int
}

// validate checks the component's local invariants. Cross-component
// invariants (dependency resolution, acyclicity) are checked at resolve.
func (c *Component) validate() error {
	if c.Name == "" {
		return errors.Configuration("name", "component name must not be empty")
	}
	if c.Resource == nil {
		return errors.Configuration("resource", "component "+c.Name+" has no compute resource")
	}
	if c.Timing == nil {
		return errors.Configuration("timing", "component "+c.Name+" has no timing function")
	}
	if len(c.Agenda) == 0 {
		return errors.Configuration("agenda", "component "+c.Name+" has an empty agenda")
	}
	for i, size := range c.Agenda {
		if size <= 0 {
			return errors.Configuration("agenda", "component "+c.Name+" has a non-positive group size").
				WithDetail("group", i)
		}
	}
	if c.Type == "" {
		c.Type = TypeCustom
	}
	if c.Params == nil {
		c.Params = Params{}
	}
	return nil
}

// Groups returns the number of agenda groups.
func (c *Component) Groups() int { return len(c.Agenda) }
