// Package loader builds pipelines from declarative JSON definitions: a
// component list plus pairwise start/end connections, resolved against a
// hardware profile registry and a stage registry.
package loader

import (
	"encoding/json"
	"os"

	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
	"github.com/pipelat/pipelat/stages"
	"github.com/pipelat/pipelat/validation"
)

// Definition is the top-level pipeline document.
type Definition struct {
	Name        string         `json:"name" validate:"required"`
	Components  []ComponentDef `json:"components" validate:"required,min=1,dive"`
	Connections []Connection   `json:"connections" validate:"dive"`
}

// ComponentDef declares one pipeline component.
type ComponentDef struct {
	Name string `json:"name" validate:"required"`
	// Type is the stage family; it selects the timing function unless Stage
	// overrides it.
	Type string `json:"type" validate:"required"`
	// Stage optionally names a registered timing function that differs from
	// the type's default.
	Stage string `json:"stage,omitempty"`
	// Resource names a hardware profile.
	Resource string `json:"resource" validate:"required"`
	// Params is passed through to the timing function.
	Params map[string]any `json:"params,omitempty"`
	// Agenda gives explicit per-group workload sizes. When omitted, Groups
	// and Total describe a uniform packetization instead.
	Agenda []int `json:"agenda,omitempty"`
	Groups int   `json:"groups,omitempty"`
	Total  int   `json:"total,omitempty"`
}

// Connection declares that End consumes the output of Start.
type Connection struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// Parse decodes and validates a definition document.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.InvalidInput("definition", "malformed JSON: "+err.Error())
	}
	if err := validation.Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidInput("definition", err.Error())
	}
	return Parse(data)
}

// Build translates a definition into a pipeline, resolving each component's
// hardware profile and timing function against the given registries.
// Dependencies are derived from the connection list. The returned pipeline
// is unresolved; callers run Resolve or Run on it.
func Build(def *Definition, resources *resource.Registry, stageReg *stages.Registry) (*pipeline.Pipeline, error) {
	p := pipeline.New(def.Name)

	for _, cd := range def.Components {
		res, err := resources.Get(cd.Resource)
		if err != nil {
			return nil, err
		}

		stageName := cd.Stage
		if stageName == "" {
			stageName = cd.Type
		}
		timing, err := stageReg.Get(stageName)
		if err != nil {
			return nil, err
		}

		agenda, err := buildAgenda(cd)
		if err != nil {
			return nil, err
		}

		c := &pipeline.Component{
			Name:      cd.Name,
			Type:      pipeline.Type(cd.Type),
			Resource:  res,
			Timing:    timing,
			Params:    pipeline.Params(cd.Params),
			DependsOn: dependenciesOf(cd.Name, def.Connections),
			Agenda:    agenda,
		}
		if err := p.AddComponent(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func buildAgenda(cd ComponentDef) ([]int, error) {
	if len(cd.Agenda) > 0 {
		return cd.Agenda, nil
	}
	if cd.Groups <= 0 || cd.Total <= 0 {
		return nil, errors.Configuration("agenda",
			"component "+cd.Name+" needs an explicit agenda or positive groups and total")
	}
	if cd.Total < cd.Groups {
		return nil, errors.Configuration("agenda",
			"component "+cd.Name+" has fewer work items than groups")
	}
	return pipeline.UniformAgenda(cd.Groups, cd.Total), nil
}

func dependenciesOf(name string, connections []Connection) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, conn := range connections {
		if conn.End == name && !seen[conn.Start] {
			deps = append(deps, conn.Start)
			seen[conn.Start] = true
		}
	}
	return deps
}
