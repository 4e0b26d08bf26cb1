package stages

import (
	"sort"
	"sync"

	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/pipeline"
)

// Registry maps stage type names to timing functions so pipelines can be
// built declaratively.
type Registry struct {
	mu     sync.RWMutex
	stages map[string]pipeline.TimingFunction
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]pipeline.TimingFunction)}
}

// Builtin returns a registry preloaded with the stage library under their
// canonical type names.
func Builtin() *Registry {
	r := NewRegistry()
	r.stages[string(pipeline.TypeCamera)] = CameraReadout()
	r.stages[string(pipeline.TypeCalibration)] = PixelCalibration()
	r.stages[string(pipeline.TypeCentroider)] = Centroider()
	r.stages[string(pipeline.TypeReconstruction)] = Reconstruction()
	r.stages[string(pipeline.TypeControl)] = Control()
	r.stages[string(pipeline.TypeNetwork)] = NetworkTransfer()
	return r
}

// Register adds a timing function under a type name.
func (r *Registry) Register(name string, fn pipeline.TimingFunction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stages[name]; exists {
		return errors.AlreadyExists("stage", name)
	}
	r.stages[name] = fn
	return nil
}

// Get returns the timing function registered under name.
func (r *Registry) Get(name string) (pipeline.TimingFunction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.stages[name]
	if !ok {
		return nil, errors.NotFound("stage", name)
	}
	return fn, nil
}

// Names returns the registered stage names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stages))
	for name := range r.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
