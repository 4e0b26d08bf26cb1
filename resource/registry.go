package resource

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/logger"
)

// Registry holds named compute descriptors, usually loaded from a directory
// of hardware profile YAML files.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]*Compute
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]*Compute)}
}

// Register adds a descriptor under its name. Registering the same name twice
// is an error.
func (r *Registry) Register(c *Compute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resources[c.Name()]; exists {
		return errors.AlreadyExists("hardware profile", c.Name())
	}
	r.resources[c.Name()] = c
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Compute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.resources[name]
	if !ok {
		return nil, errors.NotFound("hardware profile", name)
	}
	return c, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile parses a single hardware profile YAML file and registers it.
func (r *Registry) LoadFile(path string) (*Compute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Configuration("profile", err.Error()).WithDetail("path", path)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Configuration("profile", "malformed YAML: "+err.Error()).WithDetail("path", path)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	c, err := New(spec)
	if err != nil {
		return nil, err
	}
	if err := r.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadDir loads every .yml/.yaml file in dir. Files that fail to parse or
// validate are skipped with a warning so one bad profile does not block the
// rest of the catalog.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Configuration("profiles", err.Error()).WithDetail("dir", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := r.LoadFile(path); err != nil {
			logger.Warn("skipping hardware profile", logger.F{
				logger.FieldPath:  path,
				logger.FieldError: err.Error(),
			})
		}
	}
	return nil
}
