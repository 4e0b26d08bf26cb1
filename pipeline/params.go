package pipeline

import (
	"math"

	"github.com/pipelat/pipelat/errors"
)

// Params is the free-form parameter mapping handed to a timing function.
// The scheduler never inspects its contents.
type Params map[string]any

// Float returns the parameter under key as a float64. Integer values are
// widened. Missing keys and non-numeric values are errors.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, errors.MissingField(key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, errors.InvalidInput(key, "parameter must be numeric")
}

// FloatDefault returns the parameter under key, or def when absent or
// non-numeric.
func (p Params) FloatDefault(key string, def float64) float64 {
	v, err := p.Float(key)
	if err != nil {
		return def
	}
	return v
}

// Int returns the parameter under key as an int. JSON decoding delivers all
// numbers as float64; those are accepted only when integral.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, errors.MissingField(key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.InvalidInput(key, "parameter must be an integer")
		}
		return int(n), nil
	}
	return 0, errors.InvalidInput(key, "parameter must be an integer")
}

// IntDefault returns the parameter under key, or def when absent or not an
// integer.
func (p Params) IntDefault(key string, def int) int {
	v, err := p.Int(key)
	if err != nil {
		return def
	}
	return v
}

// String returns the parameter under key as a string.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", errors.MissingField(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.InvalidInput(key, "parameter must be a string")
	}
	return s, nil
}

// BoolDefault returns the parameter under key, or def when absent or not a
// bool.
func (p Params) BoolDefault(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Merge returns a new Params with entries from other overriding entries
// from p. Neither input is modified.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
