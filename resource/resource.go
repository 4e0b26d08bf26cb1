// Package resource models the compute hardware that pipeline stages run on.
// A Compute descriptor is immutable after construction and exposes derived
// peak rates plus time helpers used by timing functions. All times are in
// microseconds.
package resource

import (
	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/validation"
)

// Kind discriminates how peak rates are derived.
type Kind string

const (
	// KindCPU derives peak rates from core and memory channel attributes.
	KindCPU Kind = "cpu"
	// KindGPU takes peak rates directly from the descriptor.
	KindGPU Kind = "gpu"
)

// Spec is the raw hardware descriptor, typically loaded from a YAML profile.
//
// CPU descriptors supply cores, core_frequency, flops_per_cycle and the
// memory channel attributes. GPU descriptors supply flops and bandwidth
// directly. Both carry network speed and the fixed driver overhead added to
// every network transfer.
type Spec struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Kind Kind   `json:"kind" yaml:"kind" validate:"required,oneof=cpu gpu"`

	// CPU attributes.
	Cores         int     `json:"cores,omitempty" yaml:"cores,omitempty"`
	CoreFrequency float64 `json:"core_frequency,omitempty" yaml:"core_frequency,omitempty"`
	FlopsPerCycle float64 `json:"flops_per_cycle,omitempty" yaml:"flops_per_cycle,omitempty"`
	// MemoryWidth is the per-channel bus width in bits.
	MemoryChannels  int     `json:"memory_channels,omitempty" yaml:"memory_channels,omitempty"`
	MemoryWidth     int     `json:"memory_width,omitempty" yaml:"memory_width,omitempty"`
	MemoryFrequency float64 `json:"memory_frequency,omitempty" yaml:"memory_frequency,omitempty"`

	// GPU attributes: peak FLOP/s and peak memory bandwidth in bytes/s.
	Flops     float64 `json:"flops,omitempty" yaml:"flops,omitempty"`
	Bandwidth float64 `json:"bandwidth,omitempty" yaml:"bandwidth,omitempty"`

	// NetworkSpeed is the link rate in bits/s.
	NetworkSpeed float64 `json:"network_speed" yaml:"network_speed"`
	// TimeInDriver is the fixed driver overhead in microseconds added to
	// every network transfer.
	TimeInDriver float64 `json:"time_in_driver,omitempty" yaml:"time_in_driver,omitempty"`
}

// Compute is an immutable hardware descriptor with cached peak rates.
// Instances are shared by reference across pipeline components and are safe
// for concurrent reads.
type Compute struct {
	spec          Spec
	peakFlops     float64
	peakBandwidth float64
}

// New validates a Spec and derives its peak rates. Every rate-determining
// field must be positive for the descriptor's kind.
func New(spec Spec) (*Compute, error) {
	if err := validation.Validate(spec); err != nil {
		return nil, err
	}

	c := &Compute{spec: spec}

	switch spec.Kind {
	case KindCPU:
		if spec.Cores <= 0 {
			return nil, errors.Configuration("cores", "must be positive for cpu descriptors")
		}
		if spec.CoreFrequency <= 0 {
			return nil, errors.Configuration("core_frequency", "must be positive for cpu descriptors")
		}
		if spec.FlopsPerCycle <= 0 {
			return nil, errors.Configuration("flops_per_cycle", "must be positive for cpu descriptors")
		}
		if spec.MemoryChannels <= 0 {
			return nil, errors.Configuration("memory_channels", "must be positive for cpu descriptors")
		}
		if spec.MemoryWidth <= 0 {
			return nil, errors.Configuration("memory_width", "must be positive for cpu descriptors")
		}
		if spec.MemoryFrequency <= 0 {
			return nil, errors.Configuration("memory_frequency", "must be positive for cpu descriptors")
		}
		c.peakFlops = float64(spec.Cores) * spec.CoreFrequency * spec.FlopsPerCycle
		c.peakBandwidth = float64(spec.MemoryChannels) * float64(spec.MemoryWidth) * spec.MemoryFrequency / 8
	case KindGPU:
		if spec.Flops <= 0 {
			return nil, errors.Configuration("flops", "must be positive for gpu descriptors")
		}
		if spec.Bandwidth <= 0 {
			return nil, errors.Configuration("bandwidth", "must be positive for gpu descriptors")
		}
		c.peakFlops = spec.Flops
		c.peakBandwidth = spec.Bandwidth
	}

	if spec.NetworkSpeed <= 0 {
		return nil, errors.Configuration("network_speed", "must be positive")
	}
	if spec.TimeInDriver < 0 {
		return nil, errors.Configuration("time_in_driver", "must not be negative")
	}

	return c, nil
}

// MustNew is New for descriptors known to be valid, such as compiled-in
// profiles. It panics on error.
func MustNew(spec Spec) *Compute {
	c, err := New(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the descriptor name.
func (c *Compute) Name() string { return c.spec.Name }

// Kind returns the descriptor kind.
func (c *Compute) Kind() Kind { return c.spec.Kind }

// Spec returns a copy of the raw descriptor.
func (c *Compute) Spec() Spec { return c.spec }

// PeakFlops returns the peak compute rate in FLOP/s.
func (c *Compute) PeakFlops() float64 { return c.peakFlops }

// PeakBandwidth returns the peak memory bandwidth in bytes/s.
func (c *Compute) PeakBandwidth() float64 { return c.peakBandwidth }

// NetworkSpeed returns the link rate in bits/s.
func (c *Compute) NetworkSpeed() float64 { return c.spec.NetworkSpeed }

// TimeInDriver returns the fixed per-transfer driver overhead in µs.
func (c *Compute) TimeInDriver() float64 { return c.spec.TimeInDriver }

// CalcTime returns the time in µs to execute the given floating point
// operations at the full peak rate.
func (c *Compute) CalcTime(flops float64) float64 {
	return flops / c.peakFlops * 1e6
}

// LoadTime returns the time in µs to move the given number of bytes through
// memory at the full peak bandwidth.
func (c *Compute) LoadTime(bytes float64) float64 {
	return bytes / c.peakBandwidth * 1e6
}

// NetworkTime returns the time in µs to push the given number of bits over
// the network link, including the fixed driver overhead.
func (c *Compute) NetworkTime(bits float64) float64 {
	return bits/c.spec.NetworkSpeed*1e6 + c.spec.TimeInDriver
}
