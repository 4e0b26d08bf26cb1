package resource

import (
	"math"
	"testing"

	"github.com/pipelat/pipelat/errors"
)

func cpuSpec() Spec {
	return Spec{
		Name:            "test-cpu",
		Kind:            KindCPU,
		Cores:           16,
		CoreFrequency:   2.6e9,
		FlopsPerCycle:   32,
		MemoryChannels:  4,
		MemoryWidth:     64,
		MemoryFrequency: 3200e6,
		NetworkSpeed:    100e9,
		TimeInDriver:    5,
	}
}

func gpuSpec() Spec {
	return Spec{
		Name:         "test-gpu",
		Kind:         KindGPU,
		Flops:        19.5e12,
		Bandwidth:    2.0e12,
		NetworkSpeed: 200e9,
		TimeInDriver: 5,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestCPUPeakRates(t *testing.T) {
	c, err := New(cpuSpec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFlops := 16 * 2.6e9 * 32.0
	if !almostEqual(c.PeakFlops(), wantFlops) {
		t.Fatalf("peak flops = %g, want %g", c.PeakFlops(), wantFlops)
	}
	wantBW := 4 * 64 * 3200e6 / 8
	if !almostEqual(c.PeakBandwidth(), wantBW) {
		t.Fatalf("peak bandwidth = %g, want %g", c.PeakBandwidth(), wantBW)
	}
}

func TestGPUPeakRatesDirect(t *testing.T) {
	c, err := New(gpuSpec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.PeakFlops() != 19.5e12 || c.PeakBandwidth() != 2.0e12 {
		t.Fatalf("gpu peaks not taken directly: %g %g", c.PeakFlops(), c.PeakBandwidth())
	}
}

func TestTimeHelpers(t *testing.T) {
	c := MustNew(gpuSpec())

	// 19.5e12 flops at 19.5e12 FLOP/s is one second, i.e. 1e6 µs.
	if !almostEqual(c.CalcTime(19.5e12), 1e6) {
		t.Fatalf("calc time = %g", c.CalcTime(19.5e12))
	}
	if !almostEqual(c.LoadTime(2.0e12), 1e6) {
		t.Fatalf("load time = %g", c.LoadTime(2.0e12))
	}
	// 200e9 bits over a 200e9 bit/s link plus 5 µs driver overhead.
	if !almostEqual(c.NetworkTime(200e9), 1e6+5) {
		t.Fatalf("network time = %g", c.NetworkTime(200e9))
	}
}

func TestInvalidSpecsRejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"zero cores", func(s *Spec) { s.Cores = 0 }},
		{"negative frequency", func(s *Spec) { s.CoreFrequency = -1 }},
		{"zero flops per cycle", func(s *Spec) { s.FlopsPerCycle = 0 }},
		{"zero memory channels", func(s *Spec) { s.MemoryChannels = 0 }},
		{"zero network speed", func(s *Spec) { s.NetworkSpeed = 0 }},
		{"negative driver time", func(s *Spec) { s.TimeInDriver = -1 }},
	}
	for _, tc := range cases {
		spec := cpuSpec()
		tc.mutate(&spec)
		if _, err := New(spec); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	gpu := gpuSpec()
	gpu.Bandwidth = 0
	if _, err := New(gpu); !errors.IsCode(err, errors.ErrCodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestInvalidKindRejected(t *testing.T) {
	spec := cpuSpec()
	spec.Kind = "tpu"
	if _, err := New(spec); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
