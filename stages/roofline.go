// Package stages provides the built-in timing function library for
// adaptive-optics style pipelines: camera readout, pixel calibration,
// centroiding, wavefront reconstruction, mirror control, and network
// transfer. Each stage follows the roofline discipline: per group, latency
// is the worse of the compute-bound and memory-bound time, with peak rates
// scaled by efficiency and resource-partition factors.
package stages

import (
	"math"

	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// Cost is the modeled work of an operation: floating point operations and
// memory traffic in bits.
type Cost struct {
	Flops float64
	Bits  float64
}

// Add returns the sum of two costs.
func (c Cost) Add(o Cost) Cost {
	return Cost{Flops: c.Flops + o.Flops, Bits: c.Bits + o.Bits}
}

// Scale multiplies both cost terms by f.
func (c Cost) Scale(f float64) Cost {
	return Cost{Flops: c.Flops * f, Bits: c.Bits * f}
}

// rooflineTime converts a cost into microseconds on the given hardware.
// flopScale and memScale are achieved-efficiency factors for the compute and
// memory roofs; partition is the fraction of the resource allocated to this
// stage.
func rooflineTime(res *resource.Compute, c Cost, flopScale, memScale, partition float64) float64 {
	computeTime := res.CalcTime(c.Flops) / (flopScale * partition)
	memoryTime := res.LoadTime(c.Bits/8) / (memScale * partition)
	return math.Max(computeTime, memoryTime)
}

// serialSpans chains per-group durations on a single execution unit: each
// group begins at the later of its permitted start and the previous group's
// end.
func serialSpans(start []float64, durations []float64) pipeline.TimingResult {
	spans := make(pipeline.TimingResult, len(durations))
	prevEnd := math.Inf(-1)
	for g, dur := range durations {
		s := start[g]
		if prevEnd > s {
			s = prevEnd
		}
		spans[g] = pipeline.Span{Start: s, End: s + dur}
		prevEnd = s + dur
	}
	return spans
}

func log2(x float64) float64 {
	return math.Log2(x)
}
