package stages

import (
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// Per-actuator-vector operation costs for mirror control. State words are
// 32 bits.

func integratorCost(acts float64) Cost {
	return Cost{Flops: 2 * acts, Bits: 2 * acts * 32}
}

func offsetCost(acts float64) Cost {
	return Cost{Flops: acts, Bits: 2 * acts * 32}
}

func saturationCost(acts float64) Cost {
	return Cost{Flops: 2 * acts, Bits: 2 * acts * 32}
}

func dmPowerCost(acts float64) Cost {
	return Cost{Flops: 2 * acts, Bits: 2 * acts * 32}
}

// controlGroupCost combines the control chain for one command vector: two
// integrator passes scaled by the combine factor, then offset, saturation,
// and mirror power estimation.
func controlGroupCost(acts, combine float64) Cost {
	return integratorCost(acts).Scale(2 * combine).
		Add(offsetCost(acts)).
		Add(saturationCost(acts)).
		Add(dmPowerCost(acts))
}

// Control models deformable-mirror command processing. Agenda entries are
// actuators per group.
//
// Parameters: combine (default 1), overhead (µs per group, default 8),
// n_workers, flop_scale, mem_scale, partition.
func Control() pipeline.TimingFunc {
	return func(res *resource.Compute, agenda []int, params pipeline.Params, start []float64) (pipeline.TimingResult, error) {
		if err := checkStarts(agenda, start); err != nil {
			return nil, err
		}
		flopScale, memScale, partition, err := scaling(params)
		if err != nil {
			return nil, err
		}
		w, err := workers(params)
		if err != nil {
			return nil, err
		}
		combine := params.FloatDefault(ParamCombine, 1)
		overhead := params.FloatDefault(ParamOverhead, 8)

		durations := make([]float64, len(agenda))
		for g, acts := range agenda {
			cost := controlGroupCost(float64(perWorker(acts, w)), combine)
			durations[g] = rooflineTime(res, cost, flopScale, memScale, partition) + overhead
		}
		return serialSpans(start, durations), nil
	}
}
