package stages

import (
	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// reconstructionCost is the matrix-vector multiply mapping slopes onto
// actuator commands: 2·slopes·acts flops; traffic is the slope vector, the
// command vector, and the control matrix rows at 32 bits.
func reconstructionCost(slopes, acts float64) Cost {
	return Cost{
		Flops: 2 * slopes * acts,
		Bits:  (slopes + acts + slopes*acts) * 32,
	}
}

// Reconstruction models grouped wavefront reconstruction. Agenda entries are
// slopes per group.
//
// Parameters: n_acts (required), n_workers, flop_scale, mem_scale,
// partition.
func Reconstruction() pipeline.TimingFunc {
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
		acts, err := params.Int(ParamActs)
		if err != nil {
			return nil, err
		}
		if acts <= 0 {
			return nil, errors.Configuration(ParamActs, "must be positive")
		}

		durations := make([]float64, len(agenda))
		for g, slopes := range agenda {
			cost := reconstructionCost(float64(perWorker(slopes, w)), float64(acts))
			durations[g] = rooflineTime(res, cost, flopScale, memScale, partition)
		}
		return serialSpans(start, durations), nil
	}
}
