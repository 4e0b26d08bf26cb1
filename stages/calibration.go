package stages

import (
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// calibrationCost models dark subtraction and flat-field division for px
// pixels: two flops per pixel; traffic is the raw frame at its native bit
// depth plus dark, flat, and output frames at 32 bits.
func calibrationCost(px int, bitDepth float64) Cost {
	p := float64(px)
	return Cost{
		Flops: 2 * p,
		Bits:  bitDepth*p + 3*p*32,
	}
}

// PixelCalibration models per-group pixel calibration. Agenda entries are
// pixels per group.
//
// Parameters: bit_depth (default 16), n_workers, flop_scale, mem_scale,
// partition.
func PixelCalibration() pipeline.TimingFunc {
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
		bitDepth := params.FloatDefault(ParamBitDepth, 16)

		durations := make([]float64, len(agenda))
		for g, px := range agenda {
			cost := calibrationCost(perWorker(px, w), bitDepth)
			durations[g] = rooflineTime(res, cost, flopScale, memScale, partition)
		}
		return serialSpans(start, durations), nil
	}
}
