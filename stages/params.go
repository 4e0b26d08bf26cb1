package stages

import (
	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/pipeline"
)

// Parameter keys understood by the built-in stages. Everything has a
// default; pipelines only set what differs from it.
const (
	// ParamPartition is the fraction (0, 1] of the resource's peak rates
	// allocated to this stage when several stages share hardware.
	ParamPartition = "partition"
	// ParamFlopScale is the achieved fraction of peak compute.
	ParamFlopScale = "flop_scale"
	// ParamMemScale is the achieved fraction of peak memory bandwidth.
	ParamMemScale = "mem_scale"
	// ParamWorkers divides each group's workload across parallel workers.
	ParamWorkers = "n_workers"

	// ParamReadout is the camera readout delay in µs before the first group.
	ParamReadout = "readout"
	// ParamBitsPerPixel is the camera pixel width on the wire.
	ParamBitsPerPixel = "bits_per_pixel"

	// ParamBitDepth is the raw pixel depth used by calibration.
	ParamBitDepth = "bit_depth"

	// ParamPixPerSubap is the subaperture side length in pixels.
	ParamPixPerSubap = "n_pix_per_subap"
	// ParamSquareDiff selects square-difference correlation instead of FFT
	// cross-correlation.
	ParamSquareDiff = "square_diff"
	// ParamSort enables centroid sorting.
	ParamSort = "sort"

	// ParamActs is the actuator count for reconstruction and control.
	ParamActs = "n_acts"
	// ParamCombine scales the integrator term of the control stage.
	ParamCombine = "combine"
	// ParamOverhead is the fixed per-group control overhead in µs.
	ParamOverhead = "overhead"

	// ParamBitsPerItem is the wire size of one agenda item for network
	// transfer stages.
	ParamBitsPerItem = "bits_per_item"
)

// scaling extracts the shared efficiency and partition factors.
func scaling(params pipeline.Params) (flopScale, memScale, partition float64, err error) {
	flopScale = params.FloatDefault(ParamFlopScale, 1)
	memScale = params.FloatDefault(ParamMemScale, 1)
	partition = params.FloatDefault(ParamPartition, 1)

	if flopScale <= 0 {
		return 0, 0, 0, errors.Configuration(ParamFlopScale, "must be positive")
	}
	if memScale <= 0 {
		return 0, 0, 0, errors.Configuration(ParamMemScale, "must be positive")
	}
	if partition <= 0 || partition > 1 {
		return 0, 0, 0, errors.Configuration(ParamPartition, "must be in (0, 1]")
	}
	return flopScale, memScale, partition, nil
}

// workers returns the positive worker count, defaulting to 1.
func workers(params pipeline.Params) (int, error) {
	w := params.IntDefault(ParamWorkers, 1)
	if w <= 0 {
		return 0, errors.Configuration(ParamWorkers, "must be positive")
	}
	return w, nil
}

// perWorker divides a group workload across workers, rounding up.
func perWorker(size, w int) int {
	return (size + w - 1) / w
}

// checkStarts verifies the caller supplied one permitted start time per
// agenda group before any per-group indexing happens.
func checkStarts(agenda []int, start []float64) error {
	if len(start) != len(agenda) {
		return errors.InputShapeMismatch(len(agenda), len(start))
	}
	return nil
}
