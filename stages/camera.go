package stages

import (
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// CameraReadout models a camera streaming pixel groups over its link. The
// first group becomes available after the fixed readout delay; subsequent
// groups follow back to back, each taking the link transfer time for its
// pixel count. Agenda entries are pixels per group.
//
// Parameters: readout (µs, default 500), bits_per_pixel (default 16).
func CameraReadout() pipeline.TimingFunc {
	return func(res *resource.Compute, agenda []int, params pipeline.Params, start []float64) (pipeline.TimingResult, error) {
		if err := checkStarts(agenda, start); err != nil {
			return nil, err
		}
		readout := params.FloatDefault(ParamReadout, 500)
		bpp := params.FloatDefault(ParamBitsPerPixel, 16)

		durations := make([]float64, len(agenda))
		for g, px := range agenda {
			durations[g] = res.NetworkTime(float64(px) * bpp)
		}

		// The readout delay shifts the earliest start of the first group;
		// later groups chain off it.
		shifted := make([]float64, len(start))
		for g, s := range start {
			shifted[g] = s
		}
		if len(shifted) > 0 {
			shifted[0] += readout
		}
		return serialSpans(shifted, durations), nil
	}
}
