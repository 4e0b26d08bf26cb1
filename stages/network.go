package stages

import (
	"github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// NetworkTransfer models moving data between hosts over the resource's
// link. Agenda entries are items per group; each item is bits_per_item bits
// on the wire. Per group the transfer takes the link time plus the driver
// overhead baked into the resource descriptor.
//
// Parameters: bits_per_item (default 32).
func NetworkTransfer() pipeline.TimingFunc {
	return func(res *resource.Compute, agenda []int, params pipeline.Params, start []float64) (pipeline.TimingResult, error) {
		if err := checkStarts(agenda, start); err != nil {
			return nil, err
		}
		bitsPerItem := params.FloatDefault(ParamBitsPerItem, 32)
		if bitsPerItem <= 0 {
			return nil, errors.Configuration(ParamBitsPerItem, "must be positive")
		}

		durations := make([]float64, len(agenda))
		for g, items := range agenda {
			durations[g] = res.NetworkTime(float64(items) * bitsPerItem)
		}
		return serialSpans(start, durations), nil
	}
}
