package stages

import (
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
)

// Operation costs for one subaperture with side length p pixels. Complex
// words are 32 bits on the wire.

func fftCost(p float64) Cost {
	return Cost{Flops: 5 * p * p * log2(p), Bits: 2 * p * p * 32}
}

func conjugateCost(p float64) Cost {
	return Cost{Flops: p * p, Bits: p * p * 32}
}

func multiplyCost(p float64) Cost {
	return Cost{Flops: p * p, Bits: 2 * p * p * 32}
}

func mergeSortCost(n float64) Cost {
	return Cost{Flops: 2 * n * log2(n), Bits: 2 * n * 32}
}

// crossCorrelateCost is FFT-based correlation of one subaperture: forward
// FFTs of image and reference, conjugate multiply, inverse FFT.
func crossCorrelateCost(p float64) Cost {
	return fftCost(p).
		Add(fftCost(p)).
		Add(conjugateCost(p)).
		Add(multiplyCost(p)).
		Add(fftCost(p))
}

// centroidCost is the center-of-gravity computation over a correlation
// plane, optionally followed by a sort of the plane's pixels.
func centroidCost(p float64, sort bool) Cost {
	c := Cost{Flops: 5*p*p - 1, Bits: p * p * 32}
	if sort {
		c = c.Add(mergeSortCost(p * p))
	}
	return c
}

// squareDiffCost is direct square-difference correlation of a p-wide
// subaperture against a search window of side m.
func squareDiffCost(m, n float64) Cost {
	b := m - n + 1
	return Cost{
		Flops: (2*n*n-1)*b*b + n*n*b*b,
		Bits:  (m*m + n*n) * 32,
	}
}

// referenceSlopesCost subtracts the reference slope pair of one subaperture.
func referenceSlopesCost() Cost {
	return Cost{Flops: 2, Bits: 2 * 32}
}

// slopeErrorCost compares measured slopes against references.
func slopeErrorCost() Cost {
	return Cost{Flops: 8, Bits: 2 * 32}
}

// centroiderGroupCost is the full per-group cost for subs subapertures.
func centroiderGroupCost(subs, pixPerSubap float64, squareDiff, sort bool) Cost {
	var perSubap Cost
	if squareDiff {
		perSubap = squareDiffCost(pixPerSubap, 2*pixPerSubap)
	} else {
		perSubap = crossCorrelateCost(pixPerSubap).Add(centroidCost(pixPerSubap, sort))
	}
	perSubap = perSubap.Add(referenceSlopesCost()).Add(slopeErrorCost())
	return perSubap.Scale(subs)
}

// Centroider models wavefront-sensor slope computation. Agenda entries are
// valid subapertures per group.
//
// Parameters: n_pix_per_subap (default 8), square_diff, sort, n_workers,
// flop_scale, mem_scale, partition.
func Centroider() pipeline.TimingFunc {
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
		pix := float64(params.IntDefault(ParamPixPerSubap, 8))
		squareDiff := params.BoolDefault(ParamSquareDiff, false)
		sort := params.BoolDefault(ParamSort, false)

		durations := make([]float64, len(agenda))
		for g, subs := range agenda {
			cost := centroiderGroupCost(float64(perWorker(subs, w)), pix, squareDiff, sort)
			durations[g] = rooflineTime(res, cost, flopScale, memScale, partition)
		}
		return serialSpans(start, durations), nil
	}
}
