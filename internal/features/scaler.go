package features

import "math"

// Scaler rescales the continuous slots of a vector.
type Scaler func([ContinuousWidth]float64) [ContinuousWidth]float64

// ScaleContinuous standardizes the six values against their own mean and
// population standard deviation. Nothing is fitted ahead of time: the result
// depends only on the spread of this one request. When all six values are
// equal the spread is zero and every output is 0.
func ScaleContinuous(values [ContinuousWidth]float64) [ContinuousWidth]float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= ContinuousWidth

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / ContinuousWidth)

	var out [ContinuousWidth]float64
	if std == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}
