package billing

import "math"

// RatePerVector is the price of one upserted vector in USD.
const RatePerVector = 0.0004

// amountPrecision is the number of decimal places kept in Amount.
const amountPrecision = 6

// Charge is the billing block of a run summary.
type Charge struct {
	TotalVectors  int     `json:"total_vectors"`
	Amount        float64 `json:"amount"`
	RatePerVector float64 `json:"rate_per_vector"`
}

// Calculate prices total vectors at RatePerVector. Negative totals are
// treated as zero.
func Calculate(total int) Charge {
	return CalculateWithRate(total, RatePerVector)
}

// CalculateWithRate prices total vectors at rate.
func CalculateWithRate(total int, rate float64) Charge {
	if total < 0 {
		total = 0
	}
	scale := math.Pow10(amountPrecision)
	return Charge{
		TotalVectors:  total,
		Amount:        math.Round(float64(total)*rate*scale) / scale,
		RatePerVector: rate,
	}
}
