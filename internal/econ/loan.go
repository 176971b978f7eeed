package econ

import (
	"math"

	"github.com/sells-group/parcel-planner/internal/model"
)

// LoanPayment returns the fixed annual payment that amortizes the financed
// part of the land price over the term, compounding annually.
func LoanPayment(in model.EconomicInputs) float64 {
	price := max(0, in.LandPrice)
	principal := max(0, price-downPayment(price, in.DownPayment))

	years := max(1, in.Years)
	rate := max(0, in.AnnualInterestRatePct) / 100

	if rate == 0 {
		return model.Round2(principal / float64(years))
	}

	return model.Round2(principal * rate / (1 - math.Pow(1+rate, -float64(years))))
}

func downPayment(price float64, dp model.DownPayment) float64 {
	switch dp.Kind {
	case model.DownPaymentAbsolute:
		return max(0, dp.Value)
	case model.DownPaymentFraction:
		return price * min(1, max(0, dp.Value))
	default:
		return 0
	}
}
