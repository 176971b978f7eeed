// Package econ projects annual economics for a parcel from its fit result.
package econ

import (
	"slices"

	"github.com/sells-group/parcel-planner/internal/model"
)

const (
	incomePerSqFt = 2.5 // annual income per covered ft²
	opsPerSqFt    = 0.5 // annual operating expense per covered ft²
	weeksPerYear  = 52.0
	notFoundNote  = "Parcel not found. Run the fit step first."
	noHousesNote  = "No houses fit on this parcel — skipping economics."
)

// Compute projects revenue, costs and net return for a fit result. It never
// fails: a missing parcel or a parcel with no houses yields an ineligible
// result with an explanatory note.
func Compute(fit *model.FitResult, in model.EconomicInputs) *model.EconResult {
	if fit == nil || !fit.Found {
		return &model.EconResult{Messages: []string{notFoundNote}}
	}

	notes := slices.Clone(fit.Messages)
	if notes == nil {
		notes = []string{}
	}

	labor := WorkerCost(in)
	loan := LoanPayment(in)

	if fit.MaxHouses <= 0 {
		return &model.EconResult{
			AnnualWorkerCost:  labor,
			AnnualLoanPayment: loan,
			AnnualNetRevenue:  model.Round2(-(labor + loan)),
			Messages:          append(notes, noHousesNote),
		}
	}

	covered := float64(fit.MaxHouses) * fit.PerHouseSqFt
	income := model.Round2(covered * incomePerSqFt)
	ops := model.Round2(covered * opsPerSqFt)

	return &model.EconResult{
		Eligible:          true,
		Houses:            fit.MaxHouses,
		TotalCoveredSqFt:  covered,
		AnnualIncome:      income,
		AnnualOpsExpense:  ops,
		AnnualWorkerCost:  labor,
		AnnualLoanPayment: loan,
		AnnualNetRevenue:  model.Round2(income - (ops + labor + loan)),
		Messages:          notes,
	}
}

// WorkerCost is the annual labor cost: workers × weekly pay × 52.
// Negative inputs count as zero.
func WorkerCost(in model.EconomicInputs) float64 {
	workers := max(0, in.Workers)
	weekly := max(0, in.WeeklyPayPerWorker)
	return model.Round2(float64(workers) * weekly * weeksPerYear)
}
