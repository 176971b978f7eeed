package model

// FitResult is the outcome of the capacity estimation stage.
type FitResult struct {
	Found        bool     `json:"found"`
	AcctID       *string  `json:"acctId"`
	ParcelAcres  float64  `json:"parcelAcres"`
	UsableAcres  float64  `json:"usableAcres"`
	PerHouseSqFt float64  `json:"perHouseSqFt"`
	MaxHouses    int      `json:"maxHouses"`
	Messages     []string `json:"messages"`
}

// EconResult is the annual financial projection for a fitted parcel.
type EconResult struct {
	Eligible          bool     `json:"eligible"` // true iff houses > 0
	Houses            int      `json:"houses"`
	TotalCoveredSqFt  float64  `json:"totalCoveredSqFt"`
	AnnualIncome      float64  `json:"annualIncome"`
	AnnualOpsExpense  float64  `json:"annualOpsExpense"`
	AnnualWorkerCost  float64  `json:"annualWorkerCost"`
	AnnualLoanPayment float64  `json:"annualLoanPayment"`
	AnnualNetRevenue  float64  `json:"annualNetRevenue"`
	Messages          []string `json:"messages"`
}
