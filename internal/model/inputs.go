package model

// DownPaymentKind tags which variant of DownPayment is set.
type DownPaymentKind int

const (
	DownPaymentNone DownPaymentKind = iota
	DownPaymentAbsolute
	DownPaymentFraction
)

// String implements fmt.Stringer.
func (k DownPaymentKind) String() string {
	switch k {
	case DownPaymentAbsolute:
		return "amount"
	case DownPaymentFraction:
		return "pct"
	default:
		return "none"
	}
}

// DownPayment is either nothing, an absolute amount, or a fraction of the
// land price. Use the constructors; the zero value is DownPaymentNone.
type DownPayment struct {
	Kind  DownPaymentKind
	Value float64
}

// NoDownPayment returns the empty variant.
func NoDownPayment() DownPayment { return DownPayment{} }

// DownPaymentAmount returns an absolute down payment.
func DownPaymentAmount(v float64) DownPayment {
	return DownPayment{Kind: DownPaymentAbsolute, Value: v}
}

// DownPaymentPct returns a down payment expressed as a fraction (0..1) of the price.
func DownPaymentPct(v float64) DownPayment {
	return DownPayment{Kind: DownPaymentFraction, Value: v}
}

// ResolveDownPayment picks the authoritative variant from two optional
// inputs. An amount takes precedence over a percentage when both are set.
func ResolveDownPayment(amount, pct *float64) DownPayment {
	switch {
	case amount != nil:
		return DownPaymentAmount(*amount)
	case pct != nil:
		return DownPaymentPct(*pct)
	default:
		return NoDownPayment()
	}
}

// EconomicInputs are the user-supplied financial assumptions for a parcel.
type EconomicInputs struct {
	Workers               int         `json:"workers"`
	WeeklyPayPerWorker    float64     `json:"weeklyPayPerWorker"`
	LandPrice             float64     `json:"landPrice"`
	DownPayment           DownPayment `json:"-"`
	AnnualInterestRatePct float64     `json:"annualInterestRatePct"`
	Years                 int         `json:"years"`
}
