package model

// Parcel is the record supplied by the parcel lookup for a single land parcel.
// A nil Acres is treated as zero acreage.
type Parcel struct {
	AcctID *string  `json:"acctId"`
	Acres  *float64 `json:"acres"`
}

// NewParcel returns a Parcel with both fields set.
func NewParcel(acctID string, acres float64) *Parcel {
	return &Parcel{AcctID: &acctID, Acres: &acres}
}

// AcresOrZero returns the parcel acreage, or 0 when it is absent.
func (p *Parcel) AcresOrZero() float64 {
	if p == nil || p.Acres == nil {
		return 0
	}
	return *p.Acres
}

// ID returns the external identifier, or "" when it is absent.
func (p *Parcel) ID() string {
	if p == nil || p.AcctID == nil {
		return ""
	}
	return *p.AcctID
}
