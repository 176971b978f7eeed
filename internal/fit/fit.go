// Package fit estimates how many dwelling units a parcel can hold under a
// county rule set.
package fit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/parcel-planner/internal/model"
	"github.com/sells-group/parcel-planner/internal/rules"
)

// maxLossPct is the largest loss fraction the fit stage will apply.
const maxLossPct = 0.95

// Compute runs the capacity estimation for a parcel. Business conditions
// (missing parcel, small parcel, bad footprint) are reported through Found
// and Messages; only a malformed rule value returns an error.
func Compute(parcel *model.Parcel, rs *rules.RuleSet) (*model.FitResult, error) {
	if parcel == nil {
		return &model.FitResult{Messages: []string{"Parcel not found."}}, nil
	}

	r, err := rs.Values()
	if err != nil {
		return nil, eris.Wrap(err, "fit: read rules")
	}

	perHouse := math.Min(r.HouseWidthFt*r.HouseLengthFt, r.PerHouseAreaLimitSqFt)
	res := &model.FitResult{
		Found:    true,
		AcctID:   parcel.AcctID,
		Messages: []string{},
	}

	acres := parcel.AcresOrZero()
	if math.IsNaN(acres) || math.IsInf(acres, 0) {
		acres = 0
	}
	acres = model.Round2(acres)
	if acres <= 0 {
		res.PerHouseSqFt = perHouse
		res.Messages = append(res.Messages, "Parcel area is missing or zero.")
		return res, nil
	}
	res.ParcelAcres = acres

	if acres < r.MinParcelAcres {
		res.PerHouseSqFt = perHouse
		res.Messages = append(res.Messages,
			fmt.Sprintf("Parcel below minimum size (%s acres).", formatNumber(r.MinParcelAcres)))
		return res, nil
	}

	usable := acres
	usable *= 1 - clampLoss(r.SetbackLossPct, rules.KeySetbackLossPct, &res.Messages)
	usable *= 1 - clampLoss(r.InfraLossPct, rules.KeyInfraLossPct, &res.Messages)
	usable = math.Max(0, model.Round2(usable))
	res.UsableAcres = usable

	if perHouse <= 0 {
		res.Messages = append(res.Messages, "Invalid house dimensions/cap.")
		return res, nil
	}
	res.PerHouseSqFt = perHouse

	theoretical := model.SaturatingInt(math.Floor(rules.AcresToSqFt(usable) / perHouse))
	houses := max(0, min(theoretical, r.MaxHousesPerParcel))
	res.MaxHouses = houses

	capLabel := formatArea(r.PerHouseAreaLimitSqFt)
	if houses == 0 {
		res.Messages = append(res.Messages,
			fmt.Sprintf("Usable area too small for one house (<= %s ft² cap).", capLabel))
	}
	if perHouse < r.HouseWidthFt*r.HouseLengthFt {
		res.Messages = append(res.Messages,
			fmt.Sprintf("Per-house area limited to %s ft² by county rules.", capLabel))
	}
	if theoretical > houses {
		res.Messages = append(res.Messages,
			fmt.Sprintf("Capped by county max of %d houses.", r.MaxHousesPerParcel))
	}

	return res, nil
}

// clampLoss limits a loss fraction to [0, maxLossPct], noting any adjustment.
func clampLoss(v float64, name string, notes *[]string) float64 {
	switch {
	case v < 0:
		*notes = append(*notes, name+" < 0; clamped to 0.")
		return 0
	case v > maxLossPct:
		*notes = append(*notes, fmt.Sprintf("%s > %s; clamped to %s.", name, formatNumber(maxLossPct), formatNumber(maxLossPct)))
		return maxLossPct
	default:
		return v
	}
}

// formatNumber prints a float with one decimal at minimum (5 -> "5.0").
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) {
		s += ".0"
	}
	return s
}

// formatArea prints a square-footage figure with thousands separators.
func formatArea(v float64) string {
	p := message.NewPrinter(language.English)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}
