// Package rules holds the county site-development constants used by the fit
// stage. A RuleSet is built once at startup and never mutated afterwards.
package rules

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cast"

	"github.com/sells-group/parcel-planner/internal/model"
)

// Rule keys as they appear in county override documents.
const (
	KeyHouseWidthFt          = "houseWidthFt"
	KeyHouseLengthFt         = "houseLengthFt"
	KeyPerHouseAreaLimitSqFt = "perHouseAreaLimitSqFt"
	KeyMaxHousesPerParcel    = "maxHousesPerParcel"
	KeySetbackLossPct        = "setbackLossPct"
	KeyInfraLossPct          = "infraLossPct"
	KeyMinParcelAcres        = "minParcelAcres"
)

// SqFtPerAcre is the number of square feet in one acre.
const SqFtPerAcre = 43_560.0

// Defaults are the baseline rule values applied before any county override.
type Defaults struct {
	HouseWidthFt          float64 `yaml:"house_width_ft" mapstructure:"house_width_ft"`
	HouseLengthFt         float64 `yaml:"house_length_ft" mapstructure:"house_length_ft"`
	PerHouseAreaLimitSqFt float64 `yaml:"per_house_area_limit_sqft" mapstructure:"per_house_area_limit_sqft"`
	MaxHousesPerParcel    int     `yaml:"max_houses_per_parcel" mapstructure:"max_houses_per_parcel"`
	SetbackLossPct        float64 `yaml:"setback_loss_pct" mapstructure:"setback_loss_pct"`
	InfraLossPct          float64 `yaml:"infra_loss_pct" mapstructure:"infra_loss_pct"`
	MinParcelAcres        float64 `yaml:"min_parcel_acres" mapstructure:"min_parcel_acres"`
}

// DefaultValues returns the compiled-in rule defaults.
func DefaultValues() Defaults {
	return Defaults{
		HouseWidthFt:          66,
		HouseLengthFt:         650,
		PerHouseAreaLimitSqFt: 40_000,
		MaxHousesPerParcel:    8,
		SetbackLossPct:        0.20,
		InfraLossPct:          0.10,
		MinParcelAcres:        5.0,
	}
}

func (d Defaults) asMap() map[string]any {
	return map[string]any{
		KeyHouseWidthFt:          d.HouseWidthFt,
		KeyHouseLengthFt:         d.HouseLengthFt,
		KeyPerHouseAreaLimitSqFt: d.PerHouseAreaLimitSqFt,
		KeyMaxHousesPerParcel:    d.MaxHousesPerParcel,
		KeySetbackLossPct:        d.SetbackLossPct,
		KeyInfraLossPct:          d.InfraLossPct,
		KeyMinParcelAcres:        d.MinParcelAcres,
	}
}

// RuleSet is an immutable key->value mapping of rule constants. Values are
// parsed on every read so a malformed override surfaces where it is used.
type RuleSet struct {
	values map[string]any
}

// New builds a RuleSet from an explicit mapping. The map is copied.
func New(values map[string]any) *RuleSet {
	return &RuleSet{values: maps.Clone(values)}
}

// FromDefaults builds a RuleSet holding only the given defaults.
func FromDefaults(d Defaults) *RuleSet {
	return &RuleSet{values: d.asMap()}
}

// Values is a typed snapshot of every rule the fit stage reads.
type Values struct {
	HouseWidthFt          float64
	HouseLengthFt         float64
	PerHouseAreaLimitSqFt float64
	MaxHousesPerParcel    int
	SetbackLossPct        float64
	InfraLossPct          float64
	MinParcelAcres        float64
}

// Values parses every rule once. The first malformed value is returned as an error.
func (r *RuleSet) Values() (Values, error) {
	var (
		v   Values
		err error
	)
	if v.HouseWidthFt, err = r.HouseWidthFt(); err != nil {
		return Values{}, err
	}
	if v.HouseLengthFt, err = r.HouseLengthFt(); err != nil {
		return Values{}, err
	}
	if v.PerHouseAreaLimitSqFt, err = r.PerHouseAreaLimitSqFt(); err != nil {
		return Values{}, err
	}
	if v.MaxHousesPerParcel, err = r.MaxHousesPerParcel(); err != nil {
		return Values{}, err
	}
	if v.SetbackLossPct, err = r.SetbackLossPct(); err != nil {
		return Values{}, err
	}
	if v.InfraLossPct, err = r.InfraLossPct(); err != nil {
		return Values{}, err
	}
	if v.MinParcelAcres, err = r.MinParcelAcres(); err != nil {
		return Values{}, err
	}
	return v, nil
}

// HouseWidthFt returns the unit footprint width in feet.
func (r *RuleSet) HouseWidthFt() (float64, error) { return r.float(KeyHouseWidthFt) }

// HouseLengthFt returns the unit footprint length in feet.
func (r *RuleSet) HouseLengthFt() (float64, error) { return r.float(KeyHouseLengthFt) }

// PerHouseAreaLimitSqFt returns the regulatory cap on a single unit's footprint.
func (r *RuleSet) PerHouseAreaLimitSqFt() (float64, error) {
	return r.float(KeyPerHouseAreaLimitSqFt)
}

// MaxHousesPerParcel returns the county cap on units per parcel, rounded
// half-up to the nearest integer.
func (r *RuleSet) MaxHousesPerParcel() (int, error) {
	f, err := r.float(KeyMaxHousesPerParcel)
	if err != nil {
		return 0, err
	}
	return model.SaturatingInt(math.Floor(f + 0.5)), nil
}

// SetbackLossPct returns the fraction of acreage lost to setbacks.
func (r *RuleSet) SetbackLossPct() (float64, error) { return r.float(KeySetbackLossPct) }

// InfraLossPct returns the fraction of acreage lost to roads and utilities.
func (r *RuleSet) InfraLossPct() (float64, error) { return r.float(KeyInfraLossPct) }

// MinParcelAcres returns the smallest parcel that qualifies for development.
func (r *RuleSet) MinParcelAcres() (float64, error) { return r.float(KeyMinParcelAcres) }

// AsMap returns a copy of the merged rule mapping.
func (r *RuleSet) AsMap() map[string]any {
	return maps.Clone(r.values)
}

// AcresToSqFt converts acres to square feet.
func AcresToSqFt(acres float64) float64 {
	return acres * SqFtPerAcre
}

func (r *RuleSet) float(key string) (float64, error) {
	raw, ok := r.values[key]
	if !ok || raw == nil {
		return 0, eris.Errorf("rules: %s is not set", key)
	}
	if str, isStr := raw.(string); isStr {
		raw = strings.TrimSpace(str)
		if raw == "" {
			return 0, eris.Errorf("rules: %s is not set", key)
		}
	}
	if _, isBool := raw.(bool); isBool {
		return 0, eris.Errorf("rules: parse %s value %v: not a number", key, raw)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "rules: parse %s value %q", key, fmt.Sprint(raw))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, eris.Errorf("rules: %s value %q is not finite", key, fmt.Sprint(raw))
	}
	return f, nil
}
