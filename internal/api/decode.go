package api

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/sells-group/parcel-planner/internal/model"
)

// maxMagnitude bounds every numeric input so downstream arithmetic stays
// finite.
const maxMagnitude = 1e12

// coercer converts loosely typed JSON values to numbers. Values that cannot
// be read as numbers, or fall outside ±maxMagnitude, become zero and the
// field name is recorded.
type coercer struct {
	coerced []string
}

func (c *coercer) float(field string, v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		c.coerced = append(c.coerced, field)
		return 0
	case string:
		v = strings.TrimSpace(x)
		if v == "" {
			c.coerced = append(c.coerced, field)
			return 0
		}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxMagnitude {
		c.coerced = append(c.coerced, field)
		return 0
	}
	return f
}

func (c *coercer) int(field string, v any) int {
	n, err := cast.ToIntE(c.float(field, v))
	if err != nil {
		c.coerced = append(c.coerced, field)
		return 0
	}
	return n
}

func (c *coercer) optFloat(field string, body map[string]any) *float64 {
	v, ok := body[field]
	if !ok || v == nil {
		return nil
	}
	f := c.float(field, v)
	return &f
}

// decodeParcel reads a parcel record from a loosely typed JSON object.
// A nil object means no parcel was found.
func decodeParcel(raw map[string]any, c *coercer) *model.Parcel {
	if raw == nil {
		return nil
	}
	var p model.Parcel
	if id, ok := raw["acctId"]; ok && id != nil {
		s := fmt.Sprint(id)
		p.AcctID = &s
	}
	if v, ok := raw["acres"]; ok && v != nil {
		f := c.float("parcel.acres", v)
		p.Acres = &f
	}
	return &p
}

// decodeFit rebuilds a fit result that a client echoed back.
func decodeFit(raw map[string]any, c *coercer) *model.FitResult {
	f := &model.FitResult{
		ParcelAcres:  c.float("fit.parcelAcres", raw["parcelAcres"]),
		UsableAcres:  c.float("fit.usableAcres", raw["usableAcres"]),
		PerHouseSqFt: c.float("fit.perHouseSqFt", raw["perHouseSqFt"]),
		MaxHouses:    c.int("fit.maxHouses", raw["maxHouses"]),
		Messages:     []string{},
	}
	if found, ok := raw["found"].(bool); ok {
		f.Found = found
	}
	if id, ok := raw["acctId"].(string); ok {
		f.AcctID = &id
	}
	if msgs, ok := raw["messages"].([]any); ok {
		for _, m := range msgs {
			if s, ok := m.(string); ok {
				f.Messages = append(f.Messages, s)
			}
		}
	}
	return f
}

// decodeEconInputs reads the financial inputs from an econ request body.
// Years defaults to 1 when absent.
func decodeEconInputs(body map[string]any, c *coercer) model.EconomicInputs {
	in := model.EconomicInputs{
		Workers:               c.int("workers", body["workers"]),
		WeeklyPayPerWorker:    c.float("weeklyPayPerWorker", body["weeklyPayPerWorker"]),
		LandPrice:             c.float("landPrice", body["landPrice"]),
		AnnualInterestRatePct: c.float("annualInterestRatePct", body["annualInterestRatePct"]),
		Years:                 1,
	}
	if v, ok := body["years"]; ok && v != nil {
		in.Years = c.int("years", v)
	}
	in.DownPayment = model.ResolveDownPayment(
		c.optFloat("downPaymentAmount", body),
		c.optFloat("downPaymentPct", body),
	)
	return in
}
