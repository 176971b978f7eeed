package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parcel-planner/internal/model"
	"github.com/sells-group/parcel-planner/internal/rules"
)

const perHouseNote = "Per-house area limited to 40,000 ft² by county rules."

func defaultRules() *rules.RuleSet {
	return rules.FromDefaults(rules.DefaultValues())
}

func rulesWith(overrides map[string]any) *rules.RuleSet {
	values := rules.FromDefaults(rules.DefaultValues()).AsMap()
	for k, v := range overrides {
		values[k] = v
	}
	return rules.New(values)
}

func TestCompute_ScenarioA(t *testing.T) {
	t.Parallel()

	res, err := Compute(model.NewParcel("R-1001", 5.25), defaultRules())
	require.NoError(t, err)

	assert.True(t, res.Found)
	require.NotNil(t, res.AcctID)
	assert.Equal(t, "R-1001", *res.AcctID)
	assert.InDelta(t, 5.25, res.ParcelAcres, 1e-9)
	assert.InDelta(t, 3.78, res.UsableAcres, 1e-9)
	assert.InDelta(t, 40000.0, res.PerHouseSqFt, 1e-9)
	assert.Equal(t, 4, res.MaxHouses)
	assert.Equal(t, []string{perHouseNote}, res.Messages)
}

func TestCompute_ParcelNotFound(t *testing.T) {
	t.Parallel()

	res, err := Compute(nil, defaultRules())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Nil(t, res.AcctID)
	assert.Zero(t, res.ParcelAcres)
	assert.Zero(t, res.UsableAcres)
	assert.Zero(t, res.PerHouseSqFt)
	assert.Zero(t, res.MaxHouses)
	assert.Equal(t, []string{"Parcel not found."}, res.Messages)
}

func TestCompute_MissingOrZeroAcres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parcel *model.Parcel
	}{
		{"nil acres", &model.Parcel{}},
		{"zero acres", model.NewParcel("A", 0)},
		{"negative acres", model.NewParcel("A", -3)},
		{"rounds to zero", model.NewParcel("A", 0.004)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Compute(tt.parcel, defaultRules())
			require.NoError(t, err)

			assert.True(t, res.Found)
			assert.Zero(t, res.ParcelAcres)
			assert.Zero(t, res.UsableAcres)
			assert.InDelta(t, 40000.0, res.PerHouseSqFt, 1e-9)
			assert.Zero(t, res.MaxHouses)
			assert.Equal(t, []string{"Parcel area is missing or zero."}, res.Messages)
		})
	}
}

func TestCompute_BelowMinimum(t *testing.T) {
	t.Parallel()

	for _, acres := range []float64{0.5, 4.0, 4.994} {
		res, err := Compute(model.NewParcel("A", acres), defaultRules())
		require.NoError(t, err)

		assert.True(t, res.Found)
		assert.InDelta(t, model.Round2(acres), res.ParcelAcres, 1e-9)
		assert.Zero(t, res.UsableAcres)
		assert.Zero(t, res.MaxHouses)
		assert.InDelta(t, 40000.0, res.PerHouseSqFt, 1e-9)
		assert.Equal(t, []string{"Parcel below minimum size (5.0 acres)."}, res.Messages)
	}
}

func TestCompute_AcreageRoundedBeforeThreshold(t *testing.T) {
	t.Parallel()

	// 4.996 rounds to 5.00 and qualifies.
	res, err := Compute(model.NewParcel("A", 4.996), defaultRules())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.ParcelAcres, 1e-9)
	assert.InDelta(t, 3.6, res.UsableAcres, 1e-9)
	assert.Equal(t, 3, res.MaxHouses)
}

func TestCompute_CountyMaxCaps(t *testing.T) {
	t.Parallel()

	res, err := Compute(model.NewParcel("A", 100), defaultRules())
	require.NoError(t, err)

	assert.InDelta(t, 72.0, res.UsableAcres, 1e-9)
	assert.Equal(t, 8, res.MaxHouses)
	assert.Equal(t, []string{perHouseNote, "Capped by county max of 8 houses."}, res.Messages)
}

func TestCompute_TooSmallForOneHouse(t *testing.T) {
	t.Parallel()

	rs := rulesWith(map[string]any{
		rules.KeySetbackLossPct: 0.9,
		rules.KeyInfraLossPct:   0.9,
	})
	res, err := Compute(model.NewParcel("A", 5.0), rs)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, res.UsableAcres, 1e-9)
	assert.Zero(t, res.MaxHouses)
	assert.Equal(t, []string{
		"Usable area too small for one house (<= 40,000 ft² cap).",
		perHouseNote,
	}, res.Messages)
}

func TestCompute_ClampsLossFractions(t *testing.T) {
	t.Parallel()

	rs := rulesWith(map[string]any{
		rules.KeySetbackLossPct: 1.2,
		rules.KeyInfraLossPct:   -0.1,
	})
	res, err := Compute(model.NewParcel("A", 100), rs)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, res.UsableAcres, 1e-9)
	assert.Equal(t, 5, res.MaxHouses)
	assert.Equal(t, []string{
		"setbackLossPct > 0.95; clamped to 0.95.",
		"infraLossPct < 0; clamped to 0.",
		perHouseNote,
	}, res.Messages)
}

func TestCompute_InvalidFootprint(t *testing.T) {
	t.Parallel()

	rs := rulesWith(map[string]any{rules.KeyHouseWidthFt: 0})
	res, err := Compute(model.NewParcel("A", 5.25), rs)
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.InDelta(t, 5.25, res.ParcelAcres, 1e-9)
	assert.InDelta(t, 3.78, res.UsableAcres, 1e-9)
	assert.Zero(t, res.PerHouseSqFt)
	assert.Zero(t, res.MaxHouses)
	assert.Equal(t, []string{"Invalid house dimensions/cap."}, res.Messages)
}

func TestCompute_FootprintUnderCapHasNoCapNote(t *testing.T) {
	t.Parallel()

	rs := rulesWith(map[string]any{
		rules.KeyHouseWidthFt:  50,
		rules.KeyHouseLengthFt: 100,
	})
	res, err := Compute(model.NewParcel("A", 5.25), rs)
	require.NoError(t, err)

	// 3.78 ac = 164,656.8 ft² / 5,000 ft² = 32.9 -> capped at 8.
	assert.InDelta(t, 5000.0, res.PerHouseSqFt, 1e-9)
	assert.Equal(t, 8, res.MaxHouses)
	assert.Equal(t, []string{"Capped by county max of 8 houses."}, res.Messages)
}

func TestCompute_FootprintNeverExceedsCap(t *testing.T) {
	t.Parallel()

	for _, limit := range []float64{1000, 20000, 40000, 42900, 90000} {
		rs := rulesWith(map[string]any{rules.KeyPerHouseAreaLimitSqFt: limit})
		for _, acres := range []float64{0, 3, 5.25, 40} {
			res, err := Compute(model.NewParcel("A", acres), rs)
			require.NoError(t, err)
			assert.LessOrEqual(t, res.PerHouseSqFt, limit)
		}
	}
}

func TestCompute_MalformedRule(t *testing.T) {
	t.Parallel()

	rs := rulesWith(map[string]any{rules.KeyMinParcelAcres: "five"})
	_, err := Compute(model.NewParcel("A", 5.25), rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minParcelAcres")
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	rs := defaultRules()
	a, err := Compute(model.NewParcel("A", 12.34), rs)
	require.NoError(t, err)
	b, err := Compute(model.NewParcel("A", 12.34), rs)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5.0", formatNumber(5))
	assert.Equal(t, "0.95", formatNumber(0.95))
	assert.Equal(t, "40,000", formatArea(40000))
	assert.Equal(t, "1,250.50", formatArea(1250.5))
}

func TestCompute_HugeQuotientSaturates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parcel *model.Parcel
		rs     *rules.RuleSet
		notes  []string
	}{
		{
			name:   "very large parcel",
			parcel: model.NewParcel("A", 1e20),
			rs:     defaultRules(),
			notes:  []string{perHouseNote, "Capped by county max of 8 houses."},
		},
		{
			name:   "tiny per-house cap",
			parcel: model.NewParcel("A", 5.25),
			rs:     rulesWith(map[string]any{rules.KeyPerHouseAreaLimitSqFt: 1e-15}),
			notes: []string{
				"Per-house area limited to 0.00 ft² by county rules.",
				"Capped by county max of 8 houses.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Compute(tt.parcel, tt.rs)
			require.NoError(t, err)
			assert.Equal(t, 8, res.MaxHouses)
			assert.Equal(t, tt.notes, res.Messages)
		})
	}
}

func TestCompute_NonFiniteAcresReadAsZero(t *testing.T) {
	t.Parallel()

	for _, acres := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		res, err := Compute(model.NewParcel("A", acres), defaultRules())
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Zero(t, res.ParcelAcres)
		assert.Zero(t, res.MaxHouses)
		assert.Equal(t, []string{"Parcel area is missing or zero."}, res.Messages)
	}
}
