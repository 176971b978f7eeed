package rules

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Load seeds a RuleSet with defaults and overlays the county override
// document at countyFile, if any. Override entries replace same-named keys at
// the top level only. A missing or malformed override is logged and the
// defaults are kept; Load never fails.
func Load(defaults Defaults, countyFile string) *RuleSet {
	values := defaults.asMap()
	if countyFile == "" {
		return &RuleSet{values: values}
	}

	log := zap.L().With(zap.String("component", "rules"), zap.String("county_file", countyFile))

	overrides, err := readOverrides(countyFile)
	if err != nil {
		log.Warn("rules: county overrides ignored, using defaults", zap.Error(err))
		return &RuleSet{values: values}
	}

	for k, v := range overrides {
		values[k] = v
	}
	log.Info("rules: county overrides applied", zap.Int("keys", len(overrides)))

	return &RuleSet{values: values}
}

// readOverrides parses a flat YAML mapping. A document that is not a mapping
// is an error.
func readOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read county file %s", path)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "rules: parse county file")
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, eris.Errorf("rules: county file is %T, want a mapping", doc)
	}
	return m, nil
}
