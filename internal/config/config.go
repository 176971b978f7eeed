package config

import (
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/parcel-planner/internal/rules"
)

// Config holds the full application configuration.
type Config struct {
	Rules  RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// RulesConfig holds the rule defaults and the optional county override file.
type RulesConfig struct {
	rules.Defaults `yaml:",inline" mapstructure:",squash"`
	CountyFile     string `yaml:"county_file" mapstructure:"county_file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	MetricsPath string   `yaml:"metrics_path" mapstructure:"metrics_path"`
}

// BatchConfig configures batch parcel processing.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARCEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	d := rules.DefaultValues()
	v.SetDefault("rules.house_width_ft", d.HouseWidthFt)
	v.SetDefault("rules.house_length_ft", d.HouseLengthFt)
	v.SetDefault("rules.per_house_area_limit_sqft", d.PerHouseAreaLimitSqFt)
	v.SetDefault("rules.max_houses_per_parcel", d.MaxHousesPerParcel)
	v.SetDefault("rules.setback_loss_pct", d.SetbackLossPct)
	v.SetDefault("rules.infra_loss_pct", d.InfraLossPct)
	v.SetDefault("rules.min_parcel_acres", d.MinParcelAcres)
	v.SetDefault("rules.county_file", "rules/worcester.yml")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.metrics_path", "/metrics")
	v.SetDefault("batch.max_concurrent", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// Validate checks the settings a command mode depends on. Mode is one of
// "serve", "batch" or "cli".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
			errs = append(errs, "server.rate_burst must be >= 1 when rate limiting")
		}
	case "batch":
		if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 64 {
			errs = append(errs, "batch.max_concurrent must be between 1 and 64")
		}
	case "cli":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	d := c.Rules.Defaults
	for name, v := range map[string]float64{
		"house_width_ft":            d.HouseWidthFt,
		"house_length_ft":           d.HouseLengthFt,
		"per_house_area_limit_sqft": d.PerHouseAreaLimitSqFt,
		"max_houses_per_parcel":     float64(d.MaxHousesPerParcel),
		"setback_loss_pct":          d.SetbackLossPct,
		"infra_loss_pct":            d.InfraLossPct,
		"min_parcel_acres":          d.MinParcelAcres,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, "rules."+name+" must be a finite value >= 0")
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
