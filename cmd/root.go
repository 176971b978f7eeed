package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-planner/internal/config"
	"github.com/sells-group/parcel-planner/internal/rules"
)

var (
	cfg        *config.Config
	ruleSet    *rules.RuleSet
	countyFile string
)

var rootCmd = &cobra.Command{
	Use:   "parcel-planner",
	Short: "Parcel capacity and economics estimator",
	Long:  "Estimates how many dwelling units a county rule set permits on a parcel and projects the resulting annual economics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if err := cfg.Validate(validationMode(cmd)); err != nil {
			return err
		}

		if cmd.Flags().Changed("county-file") {
			cfg.Rules.CountyFile = countyFile
		}
		ruleSet = rules.Load(cfg.Rules.Defaults, cfg.Rules.CountyFile)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// validationMode maps a command to the config section it depends on.
func validationMode(cmd *cobra.Command) string {
	switch cmd.Name() {
	case "serve", "batch":
		return cmd.Name()
	default:
		return "cli"
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&countyFile, "county-file", "", "county rule override YAML (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
