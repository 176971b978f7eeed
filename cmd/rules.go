package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the merged county rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ruleSet.Values(); err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(ruleSet.AsMap()); err != nil {
			return eris.Wrap(err, "rules: encode yaml")
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
