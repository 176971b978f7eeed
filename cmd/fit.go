package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-planner/internal/fit"
	"github.com/sells-group/parcel-planner/internal/model"
)

var (
	fitAcres float64
	fitAcct  string
	fitJSON  bool
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Estimate how many houses fit on a parcel",
	RunE: func(cmd *cobra.Command, args []string) error {
		parcel := parcelFromFlags(cmd)

		res, err := fit.Compute(parcel, ruleSet)
		if err != nil {
			return err
		}

		if fitJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		printFit(cmd.OutOrStdout(), res)
		return nil
	},
}

// parcelFromFlags builds the parcel record from --acct/--acres. Acres is nil
// when the flag was not given.
func parcelFromFlags(cmd *cobra.Command) *model.Parcel {
	p := &model.Parcel{}
	if cmd.Flags().Changed("acct") {
		acct := fitAcct
		p.AcctID = &acct
	}
	if cmd.Flags().Changed("acres") {
		acres := fitAcres
		p.Acres = &acres
	}
	return p
}

func addParcelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&fitAcres, "acres", 0, "parcel acreage")
	cmd.Flags().StringVar(&fitAcct, "acct", "", "parcel account identifier")
	cmd.Flags().BoolVar(&fitJSON, "json", false, "print the result as JSON")
}

func init() {
	addParcelFlags(fitCmd)
	rootCmd.AddCommand(fitCmd)
}
