package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/parcel-planner/internal/econ"
	"github.com/sells-group/parcel-planner/internal/fit"
	"github.com/sells-group/parcel-planner/internal/model"
)

// econFlags holds the financial inputs shared by econ and batch.
type econFlags struct {
	workers    int
	weeklyPay  float64
	price      float64
	downAmount float64
	downPct    float64
	rate       float64
	years      int
}

func (f *econFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of workers")
	cmd.Flags().Float64Var(&f.weeklyPay, "weekly-pay", 0, "weekly pay per worker")
	cmd.Flags().Float64Var(&f.price, "price", 0, "land price")
	cmd.Flags().Float64Var(&f.downAmount, "down-amount", 0, "down payment amount (wins over --down-pct)")
	cmd.Flags().Float64Var(&f.downPct, "down-pct", 0, "down payment as a fraction of price (0..1)")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "annual interest rate percent")
	cmd.Flags().IntVar(&f.years, "years", 1, "loan term in years")
}

// inputs converts the flags to typed inputs. Down-payment flags count only
// when explicitly set.
func (f *econFlags) inputs(cmd *cobra.Command) model.EconomicInputs {
	var amount, pct *float64
	if cmd.Flags().Changed("down-amount") {
		amount = &f.downAmount
	}
	if cmd.Flags().Changed("down-pct") {
		pct = &f.downPct
	}
	return model.EconomicInputs{
		Workers:               f.workers,
		WeeklyPayPerWorker:    f.weeklyPay,
		LandPrice:             f.price,
		DownPayment:           model.ResolveDownPayment(amount, pct),
		AnnualInterestRatePct: f.rate,
		Years:                 f.years,
	}
}

var econArgs econFlags

var econCmd = &cobra.Command{
	Use:   "econ",
	Short: "Fit a parcel and project its annual economics",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fit.Compute(parcelFromFlags(cmd), ruleSet)
		if err != nil {
			return err
		}

		res := econ.Compute(f, econArgs.inputs(cmd))

		if fitJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"fit": f, "econ": res})
		}
		printFit(cmd.OutOrStdout(), f)
		fmt.Fprintln(cmd.OutOrStdout())
		printEcon(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	addParcelFlags(econCmd)
	econArgs.register(econCmd)
	rootCmd.AddCommand(econCmd)
}
