package main

import (
	"context"
	"io"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/parcel-planner/internal/econ"
	"github.com/sells-group/parcel-planner/internal/fit"
	"github.com/sells-group/parcel-planner/internal/model"
	"github.com/sells-group/parcel-planner/internal/parcelfile"
	"github.com/sells-group/parcel-planner/internal/rules"
)

var (
	batchLimit int
	batchJSON  bool
	batchOpts  parcelfile.Options
	batchEcon  econFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fit every parcel in a CSV, XLSX or shapefile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := ruleSet.Values(); err != nil {
			return eris.Wrap(err, "batch: rule set")
		}

		parcels, err := parcelfile.Read(ctx, args[0], batchOpts)
		if err != nil {
			return eris.Wrap(err, "batch: read parcels")
		}

		var inputs *model.EconomicInputs
		if econRequested(cmd) {
			in := batchEcon.inputs(cmd)
			inputs = &in
		}

		results, err := processBatch(ctx, parcels, batchLimit, cfg.Batch.MaxConcurrent, analyzer(ruleSet, inputs))
		if err != nil {
			return err
		}

		if batchJSON {
			return writeJSON(cmd.OutOrStdout(), results)
		}
		return printBatch(cmd.OutOrStdout(), results, inputs != nil)
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of parcels to process (0 = all)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print results as JSON")
	batchCmd.Flags().StringVar(&batchOpts.AcctColumn, "acct-column", "", "account column header")
	batchCmd.Flags().StringVar(&batchOpts.AcresColumn, "acres-column", "", "acreage column header")
	batchCmd.Flags().StringVar(&batchOpts.Sheet, "sheet", "", "XLSX sheet name")
	batchEcon.register(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

// econRequested reports whether any financial flag was set.
func econRequested(cmd *cobra.Command) bool {
	for _, name := range []string{"workers", "weekly-pay", "price", "down-amount", "down-pct", "rate", "years"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// batchResult is one analyzed parcel. Econ is nil when no financial inputs
// were given.
type batchResult struct {
	Fit   *model.FitResult  `json:"fit,omitempty"`
	Econ  *model.EconResult `json:"econ,omitempty"`
	Error string            `json:"error,omitempty"`
}

// analyzeFunc is the callback signature for analyzing one parcel.
type analyzeFunc func(ctx context.Context, parcel model.Parcel) (batchResult, error)

func analyzer(rs *rules.RuleSet, inputs *model.EconomicInputs) analyzeFunc {
	return func(_ context.Context, parcel model.Parcel) (batchResult, error) {
		f, err := fit.Compute(&parcel, rs)
		if err != nil {
			return batchResult{}, err
		}
		res := batchResult{Fit: f}
		if inputs != nil {
			res.Econ = econ.Compute(f, *inputs)
		}
		return res, nil
	}
}

// processBatch applies limit, then analyzes parcels concurrently. Results
// keep input order; a failed parcel is recorded on its row and does not abort
// the batch. Only cancellation returns an error.
func processBatch(ctx context.Context, parcels []model.Parcel, limit, concurrency int, analyze analyzeFunc) ([]batchResult, error) {
	if len(parcels) == 0 {
		zap.L().Info("no parcels found")
		return nil, nil
	}

	if limit > 0 && len(parcels) > limit {
		parcels = parcels[:limit]
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("parcels", len(parcels)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]batchResult, len(parcels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, parcel := range parcels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := zap.L().With(zap.String("acct", parcel.ID()), zap.Int("row", i))

			res, err := analyze(gctx, parcel)
			if err != nil {
				failed.Add(1)
				log.Error("parcel analysis failed", zap.Error(err))
				results[i] = batchResult{Error: err.Error()}
				return nil
			}

			succeeded.Add(1)
			log.Debug("parcel analyzed", zap.Int("houses", res.Fit.MaxHouses))
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results, nil
}

// printBatch writes one tab-aligned row per result.
func printBatch(w io.Writer, results []batchResult, withEcon bool) error {
	p := newPrinter()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "ACCT\tACRES\tUSABLE\tHOUSES"
	if withEcon {
		header += "\tNET"
	}
	p.Fprintln(tw, header+"\tNOTES")

	for _, r := range results {
		if r.Fit == nil {
			p.Fprintf(tw, "-\t-\t-\t-\t%s\n", "error: "+r.Error)
			continue
		}
		acct := "-"
		if r.Fit.AcctID != nil {
			acct = *r.Fit.AcctID
		}
		row := p.Sprintf("%s\t%.2f\t%.2f\t%d", acct, r.Fit.ParcelAcres, r.Fit.UsableAcres, r.Fit.MaxHouses)
		notes := r.Fit.Messages
		if withEcon && r.Econ != nil {
			row += p.Sprintf("\t$%.2f", r.Econ.AnnualNetRevenue)
			notes = r.Econ.Messages
		}
		p.Fprintln(tw, row+"\t"+strings.Join(notes, " "))
	}

	return tw.Flush()
}
