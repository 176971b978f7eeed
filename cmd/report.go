package main

import (
	"encoding/json"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/parcel-planner/internal/model"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printFit(w io.Writer, res *model.FitResult) {
	p := newPrinter()
	acct := "-"
	if res.AcctID != nil {
		acct = *res.AcctID
	}

	p.Fprintf(w, "Parcel:          %s (found: %t)\n", acct, res.Found)
	p.Fprintf(w, "Parcel acres:    %.2f\n", res.ParcelAcres)
	p.Fprintf(w, "Usable acres:    %.2f\n", res.UsableAcres)
	p.Fprintf(w, "Per-house ft²:   %.0f\n", res.PerHouseSqFt)
	p.Fprintf(w, "Max houses:      %d\n", res.MaxHouses)
	printNotes(p, w, res.Messages)
}

func printEcon(w io.Writer, res *model.EconResult) {
	p := newPrinter()

	p.Fprintf(w, "Eligible:        %t\n", res.Eligible)
	p.Fprintf(w, "Houses:          %d\n", res.Houses)
	p.Fprintf(w, "Covered ft²:     %.0f\n", res.TotalCoveredSqFt)
	p.Fprintf(w, "Annual income:   $%.2f\n", res.AnnualIncome)
	p.Fprintf(w, "Operating cost:  $%.2f\n", res.AnnualOpsExpense)
	p.Fprintf(w, "Labor cost:      $%.2f\n", res.AnnualWorkerCost)
	p.Fprintf(w, "Loan payment:    $%.2f\n", res.AnnualLoanPayment)
	p.Fprintf(w, "Net return:      $%.2f\n", res.AnnualNetRevenue)
	printNotes(p, w, res.Messages)
}

func printNotes(p *message.Printer, w io.Writer, notes []string) {
	if len(notes) == 0 {
		return
	}
	p.Fprintln(w, "Notes:")
	for _, n := range notes {
		p.Fprintf(w, "  - %s\n", n)
	}
}
