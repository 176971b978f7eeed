// Package parcelfile reads parcel lists (account + acreage) from CSV, XLSX
// and shapefile attribute tables for batch fitting.
package parcelfile

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-planner/internal/model"
)

// Default header aliases, matched case-insensitively.
var (
	DefaultAcctColumns  = []string{"acctId", "acct", "account", "account_num", "parcel_id", "pin"}
	DefaultAcresColumns = []string{"acres", "acreage", "land_acres", "gis_acres"}
)

// Options configures how a parcel file is read.
type Options struct {
	AcctColumn  string // overrides DefaultAcctColumns
	AcresColumn string // overrides DefaultAcresColumns
	Sheet       string // XLSX sheet name; first sheet when empty
	Delimiter   rune   // CSV delimiter; ',' when zero
}

// Read loads every parcel from path, dispatching on the file extension.
// Rows keep their input order. A blank or unparsable acreage yields a parcel
// with nil Acres.
func Read(ctx context.Context, path string, opts Options) ([]model.Parcel, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		if opts.Delimiter == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
			opts.Delimiter = '\t'
		}
		return readCSVFile(ctx, path, opts)
	case ".xlsx":
		return readXLSX(ctx, path, opts)
	case ".shp", ".dbf":
		return readShapefile(ctx, path, opts)
	default:
		return nil, eris.Errorf("parcelfile: unsupported file type %q", filepath.Ext(path))
	}
}

// columns holds resolved header positions; acct is -1 when absent.
type columns struct {
	acct  int
	acres int
}

func resolveColumns(header []string, opts Options) (columns, error) {
	acctNames := DefaultAcctColumns
	if opts.AcctColumn != "" {
		acctNames = []string{opts.AcctColumn}
	}
	acresNames := DefaultAcresColumns
	if opts.AcresColumn != "" {
		acresNames = []string{opts.AcresColumn}
	}

	cols := columns{acct: findColumn(header, acctNames), acres: findColumn(header, acresNames)}
	if cols.acres < 0 {
		return cols, eris.Errorf("parcelfile: no acreage column (tried %s)", strings.Join(acresNames, ", "))
	}
	if opts.AcctColumn != "" && cols.acct < 0 {
		return cols, eris.Errorf("parcelfile: account column %q not found", opts.AcctColumn)
	}
	return cols, nil
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimRight(h, "\x00")), name) {
				return i
			}
		}
	}
	return -1
}

// toParcel builds a parcel from one row using the resolved columns.
func (c columns) toParcel(row []string) model.Parcel {
	var p model.Parcel
	if c.acct >= 0 && c.acct < len(row) {
		if id := strings.TrimSpace(row[c.acct]); id != "" {
			p.AcctID = &id
		}
	}
	if c.acres < len(row) {
		p.Acres = parseAcres(row[c.acres])
	}
	return p
}

// parseAcres accepts values such as "5.25", " 1,204.5 " or "12 ac".
func parseAcres(s string) *float64 {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), "ac"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
