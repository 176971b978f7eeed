package parcelfile

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/parcel-planner/internal/model"
)

func readXLSX(ctx context.Context, path string, opts Options) ([]model.Parcel, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "parcelfile: xlsx open file")
	}

	sheet, err := getSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("parcelfile: xlsx sheet is empty")
	}

	cols, err := resolveColumns(rowToStrings(sheet.Rows[0]), opts)
	if err != nil {
		return nil, err
	}

	parcels := make([]model.Parcel, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "parcelfile: xlsx context cancelled")
		}
		cells := rowToStrings(row)
		if isBlank(cells) {
			continue
		}
		parcels = append(parcels, cols.toParcel(cells))
	}
	return parcels, nil
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("parcelfile: xlsx sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("parcelfile: xlsx file has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
