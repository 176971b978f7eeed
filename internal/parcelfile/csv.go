package parcelfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-planner/internal/model"
)

// StreamCSV reads CSV records and sends them to a channel. The caller must
// drain the row channel; both channels are closed when reading completes.
func StreamCSV(ctx context.Context, r io.Reader, delimiter rune) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if delimiter != 0 {
			reader.Comma = delimiter
		}
		reader.FieldsPerRecord = -1 // allow ragged rows
		reader.LazyQuotes = true

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "parcelfile: csv context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "parcelfile: csv read row")
				return
			}

			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "parcelfile: csv context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV reads parcels from CSV data whose first record is the header.
func ReadCSV(ctx context.Context, r io.Reader, opts Options) ([]model.Parcel, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rowCh, errCh := StreamCSV(ctx, r, opts.Delimiter)

	var (
		parcels []model.Parcel
		cols    columns
		colErr  error
	)
	header := true
	for row := range rowCh {
		if colErr != nil {
			continue
		}
		if header {
			header = false
			cols, colErr = resolveColumns(row, opts)
			continue
		}
		if isBlank(row) {
			continue
		}
		parcels = append(parcels, cols.toParcel(row))
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if colErr != nil {
		return nil, colErr
	}
	if header {
		return nil, eris.New("parcelfile: csv has no header row")
	}
	return parcels, nil
}

func readCSVFile(ctx context.Context, path string, opts Options) ([]model.Parcel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "parcelfile: open %s", path)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(ctx, f, opts)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
