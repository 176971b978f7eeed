package parcelfile

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-planner/internal/model"
)

// readShapefile reads parcel attributes from a shapefile's DBF table. The
// reader still decodes each shape, but only the account and acreage fields
// are used. Blank attribute rows are skipped.
func readShapefile(ctx context.Context, path string, opts Options) ([]model.Parcel, error) {
	if strings.EqualFold(filepath.Ext(path), ".dbf") {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".shp"
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "parcelfile: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.TrimRight(f.String(), "\x00")
	}

	cols, err := resolveColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var parcels []model.Parcel
	for reader.Next() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "parcelfile: shapefile context cancelled")
		}
		row := make([]string, len(fields))
		for i := range fields {
			row[i] = strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
		}
		if isBlank(row) {
			continue
		}
		parcels = append(parcels, cols.toParcel(row))
	}

	zap.L().Debug("parcelfile: shapefile read",
		zap.String("path", path),
		zap.Int("parcels", len(parcels)),
	)

	return parcels, nil
}
