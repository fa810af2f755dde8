/*
Package datasets loads rectangular numeric datasets into model matrices.

The CSV layout follows the usual labels-first convention, the first
columns of every row carry the one-hot label and the rest carry the
feature vector. Files compressed with gzip or xz are decompressed
transparently by extension.
*/
package datasets

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, zorros.Trace(err)
		}
		return struct {
			io.Reader
			io.Closer
		}{zr, f}, nil
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, zorros.Trace(err)
		}
		return struct {
			io.Reader
			io.Closer
		}{xr, f}, nil
	}
	return f, nil
}

/*
ReadCSV loads a dataset whose rows start with classes one-hot columns
followed by the feature columns
*/
func ReadCSV(path string, classes int) (ds model.Dataset, err error) {
	r, err := open(path)
	if err != nil {
		return
	}
	defer r.Close()
	return readCSV(r, classes, path)
}

func readCSV(r io.Reader, classes int, path string) (ds model.Dataset, err error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return ds, zorros.Wrapf(err, "failed to read csv `%v`: %v", path, err.Error())
	}
	if len(rows) == 0 {
		return ds, zorros.Errorf("dataset `%v` is empty", path)
	}
	width := len(rows[0]) - classes
	if width <= 0 {
		return ds, zorros.Errorf("dataset `%v` rows have %v columns, at least %v required", path, len(rows[0]), classes+1)
	}
	features := make([]float64, 0, len(rows)*width)
	labels := make([]float64, 0, len(rows)*classes)
	for i, row := range rows {
		if len(row) != classes+width {
			return ds, zorros.Errorf("dataset `%v` row %v has %v columns, %v required", path, i, len(row), classes+width)
		}
		for at, cell := range row {
			v, e := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if e != nil {
				return ds, zorros.Wrapf(e, "dataset `%v` row %v: %v", path, i, e.Error())
			}
			if at < classes {
				labels = append(labels, v)
			} else {
				features = append(features, v)
			}
		}
	}
	ds.Features = mat.NewDense(len(rows), width, features)
	if classes > 0 {
		ds.Labels = mat.NewDense(len(rows), classes, labels)
	}
	return ds, nil
}
