/*
Package mnist loads the handwritten digit dataset from the gzipped
IDX files of the original distribution.
*/
package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"go-ml.dev/pkg/dbn/fu"
	"go-ml.dev/pkg/dbn/model"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

const (
	TrainImages = "train-images-idx3-ubyte.gz"
	TrainLabels = "train-labels-idx1-ubyte.gz"
	TestImages  = "t10k-images-idx3-ubyte.gz"
	TestLabels  = "t10k-labels-idx1-ubyte.gz"

	Classes = 10

	imagesMagic = 2051
	labelsMagic = 2049
)

/*
Load reads the four IDX files from dir returning the train and test
datasets with pixel intensities scaled to [0,1] and one-hot labels
*/
func Load(dir string) (train, test model.Dataset, err error) {
	if train, err = loadPair(dir, TrainImages, TrainLabels); err != nil {
		return
	}
	if test, err = loadPair(dir, TestImages, TestLabels); err != nil {
		return
	}
	train.Validation = &test
	return
}

func loadPair(dir, images, labels string) (ds model.Dataset, err error) {
	if ds.Features, err = ReadImages(filepath.Join(dir, images)); err != nil {
		return
	}
	if ds.Labels, err = ReadLabels(filepath.Join(dir, labels)); err != nil {
		return
	}
	fr, _ := ds.Features.Dims()
	lr, _ := ds.Labels.Dims()
	if fr != lr {
		err = xerrors.Errorf("mnist: %v images but %v labels", fr, lr)
	}
	return
}

func openIDX(path string, magic uint32) (io.ReadCloser, []uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, xerrors.Errorf("mnist: %w", err)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, xerrors.Errorf("mnist: `%v` is not gzipped: %w", path, err)
	}
	var head [2]uint32
	if err = binary.Read(zr, binary.BigEndian, &head); err != nil {
		_ = f.Close()
		return nil, nil, xerrors.Errorf("mnist: `%v` header: %w", path, err)
	}
	if head[0] != magic {
		_ = f.Close()
		return nil, nil, xerrors.Errorf("mnist: `%v` has magic %v, %v expected", path, head[0], magic)
	}
	dims := []uint32{head[1]}
	extra := 0
	if magic == imagesMagic {
		extra = 2
	}
	for i := 0; i < extra; i++ {
		var d uint32
		if err = binary.Read(zr, binary.BigEndian, &d); err != nil {
			_ = f.Close()
			return nil, nil, xerrors.Errorf("mnist: `%v` dimensions: %w", path, err)
		}
		dims = append(dims, d)
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, f}, dims, nil
}

/*
ReadImages parses a gzipped idx3-ubyte file into a samples x pixels
matrix of [0,1] intensities
*/
func ReadImages(path string) (*mat.Dense, error) {
	r, dims, err := openIDX(path, imagesMagic)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	count, width := int(dims[0]), int(dims[1]*dims[2])
	raw := make([]byte, count*width)
	if _, err = io.ReadFull(r, raw); err != nil {
		return nil, xerrors.Errorf("mnist: `%v` pixels: %w", path, err)
	}
	data := make([]float64, len(raw))
	for i, b := range raw {
		data[i] = float64(b) / 255
	}
	return mat.NewDense(count, width, data), nil
}

/*
ReadLabels parses a gzipped idx1-ubyte file into a samples x 10 one-hot
matrix
*/
func ReadLabels(path string) (*mat.Dense, error) {
	r, dims, err := openIDX(path, labelsMagic)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	count := int(dims[0])
	raw := make([]byte, count)
	if _, err = io.ReadFull(r, raw); err != nil {
		return nil, xerrors.Errorf("mnist: `%v` labels: %w", path, err)
	}
	labels := mat.NewDense(count, Classes, nil)
	for i, b := range raw {
		if int(b) >= Classes {
			return nil, xerrors.Errorf("mnist: `%v` label %v out of range at row %v", path, b, i)
		}
		labels.SetRow(i, fu.Onehot(int(b), Classes))
	}
	return labels, nil
}
