package datasets

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/assert"
)

const sample = "1,0,0.5,0.25\n0,1,0.75,1.0\n"

func Test_ReadCSV(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "toy.csv")
	assert.NilError(t, ioutil.WriteFile(path, []byte(sample), 0644))

	ds, err := ReadCSV(path, 2)
	assert.NilError(t, err)
	assert.Assert(t, ds.Len() == 2)
	assert.Assert(t, ds.Width() == 2)
	assert.Assert(t, ds.Classes() == 2)
	assert.Assert(t, ds.Features.At(0, 0) == 0.5)
	assert.Assert(t, ds.Features.At(1, 1) == 1.0)
	assert.Assert(t, ds.Labels.At(0, 0) == 1)
	assert.Assert(t, ds.Labels.At(1, 0) == 0)
}

func Test_ReadCSVGzip(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "toy.csv.gz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sample))
	assert.NilError(t, err)
	assert.NilError(t, zw.Close())
	assert.NilError(t, f.Close())

	ds, err := ReadCSV(path, 2)
	assert.NilError(t, err)
	assert.Assert(t, ds.Len() == 2)
	assert.Assert(t, ds.Features.At(0, 1) == 0.25)
}

func Test_ReadCSVXz(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "toy.csv.xz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	xw, err := xz.NewWriter(f)
	assert.NilError(t, err)
	_, err = xw.Write([]byte(sample))
	assert.NilError(t, err)
	assert.NilError(t, xw.Close())
	assert.NilError(t, f.Close())

	ds, err := ReadCSV(path, 2)
	assert.NilError(t, err)
	assert.Assert(t, ds.Len() == 2)
	assert.Assert(t, ds.Features.At(1, 0) == 0.75)
}

func Test_ReadCSVBadInput(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.csv")
	assert.NilError(t, ioutil.WriteFile(path, []byte("1,0,oops\n"), 0644))
	_, err = ReadCSV(path, 2)
	assert.Assert(t, err != nil)

	path = filepath.Join(dir, "narrow.csv")
	assert.NilError(t, ioutil.WriteFile(path, []byte("1,0\n"), 0644))
	_, err = ReadCSV(path, 2)
	assert.Assert(t, err != nil)

	_, err = ReadCSV(filepath.Join(dir, "absent.csv"), 2)
	assert.Assert(t, err != nil)
}
