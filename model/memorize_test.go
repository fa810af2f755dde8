package model

import (
	"go-ml.dev/pkg/iokit"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

type block struct {
	Name string
	Data []float64
}

func Test_MemorizeRecall(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "memo.gob")

	m := MemorizeMap{
		"a": block{Name: "first", Data: []float64{1, 2, 3}},
		"b": block{Name: "second", Data: []float64{4}},
	}
	assert.NilError(t, Memorize(iokit.File(path), m))

	f, err := os.Open(path)
	assert.NilError(t, err)
	defer f.Close()
	var a, b block
	assert.NilError(t, Recall(f, MemorizeMap{"a": &a, "b": &b}))
	assert.Assert(t, a.Name == "first")
	assert.DeepEqual(t, a.Data, []float64{1, 2, 3})
	assert.Assert(t, b.Name == "second")
}

func Test_RecallSkipsUnknown(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "memo.gob")

	m := MemorizeMap{
		"a": block{Name: "first"},
		"z": block{Name: "last"},
	}
	assert.NilError(t, Memorize(iokit.File(path), m))

	f, err := os.Open(path)
	assert.NilError(t, err)
	defer f.Close()
	var z block
	assert.NilError(t, Recall(f, MemorizeMap{"z": &z}))
	assert.Assert(t, z.Name == "last")
}

func Test_Stash(t *testing.T) {
	s := NewStash(2, "snap-*.gob")
	defer s.Close()
	for i := 0; i < 4; i++ {
		o, err := s.Output(i)
		assert.NilError(t, err)
		assert.NilError(t, Memorize(o, MemorizeMap{"i": i}))
	}
	// iterations fallen out of the window are pruned
	_, err := s.Reader(0)
	assert.Assert(t, err != nil)
	rd, err := s.Reader(3)
	assert.NilError(t, err)
	defer rd.Close()
	var i int
	assert.NilError(t, Recall(rd, MemorizeMap{"i": &i}))
	assert.Assert(t, i == 3)
}
