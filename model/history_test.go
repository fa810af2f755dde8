package model

import (
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func Test_History(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbn-test-")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	h, err := OpenHistory(filepath.Join(dir, "history.db"), "unit test")
	assert.NilError(t, err)
	defer h.Close()

	for i := 0; i < 3; i++ {
		m := Metrics{Iteration: i, Loss: 1 / float64(i+1), Accuracy: float64(i) / 3}
		assert.NilError(t, h.Write(i, m, m, m.Accuracy))
	}
	n, err := h.Epochs(h.Run())
	assert.NilError(t, err)
	assert.Assert(t, n == 3)

	// a second run gets its own identifier
	h2, err := OpenHistory(filepath.Join(dir, "history.db"), "unit test")
	assert.NilError(t, err)
	defer h2.Close()
	assert.Assert(t, h2.Run() != h.Run())
	n, err = h2.Epochs(h2.Run())
	assert.NilError(t, err)
	assert.Assert(t, n == 0)
}
