package fu

import (
	"gotest.tools/assert"
	"path/filepath"
	"strings"
	"testing"
)

func Test_ModelPath(t *testing.T) {
	// absolute paths pass through untouched
	assert.Assert(t, ModelPath("/tmp/model.gob") == "/tmp/model.gob")
	// relative names land in the model cache
	p := ModelPath("mnist.gob")
	assert.Assert(t, filepath.IsAbs(p))
	assert.Assert(t, strings.HasSuffix(p, filepath.Join("go-ml", "Models", "mnist.gob")))
}
