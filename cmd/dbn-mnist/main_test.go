package main

import (
	"flag"
	"testing"

	"go-ml.dev/pkg/dbn"
	"go-ml.dev/pkg/dbn/mlp"
	"go-ml.dev/pkg/dbn/model"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
)

func Test_SeedFlag(t *testing.T) {
	f := flag.Lookup("seed")
	assert.Assert(t, f != nil)
	assert.Assert(t, f.DefValue == "42")
}

func Test_SeedAll(t *testing.T) {
	ds := model.Dataset{
		Features: mat.NewDense(4, 6, nil),
		Labels:   mat.NewDense(4, 2, nil),
	}
	s := dbn.NewStack(6, 4, 3)
	n := mlp.New(ds, 4, 3)
	seedAll(s, nil, 7)
	for _, m := range s.Machines {
		assert.Assert(t, m.Seed == 7)
	}
	seedAll(s, n, 9)
	assert.Assert(t, n.Seed == 9)
	assert.Assert(t, s.Machines[0].Seed == 9)
}

func Test_ModelOutput(t *testing.T) {
	assert.Assert(t, modelOutput("") == nil)
	assert.Assert(t, modelOutput("/tmp/dbn-test-model.gob") != nil)
	assert.Assert(t, modelOutput("mnist.gob") != nil)
}

func Test_Widths(t *testing.T) {
	assert.DeepEqual(t, widths("500,100"), []int{500, 100})
	assert.DeepEqual(t, widths(" 8 , 4 "), []int{8, 4})
}
