package fu

import (
	"gotest.tools/assert"
	"testing"
)

func Test_Mean(t *testing.T) {
	assert.Assert(t, Mean([]float64{1, 2, 3}) == 2)
	assert.Assert(t, Mean([]float64{0, 0}) == 0)
}

func Test_Mse(t *testing.T) {
	assert.Assert(t, Mse([]float64{1, 1}, []float64{1, 1}) == 0)
	assert.Assert(t, Mse([]float64{1, 0}, []float64{0, 0}) == 0.5)
}

func Test_Indmaxd(t *testing.T) {
	assert.Assert(t, Indmaxd([]float64{0.1, 0.9, 0.3}) == 1)
	assert.Assert(t, Indmaxd([]float64{1, 1, 1}) == 0)
	assert.Assert(t, Indmaxd([]float64{-1, -2}) == 0)
}

func Test_Onehot(t *testing.T) {
	assert.DeepEqual(t, Onehot(2, 4), []float64{0, 0, 1, 0})
}

func Test_Ints(t *testing.T) {
	assert.Assert(t, Mini(2, 3) == 2)
	assert.Assert(t, Maxi(2, 3) == 3)
	assert.Assert(t, Fnzi(0, 0, 7, 1) == 7)
	assert.Assert(t, Fnzi() == 0)
}
