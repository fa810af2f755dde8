package hyperopt

import (
	"go-ml.dev/pkg/dbn/model"
	"gotest.tools/assert"
	"math"
	"testing"
)

// bowl is a fake model scoring best when the `x` parameter is 3
type bowl struct {
	x float64
}

func (b bowl) Feed(model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		m := model.Metrics{Accuracy: 1 / (1 + (b.x-3)*(b.x-3))}
		report, _, err := w.Complete(nil, m, m, true)
		return report, err
	}
}

func Test_RandomSearch(t *testing.T) {
	best := Space{
		Seed:   42,
		Trials: 64,
		ModelFunc: func(p model.Params) model.HungryModel {
			return bowl{x: p.Get("x", 0)}
		},
		Variance: Variance{
			"x":  Range{0, 10},
			"c":  Value(0.5),
			"k":  IntRange{1, 4},
			"lr": List{0.01, 0.1, 1},
		},
	}.LuckyRandomSearch()
	assert.Assert(t, math.Abs(best.Params["x"]-3) < 1.5)
	assert.Assert(t, best.Score > 1/(1+1.5*1.5))
	assert.Assert(t, best.Params["c"] == 0.5)
	k := best.Params["k"]
	assert.Assert(t, k >= 1 && k <= 4 && k == math.Floor(k))
}

func Test_RandomSearchNoModel(t *testing.T) {
	_, err := Space{Trials: 1}.RandomSearch()
	assert.Assert(t, err != nil)
}
