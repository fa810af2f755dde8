/*
Package hyperopt implements random-search hyper-parameter optimization
for ML models over a declarative parameter space.
*/
package hyperopt

import (
	"fmt"
	"math"

	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

/*
Range is a open float range specified by min and max values (min,max)
*/
type Range [2]float64

/*
LogRange is a open float logarithmic range specified by min and max values (min,max)
*/
type LogRange [2]float64

/*
IntRange is a close integer range specified by min and max values [min,max]
*/
type IntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

/*
Value is a single value parameter
*/
type Value float64

// type limitation interface
type distribution interface {
	sample(src rand.Source) float64
}

func (r Range) sample(src rand.Source) float64 {
	return distuv.Uniform{Min: r[0], Max: r[1], Src: src}.Rand()
}

func (r LogRange) sample(src rand.Source) float64 {
	u := distuv.Uniform{Min: math.Log(r[0]), Max: math.Log(r[1]), Src: src}
	return math.Exp(u.Rand())
}

func (r IntRange) sample(src rand.Source) float64 {
	u := distuv.Uniform{Min: float64(r[0]), Max: float64(r[1]) + 1, Src: src}
	return math.Min(math.Floor(u.Rand()), float64(r[1]))
}

func (l List) sample(src rand.Source) float64 {
	u := distuv.Uniform{Min: 0, Max: float64(len(l)), Src: src}
	return l[int(math.Min(math.Floor(u.Rand()), float64(len(l)-1)))]
}

func (v Value) sample(rand.Source) float64 {
	return float64(v)
}

/*
Variance is a space of hyper-parameters used in *Search functions
*/
type Variance map[string]distribution

/*
Report is a result of Hyper-parameters Optimization
*/
type Report struct {
	model.Params
	Score float64
}

/*
Space is a definition of hyper-parameters optimization space
*/
type Space struct {
	Dataset      model.Dataset // dataset to train and evaluate models on
	Seed         uint64        // random seed
	Trials       int           // count of sampled parameter sets
	Iterations   int           // model fitting iterations
	Score        model.Score   // function to calculate score of train/test metrics
	ScoreHistory int

	// the model generation function
	ModelFunc func(model.Params) model.HungryModel

	// hyper-parameters variance
	Variance Variance

	Verbose interface{} // print function func(string)
}

func (s Space) sample(src rand.Source) model.Params {
	p := model.Params{}
	for k, d := range s.Variance {
		p[k] = d.sample(src)
	}
	return p
}

/*
RandomSearch samples Trials parameter sets, trains a model for every
set and returns the best scored one
*/
func (s Space) RandomSearch() (best Report, err error) {
	if s.ModelFunc == nil {
		return best, zorros.Errorf("hyperopt space requires a model generation function")
	}
	trials := s.Trials
	if trials <= 0 {
		trials = 1
	}
	src := rand.NewSource(s.Seed)
	best.Score = math.Inf(-1)
	for i := 0; i < trials; i++ {
		p := s.sample(src)
		t := model.Training{
			Iterations:   s.Iterations,
			Score:        s.Score,
			ScoreHistory: s.ScoreHistory,
			Verbose:      s.Verbose,
		}
		r, e := s.ModelFunc(p).Feed(s.Dataset).Train(t)
		if e != nil {
			return best, zorros.Wrapf(e, "trial %v failed: %v", i, e.Error())
		}
		if vf, ok := s.Verbose.(func(string)); ok {
			vf(fmt.Sprintf("trial %v score %.5f params %v", i, r.Score, p))
		}
		if r.Score > best.Score {
			best = Report{Params: p, Score: r.Score}
		}
	}
	return
}

/*
LuckyRandomSearch is the panicking variant of RandomSearch
*/
func (s Space) LuckyRandomSearch() Report {
	r, err := s.RandomSearch()
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}
