package model

import (
	"go-ml.dev/pkg/zorros"
	"io"
)

/*
HungryModel is an ML algorithm grows from a data to predict something
Needs to be fattened by Feed method to fit.
*/
type HungryModel interface {
	Feed(Dataset) FatModel
}

/*
Report is an ML training report
*/
type Report struct {
	History     []Epoch // all iterations history
	TheBest     int     // the best iteration
	Test, Train Metrics // the best iteration metrics
	Score       float64 // the best score
}

/*
Epoch is one row of the training history
*/
type Epoch struct {
	Train, Test Metrics
}

/*
Workout is a training iteration abstraction
*/
type Workout interface {
	Iteration() int
	Complete(m MemorizeMap, train, test Metrics, metricsDone bool) (*Report, bool, error)
	Next() Workout
	Verbose(string)
}

/*
UnifiedTraining is an interface allowing to write any logging/staging backend for ML training
*/
type UnifiedTraining interface {
	// Workout returns the first iteration workout
	Workout() Workout
}

/*
FatModel is fattened model (a training function of model instance bounded to a dataset)
*/
type FatModel func(workout Workout) (*Report, error)

/*
Train a fattened (Fat) model
*/
func (f FatModel) Train(training UnifiedTraining) (*Report, error) {
	w := training.Workout()
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}
	return f(w)
}

/*
LuckyTrain trains fattened (Fat) model and trows any occurred errors as a panic
*/
func (f FatModel) LuckyTrain(training UnifiedTraining) *Report {
	m, err := f.Train(training)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return m
}

/*
Params is a set of hyper-parameters used by hyper-parameter optimization to generate new model
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}
