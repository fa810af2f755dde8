package model

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Dataset is an in-memory source of a data to feed hungry models.
Features rows are fixed-length numeric vectors, Labels rows are one-hot
vectors aligned with Features. Both stay immutable for the duration of
training and are owned by the loader that produced them.
*/
type Dataset struct {
	Features   *mat.Dense // samples x width matrix of feature vectors
	Labels     *mat.Dense // optional samples x classes one-hot matrix
	Validation *Dataset   // optional held-out subset, equal to the train subset if nil
}

// Len returns the number of samples
func (ds Dataset) Len() int {
	if ds.Features == nil {
		return 0
	}
	r, _ := ds.Features.Dims()
	return r
}

// Width returns the length of one feature vector
func (ds Dataset) Width() int {
	if ds.Features == nil {
		return 0
	}
	_, c := ds.Features.Dims()
	return c
}

// Classes returns the width of one label vector
func (ds Dataset) Classes() int {
	if ds.Labels == nil {
		return 0
	}
	_, c := ds.Labels.Dims()
	return c
}

/*
Verify checks the dataset is rectangular and consistent
*/
func (ds Dataset) Verify() error {
	if ds.Features == nil {
		return zorros.Errorf("dataset has no features")
	}
	if ds.Labels != nil {
		fr, _ := ds.Features.Dims()
		lr, _ := ds.Labels.Dims()
		if fr != lr {
			return zorros.Errorf("dataset has %v feature rows but %v label rows", fr, lr)
		}
	}
	if ds.Validation != nil {
		if err := ds.Validation.Verify(); err != nil {
			return err
		}
		if ds.Validation.Width() != ds.Width() {
			return zorros.Errorf("validation feature width %v differs from train width %v",
				ds.Validation.Width(), ds.Width())
		}
	}
	return nil
}

// Holdout returns the validation subset falling back to the train subset
func (ds Dataset) Holdout() Dataset {
	if ds.Validation != nil {
		return *ds.Validation
	}
	return Dataset{Features: ds.Features, Labels: ds.Labels}
}
