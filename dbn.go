/*
Package dbn glues a stack of restricted Boltzmann machines to a
feed-forward classifier forming a deep belief network.

The stack is pre-trained greedily, each machine learns from the hidden
activation probabilities of the machine below, then the classifier
adopts the stack parameters and is fine-tuned on labeled data.
*/
package dbn

import (
	"fmt"

	"go-ml.dev/pkg/dbn/mlp"
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/dbn/rbm"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/mat"
)

/*
Stack is an ordered pile of RBM units, machine i feeds machine i+1
*/
type Stack struct {
	Machines []*rbm.Machine
}

/*
NewStack creates zero-initialized machines for the given layer widths
*/
func NewStack(visible int, hidden ...int) *Stack {
	if len(hidden) == 0 {
		panic(zorros.Panic(zorros.Errorf("a stack requires at least one hidden layer")))
	}
	s := &Stack{}
	in := visible
	for _, h := range hidden {
		s.Machines = append(s.Machines, rbm.New(in, h))
		in = h
	}
	return s
}

/*
Sizes returns the visible width followed by every hidden width
*/
func (s *Stack) Sizes() []int {
	sizes := []int{s.Machines[0].Visible}
	for _, m := range s.Machines {
		sizes = append(sizes, m.Hidden)
	}
	return sizes
}

/*
Hidden returns the hidden layer widths only
*/
func (s *Stack) Hidden() []int {
	return s.Sizes()[1:]
}

/*
Pretrain runs greedy layer-wise contrastive divergence training.
Labels of the dataset are ignored, the validation subset when present
is transformed alongside the train subset. Returns one report per
machine.
*/
func (s *Stack) Pretrain(ds model.Dataset, t model.Training) ([]*model.Report, error) {
	if err := ds.Verify(); err != nil {
		return nil, err
	}
	t.ModelFile = nil // the trained artifact is the whole stack, not one layer
	if t.Score == nil {
		t.Score = model.LossScore
	}
	features := ds.Features
	var validation *mat.Dense
	if ds.Validation != nil {
		validation = ds.Validation.Features
	}
	reports := make([]*model.Report, 0, len(s.Machines))
	for i, m := range s.Machines {
		zlog.Info(fmt.Sprintf("pre-training layer %v, %v -> %v", i, m.Visible, m.Hidden))
		lds := model.Dataset{Features: features}
		if validation != nil {
			lds.Validation = &model.Dataset{Features: validation}
		}
		r, err := m.Feed(lds).Train(t)
		if err != nil {
			return nil, zorros.Wrapf(err, "pre-training of layer %v failed: %v", i, err.Error())
		}
		reports = append(reports, r)
		features = m.Transform(features)
		if validation != nil {
			validation = m.Transform(validation)
		}
	}
	return reports, nil
}

/*
Classifier builds a feed-forward network sized by the stack and the
dataset labels, adopting the pre-trained weights and hidden biases
*/
func (s *Stack) Classifier(ds model.Dataset) (*mlp.Network, error) {
	n := mlp.New(ds, s.Hidden()...)
	if err := n.AdoptRBMs(s.Machines); err != nil {
		return nil, err
	}
	return n, nil
}

/*
LuckyClassifier is the panicking variant of Classifier
*/
func (s *Stack) LuckyClassifier(ds model.Dataset) *mlp.Network {
	n, err := s.Classifier(ds)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return n
}

/*
Memorize snapshots every machine of the stack
*/
func (s *Stack) Memorize() model.MemorizeMap {
	m := model.MemorizeMap{}
	for i, x := range s.Machines {
		m[fmt.Sprintf("rbm-%d", i)] = x.Memento()
	}
	return m
}
