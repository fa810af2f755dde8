/*
Package mlp implements a feed-forward sigmoid classifier trained by
mini-batch gradient descent with momentum on a mean squared error loss
against one-hot targets.

Hidden layers can adopt the weights and hidden biases of a pre-trained
stack of restricted Boltzmann machines instead of their random
initialization.
*/
package mlp

import (
	"go-ml.dev/pkg/dbn/fu"
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/dbn/rbm"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

const (
	DefaultLearningRate = 0.1
	DefaultMomentum     = 0.5
	DefaultBatchSize    = 100
	DefaultSeed         = 42
)

/*
Network holds ordered per-layer weight/bias pairs. Layer l maps
Sizes[l] inputs to Sizes[l+1] outputs through a sigmoid.
*/
type Network struct {
	Sizes        []int        // input width, hidden widths..., output width
	W            []*mat.Dense // Sizes[l] x Sizes[l+1] weights per layer
	B            [][]float64  // bias per layer
	LearningRate float64
	Momentum     float64
	BatchSize    int
	Seed         uint64

	vw []*mat.Dense // momentum velocity
	vb [][]float64
}

/*
New creates a classifier sized by the dataset dimensionality and the
given hidden layer widths. Weights start from a bounded uniform
distribution with the 4*sqrt(6/(fanIn+fanOut)) sigmoid fan heuristic,
biases start at zero.
*/
func New(ds model.Dataset, hidden ...int) *Network {
	if err := ds.Verify(); err != nil {
		panic(zorros.Panic(err))
	}
	if ds.Labels == nil {
		panic(zorros.Panic(zorros.Errorf("classifier requires one-hot labels to size the output layer")))
	}
	sizes := append([]int{ds.Width()}, hidden...)
	sizes = append(sizes, ds.Classes())
	n := &Network{
		Sizes:        sizes,
		LearningRate: DefaultLearningRate,
		Momentum:     DefaultMomentum,
		BatchSize:    DefaultBatchSize,
		Seed:         DefaultSeed,
	}
	src := rand.NewSource(n.Seed)
	for l := 0; l+1 < len(sizes); l++ {
		bound := 4 * math.Sqrt(6/float64(sizes[l]+sizes[l+1]))
		u := distuv.Uniform{Min: -bound, Max: bound, Src: src}
		w := mat.NewDense(sizes[l], sizes[l+1], nil)
		w.Apply(func(_, _ int, _ float64) float64 { return u.Rand() }, w)
		n.W = append(n.W, w)
		n.B = append(n.B, make([]float64, sizes[l+1]))
		n.vw = append(n.vw, mat.NewDense(sizes[l], sizes[l+1], nil))
		n.vb = append(n.vb, make([]float64, sizes[l+1]))
	}
	return n
}

/*
AdoptRBMs overwrites the hidden layer parameters with the weights and
hidden biases of a pre-trained stack. The stack must cover exactly the
hidden layers and every size must agree, a mismatch is a precondition
violation. Visible biases of the machines are discarded.
*/
func (n *Network) AdoptRBMs(machines []*rbm.Machine) error {
	if len(machines) != len(n.Sizes)-2 {
		return zorros.Errorf("stack of %v machines does not cover %v hidden layers",
			len(machines), len(n.Sizes)-2)
	}
	for l, m := range machines {
		if m.Visible != n.Sizes[l] || m.Hidden != n.Sizes[l+1] {
			return zorros.Errorf("machine %v is %vx%v, layer %v requires %vx%v",
				l, m.Visible, m.Hidden, l, n.Sizes[l], n.Sizes[l+1])
		}
	}
	for l, m := range machines {
		n.W[l].Copy(m.W)
		copy(n.B[l], m.HBias)
	}
	return nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// forward returns per-layer activations, activations[0] is the input
func (n *Network) forward(x mat.Matrix) []*mat.Dense {
	_, c := x.Dims()
	if c != n.Sizes[0] {
		panic(zorros.Panic(zorros.Errorf("input width %v does not match network input size %v", c, n.Sizes[0])))
	}
	a := make([]*mat.Dense, len(n.Sizes))
	a[0] = mat.DenseCopyOf(x)
	for l := range n.W {
		z := &mat.Dense{}
		z.Mul(a[l], n.W[l])
		bias := n.B[l]
		z.Apply(func(_, j int, v float64) float64 { return sigmoid(v + bias[j]) }, z)
		a[l+1] = z
	}
	return a
}

/*
Predict maps an input batch to output layer activations
*/
func (n *Network) Predict(x mat.Matrix) *mat.Dense {
	a := n.forward(x)
	return a[len(a)-1]
}

/*
Accuracy is the fraction of rows where the arg-max prediction matches
the arg-max label
*/
func (n *Network) Accuracy(x, labels *mat.Dense) float64 {
	y := n.Predict(x)
	r, _ := y.Dims()
	hits := make([]float64, r)
	for i := 0; i < r; i++ {
		if fu.Indmaxd(y.RawRowView(i)) == fu.Indmaxd(labels.RawRowView(i)) {
			hits[i] = 1
		}
	}
	return fu.Mean(hits)
}

/*
Cost is the mean squared error of predictions against one-hot labels
*/
func (n *Network) Cost(x, labels *mat.Dense) float64 {
	y := n.Predict(x)
	return fu.Mse(y.RawMatrix().Data, labels.RawMatrix().Data)
}

// step runs one momentum update from the mini-batch x/t
func (n *Network) step(x, t *mat.Dense) {
	rows, _ := x.Dims()
	a := n.forward(x)
	last := len(a) - 1
	delta := &mat.Dense{}
	delta.Sub(a[last], t)
	out := a[last]
	delta.Apply(func(i, j int, v float64) float64 {
		s := out.At(i, j)
		return v * s * (1 - s)
	}, delta)
	for l := len(n.W) - 1; l >= 0; l-- {
		gw := &mat.Dense{}
		gw.Mul(a[l].T(), delta)
		gw.Scale(1/float64(rows), gw)

		next := &mat.Dense{}
		if l > 0 {
			next.Mul(delta, n.W[l].T())
			hid := a[l]
			next.Apply(func(i, j int, v float64) float64 {
				s := hid.At(i, j)
				return v * s * (1 - s)
			}, next)
		}

		n.vw[l].Scale(n.Momentum, n.vw[l])
		gw.Scale(n.LearningRate, gw)
		n.vw[l].Sub(n.vw[l], gw)
		n.W[l].Add(n.W[l], n.vw[l])

		_, cols := delta.Dims()
		for j := 0; j < cols; j++ {
			var s float64
			for i := 0; i < rows; i++ {
				s += delta.At(i, j)
			}
			n.vb[l][j] = n.Momentum*n.vb[l][j] - n.LearningRate*s/float64(rows)
			n.B[l][j] += n.vb[l][j]
		}
		delta = next
	}
}

/*
Feed binds the classifier to a labeled dataset producing a fat model
*/
func (n *Network) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		return n.fit(ds, w)
	}
}

func (n *Network) fit(ds model.Dataset, w model.Workout) (*model.Report, error) {
	if err := ds.Verify(); err != nil {
		return nil, err
	}
	if ds.Width() != n.Sizes[0] {
		return nil, zorros.Errorf("dataset width %v does not match network input size %v", ds.Width(), n.Sizes[0])
	}
	if ds.Labels == nil || ds.Classes() != n.Sizes[len(n.Sizes)-1] {
		return nil, zorros.Errorf("dataset labels do not match network output size %v", n.Sizes[len(n.Sizes)-1])
	}
	rng := rand.New(rand.NewSource(n.Seed))
	count := ds.Len()
	index := make([]int, count)
	for i := range index {
		index[i] = i
	}
	hold := ds.Holdout()
	if hold.Labels == nil {
		return nil, zorros.Errorf("validation subset has no labels")
	}
	classes := ds.Classes()
	xb := mat.NewDense(fu.Mini(n.BatchSize, count), n.Sizes[0], nil)
	tb := mat.NewDense(fu.Mini(n.BatchSize, count), classes, nil)
	for {
		rng.Shuffle(count, func(i, j int) { index[i], index[j] = index[j], index[i] })
		for at := 0; at < count; at += n.BatchSize {
			width := fu.Mini(n.BatchSize, count-at)
			x := xb.Slice(0, width, 0, n.Sizes[0]).(*mat.Dense)
			t := tb.Slice(0, width, 0, classes).(*mat.Dense)
			for i := 0; i < width; i++ {
				x.SetRow(i, ds.Features.RawRowView(index[at+i]))
				t.SetRow(i, ds.Labels.RawRowView(index[at+i]))
			}
			n.step(x, t)
		}
		train := model.Metrics{
			Iteration: w.Iteration(),
			Loss:      n.Cost(ds.Features, ds.Labels),
			Accuracy:  n.Accuracy(ds.Features, ds.Labels),
		}
		test := model.Metrics{
			Iteration: w.Iteration(),
			Loss:      n.Cost(hold.Features, hold.Labels),
			Accuracy:  n.Accuracy(hold.Features, hold.Labels),
		}
		report, done, err := w.Complete(n.Memorize(), train, test, false)
		if err != nil {
			return nil, err
		}
		if done {
			return report, nil
		}
		w = w.Next()
	}
}
