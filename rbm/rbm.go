/*
Package rbm implements a restricted Boltzmann machine trained with
one-step contrastive divergence.

Hidden units are logistic with stochastic binarization, visible units
are linear (gaussian visible units with zero noise on the mean-field
reconstruction pass). Weights and both bias vectors start at zero and
grow over shuffled mini-batch epochs.
*/
package rbm

import (
	"go-ml.dev/pkg/dbn/fu"
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	DefaultLearningRate = 0.1
	DefaultBatchSize    = 100
	DefaultSeed         = 42
)

/*
Machine holds the parameters of one RBM unit. The weight matrix is
Visible x Hidden, mutated in place by training and shared with any
classifier adopting it afterwards.
*/
type Machine struct {
	Visible, Hidden int
	W               *mat.Dense // Visible x Hidden weights
	HBias           []float64  // hidden layer bias
	VBias           []float64  // visible layer bias
	LearningRate    float64
	BatchSize       int
	Seed            uint64
}

/*
New creates a zero-initialized machine with the given layer sizes
*/
func New(visible, hidden int) *Machine {
	if visible <= 0 || hidden <= 0 {
		panic(zorros.Panic(zorros.Errorf("rbm layer sizes must be positive, got %v x %v", visible, hidden)))
	}
	return &Machine{
		Visible:      visible,
		Hidden:       hidden,
		W:            mat.NewDense(visible, hidden, nil),
		HBias:        make([]float64, hidden),
		VBias:        make([]float64, visible),
		LearningRate: DefaultLearningRate,
		BatchSize:    DefaultBatchSize,
		Seed:         DefaultSeed,
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

/*
Transform maps an input batch to hidden-unit activation probabilities
using the current weights. The result of a trained machine is the
training input for the next machine in a stack.
*/
func (m *Machine) Transform(x mat.Matrix) *mat.Dense {
	_, c := x.Dims()
	if c != m.Visible {
		panic(zorros.Panic(zorros.Errorf("input width %v does not match visible size %v", c, m.Visible)))
	}
	p := &mat.Dense{}
	p.Mul(x, m.W)
	p.Apply(func(_, j int, v float64) float64 { return sigmoid(v + m.HBias[j]) }, p)
	return p
}

// reconstruct computes the linear visible reconstruction of hidden activity
func (m *Machine) reconstruct(h mat.Matrix) *mat.Dense {
	v := &mat.Dense{}
	v.Mul(h, m.W.T())
	v.Apply(func(_, j int, x float64) float64 { return x + m.VBias[j] }, v)
	return v
}

/*
Reconstruct runs the deterministic up-down pass, visible input to hidden
probabilities and back to the visible layer
*/
func (m *Machine) Reconstruct(x mat.Matrix) *mat.Dense {
	return m.reconstruct(m.Transform(x))
}

/*
ReconstructionError is the mean squared error between the input and its
deterministic reconstruction
*/
func (m *Machine) ReconstructionError(x *mat.Dense) float64 {
	v := m.Reconstruct(x)
	return fu.Mse(x.RawMatrix().Data, v.RawMatrix().Data)
}

// sampleBernoulli binarizes activation probabilities drawing elements
// in row-major order
func sampleBernoulli(p *mat.Dense, rng *rand.Rand) *mat.Dense {
	r, c := p.Dims()
	h := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if rng.Float64() < p.At(i, j) {
				h.Set(i, j, 1)
			}
		}
	}
	return h
}

/*
cdStep applies one contrastive divergence update for the batch x:
positive statistics come from the data-driven hidden probabilities,
negative statistics from the reconstruction of a binarized hidden
sample, the difference is scaled by the learning rate and normalized
by the batch size.
*/
func (m *Machine) cdStep(x *mat.Dense, rng *rand.Rand) {
	n, _ := x.Dims()
	alpha := m.LearningRate / float64(n)
	p := m.Transform(x)
	h := sampleBernoulli(p, rng)
	v := m.reconstruct(h)
	q := m.Transform(v)

	var pos, neg, dw mat.Dense
	pos.Mul(x.T(), p)
	neg.Mul(v.T(), q)
	dw.Sub(&pos, &neg)
	dw.Scale(alpha, &dw)
	m.W.Add(m.W, &dw)

	addColDiff(m.HBias, p, q, alpha)
	addColDiff(m.VBias, x, v, alpha)
}

// addColDiff adds alpha * colsum(a - b) to bias
func addColDiff(bias []float64, a, b *mat.Dense, alpha float64) {
	r, c := a.Dims()
	for j := 0; j < c; j++ {
		var s float64
		for i := 0; i < r; i++ {
			s += a.At(i, j) - b.At(i, j)
		}
		bias[j] += alpha * s
	}
}

/*
Feed binds the machine to a dataset producing a fat model, labels of
the dataset are ignored
*/
func (m *Machine) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		return m.fit(ds, w)
	}
}

func (m *Machine) fit(ds model.Dataset, w model.Workout) (*model.Report, error) {
	if err := ds.Verify(); err != nil {
		return nil, err
	}
	if ds.Width() != m.Visible {
		return nil, zorros.Errorf("dataset width %v does not match visible size %v", ds.Width(), m.Visible)
	}
	rng := rand.New(rand.NewSource(m.Seed))
	n := ds.Len()
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	hold := ds.Holdout()
	batch := mat.NewDense(fu.Mini(m.BatchSize, n), m.Visible, nil)
	for {
		rng.Shuffle(n, func(i, j int) { index[i], index[j] = index[j], index[i] })
		for at := 0; at < n; at += m.BatchSize {
			width := fu.Mini(m.BatchSize, n-at)
			b := batch.Slice(0, width, 0, m.Visible).(*mat.Dense)
			for i := 0; i < width; i++ {
				b.SetRow(i, ds.Features.RawRowView(index[at+i]))
			}
			m.cdStep(b, rng)
		}
		train := model.Metrics{Iteration: w.Iteration(), Loss: m.ReconstructionError(ds.Features)}
		test := model.Metrics{Iteration: w.Iteration(), Loss: m.ReconstructionError(hold.Features)}
		report, done, err := w.Complete(m.Memorize(), train, test, false)
		if err != nil {
			return nil, err
		}
		if done {
			return report, nil
		}
		w = w.Next()
	}
}
