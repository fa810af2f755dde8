package mlp

import (
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Memento is the gob-encodable snapshot of network parameters
*/
type Memento struct {
	Sizes []int
	W     [][]float64 // row-major per layer
	B     [][]float64
}

/*
Memento snapshots the current parameters
*/
func (n *Network) Memento() Memento {
	m := Memento{Sizes: append([]int{}, n.Sizes...)}
	for l := range n.W {
		m.W = append(m.W, append([]float64{}, n.W[l].RawMatrix().Data...))
		m.B = append(m.B, append([]float64{}, n.B[l]...))
	}
	return m
}

/*
SetMemento overwrites network parameters from a snapshot
*/
func (n *Network) SetMemento(m Memento) error {
	if len(m.Sizes) != len(n.Sizes) {
		return zorros.Errorf("memento has %v layer sizes, network has %v", len(m.Sizes), len(n.Sizes))
	}
	for i, s := range m.Sizes {
		if s != n.Sizes[i] {
			return zorros.Errorf("memento layer size %v is %v, network requires %v", i, s, n.Sizes[i])
		}
	}
	for l := range n.W {
		n.W[l] = mat.NewDense(n.Sizes[l], n.Sizes[l+1], append([]float64{}, m.W[l]...))
		n.B[l] = append([]float64{}, m.B[l]...)
		n.vw[l] = mat.NewDense(n.Sizes[l], n.Sizes[l+1], nil)
		n.vb[l] = make([]float64, n.Sizes[l+1])
	}
	return nil
}

/*
Memorize wraps the parameters snapshot for the model stash
*/
func (n *Network) Memorize() model.MemorizeMap {
	return model.MemorizeMap{"mlp": n.Memento()}
}
