package rbm

import (
	"go-ml.dev/pkg/dbn/model"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Memento is the gob-encodable snapshot of machine parameters
*/
type Memento struct {
	Visible, Hidden int
	W               []float64 // row-major Visible x Hidden
	HBias, VBias    []float64
}

/*
Memento snapshots the current parameters
*/
func (m *Machine) Memento() Memento {
	w := make([]float64, m.Visible*m.Hidden)
	copy(w, m.W.RawMatrix().Data)
	hb := make([]float64, m.Hidden)
	copy(hb, m.HBias)
	vb := make([]float64, m.Visible)
	copy(vb, m.VBias)
	return Memento{Visible: m.Visible, Hidden: m.Hidden, W: w, HBias: hb, VBias: vb}
}

/*
SetMemento overwrites machine parameters from a snapshot
*/
func (m *Machine) SetMemento(mm Memento) error {
	if mm.Visible != m.Visible || mm.Hidden != m.Hidden {
		return zorros.Errorf("memento sizes %vx%v do not match machine sizes %vx%v",
			mm.Visible, mm.Hidden, m.Visible, m.Hidden)
	}
	m.W = mat.NewDense(m.Visible, m.Hidden, append([]float64{}, mm.W...))
	m.HBias = append([]float64{}, mm.HBias...)
	m.VBias = append([]float64{}, mm.VBias...)
	return nil
}

/*
Memorize wraps the parameters snapshot for the model stash
*/
func (m *Machine) Memorize() model.MemorizeMap {
	return model.MemorizeMap{"rbm": m.Memento()}
}
