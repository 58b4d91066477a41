package state

import (
	"sync/atomic"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// Gate impide enviar una segunda operación mientras otra está en curso.
type Gate struct {
	busy atomic.Bool
}

// Enter toma la compuerta o devuelve ErrSubmissionInProgress. Llamar a release al terminar.
func (g *Gate) Enter() (release func(), err error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrSubmissionInProgress
	}
	return func() { g.busy.Store(false) }, nil
}

// Busy indica si hay una operación en curso.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}
