package jsonstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner sección exclusiva sobre el documento completo. Run toma el lock del
// store, le pasa a fn repositorios atados al estado en memoria, y al retorno
// normal persiste el documento en disco de una sola pieza. Ante cualquier
// error (de fn, de cancelación o de persistencia) restaura el snapshot previo:
// nunca se observa una mutación parcial.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn dentro de la sección exclusiva.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Petición abandonada antes de entrar: no tocar nada.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	snap := s.snapshot()
	if err := fn(&txProductRepo{store: s}, &txOrderRepo{store: s}); err != nil {
		s.state = snap
		return err
	}
	if err := ctx.Err(); err != nil {
		s.state = snap
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := s.persist(); err != nil {
		s.state = snap
		return err
	}
	return nil
}
