package jsonstore

import (
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.ProductRepository = (*txProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el documento JSON.
// Cada escritura fuera de TxRunner es su propia sección exclusiva + persist.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de catálogo.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := r.store.createProduct(p); err != nil {
		return err
	}
	if err := r.store.persist(); err != nil {
		r.store.state = snap
		return err
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.findProduct(id), nil
}

// GetForUpdate fuera de transacción equivale a una lectura bajo lock: el
// documento entero está guardado por una sola sección exclusiva.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.store.state.Products))
	for i := range r.store.state.Products {
		out = append(out, toProductEntity(r.store.state.Products[i]))
	}
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := r.store.updateProduct(p); err != nil {
		return err
	}
	if err := r.store.persist(); err != nil {
		r.store.state = snap
		return err
	}
	return nil
}

func (r *ProductRepo) UpdateStock(id string, stock int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := r.store.updateStock(id, stock); err != nil {
		return err
	}
	if err := r.store.persist(); err != nil {
		r.store.state = snap
		return err
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.state.Products {
		if r.store.state.Products[i].ID == id {
			snap := r.store.snapshot()
			r.store.state.Products = append(r.store.state.Products[:i], r.store.state.Products[i+1:]...)
			if err := r.store.persist(); err != nil {
				r.store.state = snap
				return err
			}
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// txProductRepo variante atada a la transacción: asume el lock de Run tomado
// y no persiste (Run confirma el documento completo al final).
type txProductRepo struct {
	store *Store
}

func (r *txProductRepo) Create(p *entity.Product) error { return r.store.createProduct(p) }
func (r *txProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.store.findProduct(id), nil
}
func (r *txProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.store.findProduct(id), nil
}
func (r *txProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.state.Products))
	for i := range r.store.state.Products {
		out = append(out, toProductEntity(r.store.state.Products[i]))
	}
	return out, nil
}
func (r *txProductRepo) Update(p *entity.Product) error { return r.store.updateProduct(p) }
func (r *txProductRepo) UpdateStock(id string, stock int64) error {
	return r.store.updateStock(id, stock)
}
func (r *txProductRepo) Delete(id string) error {
	for i := range r.store.state.Products {
		if r.store.state.Products[i].ID == id {
			r.store.state.Products = append(r.store.state.Products[:i], r.store.state.Products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}
