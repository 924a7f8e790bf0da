package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/prodid"
)

// ProductUseCase casos de uso CRUD para el catálogo. El ID del producto se
// deriva del título (pkg/prodid); una colisión de ID es rechazo explícito,
// nunca sobreescritura.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner orders.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner orders.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto con ID derivado del título.
// Devuelve ErrDuplicate si ya existe un producto con el mismo título normalizado.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// BulkCreate crea varios productos en una sola transacción, todo-o-nada:
// cualquier colisión (con filas existentes o dentro del propio lote) rechaza
// el lote completo. Devuelve los IDs creados en el orden de entrada.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, in []dto.CreateProductRequest) ([]string, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	products := make([]*entity.Product, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		p, err := buildProduct(item)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, domain.ErrDuplicate
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OrderRepository) error {
		for _, p := range products {
			if err := productRepo.Create(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update aplica un patch parcial. Renombrar el título no cambia el ID: el ID
// derivado original se conserva como identidad estable del producto.
//
// Lee y reescribe la fila dentro de la misma transacción (GetForUpdate): un
// patch que no toca stock jamás puede pisar un decremento que el motor de
// pedidos confirmó entre lectura y escritura.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Title != nil && prodid.Normalize(*in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OrderRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.Title != nil {
			product.Title = *in.Title
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Stock != nil {
			product.Stock = *in.Stock
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina un producto del catálogo, verificando existencia bajo el
// mismo lock que borra. Los pedidos existentes conservan el ID como
// referencia histórica.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OrderRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		return productRepo.Delete(id)
	})
}

// AttachMedia persiste la URL servida de la imagen adjuntada al producto.
// Misma disciplina que Update: relectura bajo lock antes de reescribir.
func (uc *ProductUseCase) AttachMedia(ctx context.Context, id, url string) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OrderRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		product.Thumb = url
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

func buildProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	id, err := prodid.FromTitle(in.Title)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	return &entity.Product{
		ID:        id,
		Title:     in.Title,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Stock:     p.Stock,
		Thumb:     p.Thumb,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
