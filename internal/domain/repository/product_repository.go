package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo.
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	// Create persiste un producto. Devuelve domain.ErrDuplicate si el ID
	// derivado del título ya existe.
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila para la transacción
	// en curso (SELECT FOR UPDATE en el backend relacional). Solo tiene
	// sentido dentro de TxRunner.Run.
	GetForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock del producto. El motor de pedidos lo invoca
	// dentro de la transacción, después de validar todas las líneas.
	UpdateStock(id string, stock int64) error
	// Delete devuelve ErrProductNotFound si el ID no existe, en ambos backends.
	Delete(id string) error
}
