package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PlaceOrderUseCase motor de colocación de pedidos: valida la lista solicitada
// contra el stock vivo, reserva atómicamente y persiste el pedido, todo dentro
// de una transacción del backend. Es la pieza crítica de concurrencia del
// sistema: dos fases (validar todo, luego decrementar todo) bajo aislamiento
// transaccional impiden sobreventa y updates perdidos.
type PlaceOrderUseCase struct {
	txRunner TxRunner
}

// NewPlaceOrderUseCase construye el motor.
func NewPlaceOrderUseCase(txRunner TxRunner) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner}
}

// PlaceOrder coloca un pedido para el usuario autenticado.
//
// Reglas:
//   - lista vacía o qty <= 0 o total negativo → ErrInvalidInput
//   - producto inexistente → ErrProductNotFound (envuelto con el ID)
//   - líneas duplicadas del mismo producto se suman antes de comparar contra
//     el stock; si la suma excede → ErrInsufficientStock (envuelto con el ID)
//   - solo cuando todas las líneas validan se decrementa el stock de cada
//     producto tocado, dentro de la misma transacción
//
// El total declarado por el caller se persiste tal cual; solo se valida
// que no sea negativo.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.Total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// Agregado por producto: la petición se juzga por la cantidad sumada,
	// no línea por línea.
	requested := make(map[string]int64, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Qty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		requested[item.ProductID] += item.Qty
	}
	// Orden estable de adquisición de locks: evita deadlocks entre pedidos
	// que tocan conjuntos de productos solapados.
	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	order := &entity.Order{
		ID:        "ord-" + uuid.New().String(),
		UserID:    userID,
		Items:     toEntityItems(in.Items),
		Total:     in.Total,
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Fase 1: bloquear y validar todas las líneas antes de mutar nada.
		stocks := make(map[string]int64, len(ids))
		for _, id := range ids {
			product, err := productRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
			}
			if product.Stock < requested[id] {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, id)
			}
			stocks[id] = product.Stock
		}
		// Fase 2: decrementar cada producto por su cantidad agregada.
		for _, id := range ids {
			if err := productRepo.UpdateStock(id, stocks[id]-requested[id]); err != nil {
				return err
			}
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

func toEntityItems(items []dto.OrderItemRequest) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.OrderItem{ProductID: it.ProductID, Qty: it.Qty})
	}
	return out
}

// ToOrderResponse proyecta un pedido persistido.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{ProductID: it.ProductID, Qty: it.Qty})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}
