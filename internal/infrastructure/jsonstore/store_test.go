package jsonstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/jsonstore"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data.json")
}

func sampleProduct(id string, stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        id,
		Title:     "producto " + id,
		Price:     decimal.NewFromInt(25),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida del documento
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_PrimerArranque_CreaDocumentoVacio(t *testing.T) {
	path := tempPath(t)
	store, err := jsonstore.Open(path)
	require.NoError(t, err)
	require.NotNil(t, store)

	// El archivo queda creado con las tres colecciones vacías.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.JSONEq(t, "[]", string(doc["users"]))
	assert.JSONEq(t, "[]", string(doc["products"]))
	assert.JSONEq(t, "[]", string(doc["orders"]))
}

func TestOpen_Reapertura_ConservaDatos(t *testing.T) {
	path := tempPath(t)
	store, err := jsonstore.Open(path)
	require.NoError(t, err)

	products := jsonstore.NewProductRepository(store)
	require.NoError(t, products.Create(sampleProduct("prod-cafe", 12)))

	users := jsonstore.NewUserRepository(store)
	require.NoError(t, users.Create(&entity.User{
		ID:           "u-1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}))

	// Reapertura desde cero sobre el mismo archivo.
	reopened, err := jsonstore.Open(path)
	require.NoError(t, err)

	p, err := jsonstore.NewProductRepository(reopened).GetByID("prod-cafe")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(12), p.Stock)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(25)))

	u, err := jsonstore.NewUserRepository(reopened).GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestOpen_ArchivoCorrupto_Falla(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	_, err := jsonstore.Open(path)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_EmailDuplicado(t *testing.T) {
	store, err := jsonstore.Open(tempPath(t))
	require.NoError(t, err)
	users := jsonstore.NewUserRepository(store)

	base := &entity.User{ID: "u-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "h", Role: entity.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, users.Create(base))

	dup := &entity.User{ID: "u-2", Name: "Otra Ana", Email: "ana@example.com", PasswordHash: "h2", Role: entity.RoleUser, CreatedAt: time.Now()}
	assert.ErrorIs(t, users.Create(dup), domain.ErrEmailAlreadyExists)
}

func TestProductRepo_IDDuplicado(t *testing.T) {
	store, err := jsonstore.Open(tempPath(t))
	require.NoError(t, err)
	products := jsonstore.NewProductRepository(store)

	require.NoError(t, products.Create(sampleProduct("prod-cafe", 5)))
	assert.ErrorIs(t, products.Create(sampleProduct("prod-cafe", 9)), domain.ErrDuplicate)
}

// Borrar un ID inexistente devuelve ErrProductNotFound, igual que el backend
// Postgres: los dos repos exponen el mismo contrato.
func TestProductRepo_DeleteInexistente(t *testing.T) {
	store, err := jsonstore.Open(tempPath(t))
	require.NoError(t, err)
	products := jsonstore.NewProductRepository(store)

	assert.ErrorIs(t, products.Delete("prod-fantasma"), domain.ErrProductNotFound)

	require.NoError(t, products.Create(sampleProduct("prod-cafe", 5)))
	require.NoError(t, products.Delete("prod-cafe"))
	assert.ErrorIs(t, products.Delete("prod-cafe"), domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones: rollback total
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorDeFn_RestauraEstadoYArchivo(t *testing.T) {
	path := tempPath(t)
	store, err := jsonstore.Open(path)
	require.NoError(t, err)

	products := jsonstore.NewProductRepository(store)
	require.NoError(t, products.Create(sampleProduct("prod-cafe", 10)))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	boom := errors.New("boom")
	runner := jsonstore.NewTxRunner(store)
	err = runner.Run(context.Background(), func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		require.NoError(t, productRepo.UpdateStock("prod-cafe", 1))
		require.NoError(t, orderRepo.Create(&entity.Order{
			ID: "ord-x", UserID: "u-1", Total: decimal.NewFromInt(10), CreatedAt: time.Now(),
			Items: []entity.OrderItem{{ProductID: "prod-cafe", Qty: 9}},
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// El estado en memoria vuelve al snapshot previo.
	p, err := products.GetByID("prod-cafe")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Stock)

	all, err := jsonstore.NewOrderRepository(store).List()
	require.NoError(t, err)
	assert.Empty(t, all)

	// El archivo en disco tampoco cambió.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestTxRunner_ContextoCancelado_NoMutaNada(t *testing.T) {
	store, err := jsonstore.Open(tempPath(t))
	require.NoError(t, err)
	products := jsonstore.NewProductRepository(store)
	require.NoError(t, products.Create(sampleProduct("prod-cafe", 10)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = jsonstore.NewTxRunner(store).Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		t.Fatal("fn no debe ejecutarse con contexto cancelado")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	p, err := products.GetByID("prod-cafe")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Stock)
}

func TestTxRunner_Commit_PersisteEnDisco(t *testing.T) {
	path := tempPath(t)
	store, err := jsonstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, jsonstore.NewProductRepository(store).Create(sampleProduct("prod-cafe", 10)))

	err = jsonstore.NewTxRunner(store).Run(context.Background(), func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		return productRepo.UpdateStock("prod-cafe", 4)
	})
	require.NoError(t, err)

	// La reapertura ve el nuevo stock: el commit llegó al disco.
	reopened, err := jsonstore.Open(path)
	require.NoError(t, err)
	p, err := jsonstore.NewProductRepository(reopened).GetByID("prod-cafe")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.Stock)
}
