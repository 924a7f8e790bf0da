package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/jsonstore"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// apiFixture API completa sobre el backend de documento JSON, con una cuenta
// admin y una cuenta normal ya registradas.
type apiFixture struct {
	app        *fiber.App
	adminToken string
	userToken  string
	userID     string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	userRepo := jsonstore.NewUserRepository(store)
	productRepo := jsonstore.NewProductRepository(store)
	orderRepo := jsonstore.NewOrderRepository(store)
	txRunner := jsonstore.NewTxRunner(store)

	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}
	authUC := auth.NewAuthUseCase(userRepo, jwtCfg)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(userRepo),
		ProductUC:  usecase.NewProductUseCase(productRepo, txRunner),
		PlaceOrder: orders.NewPlaceOrderUseCase(txRunner),
		OrderQuery: orders.NewQueryUseCase(orderRepo),
		Roles:      userRepo,
		JWTSecret:  testJWTSecret,
		UploadsDir: t.TempDir(),
	})

	// Admin sembrado directamente en el almacén; el registro público solo
	// produce cuentas user.
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&entity.User{
		ID: uuid.NewString(), Name: "Root", Email: "root@example.com",
		PasswordHash: hash, Role: entity.RoleAdmin, CreatedAt: time.Now(),
	}))

	f := &apiFixture{app: app}
	f.adminToken = f.login(t, "root@example.com", "admin-pass")

	status, body := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, status, "registro: %s", body)
	f.userID = jsonField(t, body, "id")
	f.userToken = f.login(t, "ana@example.com", "secreta123")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := f.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status, "login %s: %s", email, body)
	return jsonField(t, body, "token")
}

func jsonField(t *testing.T, body []byte, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	s, _ := m[field].(string)
	require.NotEmpty(t, s, "campo %q en %s", field, body)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CatalogoPublico(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestAPI_CrearProducto_SoloAdmin(t *testing.T) {
	f := newAPIFixture(t)
	payload := map[string]any{"title": "Cafetera", "price": "45.50", "stock": 10}

	status, _ := f.do(t, http.MethodPost, "/products", "", payload)
	assert.Equal(t, http.StatusUnauthorized, status, "sin token")

	status, _ = f.do(t, http.MethodPost, "/products", f.userToken, payload)
	assert.Equal(t, http.StatusForbidden, status, "cuenta normal")

	status, body := f.do(t, http.MethodPost, "/products", f.adminToken, payload)
	require.Equal(t, http.StatusCreated, status, "admin: %s", body)
	assert.Contains(t, jsonField(t, body, "id"), "prod-")
}

func TestAPI_CrearProductoDuplicado_Conflicto(t *testing.T) {
	f := newAPIFixture(t)
	payload := map[string]any{"title": "Cafetera", "price": "45.50", "stock": 10}

	status, _ := f.do(t, http.MethodPost, "/products", f.adminToken, payload)
	require.Equal(t, http.StatusCreated, status)

	// Mismo título normalizado → mismo ID derivado → 409.
	dup := map[string]any{"title": "  CAFETERA ", "price": "99", "stock": 1}
	status, body := f.do(t, http.MethodPost, "/products", f.adminToken, dup)
	assert.Equal(t, http.StatusConflict, status, "%s", body)
}

func TestAPI_ActualizarProductoInexistente_404(t *testing.T) {
	f := newAPIFixture(t)
	status, _ := f.do(t, http.MethodPut, "/products/prod-fantasma", f.adminToken,
		map[string]any{"stock": 5})
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func (f *apiFixture) seedProduct(t *testing.T, title string, stock int64) string {
	t.Helper()
	status, body := f.do(t, http.MethodPost, "/products", f.adminToken,
		map[string]any{"title": title, "price": "10", "stock": stock})
	require.Equal(t, http.StatusCreated, status, "%s", body)
	return jsonField(t, body, "id")
}

func TestAPI_ColocarPedido(t *testing.T) {
	f := newAPIFixture(t)
	id := f.seedProduct(t, "Cafetera", 10)

	status, body := f.do(t, http.MethodPost, "/orders", f.userToken, map[string]any{
		"items": []map[string]any{{"id": id, "qty": 3}},
		"total": "30",
	})
	require.Equal(t, http.StatusCreated, status, "%s", body)
	orderID := jsonField(t, body, "id")
	assert.Contains(t, orderID, "ord-")

	// El stock quedó descontado en el catálogo público.
	status, body = f.do(t, http.MethodGet, "/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, float64(7), p["stock"])

	// El dueño puede consultar su pedido.
	status, _ = f.do(t, http.MethodGet, "/orders/"+orderID, f.userToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_PedidoSinToken_401(t *testing.T) {
	f := newAPIFixture(t)
	status, _ := f.do(t, http.MethodPost, "/orders", "", map[string]any{
		"items": []map[string]any{{"id": "prod-x", "qty": 1}},
		"total": "10",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_PedidoSinStock_400YNadaCambia(t *testing.T) {
	f := newAPIFixture(t)
	id := f.seedProduct(t, "Escaso", 2)

	status, body := f.do(t, http.MethodPost, "/orders", f.userToken, map[string]any{
		"items": []map[string]any{{"id": id, "qty": 5}},
		"total": "50",
	})
	assert.Equal(t, http.StatusBadRequest, status, "%s", body)

	status, body = f.do(t, http.MethodGet, "/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, float64(2), p["stock"])
}

// Para una cuenta normal, un pedido ajeno responde exactamente igual que un
// ID inexistente: el 404 no deja inferir qué pedidos hay en el sistema.
func TestAPI_PedidoAjeno_404Indistinguible(t *testing.T) {
	f := newAPIFixture(t)
	id := f.seedProduct(t, "Cafetera", 10)

	status, body := f.do(t, http.MethodPost, "/orders", f.userToken, map[string]any{
		"items": []map[string]any{{"id": id, "qty": 1}},
		"total": "10",
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := jsonField(t, body, "id")

	status, _ = f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Luis", "email": "luis@example.com", "password": "otra456",
	})
	require.Equal(t, http.StatusCreated, status)
	otherToken := f.login(t, "luis@example.com", "otra456")

	statusAjeno, bodyAjeno := f.do(t, http.MethodGet, "/orders/"+orderID, otherToken, nil)
	statusFantasma, bodyFantasma := f.do(t, http.MethodGet, "/orders/ord-no-existe", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, statusAjeno)
	assert.Equal(t, http.StatusNotFound, statusFantasma)
	assert.JSONEq(t, string(bodyFantasma), string(bodyAjeno))

	// El dueño y el admin sí lo ven; para el admin un ID inexistente sigue
	// siendo 404.
	status, _ = f.do(t, http.MethodGet, "/orders/"+orderID, f.userToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodGet, "/orders/"+orderID, f.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodGet, "/orders/ord-no-existe", f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ListadoGlobalDePedidos_SoloAdmin(t *testing.T) {
	f := newAPIFixture(t)

	status, _ := f.do(t, http.MethodGet, "/orders", f.userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := f.do(t, http.MethodGet, "/orders", f.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestAPI_PedidosPorUsuario_SelfOAdmin(t *testing.T) {
	f := newAPIFixture(t)
	id := f.seedProduct(t, "Cafetera", 10)

	status, _ := f.do(t, http.MethodPost, "/orders", f.userToken, map[string]any{
		"items": []map[string]any{{"id": id, "qty": 1}},
		"total": "10",
	})
	require.Equal(t, http.StatusCreated, status)

	// La propia cuenta ve su historial.
	status, body := f.do(t, http.MethodGet, "/users/"+f.userID+"/orders", f.userToken, nil)
	assert.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	// El admin también.
	status, _ = f.do(t, http.MethodGet, "/users/"+f.userID+"/orders", f.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Cuentas_SelfOAdmin(t *testing.T) {
	f := newAPIFixture(t)

	// El listado global es admin-only.
	status, _ := f.do(t, http.MethodGet, "/users", f.userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, http.MethodGet, "/users", f.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// La propia cuenta se ve a sí misma; el password jamás viaja.
	status, body := f.do(t, http.MethodGet, "/users/"+f.userID, f.userToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "$2a$")
}

func TestAPI_LoginInvalido_NoDistingueCausa(t *testing.T) {
	f := newAPIFixture(t)

	status1, body1 := f.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "incorrecta",
	})
	status2, body2 := f.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "nadie@example.com", "password": "secreta123",
	})

	assert.Equal(t, http.StatusBadRequest, status1)
	assert.Equal(t, http.StatusBadRequest, status2)
	assert.JSONEq(t, string(body1), string(body2),
		"password incorrecto y email inexistente deben responder idéntico")
}
