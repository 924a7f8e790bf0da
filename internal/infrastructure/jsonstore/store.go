package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Store backend de documento único: todo el estado (users, products, orders)
// vive en un archivo JSON y en memoria, guardado por un mutex de proceso.
// El documento completo es la unidad de escritura, así que todos los
// escritores se serializan.
type Store struct {
	mu    sync.Mutex
	path  string
	state *document
}

// document es la representación durable: tres colecciones de primer nivel,
// mismos nombres de campo que el archivo data.json histórico.
type document struct {
	Users    []userRecord    `json:"users"`
	Products []productRecord `json:"products"`
	Orders   []orderRecord   `json:"orders"`
}

type userRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	LastName  string     `json:"lastName,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"password"` // hash bcrypt
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

type productRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Thumb     string          `json:"thumb,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type orderItemRecord struct {
	ProductID string `json:"id"`
	Qty       int64  `json:"qty"`
}

type orderRecord struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Items     []orderItemRecord `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Open carga el documento desde path, creándolo con colecciones vacías en el
// primer arranque.
func Open(path string) (*Store, error) {
	s := &Store{path: path, state: &document{
		Users:    []userRecord{},
		Products: []productRecord{},
		Orders:   []orderRecord{},
	}}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrStorageUnavailable, path, err)
	}
	if err := json.Unmarshal(raw, s.state); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return s, nil
}

// persist escribe el documento completo de forma atómica (tmp + rename).
// Debe llamarse con el lock tomado.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// snapshot devuelve una copia profunda del estado para rollback.
// Debe llamarse con el lock tomado.
func (s *Store) snapshot() *document {
	cp := &document{
		Users:    make([]userRecord, len(s.state.Users)),
		Products: make([]productRecord, len(s.state.Products)),
		Orders:   make([]orderRecord, len(s.state.Orders)),
	}
	copy(cp.Users, s.state.Users)
	copy(cp.Products, s.state.Products)
	for i, o := range s.state.Orders {
		items := make([]orderItemRecord, len(o.Items))
		copy(items, o.Items)
		o.Items = items
		cp.Orders[i] = o
	}
	return cp
}

// ── Conversión record ⇄ entity ────────────────────────────────────────────────

func toUserEntity(r userRecord) *entity.User {
	return &entity.User{
		ID: r.ID, Name: r.Name, LastName: r.LastName, BirthDate: r.BirthDate,
		Email: r.Email, PasswordHash: r.Password, Role: r.Role, CreatedAt: r.CreatedAt,
	}
}

func toUserRecord(u *entity.User) userRecord {
	return userRecord{
		ID: u.ID, Name: u.Name, LastName: u.LastName, BirthDate: u.BirthDate,
		Email: u.Email, Password: u.PasswordHash, Role: u.Role, CreatedAt: u.CreatedAt,
	}
}

func toProductEntity(r productRecord) *entity.Product {
	return &entity.Product{
		ID: r.ID, Title: r.Title, Price: r.Price, Stock: r.Stock, Thumb: r.Thumb,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func toProductRecord(p *entity.Product) productRecord {
	return productRecord{
		ID: p.ID, Title: p.Title, Price: p.Price, Stock: p.Stock, Thumb: p.Thumb,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toOrderEntity(r orderRecord) *entity.Order {
	items := make([]entity.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.OrderItem{ProductID: it.ProductID, Qty: it.Qty})
	}
	return &entity.Order{ID: r.ID, UserID: r.UserID, Items: items, Total: r.Total, CreatedAt: r.CreatedAt}
}

func toOrderRecord(o *entity.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemRecord{ProductID: it.ProductID, Qty: it.Qty})
	}
	return orderRecord{ID: o.ID, UserID: o.UserID, Items: items, Total: o.Total, CreatedAt: o.CreatedAt}
}

// ── Operaciones internas (asumen el lock tomado) ─────────────────────────────

func (s *Store) findUserByID(id string) *entity.User {
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			return toUserEntity(s.state.Users[i])
		}
	}
	return nil
}

func (s *Store) findUserByEmail(email string) *entity.User {
	for i := range s.state.Users {
		if s.state.Users[i].Email == email {
			return toUserEntity(s.state.Users[i])
		}
	}
	return nil
}

func (s *Store) createUser(u *entity.User) error {
	if s.findUserByEmail(u.Email) != nil {
		return domain.ErrEmailAlreadyExists
	}
	s.state.Users = append(s.state.Users, toUserRecord(u))
	return nil
}

func (s *Store) findProduct(id string) *entity.Product {
	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			return toProductEntity(s.state.Products[i])
		}
	}
	return nil
}

func (s *Store) createProduct(p *entity.Product) error {
	if s.findProduct(p.ID) != nil {
		return domain.ErrDuplicate
	}
	s.state.Products = append(s.state.Products, toProductRecord(p))
	return nil
}

func (s *Store) updateProduct(p *entity.Product) error {
	for i := range s.state.Products {
		if s.state.Products[i].ID == p.ID {
			s.state.Products[i] = toProductRecord(p)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (s *Store) updateStock(id string, stock int64) error {
	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			s.state.Products[i].Stock = stock
			s.state.Products[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (s *Store) createOrder(o *entity.Order) error {
	s.state.Orders = append(s.state.Orders, toOrderRecord(o))
	return nil
}
