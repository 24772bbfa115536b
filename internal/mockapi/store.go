package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// userRecordはサーバー側のユーザー（password hash込み）。
type userRecord struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         string
	CreatedAt    time.Time
}

type productRecord struct {
	ID            string
	Name          string
	Description   string
	Price         float64
	Category      string
	IsAvailable   bool
	StockQuantity int
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type orderItemRecord struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice float64
	Note      string
}

type orderRecord struct {
	ID         string
	UserID     string
	Status     string
	Notes      string
	PickupTime string
	Items      []orderItemRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Storeはインメモリのデータ置き場。全操作をmutexで直列化する。
type Store struct {
	mu       sync.Mutex
	users    map[string]userRecord // key: email
	products map[string]productRecord
	orders   map[string]orderRecord
}

func NewStore() *Store {
	return &Store{
		users:    map[string]userRecord{},
		products: map[string]productRecord{},
		orders:   map[string]orderRecord{},
	}
}

func (s *Store) CreateUser(u userRecord) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.users[key]; exists {
		return userRecord{}, false
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = "customer"
	}
	u.CreatedAt = time.Now().UTC()
	s.users[key] = u
	return u, true
}

func (s *Store) FindUserByEmail(email string) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}

func (s *Store) FindUserByID(id string) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return userRecord{}, false
}

func (s *Store) UpdateUser(id string, fn func(*userRecord)) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, u := range s.users {
		if u.ID == id {
			fn(&u)
			s.users[key] = u
			return u, true
		}
	}
	return userRecord{}, false
}

func (s *Store) ListUsers() []userRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]userRecord, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) PutProduct(p productRecord) productRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = p
	return p
}

func (s *Store) FindProduct(id string) (productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	return p, ok
}

func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	return true
}

func (s *Store) ListProducts() []productRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]productRecord, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) PutOrder(o orderRecord) orderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
		o.CreatedAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = "pending"
	}
	o.UpdatedAt = time.Now().UTC()
	s.orders[o.ID] = o
	return o
}

func (s *Store) FindOrder(id string) (orderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) UpdateOrder(id string, fn func(*orderRecord)) (orderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return orderRecord{}, false
	}
	fn(&o)
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return o, true
}

func (s *Store) DeleteOrder(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false
	}
	delete(s.orders, id)
	return true
}

// ListOrdersは新しい順。userIDが空なら全件（staff向け）。
func (s *Store) ListOrders(userID string) []orderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]orderRecord, 0, len(s.orders))
	for _, o := range s.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
