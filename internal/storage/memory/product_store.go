package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// productStoreInMemory — in-memory реализация ProductStore.
type productStoreInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Product
	nextID int64
}

// ProductSeeder расширяет ProductStore возможностью наполнять каталог.
// Нужен только памяти: в боевом контуре каталог ведёт внешняя система.
type ProductSeeder interface {
	Seed(product domain.Product) domain.Product
}

// NewProductStore возвращает in-memory каталог для локальной разработки и тестов.
func NewProductStore() domain.ProductStore {
	return &productStoreInMemory{
		items:  make(map[int64]domain.Product),
		nextID: 1,
	}
}

// Seed добавляет товар в каталог и возвращает его с присвоенным prod_id.
// Если prod_id уже задан, запись сохраняется под ним.
func (s *productStoreInMemory) Seed(product domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == 0 {
		product.ID = s.nextID
		s.nextID++
	} else if product.ID >= s.nextID {
		s.nextID = product.ID + 1
	}
	s.items[product.ID] = product
	return product
}

// GetByID возвращает товар или ErrProductNotFound.
func (s *productStoreInMemory) GetByID(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// UpdateStock записывает новое значение остатка.
func (s *productStoreInMemory) UpdateStock(id int64, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.Stock = stock
	s.items[id] = product
	return nil
}

var _ domain.ProductStore = (*productStoreInMemory)(nil)
var _ ProductSeeder = (*productStoreInMemory)(nil)
