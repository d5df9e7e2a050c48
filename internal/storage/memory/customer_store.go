package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// customerStoreInMemory — простая in-memory реализация CustomerStore.
type customerStoreInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Customer
	nextID int64
}

// NewCustomerStore возвращает in-memory хранилище для локальной разработки и тестов.
func NewCustomerStore() domain.CustomerStore {
	return &customerStoreInMemory{
		items:  make(map[int64]domain.Customer),
		nextID: 1,
	}
}

// Create сохраняет клиента, имитируя уникальный индекс по email.
func (s *customerStoreInMemory) Create(customer domain.Customer) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Email == customer.Email {
			return domain.Customer{}, domain.ErrEmailTaken
		}
	}

	customer.ID = s.nextID
	s.nextID++
	s.items[customer.ID] = customer
	return customer, nil
}

// GetByID возвращает клиента или ErrCustomerNotFound.
func (s *customerStoreInMemory) GetByID(id int64) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// GetByEmail возвращает клиента по email или ErrCustomerNotFound.
func (s *customerStoreInMemory) GetByEmail(email string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, customer := range s.items {
		if customer.Email == email {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

// Update применяет частичное обновление к существующей записи.
func (s *customerStoreInMemory) Update(id int64, fields domain.CustomerUpdate) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	if fields.Name != nil {
		customer.Name = *fields.Name
	}
	if fields.Email != nil {
		for otherID, other := range s.items {
			if otherID != id && other.Email == *fields.Email {
				return domain.Customer{}, domain.ErrEmailTaken
			}
		}
		customer.Email = *fields.Email
	}
	if fields.Phone != nil {
		customer.Phone = *fields.Phone
	}
	if fields.City != nil {
		customer.City = *fields.City
	}

	s.items[id] = customer
	return customer, nil
}

// Delete удаляет клиента и возвращает снимок записи до удаления.
func (s *customerStoreInMemory) Delete(id int64) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	delete(s.items, id)
	return customer, nil
}

// List возвращает клиентов, упорядоченных по cust_id.
func (s *customerStoreInMemory) List(limit int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Customer, 0, len(s.items))
	for _, customer := range s.items {
		result = append(result, customer)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

var _ domain.CustomerStore = (*customerStoreInMemory)(nil)
