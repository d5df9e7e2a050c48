package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// orderStoreInMemory — in-memory реализация OrderStore.
// Заказы и позиции хранятся раздельно, как и в табличном API.
type orderStoreInMemory struct {
	mu        sync.RWMutex
	orders    map[int64]domain.Order
	items     map[int64]domain.OrderItem
	nextOrder int64
	nextItem  int64
}

// NewOrderStore возвращает in-memory хранилище заказов для разработки и тестов.
func NewOrderStore() domain.OrderStore {
	return &orderStoreInMemory{
		orders:    make(map[int64]domain.Order),
		items:     make(map[int64]domain.OrderItem),
		nextOrder: 1,
		nextItem:  1,
	}
}

// CreateOrder сохраняет запись заказа без позиций.
func (s *orderStoreInMemory) CreateOrder(customerID int64, total float64, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{
		ID:         s.nextOrder,
		CustomerID: customerID,
		Total:      total,
		Status:     status,
		OrderDate:  time.Now().UTC(),
	}
	s.nextOrder++
	s.orders[order.ID] = order
	return order, nil
}

// CreateItems сохраняет позиции, привязывая их к заказу.
func (s *orderStoreInMemory) CreateItems(orderID int64, items []domain.OrderItem) ([]domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return nil, domain.ErrOrderNotFound
	}

	created := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = s.nextItem
		item.OrderID = orderID
		s.nextItem++
		s.items[item.ID] = item
		created = append(created, item)
	}
	return created, nil
}

// GetOrder возвращает заказ с позициями или ErrOrderNotFound.
func (s *orderStoreInMemory) GetOrder(id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.Items = s.itemsOfLocked(id)
	return order, nil
}

// ListByCustomer возвращает заказы клиента, свежие первыми.
func (s *orderStoreInMemory) ListByCustomer(customerID int64) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range s.orders {
		if order.CustomerID != customerID {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// UpdateStatus меняет статус заказа и возвращает обновлённую запись (без позиций).
func (s *orderStoreInMemory) UpdateStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.Status = status
	s.orders[id] = order
	return order, nil
}

// DeleteItem удаляет одну позицию. Отсутствующая позиция не считается ошибкой:
// компенсация должна быть идемпотентной.
func (s *orderStoreInMemory) DeleteItem(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, itemID)
	return nil
}

// DeleteOrder удаляет запись заказа вместе с оставшимися позициями.
func (s *orderStoreInMemory) DeleteOrder(orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, orderID)
	for id, item := range s.items {
		if item.OrderID == orderID {
			delete(s.items, id)
		}
	}
	return nil
}

func (s *orderStoreInMemory) itemsOfLocked(orderID int64) []domain.OrderItem {
	items := make([]domain.OrderItem, 0)
	for _, item := range s.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

var _ domain.OrderStore = (*orderStoreInMemory)(nil)
