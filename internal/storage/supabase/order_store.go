package supabase

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// orderStore реализует domain.OrderStore поверх таблиц orders и order_items.
type orderStore struct {
	client *postgrest.Client
}

// orderRow — строка таблицы orders в формате REST-шлюза.
type orderRow struct {
	OrderID   int64   `json:"order_id,omitempty"`
	CustID    int64   `json:"cust_id"`
	Total     float64 `json:"total_amount"`
	Status    string  `json:"status"`
	OrderDate string  `json:"order_date,omitempty"`
}

// itemRow — строка таблицы order_items.
type itemRow struct {
	ItemID   int64   `json:"item_id,omitempty"`
	OrderID  int64   `json:"order_id"`
	ProdID   int64   `json:"prod_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func orderFromRow(row orderRow) domain.Order {
	return domain.Order{
		ID:         row.OrderID,
		CustomerID: row.CustID,
		Total:      row.Total,
		Status:     domain.OrderStatus(row.Status),
		OrderDate:  parseTimestamp(row.OrderDate),
	}
}

func itemFromRow(row itemRow) domain.OrderItem {
	return domain.OrderItem{
		ID:        row.ItemID,
		OrderID:   row.OrderID,
		ProductID: row.ProdID,
		Quantity:  row.Quantity,
		Price:     row.Price,
	}
}

// CreateOrder вставляет запись заказа и перечитывает её, чтобы получить
// сгенерированный order_id. REST-шлюз не возвращает тело вставки в этом
// контуре, поэтому ищем свежайший заказ клиента с той же суммой.
func (s *orderStore) CreateOrder(customerID int64, total float64, status domain.OrderStatus) (domain.Order, error) {
	payload := orderRow{
		CustID: customerID,
		Total:  total,
		Status: string(status),
	}
	if _, _, err := s.client.From(tableOrders).
		Insert(payload, false, "", "", "").
		Execute(); err != nil {
		return domain.Order{}, err
	}

	data, _, err := s.client.From(tableOrders).
		Select("*", "", false).
		Eq("cust_id", formatID(customerID)).
		Eq("total_amount", formatAmount(total)).
		Order("order_date", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return domain.Order{}, err
	}

	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Order{}, err
	}
	if len(rows) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return orderFromRow(rows[0]), nil
}

// CreateItems вставляет позиции одним запросом и перечитывает их по order_id.
func (s *orderStore) CreateItems(orderID int64, items []domain.OrderItem) ([]domain.OrderItem, error) {
	payloads := make([]itemRow, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, itemRow{
			OrderID:  orderID,
			ProdID:   item.ProductID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if _, _, err := s.client.From(tableOrderItems).
		Insert(payloads, false, "", "", "").
		Execute(); err != nil {
		return nil, err
	}
	return s.itemsOf(orderID)
}

// GetOrder возвращает заказ вместе с позициями или ErrOrderNotFound.
func (s *orderStore) GetOrder(id int64) (domain.Order, error) {
	data, _, err := s.client.From(tableOrders).
		Select("*", "", false).
		Eq("order_id", formatID(id)).
		Limit(1, "").
		Execute()
	if err != nil {
		return domain.Order{}, err
	}

	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Order{}, err
	}
	if len(rows) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	order := orderFromRow(rows[0])
	items, err := s.itemsOf(order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items
	return order, nil
}

// ListByCustomer возвращает заказы клиента без позиций, свежие первыми.
func (s *orderStore) ListByCustomer(customerID int64) ([]domain.Order, error) {
	data, _, err := s.client.From(tableOrders).
		Select("*", "", false).
		Eq("cust_id", formatID(customerID)).
		Order("order_date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}

	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, orderFromRow(row))
	}
	return orders, nil
}

// UpdateStatus меняет статус и перечитывает запись заказа.
func (s *orderStore) UpdateStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	if _, _, err := s.client.From(tableOrders).
		Update(map[string]interface{}{"status": string(status)}, "", "").
		Eq("order_id", formatID(id)).
		Execute(); err != nil {
		return domain.Order{}, err
	}

	data, _, err := s.client.From(tableOrders).
		Select("*", "", false).
		Eq("order_id", formatID(id)).
		Limit(1, "").
		Execute()
	if err != nil {
		return domain.Order{}, err
	}

	var rows []orderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Order{}, err
	}
	if len(rows) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return orderFromRow(rows[0]), nil
}

// DeleteItem удаляет одну позицию по item_id.
func (s *orderStore) DeleteItem(itemID int64) error {
	_, _, err := s.client.From(tableOrderItems).
		Delete("", "").
		Eq("item_id", formatID(itemID)).
		Execute()
	return err
}

// DeleteOrder удаляет запись заказа.
func (s *orderStore) DeleteOrder(orderID int64) error {
	_, _, err := s.client.From(tableOrders).
		Delete("", "").
		Eq("order_id", formatID(orderID)).
		Execute()
	return err
}

func (s *orderStore) itemsOf(orderID int64) ([]domain.OrderItem, error) {
	data, _, err := s.client.From(tableOrderItems).
		Select("*", "", false).
		Eq("order_id", formatID(orderID)).
		Execute()
	if err != nil {
		return nil, err
	}

	var rows []itemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFromRow(row))
	}
	return items, nil
}

var _ domain.OrderStore = (*orderStore)(nil)
