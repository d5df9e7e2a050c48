package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPlaced — заказ оформлен, остатки списаны.
	OrderStatusPlaced OrderStatus = "PLACED"
	// OrderStatusCancelled — заказ отменён, остатки возвращены на склад.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции (item_id) генерируется хранилищем.
	ID int64
	// OrderID связывает позицию ровно с одним заказом.
	OrderID int64
	// ProductID — ссылка на товар (prod_id).
	ProductID int64
	// Quantity — количество единиц, строго положительное.
	Quantity int
	// Price — цена за единицу, зафиксированная в момент оформления заказа.
	// Последующие изменения цены товара на эту копию не влияют.
	Price float64
}

// Order агрегирует заказ и его позиции.
type Order struct {
	ID         int64
	CustomerID int64
	// Total — производная сумма: Σ(quantity × price) по позициям.
	Total     float64
	Status    OrderStatus
	OrderDate time.Time
	Items     []OrderItem
	// Customer заполняется только при композиции чтения заказа;
	// nil допустим, если клиент исчез из хранилища после оформления.
	Customer *Customer
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	// Сверяем сумму заказа с суммой позиций: quantity * price.
	var calc float64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if item.Price < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += float64(item.Quantity) * item.Price
	}
	if calc != o.Total {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}
