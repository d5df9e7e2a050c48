package domain

// CustomerStore описывает требования к хранилищу клиентов.
// Каждый вызов — один или несколько независимых запросов к table API.
type CustomerStore interface {
	// Create сохраняет нового клиента и возвращает запись с присвоенным cust_id.
	Create(customer Customer) (Customer, error)
	// GetByID возвращает клиента или ErrCustomerNotFound, если его нет.
	GetByID(id int64) (Customer, error)
	// GetByEmail возвращает клиента по уникальному email или ErrCustomerNotFound.
	GetByEmail(email string) (Customer, error)
	// Update применяет частичное обновление и возвращает свежую запись.
	Update(id int64, fields CustomerUpdate) (Customer, error)
	// Delete удаляет клиента и возвращает снимок записи до удаления.
	Delete(id int64) (Customer, error)
	// List возвращает клиентов, упорядоченных по cust_id, не больше limit (если > 0).
	List(limit int) ([]Customer, error)
}

// ProductStore — поверхность работы с товарами, доступная ядру заказов:
// чтение и корректировка остатка. Никакого CRUD по каталогу здесь нет.
type ProductStore interface {
	// GetByID возвращает товар или ErrProductNotFound.
	GetByID(id int64) (Product, error)
	// UpdateStock записывает новое значение остатка. Значение вычисляет
	// вызывающий по схеме «прочитал — прибавил/убавил», а не слепым set
	// от запомненного состояния.
	UpdateStock(id int64, stock int) error
}

// OrderStore описывает требования к хранилищу заказов и их позиций.
type OrderStore interface {
	// CreateOrder сохраняет запись заказа и возвращает её с присвоенным order_id.
	CreateOrder(customerID int64, total float64, status OrderStatus) (Order, error)
	// CreateItems сохраняет позиции заказа и возвращает их с присвоенными item_id.
	CreateItems(orderID int64, items []OrderItem) ([]OrderItem, error)
	// GetOrder возвращает заказ вместе с позициями или ErrOrderNotFound.
	GetOrder(id int64) (Order, error)
	// ListByCustomer возвращает заказы клиента (без позиций), свежие первыми.
	ListByCustomer(customerID int64) ([]Order, error)
	// UpdateStatus меняет статус заказа и возвращает обновлённую запись.
	UpdateStatus(id int64, status OrderStatus) (Order, error)
	// DeleteItem удаляет одну позицию по item_id. Используется компенсацией.
	DeleteItem(itemID int64) error
	// DeleteOrder удаляет запись заказа. Используется компенсацией.
	DeleteOrder(orderID int64) error
}
