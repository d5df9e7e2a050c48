package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиента нет в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmailTaken — email уже занят другим клиентом.
	ErrEmailTaken = errors.New("customer email already in use")
	// ErrCustomerHasOrders — клиента нельзя удалить, пока у него есть заказы.
	ErrCustomerHasOrders = errors.New("customer has orders and cannot be deleted")
	// ErrInvalidOrderState — операция допустима только для заказа в статусе PLACED.
	ErrInvalidOrderState = errors.New("order is not in PLACED status")

	// Ошибка отсутствующего имени клиента.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отсутствующего email.
	ErrEmailRequired = errors.New("email is required")
	// Ошибка отсутствующего телефона.
	ErrPhoneRequired = errors.New("phone is required")
	// Ошибка отсутствующего идентификатора клиента в заказе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка, если зафиксированная цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrTotalMismatch = errors.New("order total does not match items sum")
	// ErrInsufficientStock — запрошенное количество превышает остаток на складе.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDependencyFailure оборачивает неожиданный сбой внешнего хранилища.
	// Исходная причина всегда доступна через errors.Is/errors.Unwrap.
	ErrDependencyFailure = errors.New("dependency failure")
)

// IsNotFound проверяет, относится ли ошибка к классу «сущность не найдена».
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsConflict проверяет, относится ли ошибка к классу конфликтов:
// дубликат email, запрет удаления, недопустимый переход статуса.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrCustomerHasOrders) ||
		errors.Is(err, ErrInvalidOrderState)
}

// IsValidation проверяет, относится ли ошибка к классу ошибок валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrItemsRequired) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrItemPriceInvalid) ||
		errors.Is(err, ErrTotalMismatch) ||
		errors.Is(err, ErrInsufficientStock)
}

// IsDependencyFailure проверяет, является ли ошибка обёрнутым сбоем хранилища.
func IsDependencyFailure(err error) bool {
	return errors.Is(err, ErrDependencyFailure)
}
