// Package customer реализует жизненный цикл клиентов: регистрацию
// с проверкой уникальности email, частичное обновление и удаление
// с запретом при наличии заказов.
package customer

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

const defaultListLimit = 100

// Service оркестрирует операции над клиентами поверх Record Access Layer.
type Service struct {
	customers domain.CustomerStore
	orders    domain.OrderStore
	logger    *log.Entry
}

// NewService создаёт рабочий экземпляр сервиса клиентов.
func NewService(customers domain.CustomerStore, orders domain.OrderStore, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customers")
	}
	return &Service{
		customers: customers,
		orders:    orders,
		logger:    logger,
	}
}

// Register регистрирует нового клиента. Email обязан быть свободен;
// конфликт называет cust_id существующего владельца.
func (s *Service) Register(name, email, phone, city string) (domain.Customer, error) {
	candidate := domain.Customer{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
		City:  strings.TrimSpace(city),
	}
	if errs := candidate.Validate(); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	existing, err := s.customers.GetByEmail(candidate.Email)
	switch {
	case err == nil:
		return domain.Customer{}, fmt.Errorf("%w: %q belongs to cust_id=%d",
			domain.ErrEmailTaken, candidate.Email, existing.ID)
	case !domain.IsNotFound(err):
		return domain.Customer{}, s.dependency("check email uniqueness", err)
	}

	created, err := s.customers.Create(candidate)
	if err != nil {
		return domain.Customer{}, s.dependency("create customer", err)
	}

	s.logger.WithFields(log.Fields{
		"cust_id": created.ID,
		"email":   created.Email,
	}).Info("customer registered")

	return created, nil
}

// Update применяет частичное обновление. Email и телефон, если заданы,
// не могут быть пустыми; email проверяется на уникальность без учёта
// самой записи; City с пустой строкой очищает значение.
func (s *Service) Update(id int64, fields domain.CustomerUpdate) (domain.Customer, error) {
	current, err := s.customers.GetByID(id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Customer{}, fmt.Errorf("%w: %d", domain.ErrCustomerNotFound, id)
		}
		return domain.Customer{}, s.dependency("load customer", err)
	}

	if fields.Email != nil {
		email := strings.TrimSpace(*fields.Email)
		if email == "" {
			return domain.Customer{}, domain.ErrEmailRequired
		}
		other, err := s.customers.GetByEmail(email)
		switch {
		case err == nil && other.ID != id:
			return domain.Customer{}, fmt.Errorf("%w: %q belongs to cust_id=%d",
				domain.ErrEmailTaken, email, other.ID)
		case err != nil && !domain.IsNotFound(err):
			return domain.Customer{}, s.dependency("check email uniqueness", err)
		}
		fields.Email = &email
	}
	if fields.Phone != nil {
		phone := strings.TrimSpace(*fields.Phone)
		if phone == "" {
			return domain.Customer{}, domain.ErrPhoneRequired
		}
		fields.Phone = &phone
	}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		fields.Name = &name
	}
	if fields.City != nil {
		city := strings.TrimSpace(*fields.City)
		fields.City = &city
	}

	if fields.Empty() {
		return current, nil
	}

	updated, err := s.customers.Update(id, fields)
	if err != nil {
		return domain.Customer{}, s.dependency("update customer", err)
	}
	return updated, nil
}

// Remove удаляет клиента, если у него нет ни одного заказа (в любом
// статусе), и возвращает снимок записи до удаления.
func (s *Service) Remove(id int64) (domain.Customer, error) {
	if _, err := s.customers.GetByID(id); err != nil {
		if domain.IsNotFound(err) {
			return domain.Customer{}, fmt.Errorf("%w: %d", domain.ErrCustomerNotFound, id)
		}
		return domain.Customer{}, s.dependency("load customer", err)
	}

	orders, err := s.orders.ListByCustomer(id)
	if err != nil {
		return domain.Customer{}, s.dependency("list customer orders", err)
	}
	if len(orders) > 0 {
		return domain.Customer{}, fmt.Errorf("%w: customer %d has %d order(s)",
			domain.ErrCustomerHasOrders, id, len(orders))
	}

	deleted, err := s.customers.Delete(id)
	if err != nil {
		return domain.Customer{}, s.dependency("delete customer", err)
	}

	s.logger.WithField("cust_id", id).Info("customer removed")
	return deleted, nil
}

// Get возвращает клиента или ошибку класса NotFound.
func (s *Service) Get(id int64) (domain.Customer, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Customer{}, fmt.Errorf("%w: %d", domain.ErrCustomerNotFound, id)
		}
		return domain.Customer{}, s.dependency("load customer", err)
	}
	return customer, nil
}

// List возвращает клиентов, упорядоченных по cust_id.
func (s *Service) List(limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	customers, err := s.customers.List(limit)
	if err != nil {
		return nil, s.dependency("list customers", err)
	}
	return customers, nil
}

func (s *Service) dependency(stage string, cause error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDependencyFailure, stage, cause)
}
