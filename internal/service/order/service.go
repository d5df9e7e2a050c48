// Package order реализует оркестрацию заказов: admission check,
// фиксацию цен, многошаговое создание и best-effort компенсацию.
//
// Табличное хранилище не умеет транзакции между запросами, поэтому
// атомарность здесь не гарантируется: компенсация — это попытка отката,
// а не откат. Конкурентный доступ к остаткам между списанием и возвратом
// может оставить stock рассогласованным; это известное ограничение
// дизайна, а не дефект реализации.
package order

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/rims/internal/domain"
	"github.com/vladislavdragonenkov/rims/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/rims/internal/metrics"
)

// Line — одна позиция запроса на оформление заказа.
type Line struct {
	ProductID int64
	Quantity  int
}

// stockDebit — запись в леджере списаний для возможного отката.
type stockDebit struct {
	productID int64
	quantity  int
}

// Service оркестрирует оформление, отмену и чтение заказов
// поверх Record Access Layer.
type Service struct {
	customers domain.CustomerStore
	products  domain.ProductStore
	orders    domain.OrderStore
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
	producer  *kafka.Producer // опциональный Kafka producer для событий заказов
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	customers domain.CustomerStore,
	products domain.ProductStore,
	orders domain.OrderStore,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithKafka создаёт сервис, публикующий события заказов в Kafka.
func NewServiceWithKafka(
	customers domain.CustomerStore,
	products domain.ProductStore,
	orders domain.OrderStore,
	producer *kafka.Producer,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, logger)
	svc.producer = producer
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerStore,
	products domain.ProductStore,
	orders domain.OrderStore,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, logger)
	svc.metrics = nil
	return svc
}

// Place оформляет заказ: либо возвращает полностью сохранённый заказ
// с зафиксированными ценами и списанными остатками, либо оставляет
// систему в состоянии «заказа не было» — насколько удалась компенсация.
func (s *Service) Place(customerID int64, lines []Line) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordPlacementDuration(time.Since(start))
		}
	}()

	// Admission check: вся валидация выполняется до первой мутации,
	// заказ либо полностью удовлетворим, либо отклоняется целиком.
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}

	if _, err := s.customers.GetByID(customerID); err != nil {
		if domain.IsNotFound(err) {
			return domain.Order{}, fmt.Errorf("%w: %d", domain.ErrCustomerNotFound, customerID)
		}
		return domain.Order{}, s.dependency("resolve customer", err)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var total float64
	for _, line := range lines {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.Order{}, fmt.Errorf("%w: %d", domain.ErrProductNotFound, line.ProductID)
			}
			return domain.Order{}, s.dependency("resolve product", err)
		}
		if line.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: product %d", domain.ErrQuantityInvalid, line.ProductID)
		}
		if product.Stock < line.Quantity {
			return domain.Order{}, fmt.Errorf("%w: product %q (available %d, required %d)",
				domain.ErrInsufficientStock, product.Name, product.Stock, line.Quantity)
		}
		// Фиксируем цену на момент оформления: последующие изменения
		// каталога на этот заказ не влияют.
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total += float64(line.Quantity) * product.Price
	}

	// Мутирующая фаза. Любой сбой с этого места запускает компенсацию,
	// а вызывающему уходит исходная причина, обёрнутая в DependencyFailure.
	var (
		created      domain.Order
		createdItems []domain.OrderItem
		debits       []stockDebit
	)

	fail := func(stage string, cause error) (domain.Order, error) {
		s.logger.WithError(cause).WithFields(log.Fields{
			"cust_id": customerID,
			"stage":   stage,
		}).Warn("order placement failed, running compensation")
		s.compensate(created, createdItems, debits)
		if s.metrics != nil {
			s.metrics.RecordOrderFailed()
		}
		s.publishEvent(kafka.EventTypeOrderPlaceFailed, created.ID, customerID, total, map[string]interface{}{
			"stage":  stage,
			"reason": cause.Error(),
		})
		return domain.Order{}, fmt.Errorf("%w: %s: %w", domain.ErrDependencyFailure, stage, cause)
	}

	created, err := s.orders.CreateOrder(customerID, total, domain.OrderStatusPlaced)
	if err != nil {
		return fail("create order", err)
	}

	createdItems, err = s.orders.CreateItems(created.ID, items)
	if err != nil {
		return fail("create order items", err)
	}

	for _, item := range items {
		// Остаток перечитывается перед каждым списанием: между admission
		// check и этим местом он мог измениться извне.
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return fail("reload product for stock decrement", err)
		}
		if err := s.products.UpdateStock(item.ProductID, product.Stock-item.Quantity); err != nil {
			return fail("decrement stock", err)
		}
		debits = append(debits, stockDebit{productID: item.ProductID, quantity: item.Quantity})
	}

	created.Items = createdItems
	created.Total = total

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced()
	}
	s.publishEvent(kafka.EventTypeOrderPlaced, created.ID, customerID, total, map[string]interface{}{
		"items_count": len(createdItems),
	})
	s.logger.WithFields(log.Fields{
		"order_id": created.ID,
		"cust_id":  customerID,
		"total":    total,
	}).Info("order placed")

	return created, nil
}

// Cancel переводит заказ из PLACED в CANCELLED, возвращая остатки на склад.
// В отличие от оформления, здесь нет компенсации: отмена сама по себе
// корректирующее действие, её сбои сообщаются, а не откатываются.
func (s *Service) Cancel(orderID int64) (domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Order{}, fmt.Errorf("%w: %d", domain.ErrOrderNotFound, orderID)
		}
		return domain.Order{}, s.dependency("load order", err)
	}

	if order.Status != domain.OrderStatusPlaced {
		return domain.Order{}, fmt.Errorf("%w: order %d is %s", domain.ErrInvalidOrderState, order.ID, order.Status)
	}

	for _, item := range order.Items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				// Товар исчез из каталога; возвращать остаток некуда.
				s.logger.WithFields(log.Fields{
					"order_id": order.ID,
					"prod_id":  item.ProductID,
				}).Warn("product missing during cancel, stock not restored")
				continue
			}
			return domain.Order{}, s.dependency("reload product for stock restore", err)
		}
		// Возврат считается от свежего остатка, а не перезаписью старого.
		if err := s.products.UpdateStock(item.ProductID, product.Stock+item.Quantity); err != nil {
			return domain.Order{}, s.dependency("restore stock", err)
		}
	}

	updated, err := s.orders.UpdateStatus(order.ID, domain.OrderStatusCancelled)
	if err != nil {
		return domain.Order{}, s.dependency("update order status", err)
	}
	updated.Items = order.Items

	if s.metrics != nil {
		s.metrics.RecordOrderCancelled()
	}
	s.publishEvent(kafka.EventTypeOrderCancelled, updated.ID, updated.CustomerID, updated.Total, nil)
	s.logger.WithField("order_id", updated.ID).Info("order cancelled")

	return updated, nil
}

// Get возвращает заказ с позициями и денормализованной записью клиента.
// Отсутствие клиента не ошибка: он мог исчезнуть из хранилища извне.
func (s *Service) Get(orderID int64) (domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Order{}, fmt.Errorf("%w: %d", domain.ErrOrderNotFound, orderID)
		}
		return domain.Order{}, s.dependency("load order", err)
	}

	customer, err := s.customers.GetByID(order.CustomerID)
	switch {
	case err == nil:
		order.Customer = &customer
	case domain.IsNotFound(err):
		// Заказ возвращаем без клиента.
	default:
		return domain.Order{}, s.dependency("load customer", err)
	}

	return order, nil
}

// ListByCustomer возвращает заказы клиента, свежие первыми.
func (s *Service) ListByCustomer(customerID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByCustomer(customerID)
	if err != nil {
		return nil, s.dependency("list orders", err)
	}
	return orders, nil
}

// compensate пытается откатить уже выполненные мутации в порядке:
// вернуть списанные остатки, удалить созданные позиции, удалить заказ.
// Шаги независимы; их ошибки логируются и глотаются — вызывающему
// всегда уходит исходная причина сбоя, а не сбой отката.
func (s *Service) compensate(created domain.Order, createdItems []domain.OrderItem, debits []stockDebit) {
	if created.ID == 0 && len(createdItems) == 0 && len(debits) == 0 {
		return
	}
	if s.metrics != nil {
		s.metrics.RecordCompensationRun()
	}

	for _, debit := range debits {
		product, err := s.products.GetByID(debit.productID)
		if err != nil {
			s.compensationStepFailed("reload product for stock restore", debit.productID, err)
			continue
		}
		// Возврат считается от свежего остатка: слепая перезапись
		// затёрла бы параллельные изменения извне.
		if err := s.products.UpdateStock(debit.productID, product.Stock+debit.quantity); err != nil {
			s.compensationStepFailed("restore stock", debit.productID, err)
		}
	}

	for _, item := range createdItems {
		if err := s.orders.DeleteItem(item.ID); err != nil {
			s.compensationStepFailed("delete order item", item.ID, err)
		}
	}

	if created.ID != 0 {
		if err := s.orders.DeleteOrder(created.ID); err != nil {
			s.compensationStepFailed("delete order", created.ID, err)
		}
	}
}

func (s *Service) compensationStepFailed(step string, id int64, err error) {
	if s.metrics != nil {
		s.metrics.RecordCompensationStepFailed()
	}
	s.logger.WithError(err).WithFields(log.Fields{
		"step": step,
		"id":   id,
	}).Warn("compensation step failed")
}

func (s *Service) dependency(stage string, cause error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDependencyFailure, stage, cause)
}

// publishEvent публикует событие заказа в Kafka (если producer настроен).
func (s *Service) publishEvent(eventType kafka.EventType, orderID, customerID int64, total float64, metadata map[string]interface{}) {
	if s.producer == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, orderID, customerID, total, metadata)
	if err := s.producer.PublishOrderEvent(event); err != nil {
		// Kafka опциональна: ошибку логируем, поток заказа не прерываем.
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   orderID,
		}).Warn("failed to publish order event to kafka")
	}
}
