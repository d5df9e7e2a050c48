package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/rims/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/rims/internal/health"
	"github.com/vladislavdragonenkov/rims/internal/messaging/kafka"
	customersvc "github.com/vladislavdragonenkov/rims/internal/service/customer"
	ordersvc "github.com/vladislavdragonenkov/rims/internal/service/order"
	"github.com/vladislavdragonenkov/rims/internal/storage/memory"
	"github.com/vladislavdragonenkov/rims/internal/storage/supabase"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Customers domain.CustomerStore
	Products  domain.ProductStore
	Orders    domain.OrderStore

	OrderService    *ordersvc.Service
	CustomerService *customersvc.Service

	KafkaProducer *kafka.Producer

	// StorageChecker не nil только для supabase-драйвера.
	StorageChecker healthcheck.Checker

	Logger *log.Entry
}

// NewDependencies создаёт и связывает все зависимости приложения
// согласно конфигурации.
func NewDependencies(cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		deps.Customers = memory.NewCustomerStore()
		deps.Products = memory.NewProductStore()
		deps.Orders = memory.NewOrderStore()
		logger.Info("using in-memory storage driver")
	case StorageDriverSupabase:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("supabase storage driver requires SupabaseURL")
		}
		store := supabase.New(supabase.Config{
			URL:        cfg.SupabaseURL,
			ServiceKey: cfg.SupabaseKey,
			Schema:     cfg.SupabaseSchema,
		})
		deps.Customers = store.Customers()
		deps.Products = store.Products()
		deps.Orders = store.Orders()
		deps.StorageChecker = healthcheck.NewSimpleChecker("storage", store.Ping)
		logger.WithField("url", cfg.SupabaseURL).Info("using supabase storage driver")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	// Инициализация Kafka producer (опционально).
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.KafkaProducer = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	if deps.KafkaProducer != nil {
		deps.OrderService = ordersvc.NewServiceWithKafka(
			deps.Customers,
			deps.Products,
			deps.Orders,
			deps.KafkaProducer,
			logger.WithField("layer", "orders"),
		)
	} else {
		deps.OrderService = ordersvc.NewService(
			deps.Customers,
			deps.Products,
			deps.Orders,
			logger.WithField("layer", "orders"),
		)
	}

	deps.CustomerService = customersvc.NewService(
		deps.Customers,
		deps.Orders,
		logger.WithField("layer", "customers"),
	)

	return deps, nil
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
}
