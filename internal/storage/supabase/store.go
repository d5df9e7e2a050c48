// Package supabase реализует Record Access Layer поверх REST-шлюза
// табличного хранилища (PostgREST). Хранилище не поддерживает транзакции
// между запросами: каждый метод — один или несколько независимых round trip.
package supabase

import (
	"strconv"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

const (
	tableCustomers  = "customers"
	tableOrders     = "orders"
	tableOrderItems = "order_items"
	tableProducts   = "products"
)

// Config задаёт подключение к REST-шлюзу хранилища.
type Config struct {
	// URL — базовый адрес REST API (например, https://<project>.supabase.co/rest/v1).
	URL string
	// ServiceKey — сервисный ключ; уходит в заголовки apikey и Authorization.
	ServiceKey string
	// Schema — схема БД, по умолчанию public.
	Schema string
}

// Store держит postgrest-клиент и отдаёт типизированные хранилища сущностей.
type Store struct {
	client *postgrest.Client
}

// New создаёт Store поверх переданной конфигурации.
func New(cfg Config) *Store {
	headers := map[string]string{}
	if cfg.ServiceKey != "" {
		headers["apikey"] = cfg.ServiceKey
		headers["Authorization"] = "Bearer " + cfg.ServiceKey
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	return &Store{client: postgrest.NewClient(cfg.URL, schema, headers)}
}

// Customers возвращает хранилище клиентов.
func (s *Store) Customers() domain.CustomerStore {
	return &customerStore{client: s.client}
}

// Products возвращает поверхность чтения/корректировки остатков товаров.
func (s *Store) Products() domain.ProductStore {
	return &productStore{client: s.client}
}

// Orders возвращает хранилище заказов и позиций.
func (s *Store) Orders() domain.OrderStore {
	return &orderStore{client: s.client}
}

// Ping выполняет лёгкое чтение, чтобы health check мог убедиться
// в доступности REST-шлюза.
func (s *Store) Ping() error {
	_, _, err := s.client.From(tableProducts).
		Select("prod_id", "", false).
		Limit(1, "").
		Execute()
	return err
}

// formatID переводит числовой идентификатор в строковый аргумент фильтра eq.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// formatAmount переводит денежную сумму в строковый аргумент фильтра eq.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseTimestamp разбирает временную метку PostgREST. Шлюз отдаёт либо
// RFC 3339 для timestamptz, либо метку без зоны для timestamp.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02T15:04:05.999999999", raw); err == nil {
		return ts.UTC()
	}
	return time.Time{}
}
