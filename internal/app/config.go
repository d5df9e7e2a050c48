package app

// StorageDriver выбирает реализацию Record Access Layer.
type StorageDriver string

const (
	// StorageDriverMemory — in-memory хранилище для разработки и тестов.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverSupabase — боевой контур поверх REST-шлюза табличного хранилища.
	StorageDriverSupabase StorageDriver = "supabase"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// MetricsAddr — адрес HTTP-сервера метрик и health-проб.
	MetricsAddr string
	// StorageDriver выбирает хранилище: memory | supabase.
	StorageDriver StorageDriver
	// SupabaseURL — базовый адрес REST API хранилища (обязателен для supabase).
	SupabaseURL string
	// SupabaseKey — сервисный ключ доступа.
	SupabaseKey string
	// SupabaseSchema — схема БД, по умолчанию public.
	SupabaseSchema string
	// KafkaBrokers — адреса брокеров; пустой список отключает публикацию событий.
	KafkaBrokers []string
}

// DefaultConfig возвращает конфигурацию по умолчанию: in-memory хранилище,
// метрики на :9090, без Kafka.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:   ":9090",
		StorageDriver: StorageDriverMemory,
	}
}
