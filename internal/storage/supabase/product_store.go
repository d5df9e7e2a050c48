package supabase

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// productStore реализует domain.ProductStore поверх таблицы products.
// Каталог ведёт внешняя система; ядру доступны чтение и остаток.
type productStore struct {
	client *postgrest.Client
}

// productRow — строка таблицы products в формате REST-шлюза.
type productRow struct {
	ProdID int64   `json:"prod_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

func productFromRow(row productRow) domain.Product {
	return domain.Product{
		ID:    row.ProdID,
		Name:  row.Name,
		Price: row.Price,
		Stock: row.Stock,
	}
}

// GetByID возвращает товар или ErrProductNotFound.
func (s *productStore) GetByID(id int64) (domain.Product, error) {
	data, _, err := s.client.From(tableProducts).
		Select("*", "", false).
		Eq("prod_id", formatID(id)).
		Limit(1, "").
		Execute()
	if err != nil {
		return domain.Product{}, err
	}

	var rows []productRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Product{}, err
	}
	if len(rows) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return productFromRow(rows[0]), nil
}

// UpdateStock записывает новое значение остатка.
func (s *productStore) UpdateStock(id int64, stock int) error {
	_, _, err := s.client.From(tableProducts).
		Update(map[string]interface{}{"stock": stock}, "", "").
		Eq("prod_id", formatID(id)).
		Execute()
	return err
}

var _ domain.ProductStore = (*productStore)(nil)
