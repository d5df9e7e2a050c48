package domain

// Product — товар каталога. Ядро заказов читает товар целиком,
// но мутирует только Stock.
type Product struct {
	// ID — идентификатор prod_id.
	ID int64
	// Name — название товара.
	Name string
	// Price — актуальная цена за единицу. В позициях заказа цена
	// фиксируется отдельной копией и от Price больше не зависит.
	Price float64
	// Stock — остаток на складе, не может уходить в минус при оформлении.
	Stock int
}
