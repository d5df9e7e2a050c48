package supabase

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/vladislavdragonenkov/rims/internal/domain"
)

// customerStore реализует domain.CustomerStore поверх таблицы customers.
type customerStore struct {
	client *postgrest.Client
}

// customerRow — строка таблицы customers в формате REST-шлюза.
type customerRow struct {
	CustID int64   `json:"cust_id,omitempty"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	City   *string `json:"city,omitempty"`
}

func customerFromRow(row customerRow) domain.Customer {
	customer := domain.Customer{
		ID:    row.CustID,
		Name:  row.Name,
		Email: row.Email,
		Phone: row.Phone,
	}
	if row.City != nil {
		customer.City = *row.City
	}
	return customer
}

func rowFromCustomer(customer domain.Customer) customerRow {
	row := customerRow{
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	}
	if customer.City != "" {
		city := customer.City
		row.City = &city
	}
	return row
}

// customerUpdatePayload собирает тело update-запроса из частичного обновления.
// City с пустой строкой превращается в NULL.
func customerUpdatePayload(fields domain.CustomerUpdate) map[string]interface{} {
	payload := make(map[string]interface{})
	if fields.Name != nil {
		payload["name"] = *fields.Name
	}
	if fields.Email != nil {
		payload["email"] = *fields.Email
	}
	if fields.Phone != nil {
		payload["phone"] = *fields.Phone
	}
	if fields.City != nil {
		if *fields.City == "" {
			payload["city"] = nil
		} else {
			payload["city"] = *fields.City
		}
	}
	return payload
}

// Create вставляет клиента и перечитывает запись по уникальному email,
// чтобы получить сгенерированный cust_id.
func (s *customerStore) Create(customer domain.Customer) (domain.Customer, error) {
	if _, _, err := s.client.From(tableCustomers).
		Insert(rowFromCustomer(customer), false, "", "", "").
		Execute(); err != nil {
		return domain.Customer{}, err
	}
	return s.GetByEmail(customer.Email)
}

// GetByID возвращает клиента или ErrCustomerNotFound.
func (s *customerStore) GetByID(id int64) (domain.Customer, error) {
	return s.selectOne("cust_id", formatID(id))
}

// GetByEmail возвращает клиента по email или ErrCustomerNotFound.
func (s *customerStore) GetByEmail(email string) (domain.Customer, error) {
	return s.selectOne("email", email)
}

// Update применяет частичное обновление и перечитывает запись.
func (s *customerStore) Update(id int64, fields domain.CustomerUpdate) (domain.Customer, error) {
	payload := customerUpdatePayload(fields)
	if len(payload) > 0 {
		if _, _, err := s.client.From(tableCustomers).
			Update(payload, "", "").
			Eq("cust_id", formatID(id)).
			Execute(); err != nil {
			return domain.Customer{}, err
		}
	}
	return s.GetByID(id)
}

// Delete возвращает снимок записи до удаления, затем удаляет её.
func (s *customerStore) Delete(id int64) (domain.Customer, error) {
	customer, err := s.GetByID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	if _, _, err := s.client.From(tableCustomers).
		Delete("", "").
		Eq("cust_id", formatID(id)).
		Execute(); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// List возвращает клиентов, упорядоченных по cust_id.
func (s *customerStore) List(limit int) ([]domain.Customer, error) {
	query := s.client.From(tableCustomers).
		Select("*", "", false).
		Order("cust_id", &postgrest.OrderOpts{Ascending: true})
	if limit > 0 {
		query = query.Limit(limit, "")
	}
	data, _, err := query.Execute()
	if err != nil {
		return nil, err
	}

	var rows []customerRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, customerFromRow(row))
	}
	return customers, nil
}

func (s *customerStore) selectOne(column, value string) (domain.Customer, error) {
	data, _, err := s.client.From(tableCustomers).
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "").
		Execute()
	if err != nil {
		return domain.Customer{}, err
	}

	var rows []customerRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Customer{}, err
	}
	if len(rows) == 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customerFromRow(rows[0]), nil
}

var _ domain.CustomerStore = (*customerStore)(nil)
