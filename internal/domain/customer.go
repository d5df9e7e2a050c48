package domain

import "strings"

// Customer представляет клиента магазина.
type Customer struct {
	// ID — идентификатор cust_id, генерируется хранилищем.
	ID int64
	// Name — имя клиента.
	Name string
	// Email уникален в пределах всей таблицы customers.
	Email string
	// Phone — контактный телефон.
	Phone string
	// City опционален; пустая строка означает отсутствие значения.
	City string
}

// CustomerUpdate описывает частичное обновление клиента.
// nil-поле не трогает соответствующую колонку; City с пустой строкой
// очищает значение в хранилище.
type CustomerUpdate struct {
	Name  *string
	Email *string
	Phone *string
	City  *string
}

// Empty сообщает, задано ли хотя бы одно поле для обновления.
func (u CustomerUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.City == nil
}

// Validate проверяет обязательные поля при регистрации и возвращает список замечаний.
func (c *Customer) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, ErrPhoneRequired)
	}

	return errs
}
