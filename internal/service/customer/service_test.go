package customer_test

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/rims/internal/domain"
	"github.com/vladislavdragonenkov/rims/internal/service/customer"
	"github.com/vladislavdragonenkov/rims/internal/storage/memory"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func newService(t *testing.T) (*customer.Service, domain.CustomerStore, domain.OrderStore) {
	t.Helper()

	customers := memory.NewCustomerStore()
	orders := memory.NewOrderStore()
	return customer.NewService(customers, orders, testLogger()), customers, orders
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	svc, _, _ := newService(t)

	created, err := svc.Register("  Anna  ", " anna@example.com ", "+7-900-000-00-01", "")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Anna", created.Name)
	require.Equal(t, "anna@example.com", created.Email)
	require.Empty(t, created.City)
}

func TestRegister_RequiredFields(t *testing.T) {
	svc, _, _ := newService(t)

	cases := []struct {
		name, email, phone string
		want               error
	}{
		{"", "a@example.com", "+7-900", domain.ErrNameRequired},
		{"Anna", "   ", "+7-900", domain.ErrEmailRequired},
		{"Anna", "a@example.com", "", domain.ErrPhoneRequired},
	}
	for _, tc := range cases {
		_, err := svc.Register(tc.name, tc.email, tc.phone, "")
		require.ErrorIs(t, err, tc.want)
		require.True(t, domain.IsValidation(err))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)

	first, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)

	_, err = svc.Register("Boris", "anna@example.com", "+7-900-000-00-02", "")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	require.True(t, domain.IsConflict(err))
	// Конфликт называет владельца email.
	require.Contains(t, err.Error(), "cust_id=1")

	// Первый клиент не пострадал.
	got, err := svc.Get(first.ID)
	require.NoError(t, err)
	require.Equal(t, "Anna", got.Name)
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newService(t)

	created, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "Tver")
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, domain.CustomerUpdate{
		Name: strPtr("Anna K."),
		City: strPtr(""),
	})
	require.NoError(t, err)
	require.Equal(t, "Anna K.", updated.Name)
	require.Empty(t, updated.City, "empty city clears the value")
	require.Equal(t, "anna@example.com", updated.Email)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	svc, _, _ := newService(t)

	created, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)

	got, err := svc.Update(created.ID, domain.CustomerUpdate{})
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestUpdate_EmailConflict(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)
	boris, err := svc.Register("Boris", "boris@example.com", "+7-900-000-00-02", "")
	require.NoError(t, err)

	_, err = svc.Update(boris.ID, domain.CustomerUpdate{Email: strPtr("anna@example.com")})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	// Смена email на свой собственный конфликтом не считается.
	_, err = svc.Update(boris.ID, domain.CustomerUpdate{Email: strPtr("boris@example.com")})
	require.NoError(t, err)
}

func TestUpdate_EmptyEmailOrPhone(t *testing.T) {
	svc, _, _ := newService(t)

	created, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)

	_, err = svc.Update(created.ID, domain.CustomerUpdate{Email: strPtr("  ")})
	require.ErrorIs(t, err, domain.ErrEmailRequired)

	_, err = svc.Update(created.ID, domain.CustomerUpdate{Phone: strPtr("")})
	require.ErrorIs(t, err, domain.ErrPhoneRequired)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Update(42, domain.CustomerUpdate{Name: strPtr("Anna")})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRemove(t *testing.T) {
	svc, customers, _ := newService(t)

	created, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)

	snapshot, err := svc.Remove(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, snapshot, "remove returns the pre-deletion snapshot")

	_, err = customers.GetByID(created.ID)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRemove_WithOrders(t *testing.T) {
	svc, customers, orders := newService(t)

	created, err := svc.Register("Anna", "anna@example.com", "+7-900-000-00-01", "")
	require.NoError(t, err)
	_, err = orders.CreateOrder(created.ID, 20.00, domain.OrderStatusCancelled)
	require.NoError(t, err)

	// Любой заказ, включая отменённый, блокирует удаление.
	_, err = svc.Remove(created.ID)
	require.ErrorIs(t, err, domain.ErrCustomerHasOrders)
	require.True(t, domain.IsConflict(err))

	got, err := customers.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got, "customer record stays intact")
}

func TestRemove_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Remove(42)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestGetAndList(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Get(42)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Register("Customer", email, "+7-900", "")
		require.NoError(t, err)
	}

	all, err := svc.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	limited, err := svc.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, int64(1), limited[0].ID, "ordered by cust_id")
}
