package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/rims/internal/domain"
	"github.com/vladislavdragonenkov/rims/internal/storage/memory"
)

func seedProduct(t *testing.T, store domain.ProductStore, product domain.Product) domain.Product {
	t.Helper()

	seeder, ok := store.(memory.ProductSeeder)
	if !ok {
		t.Fatal("store does not support seeding")
	}
	return seeder.Seed(product)
}

func TestProductStore_SeedAndGet(t *testing.T) {
	store := memory.NewProductStore()

	seeded := seedProduct(t, store, domain.Product{Name: "Kettle", Price: 10.00, Stock: 5})
	if seeded.ID == 0 {
		t.Fatal("expected generated prod_id")
	}

	loaded, err := store.GetByID(seeded.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded != seeded {
		t.Errorf("loaded product differs: %+v vs %+v", loaded, seeded)
	}
}

func TestProductStore_SeedWithExplicitID(t *testing.T) {
	store := memory.NewProductStore()

	seeded := seedProduct(t, store, domain.Product{ID: 100, Name: "Samovar", Price: 200.00, Stock: 1})
	if seeded.ID != 100 {
		t.Fatalf("expected prod_id 100, got %d", seeded.ID)
	}

	// Автоинкремент продолжается после явного идентификатора.
	next := seedProduct(t, store, domain.Product{Name: "Kettle", Price: 10.00, Stock: 5})
	if next.ID != 101 {
		t.Errorf("expected prod_id 101, got %d", next.ID)
	}
}

func TestProductStore_UpdateStock(t *testing.T) {
	store := memory.NewProductStore()

	seeded := seedProduct(t, store, domain.Product{Name: "Kettle", Price: 10.00, Stock: 5})
	if err := store.UpdateStock(seeded.ID, 3); err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	loaded, err := store.GetByID(seeded.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Stock != 3 {
		t.Errorf("expected stock 3, got %d", loaded.Stock)
	}
}

func TestProductStore_NotFound(t *testing.T) {
	store := memory.NewProductStore()

	if _, err := store.GetByID(42); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := store.UpdateStock(42, 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
