package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err                                        error
		notFound, conflict, validation, dependency bool
	}{
		{ErrCustomerNotFound, true, false, false, false},
		{ErrProductNotFound, true, false, false, false},
		{ErrOrderNotFound, true, false, false, false},
		{ErrEmailTaken, false, true, false, false},
		{ErrCustomerHasOrders, false, true, false, false},
		{ErrInvalidOrderState, false, true, false, false},
		{ErrNameRequired, false, false, true, false},
		{ErrQuantityInvalid, false, false, true, false},
		{ErrInsufficientStock, false, false, true, false},
		{ErrDependencyFailure, false, false, false, true},
	}

	for _, tc := range cases {
		if got := IsNotFound(tc.err); got != tc.notFound {
			t.Errorf("IsNotFound(%v) = %v", tc.err, got)
		}
		if got := IsConflict(tc.err); got != tc.conflict {
			t.Errorf("IsConflict(%v) = %v", tc.err, got)
		}
		if got := IsValidation(tc.err); got != tc.validation {
			t.Errorf("IsValidation(%v) = %v", tc.err, got)
		}
		if got := IsDependencyFailure(tc.err); got != tc.dependency {
			t.Errorf("IsDependencyFailure(%v) = %v", tc.err, got)
		}
	}
}

func TestErrorKinds_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: product %q (available %d, required %d)", ErrInsufficientStock, "Kettle", 1, 2)
	if !IsValidation(wrapped) {
		t.Errorf("wrapping lost validation kind: %v", wrapped)
	}

	cause := errors.New("gateway timeout")
	dep := fmt.Errorf("%w: decrement stock: %w", ErrDependencyFailure, cause)
	if !IsDependencyFailure(dep) {
		t.Errorf("wrapping lost dependency kind: %v", dep)
	}
	// Исходная причина остаётся доступной через errors.Is.
	if !errors.Is(dep, cause) {
		t.Errorf("original cause lost: %v", dep)
	}
}
