package validate

import (
	"context"
	"errors"
	"testing"
)

func TestValidateProductFromJSON_Valid(t *testing.T) {
	raw := []byte(productJSON(7, "Boots"))

	p, err := ValidateProductFromJSON(context.Background(), NewProductValidator(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 || p.Name != "Boots" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestValidateProductFromJSON_UnknownField(t *testing.T) {
	raw := []byte(`{"id":1,"name":"Boots","price":"1","bogus":true}`)

	if _, err := ValidateProductFromJSON(context.Background(), NewProductValidator(), raw); err == nil {
		t.Fatalf("expected error on unknown field")
	}
}

func TestValidateProductFromJSON_TrailingData(t *testing.T) {
	raw := []byte(`{"id":1,"name":"Boots","price":"1"} {"id":2}`)

	if _, err := ValidateProductFromJSON(context.Background(), NewProductValidator(), raw); err == nil {
		t.Fatalf("expected error on trailing data")
	}
}

func TestValidateProductFromJSON_InvalidProduct(t *testing.T) {
	raw := []byte(`{"id":1,"name":"","price":"1"}`)

	_, err := ValidateProductFromJSON(context.Background(), NewProductValidator(), raw)
	if !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("err = %v, want ErrInvalidProduct", err)
	}
}
