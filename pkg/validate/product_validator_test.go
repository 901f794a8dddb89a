package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/pkg/validate"
)

func validProduct() *domain.Product {
	return &domain.Product{
		ID:          1,
		ImageURL:    "https://example.com/1.png",
		Name:        "Boots",
		Price:       decimal.NewFromInt(900),
		Description: "Winter boots",
		RatingScore: 4.2,
		Category:    "Shoes",
	}
}

func TestProductValidator_Validate(t *testing.T) {
	v := validate.NewProductValidator()
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		p := validProduct()
		if err := v.Validate(ctx, p); err != nil {
			t.Fatalf("expected valid product, got: %v", err)
		}
	})

	type testCase struct {
		name        string
		makeProduct func() *domain.Product
		msg         string
	}

	cases := []testCase{
		{
			name:        "nil product",
			makeProduct: func() *domain.Product { return nil },
			msg:         "товар не может быть nil",
		},
		{
			name: "negative id",
			makeProduct: func() *domain.Product {
				p := validProduct()
				p.ID = -1
				return p
			},
			msg: "id должен быть неотрицательным",
		},
		{
			name: "empty name",
			makeProduct: func() *domain.Product {
				p := validProduct()
				p.Name = ""
				return p
			},
			msg: "name обязателен",
		},
		{
			name: "negative price",
			makeProduct: func() *domain.Product {
				p := validProduct()
				p.Price = decimal.NewFromInt(-1)
				return p
			},
			msg: "price должен быть неотрицательным",
		},
		{
			name: "rating above range",
			makeProduct: func() *domain.Product {
				p := validProduct()
				p.RatingScore = 5.1
				return p
			},
			msg: "ratingScore должен быть в диапазоне",
		},
		{
			name: "rating below range",
			makeProduct: func() *domain.Product {
				p := validProduct()
				p.RatingScore = -0.1
				return p
			},
			msg: "ratingScore должен быть в диапазоне",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.makeProduct())
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidProduct) {
				t.Fatalf("expected ErrInvalidProduct, got: %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestProductValidator_ZeroIDAllowed(t *testing.T) {
	// Нулевой id означает «назначить локальный при создании».
	v := validate.NewProductValidator()

	p := validProduct()
	p.ID = 0
	if err := v.Validate(context.Background(), p); err != nil {
		t.Fatalf("zero id must be valid: %v", err)
	}
}
