//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/shopspring/decimal"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного товара
func MakeProduct(id int, opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		ID:          id,
		ImageURL:    fmt.Sprintf("https://cdn.example.com/%s.png", UniqSuffix()),
		Name:        "Widget " + UniqSuffix(),
		Price:       decimal.NewFromFloat(19.99),
		Description: "test product",
		RatingScore: 4.2,
		Category:    "widgets",
	}

	for _, fn := range opts {
		fn(&p)
	}
	return p
}

func WithName(name string) func(*domain.Product) {
	return func(p *domain.Product) { p.Name = name }
}

func WithCategory(category string) func(*domain.Product) {
	return func(p *domain.Product) { p.Category = category }
}

func WithDescription(desc string) func(*domain.Product) {
	return func(p *domain.Product) { p.Description = desc }
}

func WithPrice(price string) func(*domain.Product) {
	return func(p *domain.Product) { p.Price = decimal.RequireFromString(price) }
}
