package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — структура для валидации товара.
type ProductValidator struct{}

// NewProductValidator — конструктор ProductValidator.
// Возвращает ErrInvalidProduct (с обёрнутой причиной) при любой проблеме.
func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — проверяет корректность полей товара.
func (v *ProductValidator) Validate(_ context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if product.ID < 0 {
		return fmt.Errorf("%w: id должен быть неотрицательным", ErrInvalidProduct)
	}
	if product.Name == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price должен быть неотрицательным", ErrInvalidProduct)
	}
	if product.RatingScore < 0 || product.RatingScore > 5 {
		return fmt.Errorf("%w: ratingScore должен быть в диапазоне 0..5", ErrInvalidProduct)
	}
	return nil
}
