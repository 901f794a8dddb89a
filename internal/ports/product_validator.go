package ports

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
)

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
