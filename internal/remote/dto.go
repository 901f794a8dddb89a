package remote

import (
	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// productDTO — товар в формате удалённого API.
// Маппинг в домен: thumbnail→imageUrl, title→name, rating→ratingScore.
type productDTO struct {
	ID          int             `json:"id"`
	Thumbnail   string          `json:"thumbnail"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Category    string          `json:"category"`
}

// pageDTO — ответ GET /products?limit=&skip=.
type pageDTO struct {
	Products []productDTO `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		ImageURL:    d.Thumbnail,
		Name:        d.Title,
		Price:       d.Price,
		Description: d.Description,
		RatingScore: d.Rating,
		Category:    d.Category,
	}
}

func (d pageDTO) toDomain() *domain.RemotePage {
	items := make([]domain.Product, 0, len(d.Products))
	for _, p := range d.Products {
		items = append(items, p.toDomain())
	}
	return &domain.RemotePage{
		Items: items,
		Total: d.Total,
		Skip:  d.Skip,
		Limit: d.Limit,
	}
}
