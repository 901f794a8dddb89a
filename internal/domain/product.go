package domain

import "github.com/shopspring/decimal"

// Product — доменная модель товара каталога.
// ID — единственный идентификатор: две записи с одинаковым ID считаются
// одним товаром независимо от остальных полей (last-write-wins при upsert).
type Product struct {
	ID          int             `json:"id"`
	ImageURL    string          `json:"imageUrl"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	RatingScore float64         `json:"ratingScore"`
	Category    string          `json:"category"`
}

// PageRequest — намерение запроса страницы.
// Cursor == nil означает первую страницу; фильтры пустые — «все товары».
type PageRequest struct {
	Cursor         *int   `json:"cursor,omitempty"`
	PageSize       int    `json:"pageSize"`
	TextFilter     string `json:"textFilter,omitempty"`
	CategoryFilter string `json:"categoryFilter,omitempty"`
}

// ProductPage — результат одной загрузки страницы.
// NextCursor == nil ровно тогда, когда страница пустая или короче запрошенного размера.
type ProductPage struct {
	Items      []Product `json:"items"`
	PrevCursor *int      `json:"previousCursor,omitempty"`
	NextCursor *int      `json:"nextCursor,omitempty"`
}

// RemotePage — страница товаров, как её отдаёт удалённый каталог.
type RemotePage struct {
	Items []Product
	Total int
	Skip  int
	Limit int
}
