package catalog

import (
	"context"
	"sync"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/store/watch"
)

// LoadPhase — фаза загрузки страницы.
type LoadPhase int

const (
	PhaseIdle LoadPhase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// LoadScope — какая именно загрузка идёт: первая страница или дозагрузка.
// Ошибки первой страницы и дозагрузки обрабатываются потребителем независимо.
type LoadScope int

const (
	ScopeInitial LoadScope = iota
	ScopeAppend
)

// LoadState — размеченное состояние загрузки. Page заполнен только в фазе
// Success, Err — только в фазе Error.
type LoadState struct {
	Phase LoadPhase
	Scope LoadScope
	Page  *domain.ProductPage
	Err   error
}

// Pager — непрерывный постраничный поток поверх одного PageSource.
// Загрузки строго последовательны: не более одной одновременно. Подписчик
// следит за изменениями через Watch и читает снимок через State/Items.
type Pager struct {
	source   *PageSource
	pageSize int

	mu     sync.Mutex
	state  LoadState
	items  []domain.Product
	prev   *int
	next   *int
	failed *int // курсор последней неудачной загрузки, для Retry
	loaded bool // была ли хоть одна успешная загрузка
	ended  bool

	hub *watch.Hub
}

// NewPager — конструктор; первая загрузка запускается вызовом LoadNext.
func NewPager(source *PageSource, pageSize int) *Pager {
	return &Pager{
		source:   source,
		pageSize: pageSize,
		state:    LoadState{Phase: PhaseIdle, Scope: ScopeInitial},
		hub:      watch.NewHub(),
	}
}

// LoadNext — загрузить следующую страницу. Возвращает ошибку загрузки как
// есть; то же самое состояние доступно подписчикам через State. После конца
// данных — no-op без ошибки.
func (p *Pager) LoadNext(ctx context.Context) error {
	p.mu.Lock()
	if p.ended || p.state.Phase == PhaseLoading {
		p.mu.Unlock()
		return nil
	}
	cursor := p.next
	p.mu.Unlock()

	return p.load(ctx, cursor)
}

// Retry — повторить последнюю неудачную загрузку с тем же курсором.
// Без предшествующей ошибки — no-op.
func (p *Pager) Retry(ctx context.Context) error {
	p.mu.Lock()
	if p.state.Phase != PhaseError {
		p.mu.Unlock()
		return nil
	}
	cursor := p.failed
	p.mu.Unlock()

	return p.load(ctx, cursor)
}

// Refresh — инвалидация: сбросить накопленное и возобновить с якоря,
// вычисленного по соседним курсорам последней видимой страницы.
func (p *Pager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	anchor := RefreshCursor(p.prev, p.next)
	p.items = nil
	p.prev = nil
	p.next = nil
	p.failed = nil
	p.loaded = false
	p.ended = false
	p.mu.Unlock()

	return p.load(ctx, anchor)
}

func (p *Pager) load(ctx context.Context, cursor *int) error {
	p.mu.Lock()
	scope := ScopeInitial
	if p.loaded {
		scope = ScopeAppend
	}
	p.state = LoadState{Phase: PhaseLoading, Scope: scope}
	p.mu.Unlock()
	p.hub.Broadcast()

	page, err := p.source.Load(ctx, cursor, p.pageSize)

	p.mu.Lock()
	if err != nil {
		p.failed = cursor
		p.state = LoadState{Phase: PhaseError, Scope: scope, Err: err}
		p.mu.Unlock()
		p.hub.Broadcast()
		return err
	}

	p.items = append(p.items, page.Items...)
	p.prev = page.PrevCursor
	p.next = page.NextCursor
	p.failed = nil
	p.loaded = true
	p.ended = page.NextCursor == nil
	p.state = LoadState{Phase: PhaseSuccess, Scope: scope, Page: &page}
	p.mu.Unlock()
	p.hub.Broadcast()
	return nil
}

// State — текущее состояние загрузки.
func (p *Pager) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Items — копия всех накопленных записей в порядке загрузки.
func (p *Pager) Items() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, len(p.items))
	copy(out, p.items)
	return out
}

// HasNext — остались ли данные впереди.
func (p *Pager) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.ended
}

// Watch — сигнал о смене состояния; подписчик перечитывает State/Items.
func (p *Pager) Watch(ctx context.Context) (<-chan struct{}, func()) {
	return p.hub.Subscribe(ctx)
}
