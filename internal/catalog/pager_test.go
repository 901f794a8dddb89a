package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports/mocks"
)

func TestPager_SequentialLoadsUntilEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProductStore(ctrl)
	client := mocks.NewMockCatalogClient(ctrl)

	first := products(10, 1)
	second := products(4, 11)

	store.EXPECT().All(gomock.Any()).Return(nil, nil)
	client.EXPECT().FetchPage(gomock.Any(), 10, 0).
		Return(&domain.RemotePage{Items: first, Total: 14, Skip: 0, Limit: 10}, nil)
	store.EXPECT().UpsertMany(gomock.Any(), first).Return(nil)
	client.EXPECT().FetchPage(gomock.Any(), 10, 10).
		Return(&domain.RemotePage{Items: second, Total: 14, Skip: 10, Limit: 10}, nil)
	store.EXPECT().UpsertMany(gomock.Any(), second).Return(nil)

	pager := NewPager(NewPageSource(store, client, "", ""), 10)

	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if st := pager.State(); st.Phase != PhaseSuccess || st.Scope != ScopeInitial {
		t.Fatalf("state = %+v, want initial success", st)
	}
	if !pager.HasNext() {
		t.Fatalf("expected more pages after full first page")
	}

	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if st := pager.State(); st.Scope != ScopeAppend {
		t.Fatalf("scope = %v, want append", st.Scope)
	}
	if pager.HasNext() {
		t.Fatalf("expected end of data after short page")
	}
	if got := pager.Items(); len(got) != 14 {
		t.Fatalf("items = %d, want 14", len(got))
	}

	// После конца данных дальнейшие загрузки — no-op: моки упадут на
	// неожиданном вызове, если это не так.
	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("load past end: %v", err)
	}
}

func TestPager_RetryReissuesFailedCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProductStore(ctrl)
	client := mocks.NewMockCatalogClient(ctrl)

	items := products(3, 1)

	gomock.InOrder(
		store.EXPECT().All(gomock.Any()).Return(nil, nil),
		client.EXPECT().FetchPage(gomock.Any(), 10, 0).Return(nil, domain.ErrNetwork),
		store.EXPECT().All(gomock.Any()).Return(nil, nil),
		client.EXPECT().FetchPage(gomock.Any(), 10, 0).
			Return(&domain.RemotePage{Items: items, Total: 3, Skip: 0, Limit: 10}, nil),
		store.EXPECT().UpsertMany(gomock.Any(), items).Return(nil),
	)

	pager := NewPager(NewPageSource(store, client, "", ""), 10)

	err := pager.LoadNext(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	st := pager.State()
	if st.Phase != PhaseError || st.Scope != ScopeInitial {
		t.Fatalf("state = %+v, want initial error", st)
	}
	if !domain.Retryable(st.Err) {
		t.Fatalf("load error must be retryable")
	}

	if err := pager.Retry(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := pager.Items(); len(got) != 3 {
		t.Fatalf("items = %d, want 3", len(got))
	}

	// Повтор без предшествующей ошибки ничего не делает.
	if err := pager.Retry(context.Background()); err != nil {
		t.Fatalf("idle retry: %v", err)
	}
}

func TestPager_RefreshKeepsVisibleWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProductStore(ctrl)
	client := mocks.NewMockCatalogClient(ctrl)

	first := products(10, 1)
	second := products(10, 11)

	store.EXPECT().All(gomock.Any()).Return(nil, nil)
	client.EXPECT().FetchPage(gomock.Any(), 10, 0).
		Return(&domain.RemotePage{Items: first, Total: 40, Skip: 0, Limit: 10}, nil)
	store.EXPECT().UpsertMany(gomock.Any(), first).Return(nil)
	client.EXPECT().FetchPage(gomock.Any(), 10, 10).
		Return(&domain.RemotePage{Items: second, Total: 40, Skip: 10, Limit: 10}, nil).
		Times(2) // вторая страница перечитывается после Refresh
	store.EXPECT().UpsertMany(gomock.Any(), second).Return(nil).Times(2)

	pager := NewPager(NewPageSource(store, client, "", ""), 10)

	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}

	// Якорь: prev(0)+1 = 1 — возобновляемся с последней видимой страницы.
	if err := pager.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got := pager.Items()
	if len(got) != 10 || got[0].ID != 11 {
		t.Fatalf("items after refresh = %d (first id %d), want 10 starting at 11", len(got), got[0].ID)
	}
}

func TestPager_WatchSignalsStateChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProductStore(ctrl)
	client := mocks.NewMockCatalogClient(ctrl)

	store.EXPECT().All(gomock.Any()).Return(products(2, 1), nil)

	pager := NewPager(NewPageSource(store, client, "", ""), 10)

	ch, cancel := pager.Watch(context.Background())
	defer cancel()

	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("no watch signal after load")
	}
	if st := pager.State(); st.Phase != PhaseSuccess {
		t.Fatalf("phase = %v, want success", st.Phase)
	}
}
