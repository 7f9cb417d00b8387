package price_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stockdata/pkg/price"
	"stockdata/pkg/price/memory"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (price.Dataset, error) {
	return nil, price.ErrStorageUnavailable
}

func (failingStore) Save(context.Context, price.Dataset) error {
	return price.ErrStorageUnavailable
}

type countingStore struct {
	*memory.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, ds price.Dataset) error {
	c.saves++
	return c.Store.Save(ctx, ds)
}

func strp(s string) *string { return &s }

func seed() price.Dataset {
	return price.Dataset{
		{Date: "2024-01-01", Close: "10"},
		{Date: "2024-01-02", Close: "20"},
	}
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := price.NewService(memory.New(seed()), "secret")

	p := price.Patch{
		Date: strp("2024-01-03"), Open: strp("1"), High: strp("2"), Low: strp("0"),
		Close: strp("30"), AdjClose: strp("30"), Volume: strp("5"),
	}
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.Get(ctx, "2024-01-03")
	if err != nil || got.Close != "30" {
		t.Fatalf("get: %+v %v", got, err)
	}

	date, err := svc.Update(ctx, price.Patch{Date: strp("2024-01-02"), Close: strp("25")})
	if err != nil || date != "2024-01-02" {
		t.Fatalf("update: %q %v", date, err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[1].Close != "25" {
		t.Fatalf("unexpected list %+v", list)
	}

	avg, err := svc.Average(ctx)
	if err != nil || avg != 6.5 {
		t.Fatalf("average: %v %v", avg, err)
	}

	inRange, err := svc.Range(ctx, "2024-01-02", "2024-01-03")
	if err != nil || len(inRange) != 2 {
		t.Fatalf("range: %+v %v", inRange, err)
	}

	if err := svc.Delete(ctx, "2024-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "2024-01-01"); !errors.Is(err, price.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestServiceDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.New(seed())}
	svc := price.NewService(store, "IAMADMIN123")

	if err := svc.DeleteAll(ctx, "IAMADMIN124"); !errors.Is(err, price.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("store written on rejected delete")
	}
	if list, _ := svc.List(ctx); len(list) != 2 {
		t.Fatalf("dataset changed: %+v", list)
	}

	if err := svc.DeleteAll(ctx, "IAMADMIN123"); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if list, _ := svc.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty dataset, got %+v", list)
	}
}

func TestServiceFailedMutationDoesNotSave(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.New(seed())}
	svc := price.NewService(store, "k")

	if err := svc.Add(ctx, price.Patch{Date: strp("2024-01-05")}); !errors.Is(err, price.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, price.Patch{Date: strp("1999-01-01")}); !errors.Is(err, price.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, ""); !errors.Is(err, price.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty date, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no saves, got %d", store.saves)
	}
}

func TestServiceStrictAverage(t *testing.T) {
	svc := price.NewService(memory.New(seed()), "k", price.WithStrictAverage(true))
	if _, err := svc.Average(context.Background()); !errors.Is(err, price.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestServiceRangeMalformedRequest(t *testing.T) {
	svc := price.NewService(memory.New(seed()), "k")
	if _, err := svc.Range(context.Background(), "2024/01/01", "2024-01-02"); !errors.Is(err, price.ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
}

func TestServiceStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	svc := price.NewService(failingStore{}, "k")

	if _, err := svc.List(ctx); !errors.Is(err, price.ErrStorageUnavailable) {
		t.Errorf("list: expected ErrStorageUnavailable, got %v", err)
	}
	if err := svc.Delete(ctx, "2024-01-01"); !errors.Is(err, price.ErrStorageUnavailable) {
		t.Errorf("delete: expected ErrStorageUnavailable, got %v", err)
	}
	if err := svc.DeleteAll(ctx, "k"); !errors.Is(err, price.ErrStorageUnavailable) {
		t.Errorf("delete all: expected ErrStorageUnavailable, got %v", err)
	}
}

func TestServiceConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc := price.NewService(memory.New(nil), "k")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := price.Patch{
				Date: strp("2024-01-01"), Open: strp("1"), High: strp("1"), Low: strp("1"),
				Close: strp("1"), AdjClose: strp("1"), Volume: strp("1"),
			}
			if err := svc.Add(ctx, p); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != n {
		t.Fatalf("expected %d records, got %d", n, len(list))
	}
}
