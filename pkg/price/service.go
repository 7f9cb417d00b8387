package price

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockdata/pkg/logger"
	"stockdata/pkg/otel"
)

// Service runs every operation as load, compute and, for mutations, save.
// The mutex serialises load-mutate-save within one process; writers in other
// processes sharing the same backing store can still lose updates.
type Service struct {
	store    Store
	adminKey string
	strict   bool
	log      *logger.Logger

	mu sync.RWMutex
}

// Option configures a Service.
type Option func(*Service)

// WithStrictAverage makes Average fail with ErrInsufficientData instead of
// dividing a short window by AverageWindow.
func WithStrictAverage(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService returns a Service over store. adminKey guards DeleteAll.
func NewService(store Store, adminKey string, opts ...Option) *Service {
	s := &Service{store: store, adminKey: adminKey, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) load(ctx context.Context) (Dataset, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		ds = Dataset{}
	}
	return ds, nil
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List returns the whole dataset in order.
func (s *Service) List(ctx context.Context) (ds Dataset, err error) {
	ctx, span := otel.AddSpan(ctx, "price.List")
	defer func() { finish(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx)
}

// Get returns the first record dated date.
func (s *Service) Get(ctx context.Context, date string) (r Record, err error) {
	ctx, span := otel.AddSpan(ctx, "price.Get", attribute.String("date", date))
	defer func() { finish(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, err := s.load(ctx)
	if err != nil {
		return Record{}, err
	}
	return FindByDate(ds, date)
}

// Range returns the records dated within [start, end]. Both bounds are
// YYYY-MM-DD strings.
func (s *Service) Range(ctx context.Context, start, end string) (out Dataset, err error) {
	ctx, span := otel.AddSpan(ctx, "price.Range",
		attribute.String("start", start), attribute.String("end", end))
	defer func() { finish(span, err) }()

	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByDateRange(ds, from, to)
}

// Average returns the trailing average of Close over the first
// AverageWindow records.
func (s *Service) Average(ctx context.Context) (avg float64, err error) {
	ctx, span := otel.AddSpan(ctx, "price.Average", attribute.Bool("strict", s.strict))
	defer func() { finish(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if s.strict {
		return StrictTrailingAverage(ds, AverageWindow)
	}
	return TrailingAverage(ds, AverageWindow)
}

// Add appends a complete record.
func (s *Service) Add(ctx context.Context, p Patch) (err error) {
	ctx, span := otel.AddSpan(ctx, "price.Add")
	defer func() { finish(span, err) }()

	return s.mutate(ctx, "record added", func(ds Dataset) (Dataset, error) {
		return Append(ds, p)
	})
}

// Update merges p into the record dated *p.Date and returns that date.
func (s *Service) Update(ctx context.Context, p Patch) (date string, err error) {
	ctx, span := otel.AddSpan(ctx, "price.Update")
	defer func() { finish(span, err) }()

	if p.Date == nil {
		return "", &ValidationError{Missing: []string{FieldDate}}
	}
	date = *p.Date
	span.SetAttributes(attribute.String("date", date))
	return date, s.mutate(ctx, "record updated", func(ds Dataset) (Dataset, error) {
		return UpdateByDate(ds, date, p)
	})
}

// Delete removes the first record dated date.
func (s *Service) Delete(ctx context.Context, date string) (err error) {
	ctx, span := otel.AddSpan(ctx, "price.Delete", attribute.String("date", date))
	defer func() { finish(span, err) }()

	return s.mutate(ctx, "record deleted", func(ds Dataset) (Dataset, error) {
		return DeleteByDate(ds, date)
	})
}

// DeleteAll replaces the dataset with an empty one when key matches the
// admin secret. The store is not touched on mismatch.
func (s *Service) DeleteAll(ctx context.Context, key string) (err error) {
	ctx, span := otel.AddSpan(ctx, "price.DeleteAll")
	defer func() { finish(span, err) }()

	empty, err := DeleteAll(nil, key, s.adminKey)
	if err != nil {
		s.log.Warn(ctx, "bulk delete rejected")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, empty); err != nil {
		return err
	}
	s.log.Info(ctx, "dataset cleared")
	return nil
}

func (s *Service) mutate(ctx context.Context, event string, fn func(Dataset) (Dataset, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	ds, err = fn(ds)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, ds); err != nil {
		return err
	}
	s.log.Info(ctx, event, "records", len(ds))
	return nil
}
