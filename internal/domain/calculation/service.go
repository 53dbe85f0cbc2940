package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/amortization"
)

const (
	linkAttempts    = 3
	cacheKeyPrefix  = "calculation:"
	DefaultCacheTTL = time.Hour
)

type Servicer interface {
	Calculate(params amortization.Params) (amortization.Schedule, error)
	Save(ctx context.Context, userID int, params amortization.Params) (Calculation, error)
	List(ctx context.Context, userID int) ([]Calculation, error)
	FindByLink(ctx context.Context, link string) (Calculation, error)
	Shared(ctx context.Context, link string) (Calculation, amortization.Schedule, error)
	ExportCSV(ctx context.Context, link string) ([]byte, error)
}

type Option func(*Service)

// WithCache включает кэширование расчетов, открытых по ссылке.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithArchive включает хранение CSV-выгрузок в объектном хранилище.
func WithArchive(archive Archive) Option {
	return func(s *Service) {
		s.archive = archive
	}
}

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	archive  Archive
	newLink  func() string
	log      *slog.Logger
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		cacheTTL: DefaultCacheTTL,
		newLink:  uuid.NewString,
		log:      log.With(slog.String("component", "calculation_service")),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Calculate(params amortization.Params) (amortization.Schedule, error) {
	return amortization.Build(params)
}

// Save computes the schedule and stores its totals under a fresh share link.
func (s *Service) Save(ctx context.Context, userID int, params amortization.Params) (Calculation, error) {
	schedule, err := amortization.Build(params)
	if err != nil {
		return Calculation{}, err
	}

	calc := Calculation{
		UserID:             userID,
		LoanAmount:         params.Amount,
		AnnualInterestRate: params.AnnualRate,
		LoanTermYears:      params.TermYears,
		PaymentType:        params.PaymentType,
		TotalPayment:       schedule.TotalPayment,
		TotalInterestPaid:  schedule.Overpayment,
	}

	for attempt := 1; attempt <= linkAttempts; attempt++ {
		calc.UniqueLink = s.newLink()

		var id int
		id, err = s.repo.Create(ctx, &calc)
		if err == nil {
			calc.ID = id
			s.log.Info("calculation saved", "user_id", userID, "calculation_id", calc.ID)
			return calc, nil
		}

		if !errors.Is(err, ErrLinkTaken) {
			break
		}
		s.log.Warn("share link collision, retrying", "attempt", attempt)
	}

	if errors.Is(err, ErrOwnerNotFound) {
		return Calculation{}, ErrOwnerNotFound
	}

	return Calculation{}, fmt.Errorf("save calculation: %w", err)
}

func (s *Service) List(ctx context.Context, userID int) ([]Calculation, error) {
	calcs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}

	if calcs == nil {
		calcs = []Calculation{}
	}

	return calcs, nil
}

// FindByLink is the public lookup: no ownership check is made.
func (s *Service) FindByLink(ctx context.Context, link string) (Calculation, error) {
	if _, err := uuid.Parse(link); err != nil {
		return Calculation{}, ErrNotFound
	}

	if calc, ok := s.fromCache(ctx, link); ok {
		return calc, nil
	}

	calc, err := s.repo.FindByLink(ctx, link)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Calculation{}, ErrNotFound
		}
		return Calculation{}, fmt.Errorf("find calculation: %w", err)
	}

	s.toCache(ctx, calc)

	return calc, nil
}

func (s *Service) Shared(ctx context.Context, link string) (Calculation, amortization.Schedule, error) {
	calc, err := s.FindByLink(ctx, link)
	if err != nil {
		return Calculation{}, amortization.Schedule{}, err
	}

	schedule, err := amortization.Build(calc.Params())
	if err != nil {
		return Calculation{}, amortization.Schedule{}, fmt.Errorf("rebuild schedule: %w", err)
	}

	return calc, schedule, nil
}

func (s *Service) fromCache(ctx context.Context, link string) (Calculation, bool) {
	if s.cache == nil {
		return Calculation{}, false
	}

	raw, ok := s.cache.Get(ctx, cacheKeyPrefix+link)
	if !ok {
		return Calculation{}, false
	}

	var calc Calculation
	if err := json.Unmarshal([]byte(raw), &calc); err != nil {
		s.log.Warn("corrupted cache entry", "link", link, "error", err)
		return Calculation{}, false
	}

	return calc, true
}

func (s *Service) toCache(ctx context.Context, calc Calculation) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(calc)
	if err != nil {
		s.log.Warn("marshal calculation for cache", "error", err)
		return
	}

	if err := s.cache.Set(ctx, cacheKeyPrefix+calc.UniqueLink, string(raw), s.cacheTTL); err != nil {
		s.log.Warn("cache set failed", "link", calc.UniqueLink, "error", err)
	}
}
