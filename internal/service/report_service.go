package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/boticaplus/backend/internal/cache"
	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/report"
	"github.com/boticaplus/backend/internal/repository"
)

// ReportService orchestrates a report request: resolve the period, fetch the
// raw rows, run the aggregation engine, cache the result. The engine itself
// is pure; all I/O lives here.
type ReportService struct {
	sales    repository.SalesRepository
	products repository.ProductRepository
	cache    cache.ReportCache
	now      func() time.Time
}

func NewReportService(sales repository.SalesRepository, products repository.ProductRepository, cacheImpl cache.ReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{
		sales:    sales,
		products: products,
		cache:    cacheImpl,
		now:      time.Now,
	}
}

func (s *ReportService) SalesReport(ctx context.Context, spec report.PeriodSpec, topLimit int) (*domain.SalesReport, error) {
	period := report.ResolvePeriod(s.now(), spec)
	key := s.cacheKey("sales", period, strconv.Itoa(topLimit))

	var cached domain.SalesReport
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	rows, err := s.fetchRows(ctx, period)
	if err != nil {
		return nil, err
	}

	rep := report.BuildSalesReport(period, rows.sales, rows.itemsBySale, rows.products, topLimit)
	s.cacheSet(ctx, key, rep)
	return &rep, nil
}

func (s *ReportService) FinancialReport(ctx context.Context, spec report.PeriodSpec) (*domain.FinancialReport, error) {
	period := report.ResolvePeriod(s.now(), spec)
	key := s.cacheKey("financial", period)

	var cached domain.FinancialReport
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	rows, err := s.fetchRows(ctx, period)
	if err != nil {
		return nil, err
	}

	rep := report.BuildFinancialReport(period, rows.sales, rows.itemsBySale, rows.products)
	s.cacheSet(ctx, key, rep)
	return &rep, nil
}

func (s *ReportService) InventoryReport(ctx context.Context) (*domain.InventoryReport, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	rep := report.BuildInventoryReport(products, s.now())
	return &rep, nil
}

// Dashboard bundles all three reports from a single row fetch.
func (s *ReportService) Dashboard(ctx context.Context, spec report.PeriodSpec, topLimit int) (*domain.Dashboard, error) {
	period := report.ResolvePeriod(s.now(), spec)

	rows, err := s.fetchRows(ctx, period)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Sales:     report.BuildSalesReport(period, rows.sales, rows.itemsBySale, rows.products, topLimit),
		Inventory: report.BuildInventoryReport(rows.products, s.now()),
		Financial: report.BuildFinancialReport(period, rows.sales, rows.itemsBySale, rows.products),
	}, nil
}

type reportRows struct {
	sales       []domain.SaleRecord
	itemsBySale map[string][]domain.SaleLineItem
	products    []domain.Product
}

// fetchRows loads sales and products concurrently, then the line items for
// the fetched sales. Each report invocation fetches fresh rows; the engine
// holds no state between requests.
func (s *ReportService) fetchRows(ctx context.Context, period report.Period) (*reportRows, error) {
	rows := &reportRows{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sales, err := s.sales.GetSalesInRange(gctx, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("fetch sales: %w", err)
		}
		rows.sales = sales
		return nil
	})
	g.Go(func() error {
		products, err := s.products.GetProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		rows.products = products
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	saleIDs := make([]string, 0, len(rows.sales))
	for _, sale := range rows.sales {
		saleIDs = append(saleIDs, sale.ID)
	}

	items, err := s.sales.GetLineItems(ctx, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch line items: %w", err)
	}
	rows.itemsBySale = items

	return rows, nil
}

func (s *ReportService) cacheKey(reportType string, period report.Period, extra ...string) string {
	parts := append([]string{
		period.Start.Format(time.RFC3339),
		period.End.Format(time.RFC3339),
	}, extra...)
	return cache.ReportKey(reportType, parts...)
}

func (s *ReportService) cacheGet(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache get failed")
		return false
	}
	return ok
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache set failed")
	}
}
