// Package aggregator fans out the provider calls one dashboard page needs and
// merges their results into a single view model. Every aggregation is
// all-or-nothing: a failed or missing required piece fails the whole unit.
package aggregator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glbter/capstone/entities"
)

const (
	RankedListLimit = 10
	NewsLimit       = 20

	SymbolNotFoundMessage  = "Stock symbol not found"
	SymbolsNotFoundMessage = "One or both stock symbols not found"
	MarketErrorMessage     = "Unable to fetch market data. Please try again later."
	NewsErrorMessage       = "Unable to fetch news. Please try again later."
)

type DataProvider interface {
	Profile(ctx context.Context, symbol entities.Symbol) ([]entities.CompanyProfile, error)
	Quote(ctx context.Context, symbol entities.Symbol) ([]entities.Quote, error)
	KeyMetricsTTM(ctx context.Context, symbol entities.Symbol) ([]entities.KeyMetrics, error)
	RatiosTTM(ctx context.Context, symbol entities.Symbol) ([]entities.Ratios, error)
	BiggestGainers(ctx context.Context) ([]entities.MarketMover, error)
	BiggestLosers(ctx context.Context) ([]entities.MarketMover, error)
	MostActives(ctx context.Context) ([]entities.MarketMover, error)
	SectorPerformance(ctx context.Context) ([]entities.SectorPerformance, error)
	LatestNews(ctx context.Context, limit int) ([]entities.NewsArticle, error)
}

type Aggregator struct {
	provider DataProvider
	logger   *zap.Logger
}

func New(p DataProvider, logger *zap.Logger) Aggregator {
	return Aggregator{
		provider: p,
		logger:   logger.With(zap.String("caller", "Aggregator")),
	}
}

// companyResults holds the raw per-symbol results of one fan-out.
type companyResults struct {
	profile []entities.CompanyProfile
	quote   []entities.Quote
	metrics []entities.KeyMetrics
	ratios  []entities.Ratios
}

// fetchCompany schedules the per-symbol calls on g. Ratios are only fetched
// when withRatios is set.
func (a Aggregator) fetchCompany(ctx context.Context, g *errgroup.Group, symbol entities.Symbol, withRatios bool) *companyResults {
	res := &companyResults{}

	g.Go(func() (err error) {
		res.profile, err = a.provider.Profile(ctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		res.quote, err = a.provider.Quote(ctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		res.metrics, err = a.provider.KeyMetricsTTM(ctx, symbol)
		return err
	})
	if withRatios {
		g.Go(func() (err error) {
			res.ratios, err = a.provider.RatiosTTM(ctx, symbol)
			return err
		})
	}

	return res
}

func (a Aggregator) BuildStockView(ctx context.Context, symbol string) (entities.StockView, error) {
	sym := entities.NormalizeSymbol(symbol)
	if sym == "" {
		return entities.StockView{}, &entities.ValidationError{Field: "symbol", Message: "Stock symbol is required"}
	}
	logger := a.logger.With(zap.String("method", "BuildStockView"), zap.String("symbol", string(sym)))

	g, gctx := errgroup.WithContext(ctx)
	res := a.fetchCompany(gctx, g, sym, true)
	if err := g.Wait(); err != nil {
		logger.Warn("fetch stock data", zap.Error(err))
		return entities.StockView{}, fmt.Errorf("fetch stock data for %s: %w", sym, err)
	}

	if len(res.profile) == 0 {
		return entities.StockView{}, &entities.NotFoundError{Message: SymbolNotFoundMessage}
	}

	return entities.StockView{
		Profile:    res.profile[0],
		Quote:      first(res.quote),
		KeyMetrics: first(res.metrics),
		Ratios:     first(res.ratios),
	}, nil
}

func (a Aggregator) BuildComparisonView(ctx context.Context, symbol1, symbol2 string) (entities.ComparisonView, error) {
	sym1, sym2 := entities.NormalizeSymbol(symbol1), entities.NormalizeSymbol(symbol2)
	if sym1 == "" || sym2 == "" {
		return entities.ComparisonView{}, &entities.ValidationError{Field: "symbol", Message: "Two stock symbols are required"}
	}
	logger := a.logger.With(zap.String("method", "BuildComparisonView"),
		zap.String("symbol1", string(sym1)), zap.String("symbol2", string(sym2)))

	g, gctx := errgroup.WithContext(ctx)
	res1 := a.fetchCompany(gctx, g, sym1, false)
	res2 := a.fetchCompany(gctx, g, sym2, false)
	if err := g.Wait(); err != nil {
		logger.Warn("fetch comparison data", zap.Error(err))
		return entities.ComparisonView{}, fmt.Errorf("fetch comparison data for %s and %s: %w", sym1, sym2, err)
	}

	if len(res1.profile) == 0 || len(res2.profile) == 0 {
		return entities.ComparisonView{}, &entities.NotFoundError{Message: SymbolsNotFoundMessage}
	}

	return entities.ComparisonView{
		Company1: companyView(res1),
		Company2: companyView(res2),
	}, nil
}

// BuildMarketSnapshot returns the top movers and today's sector performance.
// On any failure the returned view is empty and carries MarketErrorMessage;
// the cause is returned for logging only.
func (a Aggregator) BuildMarketSnapshot(ctx context.Context) (entities.MarketSnapshotView, error) {
	var (
		gainers, losers, actives []entities.MarketMover
		sectors                  []entities.SectorPerformance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		gainers, err = a.provider.BiggestGainers(gctx)
		return err
	})
	g.Go(func() (err error) {
		losers, err = a.provider.BiggestLosers(gctx)
		return err
	})
	g.Go(func() (err error) {
		actives, err = a.provider.MostActives(gctx)
		return err
	})
	g.Go(func() (err error) {
		sectors, err = a.provider.SectorPerformance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn("fetch market data", zap.String("method", "BuildMarketSnapshot"), zap.Error(err))
		return emptySnapshot(MarketErrorMessage), fmt.Errorf("fetch market data: %w", err)
	}

	if sectors == nil {
		sectors = []entities.SectorPerformance{}
	}

	return entities.MarketSnapshotView{
		Gainers:           truncate(gainers, RankedListLimit),
		Losers:            truncate(losers, RankedListLimit),
		Actives:           truncate(actives, RankedListLimit),
		SectorPerformance: sectors,
	}, nil
}

// BuildNewsFeed returns the latest NewsLimit articles. On failure the feed is
// empty and carries NewsErrorMessage.
func (a Aggregator) BuildNewsFeed(ctx context.Context) (entities.NewsFeedView, error) {
	news, err := a.provider.LatestNews(ctx, NewsLimit)
	if err != nil {
		a.logger.Warn("fetch news", zap.String("method", "BuildNewsFeed"), zap.Error(err))
		return entities.NewsFeedView{News: []entities.NewsArticle{}, Error: NewsErrorMessage}, fmt.Errorf("fetch news: %w", err)
	}
	if news == nil {
		news = []entities.NewsArticle{}
	}

	return entities.NewsFeedView{News: news}, nil
}

func companyView(res *companyResults) entities.CompanyView {
	return entities.CompanyView{
		Profile: res.profile[0],
		Quote:   first(res.quote),
		Metrics: first(res.metrics),
	}
}

func emptySnapshot(msg string) entities.MarketSnapshotView {
	return entities.MarketSnapshotView{
		Gainers:           []entities.MarketMover{},
		Losers:            []entities.MarketMover{},
		Actives:           []entities.MarketMover{},
		SectorPerformance: []entities.SectorPerformance{},
		Error:             msg,
	}
}

// first returns the leading record, or the zero record when the provider had none.
func first[T any](records []T) T {
	var zero T
	if len(records) == 0 {
		return zero
	}
	return records[0]
}

// truncate keeps provider order and caps the list at n entries.
func truncate[T any](records []T, n int) []T {
	if records == nil {
		return []T{}
	}
	if len(records) > n {
		return records[:n]
	}
	return records
}
