package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glbter/capstone/aggregator"
	"github.com/glbter/capstone/entities"
	"github.com/glbter/capstone/provider"
)

const providerFailureMessage = "Unable to reach the financial data provider"

type DashboardHandler struct {
	Logger     *zap.Logger
	Aggregator aggregator.Aggregator
	Renderer   *Renderer
}

type searchPage struct {
	StockData       *entities.StockView
	Error           string
	SearchPerformed bool
	Symbol          string
}

type comparePage struct {
	Comparison *entities.ComparisonView
	Error      string
	Symbol1    string
	Symbol2    string
}

func (h DashboardHandler) Register(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/search", h.Search)
	r.Get("/market", h.Market)
	r.Get("/news", h.News)
	r.Get("/compare", h.CompareForm)
	r.Post("/compare", h.Compare)
}

func (h DashboardHandler) Index(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.Logger.With(zap.String("method", "Index")), "dashboard/index.html", searchPage{})
}

func (h DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	symbol := string(entities.NormalizeSymbol(r.FormValue("symbol")))
	logger := h.Logger.With(zap.String("method", "Search"), zap.String("cid", uuid.New().String()), zap.String("symbol", symbol))

	page := searchPage{SearchPerformed: true, Symbol: symbol}

	view, err := h.Aggregator.BuildStockView(r.Context(), symbol)
	if err != nil {
		logger.Info(fmt.Errorf("build stock view: %w", err).Error())
		page.Error = formErrorMessage(err, "symbol")
	} else {
		page.StockData = &view
	}

	h.render(w, logger, "dashboard/index.html", page)
}

func (h DashboardHandler) Market(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "Market"), zap.String("cid", uuid.New().String()))

	view, err := h.Aggregator.BuildMarketSnapshot(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("build market snapshot: %w", err).Error())
	}

	h.render(w, logger, "dashboard/market.html", view)
}

func (h DashboardHandler) News(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "News"), zap.String("cid", uuid.New().String()))

	view, err := h.Aggregator.BuildNewsFeed(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("build news feed: %w", err).Error())
	}

	h.render(w, logger, "dashboard/news.html", view)
}

func (h DashboardHandler) CompareForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.Logger.With(zap.String("method", "CompareForm")), "dashboard/compare.html", comparePage{})
}

func (h DashboardHandler) Compare(w http.ResponseWriter, r *http.Request) {
	symbol1 := string(entities.NormalizeSymbol(r.FormValue("symbol1")))
	symbol2 := string(entities.NormalizeSymbol(r.FormValue("symbol2")))
	logger := h.Logger.With(zap.String("method", "Compare"), zap.String("cid", uuid.New().String()),
		zap.String("symbol1", symbol1), zap.String("symbol2", symbol2))

	page := comparePage{Symbol1: symbol1, Symbol2: symbol2}

	view, err := h.Aggregator.BuildComparisonView(r.Context(), symbol1, symbol2)
	if err != nil {
		logger.Info(fmt.Errorf("build comparison view: %w", err).Error())
		page.Error = formErrorMessage(err, "symbols")
	} else {
		page.Comparison = &view
	}

	h.render(w, logger, "dashboard/compare.html", page)
}

func (h DashboardHandler) render(w http.ResponseWriter, logger *zap.Logger, page string, data any) {
	if err := h.Renderer.HTML(w, http.StatusOK, page, data); err != nil {
		logger.Error(fmt.Errorf("render %s: %w", page, err).Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// formErrorMessage turns an aggregation error into the inline text shown
// under the search and compare forms.
func formErrorMessage(err error, subject string) string {
	var (
		nf  *entities.NotFoundError
		ve  *entities.ValidationError
		pe  *provider.Error
		msg = err.Error()
	)
	switch {
	case errors.As(err, &nf):
		msg = nf.Message
	case errors.As(err, &ve):
		msg = ve.Message
	case errors.As(err, &pe):
		msg = providerFailureMessage
	}

	return fmt.Sprintf("Error: %s. Please check the %s and try again.", msg, subject)
}
