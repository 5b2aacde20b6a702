package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Symbol string

func NormalizeSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

type CompanyProfile struct {
	Symbol            Symbol          `json:"symbol"`
	CompanyName       string          `json:"companyName"`
	Price             decimal.Decimal `json:"price"`
	MarketCap         decimal.Decimal `json:"marketCap"`
	Beta              float64         `json:"beta"`
	LastDividend      float64         `json:"lastDividend"`
	Range             string          `json:"range"`
	Change            decimal.Decimal `json:"change"`
	ChangePercentage  float64         `json:"changePercentage"`
	Volume            decimal.Decimal `json:"volume"`
	AverageVolume     decimal.Decimal `json:"averageVolume"`
	Currency          string          `json:"currency"`
	Exchange          string          `json:"exchange"`
	ExchangeFullName  string          `json:"exchangeFullName"`
	Industry          string          `json:"industry"`
	Sector            string          `json:"sector"`
	Country           string          `json:"country"`
	Website           string          `json:"website"`
	Description       string          `json:"description"`
	CEO               string          `json:"ceo"`
	FullTimeEmployees string          `json:"fullTimeEmployees"`
	Image             string          `json:"image"`
	IPODate           string          `json:"ipoDate"`
	IsETF             bool            `json:"isEtf"`
}

type Quote struct {
	Symbol           Symbol          `json:"symbol"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	ChangePercentage float64         `json:"changePercentage"`
	Change           decimal.Decimal `json:"change"`
	Volume           decimal.Decimal `json:"volume"`
	DayLow           decimal.Decimal `json:"dayLow"`
	DayHigh          decimal.Decimal `json:"dayHigh"`
	YearHigh         decimal.Decimal `json:"yearHigh"`
	YearLow          decimal.Decimal `json:"yearLow"`
	MarketCap        decimal.Decimal `json:"marketCap"`
	PriceAvg50       decimal.Decimal `json:"priceAvg50"`
	PriceAvg200      decimal.Decimal `json:"priceAvg200"`
	Exchange         string          `json:"exchange"`
	Open             decimal.Decimal `json:"open"`
	PreviousClose    decimal.Decimal `json:"previousClose"`
	Timestamp        int64           `json:"timestamp"`
}

// KeyMetrics holds the trailing-twelve-month metrics of /key-metrics-ttm.
type KeyMetrics struct {
	Symbol                  Symbol          `json:"symbol"`
	MarketCap               decimal.Decimal `json:"marketCap"`
	EnterpriseValue         decimal.Decimal `json:"enterpriseValueTTM"`
	EVToSales               float64         `json:"evToSalesTTM"`
	EVToEBITDA              float64         `json:"evToEBITDATTM"`
	NetDebtToEBITDA         float64         `json:"netDebtToEBITDATTM"`
	CurrentRatio            float64         `json:"currentRatioTTM"`
	ReturnOnEquity          float64         `json:"returnOnEquityTTM"`
	ReturnOnAssets          float64         `json:"returnOnAssetsTTM"`
	ReturnOnInvestedCapital float64         `json:"returnOnInvestedCapitalTTM"`
	EarningsYield           float64         `json:"earningsYieldTTM"`
	FreeCashFlowYield       float64         `json:"freeCashFlowYieldTTM"`
}

// Ratios holds the trailing-twelve-month ratios of /ratios-ttm.
type Ratios struct {
	Symbol                Symbol  `json:"symbol"`
	GrossProfitMargin     float64 `json:"grossProfitMarginTTM"`
	OperatingProfitMargin float64 `json:"operatingProfitMarginTTM"`
	NetProfitMargin       float64 `json:"netProfitMarginTTM"`
	PriceToEarnings       float64 `json:"priceToEarningsRatioTTM"`
	PriceToBook           float64 `json:"priceToBookRatioTTM"`
	PriceToSales          float64 `json:"priceToSalesRatioTTM"`
	DebtToEquity          float64 `json:"debtToEquityRatioTTM"`
	DividendYield         float64 `json:"dividendYieldTTM"`
	CurrentRatio          float64 `json:"currentRatioTTM"`
}

// MarketMover is one row of the gainers, losers and most-actives lists.
type MarketMover struct {
	Symbol            Symbol          `json:"symbol"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Change            decimal.Decimal `json:"change"`
	ChangesPercentage float64         `json:"changesPercentage"`
	Exchange          string          `json:"exchange"`
}

type SectorPerformance struct {
	Date          string  `json:"date"`
	Sector        string  `json:"sector"`
	Exchange      string  `json:"exchange"`
	AverageChange float64 `json:"averageChange"`
}

type NewsArticle struct {
	Symbol        Symbol `json:"symbol"`
	PublishedDate string `json:"publishedDate"`
	Publisher     string `json:"publisher"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	Site          string `json:"site"`
	Text          string `json:"text"`
	URL           string `json:"url"`
}
