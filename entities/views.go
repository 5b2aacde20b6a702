package entities

type StockView struct {
	Profile    CompanyProfile `json:"profile"`
	Quote      Quote          `json:"quote"`
	KeyMetrics KeyMetrics     `json:"keyMetrics"`
	Ratios     Ratios         `json:"ratios"`
}

// CompanyView is one side of a comparison. Ratios are not fetched for it.
type CompanyView struct {
	Profile CompanyProfile `json:"profile"`
	Quote   Quote          `json:"quote"`
	Metrics KeyMetrics     `json:"metrics"`
}

type ComparisonView struct {
	Company1 CompanyView `json:"company1"`
	Company2 CompanyView `json:"company2"`
}

type MarketSnapshotView struct {
	Gainers           []MarketMover       `json:"gainers"`
	Losers            []MarketMover       `json:"losers"`
	Actives           []MarketMover       `json:"actives"`
	SectorPerformance []SectorPerformance `json:"sectorPerformance"`
	Error             string              `json:"error,omitempty"`
}

type NewsFeedView struct {
	News  []NewsArticle `json:"news"`
	Error string        `json:"error,omitempty"`
}
