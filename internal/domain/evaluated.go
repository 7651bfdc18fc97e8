package domain

// MeltCalculation holds the melt-based valuation for a listing.
// It is a pure function of (Listing, market params) and is recomputed
// every cycle, never persisted.
type MeltCalculation struct {
	Quantity       int     `json:"quantity"`
	OzPerCoin      float64 `json:"oz_per_coin"`
	TotalOz        float64 `json:"total_oz"`
	MeltValue      float64 `json:"melt_value"`
	MeltPayout     float64 `json:"melt_payout"`
	EffectiveCost  float64 `json:"effective_cost"`
	Profit         float64 `json:"profit"`
	MarginPct      float64 `json:"margin_pct"`
	RecMaxTotal    float64 `json:"rec_max_total"`
	RecMaxItem     float64 `json:"rec_max_item"`
	ProfitAtRecMax float64 `json:"profit_at_rec_max"`
	MarginAtRecMax float64 `json:"margin_at_rec_max"`
}

// NumismaticFields is the optional overlay present only when a listing
// title resolved to a known coin identity.
type NumismaticFields struct {
	Override             string   `json:"numismatic_override"`
	CoinType             string   `json:"coin_type"`
	Year                 int      `json:"year"`
	Mint                 string   `json:"mint"`
	FMVFloor             *float64 `json:"fmv_floor,omitempty"`
	FMVSource            string   `json:"fmv_source,omitempty"`
	DealerValue          *float64 `json:"dealer_value,omitempty"`
	DealerProfit         *float64 `json:"dealer_profit,omitempty"`
	DealerMarginPct      *float64 `json:"dealer_margin_pct,omitempty"`
	DealerRecMaxTotal    *float64 `json:"dealer_rec_max_total,omitempty"`
	DealerRecMaxItem     *float64 `json:"dealer_rec_max_item,omitempty"`
	DealerProfitAtRecMax *float64 `json:"dealer_profit_at_rec_max,omitempty"`
	DealerMarginAtRecMax *float64 `json:"dealer_margin_at_rec_max,omitempty"`
	CoinbookURL          string   `json:"coinbook_url,omitempty"`
	Score                int      `json:"score"`
	ScoreReasons         []string `json:"score_reasons,omitempty"`
}

// Evaluated is the final per-listing verdict. Melt fields are always
// present; Numismatic is nil unless an override resolved.
type Evaluated struct {
	Listing    Listing           `json:"listing"`
	Melt       MeltCalculation   `json:"melt"`
	Numismatic *NumismaticFields `json:"numismatic,omitempty"`
	IsHit      bool              `json:"is_hit"`
	IsProspect bool              `json:"is_prospect"`
}
