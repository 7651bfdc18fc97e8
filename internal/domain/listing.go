package domain

// Listing is one normalized auction item as produced by the parser
// boundary. It is immutable input for a single scan cycle.
type Listing struct {
	Title      string  `json:"title"`
	URL        string  `json:"url,omitempty"`
	ItemID     string  `json:"item_id,omitempty"`
	ItemPrice  float64 `json:"item_price"`
	Shipping   float64 `json:"shipping"`
	TotalPrice float64 `json:"total_price"`
	Bids       int     `json:"bids"`
	Quantity   int     `json:"quantity,omitempty"`
	OzPerCoin  float64 `json:"oz_per_coin,omitempty"`
	TimeLeft   string  `json:"time_left,omitempty"`
	// EndTimeTS is the auction end in unix seconds; 0 means unknown.
	EndTimeTS int64 `json:"end_time_ts,omitempty"`
}

// HasEndTime reports whether the listing carries a usable end timestamp.
func (l Listing) HasEndTime() bool {
	return l.EndTimeTS > 0
}
