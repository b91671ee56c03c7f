package dto

// BarPoint is one date of the nearby-contract OHLCV series.
type BarPoint struct {
	Date   string  `json:"date" example:"2024-01-01"`
	Open   float64 `json:"open" example:"17000"`
	High   float64 `json:"high" example:"17010"`
	Low    float64 `json:"low" example:"17000"`
	Close  float64 `json:"close" example:"17010"`
	Volume float64 `json:"volume" example:"3"`
}

// SeriesResponse represents the JSON structure returned by the
// GET /api/v1/series endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// This ensures loose coupling between the API surface and business logic.
//
// swagger:model SeriesResponse
type SeriesResponse struct {
	ItemCode string     `json:"item_code" example:"TX"`
	Bars     []BarPoint `json:"bars"`
}
