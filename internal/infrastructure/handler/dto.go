package handler

// TermRatesResponse represents the response for the term rates endpoint
type TermRatesResponse struct {
	NearTermRate float64 `json:"near_term_rate"`
	NextTermRate float64 `json:"next_term_rate"`
	NearTermDays int     `json:"near_term_days"`
	NextTermDays int     `json:"next_term_days"`
	AsOfDate     string  `json:"as_of_date"`
}

// CurvePointResponse represents one maturity on the curve endpoint response
type CurvePointResponse struct {
	MaturityDays int     `json:"maturity_days"`
	Rate         float64 `json:"rate"`
	IsObserved   bool    `json:"is_observed"`
}

// CurveResponse represents the response for the full curve endpoint
type CurveResponse struct {
	Date   string               `json:"date"`
	Points []CurvePointResponse `json:"points"`
}

// RefreshResponse represents the response for the refresh endpoint
type RefreshResponse struct {
	Year    int `json:"year"`
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
