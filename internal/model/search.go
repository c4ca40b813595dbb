package model

// SearchResponse is returned by GET /api/v1/search
type SearchResponse struct {
	SearchID     string         `json:"searchId"`
	Results      []PersonResult `json:"results"`
	SearchIntent *SearchIntent  `json:"searchIntent"`
	Total        int            `json:"total"`
	TookMs       int64          `json:"tookMs"`
}

// SearchLog is one row of the search_logs table
type SearchLog struct {
	SearchID       string
	Query          string
	CemeteryFilter *string
	Intent         *SearchIntent
	ResultCount    int
	ResponseTimeMs int64
}
