package model

// Fallback and default confidence levels reported on a SearchIntent
const (
	ConfidenceFallback = 0.3
	ConfidenceDefault  = 0.5
)

// SearchIntent represents the structured filters inferred from one free-text
// search query. A nil field means "do not filter on this dimension".
type SearchIntent struct {
	SearchQuery  string  `json:"searchQuery"`
	Confidence   float64 `json:"confidence"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	MiddleName   *string `json:"middleName,omitempty"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	DateOfDeath  *string `json:"dateOfDeath,omitempty"` // YYYY-MM-DD
	YearOfBirth  *int    `json:"yearOfBirth,omitempty"`
	YearOfDeath  *int    `json:"yearOfDeath,omitempty"`
	AgeAtDeath   *int    `json:"ageAtDeath,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	Occupation   *string `json:"occupation,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}

// HasFilters reports whether any field other than SearchQuery and
// Confidence is populated
func (i *SearchIntent) HasFilters() bool {
	return i.FirstName != nil || i.LastName != nil || i.MiddleName != nil ||
		i.DateOfBirth != nil || i.DateOfDeath != nil ||
		i.YearOfBirth != nil || i.YearOfDeath != nil ||
		i.AgeAtDeath != nil || i.Gender != nil || i.Occupation != nil ||
		i.Relationship != nil
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
