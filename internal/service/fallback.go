package service

import (
	"regexp"
	"strconv"
	"strings"

	"cemetery/internal/model"
)

var (
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	namePattern = regexp.MustCompile(`^[A-Z][a-z]+$`)

	maleWords   = regexp.MustCompile(`(?i)\b(male|man|boy|he|him)\b`)
	femaleWords = regexp.MustCompile(`(?i)\b(female|woman|girl|she|her)\b`)
)

// relationships is checked in this order; the first hit wins regardless of
// where it appears in the query
var relationships = []string{
	"grandmother", "grandfather", "mother", "father",
	"sister", "brother", "aunt", "uncle", "cousin",
}

var relationshipGender = map[string]string{
	"grandmother": "female",
	"mother":      "female",
	"sister":      "female",
	"aunt":        "female",
	"grandfather": "male",
	"father":      "male",
	"brother":     "male",
	"uncle":       "male",
}

// ParseFallback extracts a SearchIntent from query with fixed rules. It is
// used when no language model is configured or the model call fails. Every
// rule runs independently, so one query can populate several fields.
func ParseFallback(query string) *model.SearchIntent {
	intent := &model.SearchIntent{
		SearchQuery: query,
		Confidence:  model.ConfidenceFallback,
	}

	lower := strings.ToLower(query)
	born := strings.Contains(lower, "born")

	// Year; death is assumed unless the query talks about birth
	if m := yearPattern.FindString(query); m != "" {
		year, _ := strconv.Atoi(m)
		if born {
			intent.YearOfBirth = model.IntPtr(year)
		} else {
			intent.YearOfDeath = model.IntPtr(year)
		}
	}

	// Full date
	if m := datePattern.FindString(query); m != "" {
		if born {
			intent.DateOfBirth = model.StringPtr(m)
		} else {
			intent.DateOfDeath = model.StringPtr(m)
		}
	}

	// Relationship
	for _, rel := range relationships {
		if strings.Contains(lower, rel) {
			intent.Relationship = model.StringPtr(rel)
			break
		}
	}

	// Gender; male wins when both match
	switch {
	case maleWords.MatchString(query):
		intent.Gender = model.StringPtr("male")
	case femaleWords.MatchString(query):
		intent.Gender = model.StringPtr("female")
	case intent.Relationship != nil:
		if g, ok := relationshipGender[*intent.Relationship]; ok {
			intent.Gender = model.StringPtr(g)
		}
	}

	// Names
	var names []string
	for _, token := range strings.Fields(query) {
		if namePattern.MatchString(token) {
			names = append(names, token)
		}
	}
	switch {
	case len(names) >= 2:
		intent.FirstName = model.StringPtr(names[0])
		intent.LastName = model.StringPtr(names[len(names)-1])
		if len(names) > 2 {
			intent.MiddleName = model.StringPtr(strings.Join(names[1:len(names)-1], " "))
		}
	case len(names) == 1:
		// a lone name is more useful as a surname
		intent.LastName = model.StringPtr(names[0])
	}

	return intent
}
