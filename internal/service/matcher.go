package service

import (
	"strings"
	"time"

	"cemetery/internal/model"
)

// Match reason constants
const (
	ReasonFirstNameMatch  = "First name match"
	ReasonLastNameMatch   = "Last name match"
	ReasonMiddleNameMatch = "Middle name match"
	ReasonBirthDateMatch  = "Birth date match"
	ReasonDeathDateMatch  = "Death date match"
	ReasonBirthYearMatch  = "Birth year match"
	ReasonDeathYearMatch  = "Death year match"
	ReasonAgeMatch        = "Age at death match"
	ReasonGenderMatch     = "Gender match"
	ReasonOccupationMatch = "Occupation match"
	ReasonFullNameMatch   = "Full name match"
	ReasonGeneralMatch    = "General match"
)

// AnnotateMatches sets MatchedReasons on every result. Result order is left
// as the database returned it.
func AnnotateMatches(results []model.PersonResult, intent *model.SearchIntent) {
	for i := range results {
		results[i].MatchedReasons = matchedReasons(&results[i], intent)
	}
}

// matchedReasons explains which parts of intent a person satisfies
func matchedReasons(p *model.PersonResult, intent *model.SearchIntent) []string {
	reasons := []string{}
	if intent == nil {
		return append(reasons, ReasonGeneralMatch)
	}

	if intent.FirstName != nil && containsFold(p.FirstName, *intent.FirstName) {
		reasons = append(reasons, ReasonFirstNameMatch)
	}
	if intent.LastName != nil && containsFold(p.LastName, *intent.LastName) {
		reasons = append(reasons, ReasonLastNameMatch)
	}
	if intent.MiddleName != nil && p.MiddleName != nil && containsFold(*p.MiddleName, *intent.MiddleName) {
		reasons = append(reasons, ReasonMiddleNameMatch)
	}
	if intent.DateOfBirth != nil && sameDate(p.DateOfBirth, *intent.DateOfBirth) {
		reasons = append(reasons, ReasonBirthDateMatch)
	}
	if intent.DateOfDeath != nil && sameDate(p.DateOfDeath, *intent.DateOfDeath) {
		reasons = append(reasons, ReasonDeathDateMatch)
	}
	if intent.YearOfBirth != nil && p.DateOfBirth != nil && p.DateOfBirth.Year() == *intent.YearOfBirth {
		reasons = append(reasons, ReasonBirthYearMatch)
	}
	if intent.YearOfDeath != nil && p.DateOfDeath != nil && p.DateOfDeath.Year() == *intent.YearOfDeath {
		reasons = append(reasons, ReasonDeathYearMatch)
	}
	if intent.AgeAtDeath != nil && p.AgeAtDeath != nil && *p.AgeAtDeath == *intent.AgeAtDeath {
		reasons = append(reasons, ReasonAgeMatch)
	}
	if intent.Gender != nil && p.Gender != nil && strings.EqualFold(*p.Gender, *intent.Gender) {
		reasons = append(reasons, ReasonGenderMatch)
	}
	if intent.Occupation != nil && p.Occupation != nil && containsFold(*p.Occupation, *intent.Occupation) {
		reasons = append(reasons, ReasonOccupationMatch)
	}

	// General search: report which column the raw query hit
	if len(reasons) == 0 && !hasQueryFilters(intent) {
		q := strings.TrimSpace(intent.SearchQuery)
		switch {
		case q == "":
		case containsFold(p.FullName(), q) && !containsFold(p.FirstName, q) && !containsFold(p.LastName, q):
			reasons = append(reasons, ReasonFullNameMatch)
		case containsFold(p.FirstName, q):
			reasons = append(reasons, ReasonFirstNameMatch)
		case containsFold(p.LastName, q):
			reasons = append(reasons, ReasonLastNameMatch)
		case p.Occupation != nil && containsFold(*p.Occupation, q):
			reasons = append(reasons, ReasonOccupationMatch)
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return reasons
}

// hasQueryFilters reports whether the intent carries any field the query
// builder filters on. Relationship is informational only.
func hasQueryFilters(i *model.SearchIntent) bool {
	return i.FirstName != nil || i.LastName != nil || i.MiddleName != nil ||
		i.DateOfBirth != nil || i.DateOfDeath != nil ||
		i.YearOfBirth != nil || i.YearOfDeath != nil ||
		i.AgeAtDeath != nil || i.Gender != nil || i.Occupation != nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sameDate(t *time.Time, iso string) bool {
	return t != nil && t.Format("2006-01-02") == iso
}
