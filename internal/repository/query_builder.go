package repository

import (
	"fmt"
	"strings"

	"cemetery/internal/model"
)

// SearchResultLimit caps a person search; the search box is search-as-you-type
const SearchResultLimit = 20

const personSearchSelect = `
		SELECT
			p.id, p.first_name, p.middle_name, p.last_name,
			p.date_of_birth, p.date_of_death, p.age_at_death,
			p.gender, p.occupation,
			b.id AS burial_id, b.burial_date,
			pl.id AS plot_id, pl.plot_number,
			c.id AS cemetery_id, c.name AS cemetery_name
		FROM persons p
		LEFT JOIN burials b ON b.person_id = p.id
		LEFT JOIN plots pl ON pl.id = b.plot_id
		LEFT JOIN cemeteries c ON c.id = pl.cemetery_id`

// SearchQuery is a parameterized person search. Args bind to $1..$n in order.
type SearchQuery struct {
	Text string
	Args []interface{}
}

// BuildSearchQuery turns intent into a person search. Every user-supplied
// value travels in Args; Text only ever contains fixed SQL and placeholders.
// Field values are used as-is, so numeric and date fields must already be
// valid.
func BuildSearchQuery(intent *model.SearchIntent, cemeteryFilter string) SearchQuery {
	if intent == nil {
		intent = &model.SearchIntent{}
	}

	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addCondition := func(format string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf(format, argIndex))
		args = append(args, value)
		argIndex++
	}

	if intent.FirstName != nil {
		addCondition("p.first_name ILIKE $%d", "%"+*intent.FirstName+"%")
	}
	if intent.LastName != nil {
		addCondition("p.last_name ILIKE $%d", "%"+*intent.LastName+"%")
	}
	if intent.MiddleName != nil {
		addCondition("p.middle_name ILIKE $%d", "%"+*intent.MiddleName+"%")
	}
	if intent.DateOfBirth != nil {
		addCondition("p.date_of_birth = $%d", *intent.DateOfBirth)
	}
	if intent.DateOfDeath != nil {
		addCondition("p.date_of_death = $%d", *intent.DateOfDeath)
	}
	if intent.YearOfBirth != nil {
		addCondition("EXTRACT(YEAR FROM p.date_of_birth) = $%d", *intent.YearOfBirth)
	}
	if intent.YearOfDeath != nil {
		addCondition("EXTRACT(YEAR FROM p.date_of_death) = $%d", *intent.YearOfDeath)
	}
	if intent.AgeAtDeath != nil {
		addCondition("p.age_at_death = $%d", *intent.AgeAtDeath)
	}
	if intent.Gender != nil {
		addCondition("LOWER(p.gender) = LOWER($%d)", *intent.Gender)
	}
	if intent.Occupation != nil {
		addCondition("p.occupation ILIKE $%d", "%"+*intent.Occupation+"%")
	}

	if cemeteryFilter != "" {
		addCondition("pl.cemetery_id = $%d", cemeteryFilter)
	}

	// Nothing usable was extracted: match the raw query against the name and
	// occupation columns instead of returning everything. Edge whitespace
	// would never match inside a column, so it is trimmed from the pattern.
	if len(whereClauses) == 0 {
		n := argIndex
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(p.first_name ILIKE $%d OR p.last_name ILIKE $%d OR CONCAT(p.first_name, ' ', p.last_name) ILIKE $%d OR p.occupation ILIKE $%d)",
			n, n, n, n,
		))
		args = append(args, "%"+strings.TrimSpace(intent.SearchQuery)+"%")
	}

	text := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY p.last_name, p.first_name
		LIMIT %d`, personSearchSelect, strings.Join(whereClauses, " AND "), SearchResultLimit)

	return SearchQuery{Text: text, Args: args}
}
