package service

import (
	"testing"
	"time"

	"cemetery/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAnnotateMatches_StructuredIntent(t *testing.T) {
	death := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	results := []model.PersonResult{
		{ID: 1, FirstName: "Maria", LastName: "Santos", DateOfDeath: &death, Gender: model.StringPtr("Female")},
		{ID: 2, FirstName: "Mariano", LastName: "Reyes"},
	}
	intent := &model.SearchIntent{
		SearchQuery: "Maria who died in 1990",
		FirstName:   model.StringPtr("maria"),
		YearOfDeath: model.IntPtr(1990),
		Gender:      model.StringPtr("female"),
	}

	AnnotateMatches(results, intent)

	assert.Equal(t, []string{ReasonFirstNameMatch, ReasonDeathYearMatch, ReasonGenderMatch}, results[0].MatchedReasons)
	assert.Equal(t, []string{ReasonFirstNameMatch}, results[1].MatchedReasons)
	assert.Equal(t, int64(1), results[0].ID, "order is preserved")
}

func TestAnnotateMatches_Dates(t *testing.T) {
	birth := time.Date(1921, 3, 3, 0, 0, 0, 0, time.UTC)
	results := []model.PersonResult{{FirstName: "Ana", LastName: "Cruz", DateOfBirth: &birth, AgeAtDeath: model.IntPtr(84)}}
	intent := &model.SearchIntent{DateOfBirth: model.StringPtr("1921-03-03"), AgeAtDeath: model.IntPtr(84)}

	AnnotateMatches(results, intent)

	assert.Equal(t, []string{ReasonBirthDateMatch, ReasonAgeMatch}, results[0].MatchedReasons)
}

func TestAnnotateMatches_GeneralSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		person model.PersonResult
		want   []string
	}{
		{"first name", "mar", model.PersonResult{FirstName: "Maria", LastName: "Cruz"}, []string{ReasonFirstNameMatch}},
		{"last name", "cruz", model.PersonResult{FirstName: "Maria", LastName: "Cruz"}, []string{ReasonLastNameMatch}},
		{"full name", "maria cruz", model.PersonResult{FirstName: "Maria", LastName: "Cruz"}, []string{ReasonFullNameMatch}},
		{"occupation", "nurse", model.PersonResult{FirstName: "Ana", LastName: "Lim", Occupation: model.StringPtr("Nurse")}, []string{ReasonOccupationMatch}},
		{"padded query", " cruz ", model.PersonResult{FirstName: "Maria", LastName: "Cruz"}, []string{ReasonLastNameMatch}},
		{"cemetery filter only", "zzz", model.PersonResult{FirstName: "Ana", LastName: "Lim"}, []string{ReasonGeneralMatch}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []model.PersonResult{tt.person}
			AnnotateMatches(results, &model.SearchIntent{SearchQuery: tt.query})
			assert.Equal(t, tt.want, results[0].MatchedReasons)
		})
	}
}

func TestAnnotateMatches_NilIntent(t *testing.T) {
	results := []model.PersonResult{{FirstName: "Ana"}}
	AnnotateMatches(results, nil)
	assert.Equal(t, []string{ReasonGeneralMatch}, results[0].MatchedReasons)
}
