package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentFromModel_ValidObject(t *testing.T) {
	raw := map[string]interface{}{
		"firstName":   "Juan",
		"lastName":    "Dela Cruz",
		"yearOfDeath": float64(1985),
		"gender":      "male",
		"confidence":  0.9,
	}

	intent, dropped, err := intentFromModel("Juan Dela Cruz died 1985", raw)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	assert.Equal(t, "Juan Dela Cruz died 1985", intent.SearchQuery)
	assert.Equal(t, 0.9, intent.Confidence)
	assert.Equal(t, "Juan", *intent.FirstName)
	assert.Equal(t, "Dela Cruz", *intent.LastName)
	assert.Equal(t, 1985, *intent.YearOfDeath)
	assert.Equal(t, "male", *intent.Gender)
	assert.Nil(t, intent.YearOfBirth)
}

func TestIntentFromModel_DefaultConfidence(t *testing.T) {
	intent, _, err := intentFromModel("Rizal", map[string]interface{}{"lastName": "Rizal"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, intent.Confidence)
}

func TestIntentFromModel_Coercion(t *testing.T) {
	raw := map[string]interface{}{
		"yearOfBirth": "1921",
		"ageAtDeath":  " 84 ",
		"dateOfBirth": "March 3, 1921",
		"dateOfDeath": "2005-06-01",
		"occupation":  "  seamstress ",
		"confidence":  "0.75",
	}

	intent, dropped, err := intentFromModel("q", raw)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	assert.Equal(t, 1921, *intent.YearOfBirth)
	assert.Equal(t, 84, *intent.AgeAtDeath)
	assert.Equal(t, "1921-03-03", *intent.DateOfBirth)
	assert.Equal(t, "2005-06-01", *intent.DateOfDeath)
	assert.Equal(t, "seamstress", *intent.Occupation)
	assert.Equal(t, 0.75, intent.Confidence)
}

func TestIntentFromModel_DateWithoutYear(t *testing.T) {
	raw := map[string]interface{}{
		"firstName":   "Maria",
		"dateOfBirth": "March 3",
		"dateOfDeath": "0000-06-01",
	}

	intent, dropped, err := intentFromModel("q", raw)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"dateOfBirth", "dateOfDeath"}, dropped)
	assert.Nil(t, intent.DateOfBirth)
	assert.Nil(t, intent.DateOfDeath)
	assert.Equal(t, "Maria", *intent.FirstName)
	assert.Equal(t, "March 3", normalizeDate("March 3"))
}

func TestIntentFromModel_DropsInvalidFields(t *testing.T) {
	raw := map[string]interface{}{
		"firstName":   "Maria",
		"lastName":    42.0,
		"yearOfDeath": "nineteen ninety",
		"ageAtDeath":  200.0,
		"dateOfBirth": "1950",
		"gender":      "",
		"confidence":  1.7,
		"nickname":    "Lola",
	}

	intent, dropped, err := intentFromModel("q", raw)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"lastName", "yearOfDeath", "ageAtDeath", "dateOfBirth", "confidence"}, dropped)
	assert.Equal(t, "Maria", *intent.FirstName)
	assert.Nil(t, intent.LastName)
	assert.Nil(t, intent.YearOfDeath)
	assert.Nil(t, intent.AgeAtDeath)
	assert.Nil(t, intent.DateOfBirth)
	assert.Nil(t, intent.Gender)
	assert.Equal(t, 0.5, intent.Confidence)
}

func TestIntentFromModel_NullsAreAbsent(t *testing.T) {
	raw := map[string]interface{}{
		"firstName":   nil,
		"yearOfBirth": nil,
		"dateOfDeath": nil,
		"confidence":  nil,
	}

	intent, dropped, err := intentFromModel("q", raw)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.False(t, intent.HasFilters())
	assert.Equal(t, 0.5, intent.Confidence)
}

func TestIntField(t *testing.T) {
	doc := map[string]interface{}{"a": 3, "b": 4.0, "c": 4.5, "d": "5"}
	assert.Equal(t, 3, *intField(doc, "a"))
	assert.Equal(t, 4, *intField(doc, "b"))
	assert.Nil(t, intField(doc, "c"))
	assert.Nil(t, intField(doc, "d"))
	assert.Nil(t, intField(doc, "missing"))
}
