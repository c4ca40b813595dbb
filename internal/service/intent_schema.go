package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cemetery/internal/model"

	"github.com/araddon/dateparse"
	"github.com/xeipuuv/gojsonschema"
)

const isoDate = "2006-01-02"

// Dates outside these years cannot match a burial record
const (
	minDateYear = 1000
	maxDateYear = 2999
)

// intentSchema describes the fields a model may return. Unknown properties
// are tolerated and ignored.
const intentSchema = `{
	"type": "object",
	"properties": {
		"firstName":    {"type": "string", "minLength": 1},
		"lastName":     {"type": "string", "minLength": 1},
		"middleName":   {"type": "string", "minLength": 1},
		"dateOfBirth":  {"type": "string", "pattern": "^[12]\\d{3}-\\d{2}-\\d{2}$"},
		"dateOfDeath":  {"type": "string", "pattern": "^[12]\\d{3}-\\d{2}-\\d{2}$"},
		"yearOfBirth":  {"type": "integer", "minimum": 1000, "maximum": 2999},
		"yearOfDeath":  {"type": "integer", "minimum": 1000, "maximum": 2999},
		"ageAtDeath":   {"type": "integer", "minimum": 0, "maximum": 150},
		"gender":       {"type": "string", "minLength": 1},
		"occupation":   {"type": "string", "minLength": 1},
		"relationship": {"type": "string", "minLength": 1},
		"confidence":   {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

var intentSchemaLoader = gojsonschema.NewStringLoader(intentSchema)

var (
	stringFields  = []string{"firstName", "lastName", "middleName", "gender", "occupation", "relationship"}
	dateFields    = []string{"dateOfBirth", "dateOfDeath"}
	integerFields = []string{"yearOfBirth", "yearOfDeath", "ageAtDeath"}
)

// intentFromModel validates a raw model object and converts it into a
// SearchIntent for query. Fields that cannot be coerced into the schema are
// dropped; the returned slice names them.
func intentFromModel(query string, raw map[string]interface{}) (*model.SearchIntent, []string, error) {
	doc := coerceModelFields(raw)

	dropped, err := dropInvalidFields(doc)
	if err != nil {
		return nil, dropped, err
	}

	intent := &model.SearchIntent{
		SearchQuery: query,
		Confidence:  model.ConfidenceDefault,
	}
	if c, ok := doc["confidence"].(float64); ok {
		intent.Confidence = c
	}

	intent.FirstName = stringField(doc, "firstName")
	intent.LastName = stringField(doc, "lastName")
	intent.MiddleName = stringField(doc, "middleName")
	intent.DateOfBirth = stringField(doc, "dateOfBirth")
	intent.DateOfDeath = stringField(doc, "dateOfDeath")
	intent.YearOfBirth = intField(doc, "yearOfBirth")
	intent.YearOfDeath = intField(doc, "yearOfDeath")
	intent.AgeAtDeath = intField(doc, "ageAtDeath")
	intent.Gender = stringField(doc, "gender")
	intent.Occupation = stringField(doc, "occupation")
	intent.Relationship = stringField(doc, "relationship")

	return intent, dropped, nil
}

// coerceModelFields copies the known fields of raw, applying the lossless
// conversions models commonly need: trimmed strings, numeric strings for
// integer fields and free-form dates normalised to YYYY-MM-DD. Nulls and
// blank strings are treated as absent.
func coerceModelFields(raw map[string]interface{}) map[string]interface{} {
	doc := make(map[string]interface{}, len(raw))

	for _, key := range stringFields {
		if s, ok := raw[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				doc[key] = s
			}
		} else if v, ok := raw[key]; ok && v != nil {
			doc[key] = v // left for the schema to reject
		}
	}

	for _, key := range dateFields {
		switch v := raw[key].(type) {
		case nil:
		case string:
			if s := strings.TrimSpace(v); s != "" {
				doc[key] = normalizeDate(s)
			}
		default:
			doc[key] = v
		}
	}

	for _, key := range integerFields {
		switch v := raw[key].(type) {
		case nil:
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				doc[key] = n
			} else {
				doc[key] = v
			}
		default:
			doc[key] = v
		}
	}

	switch v := raw["confidence"].(type) {
	case nil:
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			doc["confidence"] = f
		} else {
			doc["confidence"] = v
		}
	default:
		doc["confidence"] = v
	}

	return doc
}

// normalizeDate rewrites a full date into YYYY-MM-DD. Bare numbers such as a
// lone year are not full dates and are returned unchanged, as is anything
// that parses to a year outside minDateYear..maxDateYear ("March 3" parses to
// year 0).
func normalizeDate(s string) string {
	if _, err := strconv.Atoi(s); err == nil {
		return s
	}
	if _, err := time.Parse(isoDate, s); err == nil {
		return s
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() < minDateYear || t.Year() > maxDateYear {
		return s
	}
	return t.Format(isoDate)
}

// dropInvalidFields validates doc against intentSchema and deletes every top
// level property that fails. It errors only when the document as a whole is
// unusable.
func dropInvalidFields(doc map[string]interface{}) ([]string, error) {
	var dropped []string

	// each pass removes at least one field, so this terminates
	for pass := 0; pass <= len(doc); pass++ {
		result, err := gojsonschema.Validate(intentSchemaLoader, gojsonschema.NewGoLoader(doc))
		if err != nil {
			return dropped, fmt.Errorf("schema validation error: %w", err)
		}
		if result.Valid() {
			return dropped, nil
		}

		removed := false
		for _, re := range result.Errors() {
			field := re.Field()
			if _, ok := doc[field]; ok {
				delete(doc, field)
				dropped = append(dropped, field)
				removed = true
			}
		}
		if !removed {
			return dropped, fmt.Errorf("model output does not match intent schema: %v", result.Errors())
		}
	}

	return dropped, fmt.Errorf("model output does not match intent schema")
}

func stringField(doc map[string]interface{}, key string) *string {
	if s, ok := doc[key].(string); ok {
		return &s
	}
	return nil
}

func intField(doc map[string]interface{}, key string) *int {
	switch v := doc[key].(type) {
	case int:
		return &v
	case float64:
		if v == math.Trunc(v) {
			n := int(v)
			return &n
		}
	}
	return nil
}
