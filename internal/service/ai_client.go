package service

import (
	"context"
)

// IntentModel is the interface for hosted language models that turn a search
// query into a raw JSON object of intent fields
type IntentModel interface {
	// ExtractIntent returns the model's JSON object for query, unvalidated
	ExtractIntent(ctx context.Context, query string) (map[string]interface{}, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements IntentModel
var _ IntentModel = (*OpenAIClient)(nil)
