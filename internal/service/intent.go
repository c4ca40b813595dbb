package service

import (
	"context"
	"strings"

	"cemetery/internal/metrics"
	"cemetery/internal/model"

	"go.uber.org/zap"
)

// IntentParser turns free-text search queries into structured filters. It
// prefers the language model and degrades to ParseFallback; it never fails.
type IntentParser struct {
	aiClient IntentModel
	cache    IntentCache
	logger   *zap.Logger
}

// NewIntentParser creates a new intent parser. aiClient and cache may be nil.
func NewIntentParser(aiClient IntentModel, cache IntentCache, logger *zap.Logger) *IntentParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentParser{
		aiClient: aiClient,
		cache:    cache,
		logger:   logger.Named("intent"),
	}
}

// Parse extracts a SearchIntent from query. The returned intent always
// carries query verbatim as SearchQuery.
func (p *IntentParser) Parse(ctx context.Context, query string) *model.SearchIntent {
	if strings.TrimSpace(query) == "" || !p.modelEnabled() {
		return p.fallback(query)
	}

	if intent := p.cached(ctx, query); intent != nil {
		metrics.IntentExtractions.WithLabelValues(metrics.PathCache).Inc()
		return intent
	}

	intent, err := p.parseWithAI(ctx, query)
	if err != nil {
		p.logger.Warn("AI intent extraction failed, using fallback parser",
			zap.String("query", query),
			zap.Error(err),
		)
		return p.fallback(query)
	}

	metrics.IntentExtractions.WithLabelValues(metrics.PathLLM).Inc()

	if p.cache != nil {
		if err := p.cache.Set(ctx, query, intent); err != nil {
			p.logger.Warn("failed to cache intent", zap.Error(err))
		}
	}

	return intent
}

func (p *IntentParser) modelEnabled() bool {
	return p.aiClient != nil && p.aiClient.IsEnabled()
}

func (p *IntentParser) cached(ctx context.Context, query string) *model.SearchIntent {
	if p.cache == nil {
		return nil
	}
	intent, err := p.cache.Get(ctx, query)
	if err != nil {
		p.logger.Warn("intent cache lookup failed", zap.Error(err))
		return nil
	}
	return intent
}

func (p *IntentParser) parseWithAI(ctx context.Context, query string) (*model.SearchIntent, error) {
	raw, err := p.aiClient.ExtractIntent(ctx, query)
	if err != nil {
		return nil, err
	}

	intent, dropped, err := intentFromModel(query, raw)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		p.logger.Debug("dropped invalid model fields", zap.Strings("fields", dropped))
	}

	return intent, nil
}

func (p *IntentParser) fallback(query string) *model.SearchIntent {
	metrics.IntentExtractions.WithLabelValues(metrics.PathFallback).Inc()
	return ParseFallback(query)
}
