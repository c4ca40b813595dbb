package service

import (
	"context"
	"sync"
	"time"

	"cemetery/internal/metrics"
	"cemetery/internal/model"
	"cemetery/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const searchLogTimeout = 5 * time.Second

// SearchRepository is the storage a SearchService needs
type SearchRepository interface {
	SearchPersons(ctx context.Context, q repository.SearchQuery) ([]model.PersonResult, error)
	LogSearch(ctx context.Context, entry *model.SearchLog) error
}

// IntentExtractor turns a query into a SearchIntent
type IntentExtractor interface {
	Parse(ctx context.Context, query string) *model.SearchIntent
}

// SearchService handles search business logic
type SearchService struct {
	repo        SearchRepository
	intent      IntentExtractor
	logSearches bool
	logger      *zap.Logger

	pending sync.WaitGroup
}

// NewSearchService creates a new search service
func NewSearchService(repo SearchRepository, intentParser IntentExtractor, logSearches bool, logger *zap.Logger) *SearchService {
	return &SearchService{
		repo:        repo,
		intent:      intentParser,
		logSearches: logSearches,
		logger:      logger.Named("search"),
	}
}

// Search extracts an intent from query, runs the resulting person search and
// annotates each result with the intent fields it matched
func (s *SearchService) Search(ctx context.Context, query, cemeteryFilter string) (*model.SearchResponse, error) {
	startTime := time.Now()

	intent := s.intent.Parse(ctx, query)
	q := repository.BuildSearchQuery(intent, cemeteryFilter)

	results, err := s.repo.SearchPersons(ctx, q)
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	if results == nil {
		results = []model.PersonResult{}
	}

	AnnotateMatches(results, intent)

	took := time.Since(startTime)
	metrics.SearchRequests.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(took.Seconds())

	response := &model.SearchResponse{
		SearchID:     uuid.NewString(),
		Results:      results,
		SearchIntent: intent,
		Total:        len(results),
		TookMs:       took.Milliseconds(),
	}

	if s.logSearches {
		entry := &model.SearchLog{
			SearchID:       response.SearchID,
			Query:          query,
			Intent:         intent,
			ResultCount:    response.Total,
			ResponseTimeMs: response.TookMs,
		}
		if cemeteryFilter != "" {
			entry.CemeteryFilter = &cemeteryFilter
		}
		s.logAsync(entry)
	}

	return response, nil
}

// logAsync writes the search log without holding up the response
func (s *SearchService) logAsync(entry *model.SearchLog) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), searchLogTimeout)
		defer cancel()

		if err := s.repo.LogSearch(ctx, entry); err != nil {
			s.logger.Warn("failed to log search",
				zap.String("search_id", entry.SearchID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until in-flight search logs are written
func (s *SearchService) Wait() {
	s.pending.Wait()
}
