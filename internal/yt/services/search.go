package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanpramil7/underdog/internal/yt"
)

// SearchService walks search pages until it has enough results
type SearchService struct {
	source Source
	logger *slog.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(source Source, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		source: source,
		logger: logger,
	}
}

// Search returns up to maxTotal videos published after publishedAfter,
// newest first. Pages are requested one at a time because each request needs
// the previous page's token. A failing page fails the whole search; results
// gathered from earlier pages are discarded.
func (s *SearchService) Search(ctx context.Context, query string, maxTotal int, publishedAfter string) ([]yt.SearchResult, error) {
	results := []yt.SearchResult{}
	nextPageToken := ""

	for page := 1; len(results) < maxTotal; page++ {
		pageSize := min(yt.MaxPageSize, maxTotal-len(results))

		response, err := s.source.SearchPage(ctx, yt.SearchRequest{
			Query:          query,
			PublishedAfter: publishedAfter,
			PageSize:       int64(pageSize),
			PageToken:      nextPageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}

		items := response.Results
		if len(items) > pageSize {
			items = items[:pageSize]
		}
		results = append(results, items...)

		s.logger.Debug("search page fetched",
			slog.Int("page", page),
			slog.Int("items", len(items)),
			slog.Int("total", len(results)),
			slog.Bool("has_next", response.NextPageToken != ""),
		)

		// Handle pagination. Empty pages may still carry a token; a token
		// that repeats would request the same page forever.
		if response.NextPageToken == "" || response.NextPageToken == nextPageToken {
			break
		}
		nextPageToken = response.NextPageToken
	}

	return results, nil
}
