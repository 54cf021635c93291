package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alanpramil7/underdog/internal/yt"
)

// DefaultStatsConcurrency bounds in-flight batch requests per fetch
const DefaultStatsConcurrency = 4

// StatsService looks up view or subscriber counts in batches of yt.MaxPageSize
type StatsService struct {
	source      Source
	logger      *slog.Logger
	concurrency int
}

// NewStatsService creates a new stats service. A concurrency below 1 falls
// back to DefaultStatsConcurrency.
func NewStatsService(source Source, logger *slog.Logger, concurrency int) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = DefaultStatsConcurrency
	}
	return &StatsService{
		source:      source,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Fetch returns counts for the given ids of one entity kind. Channel ids are
// deduplicated first. Batches run concurrently and merge into one map; the
// first failing batch fails the whole fetch.
func (s *StatsService) Fetch(ctx context.Context, kind yt.EntityKind, ids []string) (yt.StatsMap, error) {
	lookup, err := s.lookupFor(kind)
	if err != nil {
		return nil, err
	}

	if kind.Dedupe() {
		ids = Unique(ids)
	}
	batches := Chunk(ids, yt.MaxPageSize)

	var mu sync.Mutex
	stats := make(yt.StatsMap, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			batchStats, err := lookup(gctx, batch)
			if err != nil {
				return fmt.Errorf("%s statistics batch %d: %w", kind, i, err)
			}

			mu.Lock()
			for id, count := range batchStats {
				stats[id] = count
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("statistics fetched",
		slog.String("kind", kind.String()),
		slog.Int("ids", len(ids)),
		slog.Int("batches", len(batches)),
		slog.Int("found", len(stats)),
	)

	return stats, nil
}

func (s *StatsService) lookupFor(kind yt.EntityKind) (func(context.Context, []string) (yt.StatsMap, error), error) {
	switch kind {
	case yt.KindVideo:
		return s.source.VideoViews, nil
	case yt.KindChannel:
		return s.source.ChannelSubscribers, nil
	default:
		return nil, fmt.Errorf("unsupported entity kind %d", int(kind))
	}
}

// Chunk splits ids into consecutive slices of at most size elements
func Chunk(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		end := min(i+size, len(ids))
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// Unique returns ids with duplicates removed, keeping first-seen order
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
