package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanpramil7/underdog/internal/yt"
)

// Pipeline finds underdog videos: recent search results whose view count and
// channel subscriber count both fall below caller-supplied ceilings.
type Pipeline struct {
	search   *SearchService
	stats    *StatsService
	links    yt.LinkBuilder
	now      func() time.Time
	logger   *slog.Logger
	progress func(Stage)
}

// Stage names a step of a pipeline run, reported through WithProgress
type Stage string

const (
	StageSearching     Stage = "searching"
	StageFetchingStats Stage = "fetching stats"
	StageFiltering     Stage = "filtering"
)

type pipelineOptions struct {
	links            yt.LinkBuilder
	now              func() time.Time
	logger           *slog.Logger
	statsConcurrency int
	progress         func(Stage)
}

// Option customizes a Pipeline
type Option func(*pipelineOptions)

// WithClock overrides the clock used for the publish window
func WithClock(now func() time.Time) Option {
	return func(o *pipelineOptions) { o.now = now }
}

// WithLogger sets the logger used by the pipeline and its services
func WithLogger(logger *slog.Logger) Option {
	return func(o *pipelineOptions) { o.logger = logger }
}

// WithLinks sets the hosts used for watch and thumbnail URLs
func WithLinks(links yt.LinkBuilder) Option {
	return func(o *pipelineOptions) { o.links = links }
}

// WithStatsConcurrency bounds concurrent batch requests per stats fetch
func WithStatsConcurrency(n int) Option {
	return func(o *pipelineOptions) { o.statsConcurrency = n }
}

// WithProgress registers fn to be called as each run enters a new stage.
// fn runs on the caller's goroutine and must not block.
func WithProgress(fn func(Stage)) Option {
	return func(o *pipelineOptions) { o.progress = fn }
}

// NewPipeline builds a pipeline over source
func NewPipeline(source Source, opts ...Option) *Pipeline {
	o := pipelineOptions{
		links:            yt.DefaultLinks(),
		now:              time.Now,
		logger:           slog.Default(),
		statsConcurrency: DefaultStatsConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.progress == nil {
		o.progress = func(Stage) {}
	}

	return &Pipeline{
		search:   NewSearchService(source, o.logger),
		stats:    NewStatsService(source, o.logger, o.statsConcurrency),
		links:    o.links,
		now:      o.now,
		logger:   o.logger,
		progress: o.progress,
	}
}

// Run executes one search. params must already be validated.
func (p *Pipeline) Run(ctx context.Context, params yt.QueryParameters) ([]yt.QualifyingRecord, error) {
	start := p.now()
	publishedAfter := PublishedAfter(start, params.DaysAgo)

	p.progress(StageSearching)
	results, err := p.search.Search(ctx, params.Query, params.MaxResults, publishedAfter)
	if err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(results))
	channelIDs := make([]string, 0, len(results))
	for _, r := range results {
		videoIDs = append(videoIDs, r.VideoID)
		channelIDs = append(channelIDs, r.ChannelID)
	}

	p.progress(StageFetchingStats)
	var views, subs yt.StatsMap
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		views, err = p.stats.Fetch(gctx, yt.KindVideo, videoIDs)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = p.stats.Fetch(gctx, yt.KindChannel, channelIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching statistics: %w", err)
	}

	p.progress(StageFiltering)
	records := Correlate(results, views, subs, nonNegative(params.MaxViews), nonNegative(params.MaxSubs), p.links)

	p.logger.Info("underdog search complete",
		slog.String("query", params.Query),
		slog.String("published_after", publishedAfter),
		slog.Int("results", len(results)),
		slog.Int("qualifying", len(records)),
		slog.Duration("elapsed", p.now().Sub(start)),
	)

	return records, nil
}

func nonNegative(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}
