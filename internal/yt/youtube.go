package yt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	searchOrder = "date"
	searchType  = "video"
)

// Client wraps the YouTube API service and exposes the three calls the
// underdog pipeline needs: search pages, video view counts and channel
// subscriber counts.
type Client struct {
	service        *youtube.Service
	requestTimeout time.Duration
}

// NewClient creates a new YouTube API client. The API key is supplied by the
// caller; extra options (endpoint, HTTP client) are passed through to the
// generated service. A zero requestTimeout leaves calls bounded only by ctx.
func NewClient(ctx context.Context, apiKey string, requestTimeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing YouTube API key")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:        service,
		requestTimeout: requestTimeout,
	}, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

// SearchPage fetches one page of videos matching req, newest first
func (c *Client) SearchPage(ctx context.Context, req SearchRequest) (*SearchPage, error) {
	if req.PageSize <= 0 || req.PageSize > MaxPageSize {
		return nil, fmt.Errorf("page size %d outside 1..%d", req.PageSize, MaxPageSize)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.Search.List([]string{"snippet"}).
		Q(req.Query).
		Type(searchType).
		Order(searchOrder).
		MaxResults(req.PageSize)
	if req.PublishedAfter != "" {
		call = call.PublishedAfter(req.PublishedAfter)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error executing search: %w", err)
	}

	results := make([]SearchResult, 0, len(response.Items))
	for i, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			return nil, fmt.Errorf("search item %d: video id: %w", i, ErrMissingID)
		}
		if item.Snippet == nil || item.Snippet.ChannelId == "" {
			return nil, fmt.Errorf("search item %s: channel id: %w", item.Id.VideoId, ErrMissingID)
		}

		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		results = append(results, SearchResult{
			VideoID:      item.Id.VideoId,
			ChannelID:    item.Snippet.ChannelId,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
		})
	}

	return &SearchPage{
		Results:       results,
		NextPageToken: response.NextPageToken,
	}, nil
}

// VideoViews returns the view count for each video id the API knows about.
// Videos without a statistics block count as zero views.
func (c *Client) VideoViews(ctx context.Context, ids []string) (StatsMap, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return StatsMap{}, nil
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.service.Videos.List([]string{"statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error getting video statistics: %w", err)
	}

	stats := make(StatsMap, len(response.Items))
	for _, video := range response.Items {
		if video.Id == "" {
			return nil, fmt.Errorf("video statistics: %w", ErrMissingID)
		}
		var views uint64
		if video.Statistics != nil {
			views = video.Statistics.ViewCount
		}
		stats[video.Id] = views
	}
	return stats, nil
}

// ChannelSubscribers returns the subscriber count for each channel id the
// API knows about. Hidden or absent counts are reported as zero.
func (c *Client) ChannelSubscribers(ctx context.Context, ids []string) (StatsMap, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return StatsMap{}, nil
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.service.Channels.List([]string{"statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error getting channel statistics: %w", err)
	}

	stats := make(StatsMap, len(response.Items))
	for _, channel := range response.Items {
		if channel.Id == "" {
			return nil, fmt.Errorf("channel statistics: %w", ErrMissingID)
		}
		var subs uint64
		if channel.Statistics != nil {
			subs = channel.Statistics.SubscriberCount
		}
		stats[channel.Id] = subs
	}
	return stats, nil
}

func checkBatch(ids []string) error {
	if len(ids) > MaxPageSize {
		return fmt.Errorf("batch of %d ids exceeds limit of %d", len(ids), MaxPageSize)
	}
	return nil
}
