package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/underdog/internal/yt"
)

func TestCorrelate_DualThreshold(t *testing.T) {
	results := []yt.SearchResult{
		{VideoID: "r1", ChannelID: "small", Title: "R1"},
		{VideoID: "r2", ChannelID: "small", Title: "R2"},
		{VideoID: "r3", ChannelID: "big", Title: "R3"},
	}
	views := yt.StatsMap{"r1": 50, "r2": 150, "r3": 50}
	subs := yt.StatsMap{"small": 500, "big": 5000}

	records := Correlate(results, views, subs, 100, 1000, yt.DefaultLinks())
	require.Len(t, records, 1)
	assert.Equal(t, yt.QualifyingRecord{
		Title:           "R1",
		URL:             "https://www.youtube.com/watch?v=r1",
		ThumbnailURL:    "https://i.ytimg.com/vi/r1/hqdefault.jpg",
		ViewCount:       50,
		SubscriberCount: 500,
		VideoID:         "r1",
	}, records[0])
}

func TestCorrelate_StrictBounds(t *testing.T) {
	results := []yt.SearchResult{
		{VideoID: "at-views", ChannelID: "ok"},
		{VideoID: "at-subs", ChannelID: "edge"},
		{VideoID: "below", ChannelID: "ok"},
	}
	views := yt.StatsMap{"at-views": 100, "at-subs": 1, "below": 99}
	subs := yt.StatsMap{"ok": 999, "edge": 1000}

	records := Correlate(results, views, subs, 100, 1000, yt.DefaultLinks())
	require.Len(t, records, 1)
	assert.Equal(t, "below", records[0].VideoID)
}

func TestCorrelate_AbsentStatsDefaultToZero(t *testing.T) {
	results := []yt.SearchResult{
		{VideoID: "a", ChannelID: "x"},
		{VideoID: "b", ChannelID: "y"},
	}

	records := Correlate(results, yt.StatsMap{}, nil, 1, 1, yt.DefaultLinks())
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Zero(t, r.ViewCount)
		assert.Zero(t, r.SubscriberCount)
	}

	assert.Empty(t, Correlate(results, nil, nil, 0, 1, yt.DefaultLinks()))
}

func TestCorrelate_PreservesOrder(t *testing.T) {
	results := []yt.SearchResult{
		{VideoID: "c", ChannelID: "z", PublishedAt: time.Unix(300, 0)},
		{VideoID: "a", ChannelID: "z", PublishedAt: time.Unix(200, 0)},
		{VideoID: "b", ChannelID: "z", PublishedAt: time.Unix(100, 0)},
	}
	views := yt.StatsMap{"c": 9, "a": 1, "b": 5}

	records := Correlate(results, views, nil, 10, 10, yt.DefaultLinks())
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.VideoID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestCorrelate_EmptyInput(t *testing.T) {
	records := Correlate(nil, nil, nil, 100, 1000, yt.DefaultLinks())
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
