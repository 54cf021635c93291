package services

import "github.com/alanpramil7/underdog/internal/yt"

// Correlate joins results with their view and subscriber counts and keeps the
// ones strictly below both ceilings, in input order. Missing counts are zero.
func Correlate(results []yt.SearchResult, views, subs yt.StatsMap, maxViews, maxSubs uint64, links yt.LinkBuilder) []yt.QualifyingRecord {
	records := make([]yt.QualifyingRecord, 0, len(results))
	for _, r := range results {
		viewCount := views.Get(r.VideoID)
		subCount := subs.Get(r.ChannelID)
		if viewCount >= maxViews || subCount >= maxSubs {
			continue
		}
		records = append(records, yt.QualifyingRecord{
			Title:           r.Title,
			URL:             links.WatchURL(r.VideoID),
			ThumbnailURL:    links.ThumbnailURL(r.VideoID),
			ViewCount:       viewCount,
			SubscriberCount: subCount,
			VideoID:         r.VideoID,
		})
	}
	return records
}
