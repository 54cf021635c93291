package yt

import (
	"errors"
	"time"
)

// ErrMissingID is returned when an upstream item lacks an identifier the
// pipeline needs to correlate records.
var ErrMissingID = errors.New("upstream item is missing an identifier")

// MaxPageSize is the largest page or id batch the Data API accepts per call.
const MaxPageSize = 50

// SearchResult represents a single video returned by a search page
type SearchResult struct {
	VideoID      string    `json:"video_id"`
	ChannelID    string    `json:"channel_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}

// SearchRequest describes one search page request
type SearchRequest struct {
	Query          string
	PublishedAfter string
	PageSize       int64
	PageToken      string
}

// SearchPage is one page of search results plus the continuation token
type SearchPage struct {
	Results       []SearchResult
	NextPageToken string
}

// StatsMap maps an entity id to a count. Absent ids count as zero.
type StatsMap map[string]uint64

// Get returns the count for id, or 0 if id is absent.
func (m StatsMap) Get(id string) uint64 {
	return m[id]
}

// EntityKind selects which statistic-bearing entity a bulk lookup targets
type EntityKind int

const (
	KindVideo EntityKind = iota
	KindChannel
)

func (k EntityKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Dedupe reports whether ids of this kind must be deduplicated before
// batching. Channel ids repeat across videos from the same author; video ids
// are already unique within one search result set.
func (k EntityKind) Dedupe() bool {
	return k == KindChannel
}

// QualifyingRecord is a search result that passed both thresholds
type QualifyingRecord struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ViewCount       uint64 `json:"view_count"`
	SubscriberCount uint64 `json:"subscriber_count"`
	VideoID         string `json:"video_id"`
}
