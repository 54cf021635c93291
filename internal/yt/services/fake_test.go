package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/alanpramil7/underdog/internal/yt"
)

// fakeSource serves a fixed corpus of search results in pages and answers
// statistics lookups from in-memory maps. It records every call.
type fakeSource struct {
	mu sync.Mutex

	corpus   []yt.SearchResult
	views    yt.StatsMap
	subs     yt.StatsMap
	overfill int // extra items returned per page beyond the requested size

	failSearchOnPage int // 1-based; 0 disables
	failVideos       error
	failChannels     error

	searchRequests []yt.SearchRequest
	videoBatches   [][]string
	channelBatches [][]string
}

func (f *fakeSource) SearchPage(_ context.Context, req yt.SearchRequest) (*yt.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchRequests = append(f.searchRequests, req)
	if f.failSearchOnPage == len(f.searchRequests) {
		return nil, fmt.Errorf("quota exceeded")
	}

	offset := 0
	if req.PageToken != "" {
		var err error
		offset, err = strconv.Atoi(req.PageToken)
		if err != nil {
			return nil, fmt.Errorf("bad token %q", req.PageToken)
		}
	}

	end := min(offset+int(req.PageSize)+f.overfill, len(f.corpus))
	page := &yt.SearchPage{Results: append([]yt.SearchResult(nil), f.corpus[offset:end]...)}
	if next := offset + int(req.PageSize); next < len(f.corpus) {
		page.NextPageToken = strconv.Itoa(next)
	}
	return page, nil
}

func (f *fakeSource) VideoViews(_ context.Context, ids []string) (yt.StatsMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.videoBatches = append(f.videoBatches, append([]string(nil), ids...))
	if f.failVideos != nil {
		return nil, f.failVideos
	}
	return lookup(f.views, ids), nil
}

func (f *fakeSource) ChannelSubscribers(_ context.Context, ids []string) (yt.StatsMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.channelBatches = append(f.channelBatches, append([]string(nil), ids...))
	if f.failChannels != nil {
		return nil, f.failChannels
	}
	return lookup(f.subs, ids), nil
}

func lookup(m yt.StatsMap, ids []string) yt.StatsMap {
	out := yt.StatsMap{}
	for _, id := range ids {
		if count, ok := m[id]; ok {
			out[id] = count
		}
	}
	return out
}

func makeCorpus(n int, channelFor func(i int) string) []yt.SearchResult {
	corpus := make([]yt.SearchResult, n)
	for i := range corpus {
		corpus[i] = yt.SearchResult{
			VideoID:   fmt.Sprintf("v%03d", i),
			ChannelID: channelFor(i),
			Title:     fmt.Sprintf("Video %d", i),
		}
	}
	return corpus
}

func makeIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return ids
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
