package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), "test-key", 0,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", 0)
	require.Error(t, err)
}

func TestSearchPage_RequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/search"), r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "day trading", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "date", q.Get("order"))
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "50", q.Get("maxResults"))
		assert.Equal(t, "2026-10-10T12:00:00Z", q.Get("publishedAfter"))
		assert.Equal(t, "tok-1", q.Get("pageToken"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"nextPageToken": "tok-2",
			"items": [
				{"id": {"kind": "youtube#video", "videoId": "v1"},
				 "snippet": {"channelId": "c1", "title": "First", "channelTitle": "Chan",
				             "publishedAt": "2026-10-16T08:00:00Z"}},
				{"id": {"kind": "youtube#video", "videoId": "v2"},
				 "snippet": {"channelId": "c1", "title": "Second"}}
			]
		}`)
	})

	page, err := client.SearchPage(context.Background(), SearchRequest{
		Query:          "day trading",
		PublishedAfter: "2026-10-10T12:00:00Z",
		PageSize:       50,
		PageToken:      "tok-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", page.NextPageToken)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "v1", page.Results[0].VideoID)
	assert.Equal(t, "c1", page.Results[0].ChannelID)
	assert.Equal(t, "First", page.Results[0].Title)
	assert.Equal(t, "Chan", page.Results[0].ChannelTitle)
	assert.Equal(t, 2026, page.Results[0].PublishedAt.Year())
	assert.True(t, page.Results[1].PublishedAt.IsZero())
}

func TestSearchPage_FirstPageOmitsToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["pageToken"]
		assert.False(t, ok, "first page must not send a page token")
		fmt.Fprint(w, `{"items": []}`)
	})

	page, err := client.SearchPage(context.Background(), SearchRequest{Query: "x", PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Empty(t, page.NextPageToken)
}

func TestSearchPage_PageSizeBounds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	for _, size := range []int64{0, 51} {
		_, err := client.SearchPage(context.Background(), SearchRequest{Query: "x", PageSize: size})
		assert.Error(t, err, "size %d", size)
	}
}

func TestSearchPage_MissingIDs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing video id", `{"items": [{"id": {"kind": "youtube#video"}, "snippet": {"channelId": "c1"}}]}`},
		{"missing channel id", `{"items": [{"id": {"videoId": "v1"}, "snippet": {"title": "t"}}]}`},
		{"missing snippet", `{"items": [{"id": {"videoId": "v1"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			_, err := client.SearchPage(context.Background(), SearchRequest{Query: "x", PageSize: 5})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingID))
		})
	}
}

func TestSearchPage_UpstreamErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
	})

	_, err := client.SearchPage(context.Background(), SearchRequest{Query: "x", PageSize: 5})
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}

func TestVideoViews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/videos"), r.URL.Path)
		assert.Equal(t, "statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "v1,v2,v3", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items": [
			{"id": "v1", "statistics": {"viewCount": "42"}},
			{"id": "v2", "statistics": {}},
			{"id": "v3"}
		]}`)
	})

	stats, err := client.VideoViews(context.Background(), []string{"v1", "v2", "v3"})
	require.NoError(t, err)
	assert.Equal(t, StatsMap{"v1": 42, "v2": 0, "v3": 0}, stats)
}

func TestChannelSubscribers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/channels"), r.URL.Path)
		assert.Equal(t, "c1,c2", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items": [
			{"id": "c1", "statistics": {"subscriberCount": "900"}},
			{"id": "c2", "statistics": {"hiddenSubscriberCount": true}}
		]}`)
	})

	stats, err := client.ChannelSubscribers(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, StatsMap{"c1": 900, "c2": 0}, stats)
}

func TestStats_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [{"statistics": {"viewCount": "1"}}]}`)
	})

	_, err := client.VideoViews(context.Background(), []string{"v1"})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = client.ChannelSubscribers(context.Background(), []string{"c1"})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestStats_BatchLimits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	stats, err := client.VideoViews(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stats)

	tooMany := make([]string, MaxPageSize+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("c%d", i)
	}
	_, err = client.ChannelSubscribers(context.Background(), tooMany)
	assert.Error(t, err)
}
