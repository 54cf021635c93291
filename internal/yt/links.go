package yt

import "fmt"

const (
	DefaultWatchHost     = "www.youtube.com"
	DefaultThumbnailHost = "i.ytimg.com"
)

// LinkBuilder derives watch and thumbnail URLs from a video id
type LinkBuilder struct {
	WatchHost     string
	ThumbnailHost string
}

// DefaultLinks returns a LinkBuilder pointing at the public YouTube hosts
func DefaultLinks() LinkBuilder {
	return LinkBuilder{WatchHost: DefaultWatchHost, ThumbnailHost: DefaultThumbnailHost}
}

// WatchURL returns https://<host>/watch?v=<videoID>
func (l LinkBuilder) WatchURL(videoID string) string {
	return fmt.Sprintf("https://%s/watch?v=%s", l.WatchHost, videoID)
}

// ThumbnailURL returns https://<host>/vi/<videoID>/hqdefault.jpg
func (l LinkBuilder) ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://%s/vi/%s/hqdefault.jpg", l.ThumbnailHost, videoID)
}
