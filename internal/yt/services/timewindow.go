package services

import "time"

// publishedAfterLayout is RFC 3339 in UTC without fractional seconds, the
// form the search endpoint expects for publishedAfter.
const publishedAfterLayout = "2006-01-02T15:04:05Z"

// PublishedAfter returns the UTC timestamp daysAgo whole days before now.
func PublishedAfter(now time.Time, daysAgo int) string {
	return now.UTC().
		Add(-time.Duration(daysAgo) * 24 * time.Hour).
		Truncate(time.Second).
		Format(publishedAfterLayout)
}
